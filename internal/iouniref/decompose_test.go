package iouniref

import (
	"strings"
	"testing"

	"github.com/beasleyjonm/ORION/internal/iotaxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clusterRecord = `<entry id="UniRef100_P0C6X7" updated="2020-04-22">
  <name>Cluster: Replicase polyprotein 1ab</name>
  <property type="member count" value="3"/>
  <property type="common taxon" value="SARS-related coronavirus"/>
  <property type="common taxon ID" value="694009"/>
  <representativeMember>
    <dbReference type="UniProtKB ID" id="R1AB_SARS">
      <property type="UniProtKB accession" value="P0C6X7"/>
      <property type="UniProtKB accession" value="Q1T6X5"/>
      <property type="protein name" value="Replicase polyprotein 1ab"/>
      <property type="source organism" value="SARS coronavirus"/>
      <property type="NCBI taxonomy" value="694009"/>
    </dbReference>
  </representativeMember>
  <member>
    <dbReference type="UniProtKB ID" id="R1AB_SARS2">
      <property type="UniProtKB accession" value="P0DTD1"/>
      <property type="protein name" value="Replicase polyprotein 1ab"/>
      <property type="source organism" value="SARS-CoV-2"/>
      <property type="NCBI taxonomy" value="2697049"/>
    </dbReference>
  </member>
  <member>
    <dbReference type="UniProtKB ID" id="R1AB_HUMAN">
      <property type="UniProtKB accession" value="Q99999"/>
      <property type="protein name" value="Not a virus protein"/>
      <property type="source organism" value="Homo sapiens"/>
      <property type="NCBI taxonomy" value="9606"/>
    </dbReference>
  </member>
</entry>
`

func viralTaxa() iotaxon.TaxonSet {
	return iotaxon.TaxonSet{
		"694009":  {},
		"2697049": {},
	}
}

func TestDecompose(t *testing.T) {
	rows, err := Decompose(clusterRecord, viralTaxa())
	require.NoError(t, err)
	require.Len(t, rows, 6,
		"base pair + representative pair + one qualifying member pair")

	for _, row := range rows {
		assert.Equal(t, "P0C6X7", row.Group)
		assert.Equal(t, "UniRef100", row.SimilarityBin)
	}

	nums := make([]int, len(rows))
	for i, row := range rows {
		nums[i] = row.NodeNum
	}
	assert.Equal(t, []int{0, 1, 2, 2, 3, 3}, nums,
		"member pairs share a position")

	family := rows[0]
	assert.Equal(t, "UniRef100:P0C6X7", family.ID)
	assert.Equal(t, familyCategory, family.Category)

	taxon := rows[1]
	assert.Equal(t, "NCBITaxon:694009", taxon.ID)
	assert.Empty(t, taxon.Category, "category filled by normalization")

	rep := rows[2]
	assert.Equal(t, "UniProtKB:P0C6X7", rep.ID,
		"only the first accession counts")
	assert.Equal(t, "Replicase polyprotein 1ab", rep.Name)
	assert.Equal(t, geneCategory, rep.Category)

	repTaxon := rows[3]
	assert.Equal(t, "NCBITaxon:694009", repTaxon.ID)
	assert.Equal(t, "SARS coronavirus", repTaxon.Name)
	assert.Equal(t, taxonCategory, repTaxon.Category)

	member := rows[4]
	assert.Equal(t, "UniProtKB:P0DTD1", member.ID)
	assert.Equal(t, "NCBITaxon:2697049", rows[5].ID,
		"non-target member (9606) is skipped")
}

func TestDecomposeGroupSecondSegment(t *testing.T) {
	// an entry id carrying an extra underscore still keys the group by
	// the second segment only
	record := strings.Replace(clusterRecord,
		`id="UniRef100_P0C6X7"`, `id="UniRef100_P0C6X7_2"`, 1)
	rows, err := Decompose(record, viralTaxa())
	require.NoError(t, err)
	require.Len(t, rows, 6)

	assert.Equal(t, "UniRef100:P0C6X7:2", rows[0].ID)
	for _, row := range rows {
		assert.Equal(t, "P0C6X7", row.Group)
	}
}

func TestDecomposeNoQualifyingMembers(t *testing.T) {
	// Only the representative is in the target set; without a further
	// member pair the record is discarded.
	taxa := iotaxon.TaxonSet{"694009": {}}
	rows, err := Decompose(clusterRecord, taxa)
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestDecomposeNoCommonTaxon(t *testing.T) {
	record := `<entry id="UniRef100_A0A000">
  <property type="member count" value="1"/>
</entry>
`
	rows, err := Decompose(record, viralTaxa())
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestDecomposeIncompleteMember(t *testing.T) {
	record := `<entry id="UniRef100_P0C6X7">
  <property type="common taxon ID" value="694009"/>
  <representativeMember>
    <dbReference type="UniProtKB ID" id="R1AB_SARS">
      <property type="UniProtKB accession" value="P0C6X7"/>
      <property type="protein name" value="Replicase polyprotein 1ab"/>
      <property type="source organism" value="SARS coronavirus"/>
      <property type="NCBI taxonomy" value="694009"/>
    </dbReference>
  </representativeMember>
  <member>
    <dbReference type="UniProtKB ID" id="NONAME">
      <property type="UniProtKB accession" value="P0DTD1"/>
      <property type="source organism" value="SARS-CoV-2"/>
      <property type="NCBI taxonomy" value="2697049"/>
    </dbReference>
  </member>
</entry>
`
	// the member lacks a protein name, so only the representative pair
	// survives and the record falls under the six-row minimum
	rows, err := Decompose(record, viralTaxa())
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestDecomposeMalformed(t *testing.T) {
	tests := []struct {
		msg    string
		record string
	}{
		{"truncated markup", `<entry id="UniRef100_X">` + "\n  <name>"},
		{"id without similarity bin", `<entry id="P0C6X7"></entry>`},
	}

	for _, tt := range tests {
		_, err := Decompose(tt.record, viralTaxa())
		assert.Error(t, err, tt.msg)
	}
}
