// Package iouniref converts UniRef cluster records into KGX node and
// edge tables scoped to a target organism class.
//
// Records are pulled out of the UniRef XML file with an offset index
// rather than a full document parse: the files are tens of gigabytes
// and only the indexed entries contain target taxa.
package iouniref

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/beasleyjonm/ORION/internal/iotaxon"
	"github.com/beasleyjonm/ORION/pkg/graph"
)

// node categories emitted for the cluster motif
const (
	familyCategory = "gene_family|named_thing|biological_entity|molecular_entity"
	geneCategory   = "gene|gene_or_gene_product|macromolecular_machine|" +
		"genomic_entity|molecular_entity|biological_entity|named_thing"
	taxonCategory = "organism_taxon|named_thing|ontology_class"
)

// member property keys in a dbReference block
const (
	propAccession   = "UniProtKB accession"
	propOrganism    = "source organism"
	propTaxonomy    = "NCBI taxonomy"
	propProteinName = "protein name"
	propCommonTaxon = "common taxon ID"
)

type xmlProperty struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type xmlDBReference struct {
	Type       string        `xml:"type,attr"`
	ID         string        `xml:"id,attr"`
	Properties []xmlProperty `xml:"property"`
}

type xmlMember struct {
	DBReference xmlDBReference `xml:"dbReference"`
}

type xmlEntry struct {
	XMLName    xml.Name      `xml:"entry"`
	ID         string        `xml:"id,attr"`
	Properties []xmlProperty `xml:"property"`
	RepMembers []xmlMember   `xml:"representativeMember"`
	Members    []xmlMember   `xml:"member"`
}

// Decompose parses one recovered record into node rows tagged with
// the cluster's group id.
//
// The entry accession and its common-taxon annotation form the base
// pair (positions 0 and 1). The representative member and every
// further member whose taxon is in the taxon set each contribute a
// gene/taxon node pair sharing the next position. Members with an
// incomplete dbReference block are silently skipped. The whole record
// is discarded unless at least one member pair beyond the base pair
// qualified (six rows or more).
//
// Malformed markup returns an error for this record only.
func Decompose(record string, taxa iotaxon.TaxonSet) ([]graph.NodeRow, error) {
	var entry xmlEntry
	if err := xml.Unmarshal([]byte(record), &entry); err != nil {
		return nil, fmt.Errorf("cannot parse record: %w", err)
	}

	// "UniRef100_Q6GZX4" -> similarity bin "UniRef100", group "Q6GZX4";
	// the group is the second segment only
	entryName := strings.ReplaceAll(entry.ID, "_", ":")
	parts := strings.SplitN(entryName, ":", 3)
	if len(parts) < 2 {
		return nil, fmt.Errorf("malformed entry id %q", entry.ID)
	}
	bin, grp := parts[0], parts[1]

	commonTaxon := ""
	for _, p := range entry.Properties {
		if p.Type == propCommonTaxon {
			commonTaxon = p.Value
			break
		}
	}
	if commonTaxon == "" {
		// No common-taxon annotation, nothing to anchor the motif.
		return nil, nil
	}

	rows := []graph.NodeRow{
		{
			Group:         grp,
			NodeNum:       graph.ClusterFamily,
			ID:            entryName,
			Name:          entryName,
			Category:      familyCategory,
			EquivalentIDs: entryName,
			SimilarityBin: bin,
		},
		{
			Group:         grp,
			NodeNum:       graph.ClusterTaxon,
			ID:            "NCBITaxon:" + commonTaxon,
			Name:          "NCBITaxon:" + commonTaxon,
			EquivalentIDs: "NCBITaxon:" + commonTaxon,
			SimilarityBin: bin,
		},
	}

	members := append(entry.RepMembers, entry.Members...)
	num := graph.ClusterRepMember
	for _, m := range members {
		pair, ok := memberPair(m, taxa, grp, bin, num)
		if !ok {
			continue
		}
		rows = append(rows, pair...)
		num++
	}

	// Base pair + representative pair + at least one member pair.
	if len(rows) < 6 {
		return nil, nil
	}
	return rows, nil
}

// memberPair builds the gene/taxon node pair for one cluster member.
// Both rows share the same motif position. Members missing any of the
// required properties, or whose taxon is outside the target set, are
// skipped.
func memberPair(
	m xmlMember, taxa iotaxon.TaxonSet, grp, bin string, num int,
) ([]graph.NodeRow, bool) {
	var accession, organism, taxon, proteinName string
	for _, p := range m.DBReference.Properties {
		switch p.Type {
		case propAccession:
			// Only the first accession counts.
			if accession == "" {
				accession = p.Value
			}
		case propOrganism:
			organism = p.Value
		case propTaxonomy:
			taxon = p.Value
		case propProteinName:
			proteinName = p.Value
		}
	}

	if !taxa.Has(taxon) {
		return nil, false
	}
	if accession == "" || organism == "" || proteinName == "" {
		return nil, false
	}

	uniprot := "UniProtKB:" + accession
	ncbiTaxon := "NCBITaxon:" + taxon

	return []graph.NodeRow{
		{
			Group:         grp,
			NodeNum:       num,
			ID:            uniprot,
			Name:          proteinName,
			Category:      geneCategory,
			EquivalentIDs: uniprot,
			SimilarityBin: bin,
		},
		{
			Group:         grp,
			NodeNum:       num,
			ID:            ncbiTaxon,
			Name:          organism,
			Category:      taxonCategory,
			EquivalentIDs: ncbiTaxon,
			SimilarityBin: bin,
		},
	}, true
}
