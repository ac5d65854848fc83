// Package ioproteome converts UniProtKB GOA annotation tables into
// KGX node and edge tables using the gene/taxon/term triplet motif.
package ioproteome

import (
	"bufio"
	"io"
	"strings"

	"github.com/beasleyjonm/ORION/pkg/graph"
)

// GOA annotation columns
const (
	colDB           = 0
	colDBObjectID   = 1
	colObjectSymbol = 2
	colGOID         = 4
	colTaxon        = 12
)

const geneCategory = "gene|gene_or_gene_product|macromolecular_machine|" +
	"genomic_entity|molecular_entity|biological_entity|named_thing"

// parseAnnotations reads one GOA file and emits a triplet of node
// rows per annotation line: the gene (constructed by hand, the
// normalizer does not know these identifiers), the organism taxon and
// the ontology term (both left empty for the normalizer to fill).
// Lines starting with "!" are comments. Lines too short to carry a
// taxon column are skipped.
func parseAnnotations(r io.Reader) ([]graph.NodeRow, error) {
	var res []graph.NodeRow

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "!") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) <= colTaxon {
			continue
		}

		objID := fields[colDBObjectID]
		goID := fields[colGOID]
		taxon := fields[colTaxon]

		// The join key ties the three rows of one annotation together.
		grp := objID + goID + taxon

		geneID := fields[colDB] + ":" + objID
		res = append(res, graph.NodeRow{
			Group:         grp,
			NodeNum:       graph.TripletGene,
			ID:            geneID,
			Name:          fields[colObjectSymbol],
			Category:      geneCategory,
			EquivalentIDs: geneID,
		})

		res = append(res, graph.NodeRow{
			Group:   grp,
			NodeNum: graph.TripletTaxon,
			ID:      "NCBITaxon:" + strings.TrimPrefix(taxon, "taxon:"),
		})

		res = append(res, graph.NodeRow{
			Group:   grp,
			NodeNum: graph.TripletTerm,
			ID:      goID,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// dedupeRows removes exact duplicate rows (all fields equal),
// preserving first occurrence.
func dedupeRows(rows []graph.NodeRow) []graph.NodeRow {
	seen := make(map[graph.NodeRow]struct{}, len(rows))
	res := rows[:0]
	for _, row := range rows {
		if _, ok := seen[row]; ok {
			continue
		}
		seen[row] = struct{}{}
		res = append(res, row)
	}
	return res
}
