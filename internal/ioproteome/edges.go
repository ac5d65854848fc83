package ioproteome

import (
	"log/slog"
	"strings"

	"github.com/beasleyjonm/ORION/pkg/graph"
)

const sourceDatabase = "UniProtKB GOA Viral proteomes"

// termRule maps an ontology-term category substring to the relation
// and direction of the term edge. Rules are evaluated in order; the
// first match wins.
type termRule struct {
	substr        string
	relation      string
	termIsSubject bool
}

var termRules = []termRule{
	{"molecular_activity", "enabled_by", true},
	{"biological_process", "actively_involved_in", false},
	{"cellular_component", "has_part", true},
}

// synthesizeEdges derives edges from rows ordered by group and by
// position within a group (a caller precondition). Every group is
// expected to hold exactly the gene/taxon/term triplet; other sizes
// are logged and processed best-effort, with missing positions
// leaving the corresponding id empty.
//
// The gene-to-taxon edge is always emitted. The term edge's relation
// and direction come from the ordered rule table; a term category
// matching no rule drops the term edge only.
//
// Edges are deduplicated by their serialized form; first occurrence
// order is preserved.
func synthesizeEdges(rows []graph.NodeRow) []string {
	var res []string
	seen := make(map[string]struct{})

	add := func(e graph.EdgeRecord) {
		line := e.Line()
		if _, ok := seen[line]; ok {
			return
		}
		seen[line] = struct{}{}
		res = append(res, line)
	}

	i := 0
	for i < len(rows) {
		group := rows[i].Group
		var geneID, taxonID, termID, termCategory string
		size := 0

		for i < len(rows) && rows[i].Group == group {
			switch rows[i].NodeNum {
			case graph.TripletGene:
				geneID = rows[i].ID
			case graph.TripletTaxon:
				taxonID = rows[i].ID
			case graph.TripletTerm:
				termID = rows[i].ID
				termCategory = rows[i].Category
			}
			size++
			i++
		}

		if size != 3 {
			slog.Warn("Mis-matched node grouping",
				"group", group, "rows", size)
		}

		add(graph.EdgeRecord{
			Subject:  geneID,
			Relation: "in_taxon",
			Label:    "in_taxon",
			Object:   taxonID,
			Source:   sourceDatabase,
		})

		rule, ok := matchTermRule(termCategory)
		if !ok {
			slog.Warn("Unrecognized term category", "term", termID)
			continue
		}
		subject, object := geneID, termID
		if rule.termIsSubject {
			subject, object = termID, geneID
		}
		add(graph.EdgeRecord{
			Subject:  subject,
			Relation: rule.relation,
			Label:    rule.relation,
			Object:   object,
			Source:   sourceDatabase,
		})
	}

	return res
}

func matchTermRule(category string) (termRule, bool) {
	for _, rule := range termRules {
		if strings.Contains(category, rule.substr) {
			return rule, true
		}
	}
	return termRule{}, false
}
