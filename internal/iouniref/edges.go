package iouniref

import (
	"github.com/beasleyjonm/ORION/pkg/graph"
)

// synthesizeEdges walks node rows ordered by group and position and
// writes the cluster-similarity edge motif:
//
//	(family)-[in_taxon]->(common taxon)
//	(member)-[part_of]->(family)           for every member pair
//	(member)-[in_taxon]->(member taxon)    for every member pair
//	(rep)-[<similarity bin>/similar_to]->(member)
//	                                       for every non-representative
//
// Edges are written immediately, each line prefixed by its content
// id; the id is deterministic, so reprocessing the same rows emits
// identical lines. The caller guarantees row ordering; group
// boundaries are detected by comparing consecutive group ids.
func synthesizeEdges(rows []graph.NodeRow, w *graph.Writer) error {
	i := 0
	for i < len(rows) {
		group := rows[i].Group
		var familyID, repID, bin string

		for i < len(rows) && rows[i].Group == group {
			switch rows[i].NodeNum {
			case graph.ClusterFamily:
				familyID = rows[i].ID
				bin = rows[i].SimilarityBin
				i++
			case graph.ClusterTaxon:
				err := w.WriteEdge(graph.EdgeRecord{
					Subject:  familyID,
					Relation: "in_taxon",
					Label:    "in_taxon",
					Object:   rows[i].ID,
				})
				if err != nil {
					return err
				}
				i++
			default:
				member := rows[i]
				if member.NodeNum == graph.ClusterRepMember {
					repID = member.ID
				}

				err := w.WriteEdge(graph.EdgeRecord{
					Subject:  member.ID,
					Relation: "part_of",
					Label:    "part_of",
					Object:   familyID,
				})
				if err != nil {
					return err
				}

				// The taxon node of the pair follows the member node.
				if i+1 < len(rows) {
					err = w.WriteEdge(graph.EdgeRecord{
						Subject:  member.ID,
						Relation: "in_taxon",
						Label:    "in_taxon",
						Object:   rows[i+1].ID,
					})
					if err != nil {
						return err
					}
				}

				// The representative links to every other member,
				// scoped to the cluster's similarity threshold. It
				// never links to itself.
				if repID != member.ID {
					err = w.WriteEdge(graph.EdgeRecord{
						Subject:  repID,
						Relation: bin,
						Label:    "similar_to",
						Object:   member.ID,
					})
					if err != nil {
						return err
					}
				}
				i += 2
			}
		}
	}
	return nil
}
