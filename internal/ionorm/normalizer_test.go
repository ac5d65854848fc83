package ionorm

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/beasleyjonm/ORION/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anyRow(graph.NodeRow) bool { return true }

// normHandler answers the bulk lookup with a canned JSON body per
// queried identifier. Unknown identifiers come back as null, the way
// the live service answers them.
func normHandler(known map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		curies := r.URL.Query()["curie"]
		parts := make([]string, 0, len(curies))
		for _, c := range curies {
			body, ok := known[c]
			if !ok {
				body = "null"
			}
			parts = append(parts, fmt.Sprintf("%q: %s", c, body))
		}
		fmt.Fprintf(w, "{%s}", strings.Join(parts, ", "))
	}
}

const taxonResult = `{
  "id": {"identifier": "NCBITaxon:2697049", "label": "SARS-CoV-2"},
  "type": ["biolink:OrganismTaxon"],
  "equivalent_identifiers": [
    {"identifier": "NCBITaxon:2697049"},
    {"identifier": "MESH:D000086402"}
  ]
}`

func TestNormalizeRewritesRows(t *testing.T) {
	srv := httptest.NewServer(normHandler(map[string]string{
		"NCBITaxon:2697049": taxonResult,
	}))
	defer srv.Close()

	rows := []graph.NodeRow{
		{Group: "g", NodeNum: 1, ID: "NCBITaxon:2697049"},
		{Group: "g", NodeNum: 2, ID: "MISSING:1", Name: "keep me"},
	}

	norm := New(srv.URL, 10)
	cache := NewCache()
	norm.Normalize(rows, cache, anyRow)

	assert.Equal(t, "NCBITaxon:2697049", rows[0].ID)
	assert.Equal(t, "SARS-CoV-2", rows[0].Name)
	assert.Equal(t, "biolink:OrganismTaxon", rows[0].Category)
	assert.Equal(t,
		"NCBITaxon:2697049|MESH:D000086402", rows[0].EquivalentIDs)

	// unmatched identifiers stay untouched but are cached as absent
	assert.Equal(t, "MISSING:1", rows[1].ID)
	assert.Equal(t, "keep me", rows[1].Name)
	res, ok := cache.Get("MISSING:1")
	assert.True(t, ok)
	assert.Nil(t, res)
}

func TestNormalizeCanonicalIDRewrite(t *testing.T) {
	// the queried identifier is an equivalent one; every field comes
	// from the lookup of the original id, and the id itself is
	// replaced last
	srv := httptest.NewServer(normHandler(map[string]string{
		"MESH:D000086402": taxonResult,
	}))
	defer srv.Close()

	rows := []graph.NodeRow{{ID: "MESH:D000086402"}}
	norm := New(srv.URL, 10)
	norm.Normalize(rows, NewCache(), anyRow)

	assert.Equal(t, "NCBITaxon:2697049", rows[0].ID)
	assert.Equal(t, "SARS-CoV-2", rows[0].Name)
	assert.Equal(t, "biolink:OrganismTaxon", rows[0].Category)
}

func TestNormalizeUsesCacheAcrossBatches(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			normHandler(map[string]string{
				"NCBITaxon:2697049": taxonResult,
			})(w, r)
		}))
	defer srv.Close()

	norm := New(srv.URL, 10)
	cache := NewCache()

	batch1 := []graph.NodeRow{{ID: "NCBITaxon:2697049"}, {ID: "MISSING:1"}}
	norm.Normalize(batch1, cache, anyRow)
	require.Equal(t, int32(1), calls.Load())

	// both hit and miss outcomes are cached; no second request
	batch2 := []graph.NodeRow{{ID: "NCBITaxon:2697049"}, {ID: "MISSING:1"}}
	norm.Normalize(batch2, cache, anyRow)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "SARS-CoV-2", batch2[0].Name)
}

func TestNormalizeServerErrorMarksChunkAbsent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
	defer srv.Close()

	norm := New(srv.URL, 10)
	cache := NewCache()

	rows := []graph.NodeRow{
		{ID: "GO:0003723", Name: "orig"},
		{ID: "NCBITaxon:10239"},
	}
	norm.Normalize(rows, cache, anyRow)

	assert.Equal(t, "orig", rows[0].Name)
	assert.Equal(t, 2, cache.Len(), "whole chunk cached as absent")

	// absent is sticky: the failed identifiers are not retried
	norm.Normalize(rows, cache, anyRow)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNormalizeChunking(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			assert.LessOrEqual(t, len(r.URL.Query()["curie"]), 2)
			normHandler(nil)(w, r)
		}))
	defer srv.Close()

	norm := New(srv.URL, 2)
	cache := NewCache()

	rows := make([]graph.NodeRow, 5)
	for i := range rows {
		rows[i] = graph.NodeRow{ID: fmt.Sprintf("X:%d", i)}
	}
	norm.Normalize(rows, cache, anyRow)

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 5, cache.Len())
}

func TestNormalizeEligiblePredicate(t *testing.T) {
	srv := httptest.NewServer(normHandler(map[string]string{
		"NCBITaxon:2697049": taxonResult,
	}))
	defer srv.Close()

	norm := New(srv.URL, 10)
	cache := NewCache()

	rows := []graph.NodeRow{
		{NodeNum: graph.TripletGene, ID: "NCBITaxon:2697049"},
		{NodeNum: graph.TripletTaxon, ID: "NCBITaxon:2697049"},
	}
	onlyTaxa := func(r graph.NodeRow) bool {
		return r.NodeNum == graph.TripletTaxon
	}
	norm.Normalize(rows, cache, onlyTaxa)

	assert.Empty(t, rows[0].Name, "ineligible row stays untouched")
	assert.Equal(t, "SARS-CoV-2", rows[1].Name)
}

func TestCacheMarkers(t *testing.T) {
	cache := NewCache()
	assert.False(t, cache.Has("A:1"))

	cache.MarkAbsent([]string{"A:1", "A:2"})
	assert.True(t, cache.Has("A:1"))
	res, ok := cache.Get("A:1")
	assert.True(t, ok)
	assert.Nil(t, res)

	r := &Result{}
	r.ID.Identifier = "A:3"
	cache.Set("A:3", r)
	got, ok := cache.Get("A:3")
	require.True(t, ok)
	assert.Equal(t, "A:3", got.ID.Identifier)
	assert.Equal(t, 3, cache.Len())
}
