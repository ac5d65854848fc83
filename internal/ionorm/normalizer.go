package ionorm

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/beasleyjonm/ORION/pkg/graph"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
)

// Eligible decides whether a row's identifier should be sent to the
// normalization service. Each loader supplies its own predicate.
type Eligible func(row graph.NodeRow) bool

// Normalizer performs bulk identity normalization over batches of
// node rows. Lookups are synchronous, one request in flight at a time.
type Normalizer struct {
	baseURL string
	chunk   int
	client  *http.Client
}

// New creates a Normalizer for the given endpoint. chunkSize bounds
// the number of identifiers per request to respect the service's
// request-size limits; non-positive values fall back to 1000.
func New(baseURL string, chunkSize int) *Normalizer {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	return &Normalizer{
		baseURL: baseURL,
		chunk:   chunkSize,
		client:  http.DefaultClient,
	}
}

// Normalize rewrites eligible rows in place with canonical
// identifiers, names, categories and equivalent identifiers.
//
// Identifiers already present in the cache are not re-queried,
// whether their earlier lookup succeeded or not. A non-success
// response marks every identifier of that chunk as absent; "absent"
// is sticky for the cache's lifetime and those rows stay untouched.
func (n *Normalizer) Normalize(
	rows []graph.NodeRow, cache *Cache, eligible Eligible,
) {
	// Collect identifiers that still need a lookup.
	pending := make(map[string]struct{})
	for i := range rows {
		if !eligible(rows[i]) {
			continue
		}
		if !cache.Has(rows[i].ID) {
			pending[rows[i].ID] = struct{}{}
		}
	}

	candidates := make([]string, 0, len(pending))
	for id := range pending {
		candidates = append(candidates, id)
	}

	slog.Debug("Normalizing unique identifiers",
		"count", humanize.Comma(int64(len(candidates))))

	for start := 0; start < len(candidates); start += n.chunk {
		end := start + n.chunk
		if end > len(candidates) {
			end = len(candidates)
		}
		n.lookupChunk(candidates[start:end], cache)
	}

	// Rewrite the rows. The field order matters: ID is rewritten
	// last because the earlier writes key off the original ID.
	for i := range rows {
		if !eligible(rows[i]) {
			continue
		}
		res, ok := cache.Get(rows[i].ID)
		if !ok || res == nil {
			slog.Debug("No normalized value", "id", rows[i].ID)
			continue
		}
		if res.ID.Label != "" {
			rows[i].Name = res.ID.Label
		}
		if len(res.Type) > 0 {
			rows[i].Category = strings.Join(res.Type, "|")
		}
		if len(res.EquivalentIdentifiers) > 0 {
			ids := make([]string, len(res.EquivalentIdentifiers))
			for j, eq := range res.EquivalentIdentifiers {
				ids[j] = eq.Identifier
			}
			rows[i].EquivalentIDs = strings.Join(ids, "|")
		}
		rows[i].ID = res.ID.Identifier
	}
}

// lookupChunk issues one batched request and merges the outcome into
// the cache. Any failure - transport error, non-200 status, undecodable
// body - marks the whole chunk absent so it is never retried this run.
// A partial per-item failure is not distinguishable from a whole-chunk
// failure.
func (n *Normalizer) lookupChunk(ids []string, cache *Cache) {
	slog.Debug("Normalization request", "chunk_size", len(ids))

	resp, err := n.client.Get(n.requestURL(ids))
	if err != nil {
		slog.Warn("Normalization request failed",
			"error", err, "chunk_size", len(ids))
		cache.MarkAbsent(ids)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("Normalization response not OK",
			"status", resp.StatusCode, "chunk_size", len(ids))
		cache.MarkAbsent(ids)
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("Cannot read normalization response", "error", err)
		cache.MarkAbsent(ids)
		return
	}

	enc := gnfmt.GNjson{}
	results := make(map[string]*Result)
	if err = enc.Decode(body, &results); err != nil {
		slog.Warn("Cannot decode normalization response", "error", err)
		cache.MarkAbsent(ids)
		return
	}

	// The service answers every queried identifier, with null for
	// unmatched ones; a null decodes to the absent marker. Anything
	// the response omits is treated as absent as well.
	for key, res := range results {
		cache.Set(key, res)
	}
	for _, id := range ids {
		if !cache.Has(id) {
			cache.Set(id, nil)
		}
	}
}

// requestURL builds the bulk lookup URL with identifiers as repeated
// "curie" query parameters.
func (n *Normalizer) requestURL(ids []string) string {
	v := url.Values{}
	for _, id := range ids {
		v.Add("curie", id)
	}
	return fmt.Sprintf("%s?%s", n.baseURL, v.Encode())
}
