package retrieval

import (
	"context"
	"sync"

	"nestquest-be/pkg/store"
)

// requestScope is the shared state of one assembly run. Its main job is the
// single-flight property resolution: several branches need the same candidate
// property set and the store must only be asked once per request.
type requestScope struct {
	o   *Orchestrator
	req Request

	propOnce   sync.Once
	properties []store.Row
	propErr    error

	// resolveCalls counts store round-trips for the resolution query.
	// Exposed to tests only.
	resolveCalls int
}

func newRequestScope(o *Orchestrator, req Request) *requestScope {
	return &requestScope{o: o, req: req}
}

// resolveProperties returns the candidate listings for this request, querying
// the store at most once no matter how many branches ask. Name and location
// keywords become ILIKE predicates ORed together; with no keywords at all the
// top-rated listings stand in as candidates.
func (s *requestScope) resolveProperties(ctx context.Context) ([]store.Row, error) {
	s.propOnce.Do(func() {
		s.resolveCalls++
		s.properties, s.propErr = s.queryProperties(ctx)
	})
	return s.properties, s.propErr
}

// propertyIDs is resolveProperties reduced to the id column.
func (s *requestScope) propertyIDs(ctx context.Context) []int64 {
	rows, err := s.resolveProperties(ctx)
	if err != nil {
		return nil
	}
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		if id := r.Int("id"); id != 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *requestScope) queryProperties(ctx context.Context) ([]store.Row, error) {
	q := store.Query{
		Columns: []string{"id", "name", "address", "city", "state", "zip_code", "latitude", "longitude", "rating", "min_price", "max_price"},
		Limit:   maxPropertyCandidates,
	}

	kw := s.req.Keywords
	if kw.PropertyName != "" {
		q.Or = append(q.Or, store.Filter{Field: "name", Op: store.OpILike, Value: "%" + kw.PropertyName + "%"})
	}
	for _, word := range kw.PropertyNameWords {
		q.Or = append(q.Or, store.Filter{Field: "name", Op: store.OpILike, Value: "%" + word + "%"})
	}
	for _, loc := range kw.LocationTerms {
		q.Or = append(q.Or,
			store.Filter{Field: "address", Op: store.OpILike, Value: "%" + loc + "%"},
			store.Filter{Field: "city", Op: store.OpILike, Value: "%" + loc + "%"},
		)
	}

	if len(q.Or) == 0 {
		q.OrderBy = "rating"
		q.Desc = true
	}

	return s.o.querier.Select(ctx, "apartment_properties_listings", q)
}

// firstProperty returns the best resolved candidate, or nil.
func (s *requestScope) firstProperty(ctx context.Context) store.Row {
	rows, err := s.resolveProperties(ctx)
	if err != nil || len(rows) == 0 {
		return nil
	}
	return rows[0]
}
