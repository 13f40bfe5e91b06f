package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"nestquest-be/pkg/assistant/intent"
	"nestquest-be/pkg/geo"
	"nestquest-be/pkg/store"
)

// branch is one retrieval domain: a predicate over the intent flags and a
// query that renders its fragment of the context block.
type branch struct {
	name  string
	needs func(intent.Flags) bool
	run   func(ctx context.Context, s *requestScope) (string, error)
}

// registry lists every branch in fragment order. Order matters only for the
// layout of the assembled block, not for execution.
func registry() []branch {
	return []branch{
		{
			name:  "properties",
			needs: func(f intent.Flags) bool { return f.Property || f.Price || f.Photo },
			run:   runProperties,
		},
		{
			name:  "units",
			needs: func(f intent.Flags) bool { return f.Unit || f.Availability || f.Price },
			run:   runUnits,
		},
		{
			name:  "reviews",
			needs: func(f intent.Flags) bool { return f.Review },
			run:   runReviews,
		},
		{
			name:  "photos",
			needs: func(f intent.Flags) bool { return f.Photo },
			run:   runPhotos,
		},
		{
			name:  "safety",
			needs: func(f intent.Flags) bool { return f.Safety },
			run:   runSafety,
		},
		{
			name:  "attractions",
			needs: func(f intent.Flags) bool { return f.Attraction },
			run:   runAttractions,
		},
		{
			name:  "commute",
			needs: func(f intent.Flags) bool { return f.Commute },
			run:   runCommute,
		},
		{
			name:  "transit_routes",
			needs: func(f intent.Flags) bool { return f.TransitRoute },
			run:   runTransitRoutes,
		},
		{
			name:  "rental_estimate",
			needs: func(f intent.Flags) bool { return f.RentalEstimate },
			run:   runRentalEstimate,
		},
		{
			name:  "roommates",
			needs: func(f intent.Flags) bool { return f.Roommate },
			run:   runRoommates,
		},
		{
			name:  "favorites",
			needs: func(f intent.Flags) bool { return f.Favorite },
			run:   runFavorites,
		},
		{
			name:  "notifications",
			needs: func(f intent.Flags) bool { return f.Notification },
			run:   runNotifications,
		},
		{
			name:  "community",
			needs: func(f intent.Flags) bool { return f.Community },
			run:   runCommunity,
		},
		{
			name:  "rooms",
			needs: func(f intent.Flags) bool { return f.Room },
			run:   runRooms,
		},
		{
			name:  "settings",
			needs: func(f intent.Flags) bool { return f.Setting },
			run:   runSettings,
		},
		{
			name:  "reports",
			needs: func(f intent.Flags) bool { return f.Report },
			run:   runReports,
		},
	}
}

func runProperties(ctx context.Context, s *requestScope) (string, error) {
	rows, err := s.resolveProperties(ctx)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		if len(lines) >= defaultBranchLimit {
			break
		}
		line := fmt.Sprintf("- %s, %s, %s", r.Str("name"), r.Str("address"), r.Str("city"))
		if rating := r.Float("rating"); rating > 0 {
			line += fmt.Sprintf(" (rated %.1f/5)", rating)
		}
		if lo, hi := r.Float("min_price"), r.Float("max_price"); lo > 0 && hi > 0 {
			line += fmt.Sprintf(", $%.0f-$%.0f/mo", lo, hi)
		}
		lines = append(lines, line)
	}
	return section("MATCHING PROPERTIES", lines), nil
}

func runUnits(ctx context.Context, s *requestScope) (string, error) {
	q := store.Query{
		Filters: []store.Filter{{Field: "is_available", Op: store.OpEq, Value: true}},
		OrderBy: "rent",
		Limit:   defaultBranchLimit,
	}
	if ids := s.propertyIDs(ctx); len(ids) > 0 {
		q.Filters = append(q.Filters, store.Filter{Field: "property_id", Op: store.OpIn, Value: ids})
	}

	rows, err := s.o.querier.Select(ctx, "apartment_units", q)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		line := fmt.Sprintf("- Unit %s: %d bed / %d bath, %d sqft, $%.0f/mo",
			r.Str("unit_number"), r.Int("bedrooms"), r.Int("bathrooms"), r.Int("sqft"), r.Float("rent"))
		if from := r.Str("available_from"); from != "" {
			line += ", available from " + from
		}
		lines = append(lines, line)
	}
	return section("AVAILABLE UNITS", lines), nil
}

func runReviews(ctx context.Context, s *requestScope) (string, error) {
	q := store.Query{
		OrderBy: "created_at",
		Desc:    true,
		Limit:   defaultBranchLimit,
	}
	if ids := s.propertyIDs(ctx); len(ids) > 0 {
		q.Filters = append(q.Filters, store.Filter{Field: "property_id", Op: store.OpIn, Value: ids})
	}

	rows, err := s.o.querier.Select(ctx, "property_reviews", q)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(rows))
	var sum float64
	for _, r := range rows {
		sum += r.Float("rating")
		lines = append(lines, fmt.Sprintf("- %.0f/5: %s", r.Float("rating"), clip(r.Str("comment"), 120)))
	}
	if len(lines) > 0 {
		avg := fmt.Sprintf("Average rating across %d recent reviews: %.1f/5", len(rows), sum/float64(len(rows)))
		lines = append([]string{avg}, lines...)
	}
	return section("RESIDENT REVIEWS", lines), nil
}

func runPhotos(ctx context.Context, s *requestScope) (string, error) {
	ids := s.propertyIDs(ctx)
	if len(ids) == 0 {
		return "", nil
	}

	rows, err := s.o.querier.Select(ctx, "property_photos", store.Query{
		Filters: []store.Filter{{Field: "property_id", Op: store.OpIn, Value: ids}},
		Limit:   defaultBranchLimit,
	})
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		caption := r.Str("caption")
		if caption == "" {
			caption = "photo"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", caption, r.Str("url")))
	}
	return section("PROPERTY PHOTOS", lines), nil
}

func runSafety(ctx context.Context, s *requestScope) (string, error) {
	rows, err := s.o.querier.Select(ctx, "safety_incidents", store.Query{
		OrderBy: "occurred_at",
		Desc:    true,
		Limit:   30,
	})
	if err != nil {
		return "", err
	}

	// With a resolved property, keep only incidents within two miles of it.
	anchor := s.firstProperty(ctx)
	lines := make([]string, 0, defaultBranchLimit)
	for _, r := range rows {
		if len(lines) >= defaultBranchLimit {
			break
		}
		line := fmt.Sprintf("- %s (%s severity): %s", r.Str("incident_type"), r.Str("severity"), clip(r.Str("description"), 100))
		if anchor != nil && anchor.Has("latitude") && r.Has("latitude") {
			miles := geo.Haversine(anchor.Float("latitude"), anchor.Float("longitude"), r.Float("latitude"), r.Float("longitude"))
			if miles > 2.0 {
				continue
			}
			line += fmt.Sprintf(", %s from %s", geo.FormatDistance(miles), anchor.Str("name"))
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = append(lines, "No recent incidents on record for this area.")
	}
	return section("SAFETY INCIDENTS", lines), nil
}

func runAttractions(ctx context.Context, s *requestScope) (string, error) {
	rows, err := s.o.querier.Select(ctx, "local_attractions", store.Query{Limit: 100})
	if err != nil {
		return "", err
	}

	anchor := s.firstProperty(ctx)
	if anchor != nil && anchor.Has("latitude") {
		rows = nearestRows(rows, anchor.Float("latitude"), anchor.Float("longitude"), topNearest)
	} else if len(rows) > topNearest {
		rows = rows[:topNearest]
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		line := fmt.Sprintf("- %s (%s)", r.Str("name"), r.Str("category"))
		if anchor != nil && anchor.Has("latitude") && r.Has("latitude") {
			miles := geo.Haversine(anchor.Float("latitude"), anchor.Float("longitude"), r.Float("latitude"), r.Float("longitude"))
			line += fmt.Sprintf(", %s away, ~%d min walk", geo.FormatDistance(miles), geo.EstimateTravelMinutes(miles, geo.ModeWalk))
		}
		lines = append(lines, line)
	}
	return section("NEARBY ATTRACTIONS", lines), nil
}

func runCommute(ctx context.Context, s *requestScope) (string, error) {
	anchor := s.firstProperty(ctx)
	if anchor == nil || !anchor.Has("latitude") {
		return "", nil
	}

	rows, err := s.o.querier.Select(ctx, "transit_stops", store.Query{Limit: 100})
	if err != nil {
		return "", err
	}
	rows = nearestRows(rows, anchor.Float("latitude"), anchor.Float("longitude"), topNearest)

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		miles := geo.Haversine(anchor.Float("latitude"), anchor.Float("longitude"), r.Float("latitude"), r.Float("longitude"))
		lines = append(lines, fmt.Sprintf("- %s (%s): %s from %s, ~%d min walk, ~%d min transit ride downtown",
			r.Str("name"), r.Str("stop_type"), geo.FormatDistance(miles), anchor.Str("name"),
			geo.EstimateTravelMinutes(miles, geo.ModeWalk), geo.EstimateTravelMinutes(miles+3.0, geo.ModeTransit)))
	}
	return section("COMMUTE OPTIONS", lines), nil
}

func runTransitRoutes(ctx context.Context, s *requestScope) (string, error) {
	rows, err := s.o.querier.Select(ctx, "transit_routes", store.Query{Limit: defaultBranchLimit})
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("- %s (%s): %s", r.Str("route_name"), r.Str("route_type"), clip(r.Str("description"), 100)))
	}
	return section("TRANSIT ROUTES", lines), nil
}

func runRentalEstimate(ctx context.Context, s *requestScope) (string, error) {
	q := store.Query{
		Filters: []store.Filter{{Field: "is_available", Op: store.OpEq, Value: true}},
		Limit:   200,
	}
	if ids := s.propertyIDs(ctx); len(ids) > 0 {
		q.Filters = append(q.Filters, store.Filter{Field: "property_id", Op: store.OpIn, Value: ids})
	}

	rows, err := s.o.querier.Select(ctx, "apartment_units", q)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}

	// Aggregate the current market rate per bedroom count.
	type bucket struct {
		sum   float64
		count int
	}
	byBeds := map[int64]*bucket{}
	for _, r := range rows {
		beds := r.Int("bedrooms")
		if byBeds[beds] == nil {
			byBeds[beds] = &bucket{}
		}
		byBeds[beds].sum += r.Float("rent")
		byBeds[beds].count++
	}

	beds := make([]int64, 0, len(byBeds))
	for b := range byBeds {
		beds = append(beds, b)
	}
	sort.Slice(beds, func(i, j int) bool { return beds[i] < beds[j] })

	lines := make([]string, 0, len(beds))
	for _, b := range beds {
		agg := byBeds[b]
		label := fmt.Sprintf("%d-bedroom", b)
		if b == 0 {
			label = "Studio"
		}
		lines = append(lines, fmt.Sprintf("- %s: average $%.0f/mo across %d listed units", label, agg.sum/float64(agg.count), agg.count))
	}
	return section("CURRENT MARKET RATES", lines), nil
}

func runRoommates(ctx context.Context, s *requestScope) (string, error) {
	if s.o.matcher == nil || s.req.UserId == 0 {
		return "", nil
	}

	matches, err := s.o.matcher.FindMatches(ctx, s.req.UserId, topNearest)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		line := fmt.Sprintf("- %s: %.0f%% compatible", m.Name, m.CompatibilityScore*100)
		if len(m.Preferences) > 0 {
			prefs := make([]string, 0, len(m.Preferences))
			for k, v := range m.Preferences {
				prefs = append(prefs, k+"="+v)
			}
			sort.Strings(prefs)
			line += " (" + strings.Join(prefs, ", ") + ")"
		}
		lines = append(lines, line)
	}
	return section("ROOMMATE MATCHES", lines), nil
}

func runFavorites(ctx context.Context, s *requestScope) (string, error) {
	if s.req.UserId == 0 {
		return "", nil
	}

	favs, err := s.o.querier.Select(ctx, "user_favorites", store.Query{
		Filters: []store.Filter{{Field: "user_id", Op: store.OpEq, Value: s.req.UserId}},
		Limit:   defaultBranchLimit,
	})
	if err != nil {
		return "", err
	}
	if len(favs) == 0 {
		return section("SAVED FAVORITES", []string{"No saved properties yet."}), nil
	}

	ids := make([]int64, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.Int("property_id"))
	}
	props, err := s.o.querier.Select(ctx, "apartment_properties_listings", store.Query{
		Filters: []store.Filter{{Field: "id", Op: store.OpIn, Value: ids}},
		Limit:   defaultBranchLimit,
	})
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(props))
	for _, p := range props {
		lines = append(lines, fmt.Sprintf("- %s, %s", p.Str("name"), p.Str("city")))
	}
	return section("SAVED FAVORITES", lines), nil
}

func runNotifications(ctx context.Context, s *requestScope) (string, error) {
	if s.req.UserId == 0 {
		return "", nil
	}

	rows, err := s.o.querier.Select(ctx, "user_notifications", store.Query{
		Filters: []store.Filter{
			{Field: "user_id", Op: store.OpEq, Value: s.req.UserId},
			{Field: "is_read", Op: store.OpEq, Value: false},
		},
		OrderBy: "created_at",
		Desc:    true,
		Limit:   defaultBranchLimit,
	})
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, "- "+clip(r.Str("message"), 120))
	}
	return section("UNREAD NOTIFICATIONS", lines), nil
}

func runCommunity(ctx context.Context, s *requestScope) (string, error) {
	rows, err := s.o.querier.Select(ctx, "community_posts", store.Query{
		OrderBy: "created_at",
		Desc:    true,
		Limit:   defaultBranchLimit,
	})
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("- %s: %s", r.Str("title"), clip(r.Str("content"), 100)))
	}
	return section("COMMUNITY DISCUSSION", lines), nil
}

func runRooms(ctx context.Context, s *requestScope) (string, error) {
	rows, err := s.o.querier.Select(ctx, "room_listings", store.Query{
		OrderBy: "created_at",
		Desc:    true,
		Limit:   defaultBranchLimit,
	})
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		line := fmt.Sprintf("- %s, $%.0f/mo, %s", r.Str("title"), r.Float("rent"), r.Str("city"))
		if from := r.Str("available_from"); from != "" {
			line += ", from " + from
		}
		lines = append(lines, line)
	}
	return section("ROOMS FOR RENT", lines), nil
}

func runSettings(ctx context.Context, s *requestScope) (string, error) {
	if s.req.UserId == 0 {
		return "", nil
	}

	rows, err := s.o.querier.Select(ctx, "user_preferences", store.Query{
		Filters: []store.Filter{{Field: "user_id", Op: store.OpEq, Value: s.req.UserId}},
		Limit:   1,
	})
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return section("SEARCH SETTINGS", []string{"No saved search preferences."}), nil
	}
	return section("SEARCH SETTINGS", preferenceLines(rows[0])), nil
}

func runReports(ctx context.Context, s *requestScope) (string, error) {
	if s.req.UserId == 0 {
		return "", nil
	}

	rows, err := s.o.querier.Select(ctx, "user_reports", store.Query{
		Filters: []store.Filter{{Field: "user_id", Op: store.OpEq, Value: s.req.UserId}},
		OrderBy: "created_at",
		Desc:    true,
		Limit:   defaultBranchLimit,
	})
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("- %s (%s)", r.Str("subject"), r.Str("status")))
	}
	return section("YOUR OPEN REPORTS", lines), nil
}

// nearestRows sorts rows by haversine distance from the anchor and keeps the
// closest k. Rows without coordinates sort last.
func nearestRows(rows []store.Row, lat, lng float64, k int) []store.Row {
	sorted := make([]store.Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rowDistance(sorted[i], lat, lng) < rowDistance(sorted[j], lat, lng)
	})
	if len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}

func rowDistance(r store.Row, lat, lng float64) float64 {
	if !r.Has("latitude") || !r.Has("longitude") {
		return 1e9
	}
	return geo.Haversine(lat, lng, r.Float("latitude"), r.Float("longitude"))
}
