// Package intent maps raw user text to the topic flags and keyword groups
// that drive the retrieval fan-out. The classifier is a deliberate heuristic:
// substring and regex matches over precompiled tables, tuned for recall.
// False positives are cheap because every downstream branch tolerates empty
// results.
package intent

import (
	"regexp"
	"strings"
)

// Flags is the fixed record of topic signals derived from one message.
type Flags struct {
	Safety         bool
	Property       bool
	Review         bool
	Commute        bool
	Attraction     bool
	Roommate       bool
	Favorite       bool
	Notification   bool
	Unit           bool
	Price          bool
	Availability   bool
	Community      bool
	Room           bool
	Photo          bool
	Setting        bool
	Report         bool
	TransitRoute   bool
	RentalEstimate bool
}

// Any reports whether at least one flag fired.
func (f Flags) Any() bool {
	return f != Flags{}
}

var (
	reCrimeNearby  = regexp.MustCompile(`(crime|incident)s?\s+(near|around|in)`)
	reTransitRoute = regexp.MustCompile(`(bus|train|rail|metro)\s*(route|line|schedule)`)
	reHowMuchRent  = regexp.MustCompile(`how\s+much\s+(is|does|would|to)\s+.*(rent|cost)`)
	reWorthRent    = regexp.MustCompile(`(fair|worth|reasonable)\s+(price|rent)`)
)

// topicTerms are plain substring matches per flag.
var topicTerms = map[string][]string{
	"safety":       {"safe", "safety", "crime", "dangerous", "security", "incident", "theft", "burglary"},
	"property":     {"property", "properties", "apartment", "building", "complex", "listing", "housing"},
	"review":       {"review", "rating", "rated", "stars", "experience living", "what do people say", "what do residents"},
	"commute":      {"commute", "how far", "distance", "how long to get", "minutes from", "travel time", "drive to", "walk to"},
	"attraction":   {"nearby", "close by", "restaurant", "coffee", "grocery", "gym", "park", "attraction", "things to do", "around the"},
	"roommate":     {"roommate", "room mate", "flatmate", "compatibility", "match me"},
	"favorite":     {"favorite", "favourite", "saved", "bookmarked", "my list", "shortlist"},
	"notification": {"notification", "alert", "remind", "updates for me", "any news"},
	"unit":         {"unit", "floor plan", "floorplan", "bedroom", "bathroom", "square feet", "sqft", "studio"},
	"price":        {"price", "cost", "rent", "expensive", "cheap", "afford", "budget", "fee", "deposit"},
	"availability": {"available", "availability", "vacant", "vacancy", "move in", "move-in", "lease start", "when can i"},
	"community":    {"community", "forum", "post", "discussion", "neighbors", "what are people saying"},
	"room":         {"room for rent", "private room", "shared room", "sublet", "sublease", "spare room"},
	"photo":        {"photo", "picture", "image", "what does it look like", "show me"},
	"setting":      {"my settings", "my preferences", "my profile", "preference", "priorities", "search weights"},
	"report":       {"report", "complaint", "issue with", "broken", "maintenance"},
	"rental":       {"rental estimate", "estimate", "market rate", "market value", "comparable", "comps"},
}

// Detect classifies a message into topic flags. Each flag is an OR over its
// term list plus any compound rules; adding a matching term can only turn a
// flag on, never off.
func Detect(text string) Flags {
	lower := strings.ToLower(text)

	f := Flags{
		Safety:         matchAny(lower, topicTerms["safety"]) || reCrimeNearby.MatchString(lower),
		Property:       matchAny(lower, topicTerms["property"]),
		Review:         matchAny(lower, topicTerms["review"]),
		Commute:        matchAny(lower, topicTerms["commute"]),
		Attraction:     matchAny(lower, topicTerms["attraction"]),
		Favorite:       matchAny(lower, topicTerms["favorite"]),
		Notification:   matchAny(lower, topicTerms["notification"]),
		Unit:           matchAny(lower, topicTerms["unit"]),
		Price:          matchAny(lower, topicTerms["price"]),
		Availability:   matchAny(lower, topicTerms["availability"]),
		Community:      matchAny(lower, topicTerms["community"]),
		Room:           matchAny(lower, topicTerms["room"]),
		Photo:          matchAny(lower, topicTerms["photo"]),
		Setting:        matchAny(lower, topicTerms["setting"]),
		Report:         matchAny(lower, topicTerms["report"]),
		TransitRoute:   reTransitRoute.MatchString(lower) || strings.Contains(lower, "transit") || strings.Contains(lower, "public transport"),
		RentalEstimate: matchAny(lower, topicTerms["rental"]) || reHowMuchRent.MatchString(lower) || reWorthRent.MatchString(lower),
	}

	// Compound rule: an explicit roommate term, or a generic "best match"
	// style question, both count as roommate interest.
	f.Roommate = matchAny(lower, topicTerms["roommate"]) ||
		(strings.Contains(lower, "best") && strings.Contains(lower, "match")) ||
		(strings.Contains(lower, "who") && strings.Contains(lower, "live with"))

	return f
}

func matchAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
