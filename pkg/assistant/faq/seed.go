package faq

// seedItems is the static FAQ set loaded on startup. Admins can add, update
// and delete entries at runtime; the seed is not persisted back anywhere.
var seedItems = []Item{
	{
		Question: "How do I schedule a tour of a property?",
		Answer:   "Open the property page and use the Schedule Tour button, or ask me and I can point you to available time slots.",
		Category: "touring",
		Tags:     []string{"tour", "visit", "schedule"},
		Priority: 8,
	},
	{
		Question: "How does roommate matching work?",
		Answer:   "We compare your lifestyle preferences with other users looking in the same area and score compatibility from 0 to 100%.",
		Category: "roommates",
		Tags:     []string{"roommate", "matching", "compatibility"},
		Priority: 7,
	},
	{
		Question: "What fees should I expect when renting?",
		Answer:   "Typical fees include an application fee, a security deposit and sometimes an admin fee. Each listing shows its own fee breakdown.",
		Category: "pricing",
		Tags:     []string{"fees", "deposit", "application"},
		Priority: 7,
	},
	{
		Question: "Are the reviews on listings verified?",
		Answer:   "Reviews come from registered users. We flag and remove reviews that violate our guidelines, but they reflect individual experiences.",
		Category: "reviews",
		Tags:     []string{"review", "verified", "rating"},
		Priority: 5,
	},
	{
		Question: "Can I save listings to compare later?",
		Answer:   "Yes - tap the heart icon on any listing to add it to your favorites, then ask me to compare your saved properties.",
		Category: "favorites",
		Tags:     []string{"favorite", "saved", "compare"},
		Priority: 6,
	},
	{
		Question: "How current is the availability information?",
		Answer:   "Availability is synced from property managers daily. Always confirm move-in dates with the property before applying.",
		Category: "availability",
		Tags:     []string{"available", "vacancy", "move"},
		Priority: 6,
	},
	{
		Question: "How do rental estimates get calculated?",
		Answer:   "Estimates combine recent listings of similar units in the same area. They are a guide, not a quote.",
		Category: "pricing",
		Tags:     []string{"estimate", "market", "rent"},
		Priority: 5,
	},
	{
		Question: "How do I report a problem with a listing?",
		Answer:   "Use the Report button on the listing page, or tell me what is wrong and I will start a report for you.",
		Category: "support",
		Tags:     []string{"report", "problem", "complaint"},
		Priority: 4,
	},
}
