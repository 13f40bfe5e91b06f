package intent

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(Flags) bool
		desc  string
	}{
		{"safety", "Is it safe to live near Riverside Drive?", func(f Flags) bool { return f.Safety }, "Safety"},
		{"crime pattern", "any crimes near the Oakwood complex?", func(f Flags) bool { return f.Safety }, "Safety"},
		{"property", "tell me about this apartment building", func(f Flags) bool { return f.Property }, "Property"},
		{"review", "what do residents say in the reviews?", func(f Flags) bool { return f.Review }, "Review"},
		{"commute", "how far is the commute to downtown?", func(f Flags) bool { return f.Commute }, "Commute"},
		{"attraction", "are there any coffee shops nearby?", func(f Flags) bool { return f.Attraction }, "Attraction"},
		{"roommate direct", "find me a roommate", func(f Flags) bool { return f.Roommate }, "Roommate"},
		{"roommate compound", "who is my best match to live with", func(f Flags) bool { return f.Roommate }, "Roommate"},
		{"favorite", "show my saved listings", func(f Flags) bool { return f.Favorite }, "Favorite"},
		{"unit", "do they have a 2 bedroom floor plan?", func(f Flags) bool { return f.Unit }, "Unit"},
		{"price", "what is the rent and deposit?", func(f Flags) bool { return f.Price }, "Price"},
		{"availability", "when can I move in?", func(f Flags) bool { return f.Availability }, "Availability"},
		{"community", "what are people saying on the community forum?", func(f Flags) bool { return f.Community }, "Community"},
		{"room", "is there a private room for rent?", func(f Flags) bool { return f.Room }, "Room"},
		{"photo", "show me pictures of the lobby", func(f Flags) bool { return f.Photo }, "Photo"},
		{"setting", "update my preferences for search", func(f Flags) bool { return f.Setting }, "Setting"},
		{"report", "I want to report a maintenance issue", func(f Flags) bool { return f.Report }, "Report"},
		{"transit route", "which bus route goes to campus?", func(f Flags) bool { return f.TransitRoute }, "TransitRoute"},
		{"rental estimate", "is $1500 a fair price for this?", func(f Flags) bool { return f.RentalEstimate }, "RentalEstimate"},
		{"rental how much", "how much does it cost to rent here", func(f Flags) bool { return f.RentalEstimate }, "RentalEstimate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(Detect(tt.text)) {
				t.Errorf("Detect(%q): %s flag not set", tt.text, tt.desc)
			}
		})
	}
}

func TestDetectNothing(t *testing.T) {
	f := Detect("hello")
	if f.Any() {
		t.Errorf("plain greeting should set no flags, got %+v", f)
	}
}

// Adding an obviously-matching keyword must never flip a true flag to false.
func TestDetectMonotonic(t *testing.T) {
	base := "tell me about the apartment reviews and rent near the park"
	suffixes := []string{
		" is it safe there",
		" and the bus route",
		" roommate options too",
		" when can I move in",
	}

	before := Detect(base)
	grown := base
	for _, s := range suffixes {
		grown += s
		after := Detect(grown)
		if before.Property && !after.Property {
			t.Fatalf("Property flag lost after appending %q", s)
		}
		if before.Review && !after.Review {
			t.Fatalf("Review flag lost after appending %q", s)
		}
		if before.Price && !after.Price {
			t.Fatalf("Price flag lost after appending %q", s)
		}
		if before.Attraction && !after.Attraction {
			t.Fatalf("Attraction flag lost after appending %q", s)
		}
	}
}

func TestExtractKeywords(t *testing.T) {
	t.Run("property name from capitalized tokens and suffix", func(t *testing.T) {
		kw := ExtractKeywords("Tell me about Oakwood Apartments")
		if kw.PropertyName == "" {
			t.Fatal("PropertyName should be populated")
		}
		if kw.PropertyName != "Oakwood Apartments" {
			t.Errorf("PropertyName = %q, want %q", kw.PropertyName, "Oakwood Apartments")
		}
	})

	t.Run("location terms from street suffixes", func(t *testing.T) {
		kw := ExtractKeywords("anything on riverside avenue or downtown")
		if len(kw.LocationTerms) == 0 {
			t.Fatal("expected location terms")
		}
	})

	t.Run("short tokens dropped", func(t *testing.T) {
		kw := ExtractKeywords("is it ok to go")
		if len(kw.SearchTerms)+len(kw.PropertyNameWords)+len(kw.LocationTerms) != 0 {
			t.Errorf("short/stop tokens should be dropped, got %+v", kw)
		}
	})

	t.Run("generic terms land in search bucket", func(t *testing.T) {
		kw := ExtractKeywords("cheap pet friendly housing")
		found := false
		for _, term := range kw.SearchTerms {
			if term == "cheap" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %q in SearchTerms, got %v", "cheap", kw.SearchTerms)
		}
	})

	t.Run("no property name when none present", func(t *testing.T) {
		kw := ExtractKeywords("cheap housing near campus")
		if kw.PropertyName != "" {
			t.Errorf("PropertyName = %q, want empty", kw.PropertyName)
		}
	})

	t.Run("punctuation trimmed", func(t *testing.T) {
		kw := ExtractKeywords("What about \"Lakeshore Tower\"?")
		if kw.PropertyName != "Lakeshore Tower" {
			t.Errorf("PropertyName = %q, want %q", kw.PropertyName, "Lakeshore Tower")
		}
	})
}
