package ranking

import (
	"sort"
	"strings"
)

// canonicalCasing maps the lowercase identity of well-known tags to the
// casing the frontend displays. This is the single shared table; every call
// site goes through CanonicalTagName. Unknown tags pass through unchanged.
var canonicalCasing = map[string]string{
	"ai tools":         "AI Tools",
	"api":              "API",
	"automation":       "Automation",
	"chrome extension": "Chrome Extension",
	"cli":              "CLI",
	"code":             "Code",
	"data viz":         "Data Viz",
	"design":           "Design",
	"developer tools":  "Developer Tools",
	"education":        "Education",
	"finance":          "Finance",
	"game":             "Game",
	"health":           "Health",
	"mobile app":       "Mobile App",
	"music":            "Music",
	"no code":          "No Code",
	"open source":      "Open Source",
	"productivity":     "Productivity",
	"saas":             "SaaS",
	"social":           "Social",
	"web app":          "Web App",
}

// CanonicalTagName resolves a tag's display casing from its case-insensitive
// identity. Tags outside the table come back as given.
func CanonicalTagName(name string) string {
	if display, ok := canonicalCasing[strings.ToLower(name)]; ok {
		return display
	}
	return name
}

// KnownTagNames returns the canonical display names of every tag in the
// casing table, for the public tag listing.
func KnownTagNames() []string {
	names := make([]string, 0, len(canonicalCasing))
	for _, display := range canonicalCasing {
		names = append(names, display)
	}
	sort.Strings(names)
	return names
}
