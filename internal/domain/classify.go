package domain

import (
	"path/filepath"
	"strings"
)

// Keyword sets are fixed by the lab workflow and deliberately not
// configurable. All matching is case-insensitive substring matching
// against the filename only, never against file content.
var (
	// restrictedAllowedKeywords gates which STLs from a restricted
	// origin (Exocad exports) are eligible for copying at all.
	restrictedAllowedKeywords = []string{"modelbase", "model", "tissue", "gingiva"}

	// restrictedTissueKeywords routes restricted-origin files to the
	// tissue destination.
	restrictedTissueKeywords = []string{"modelgingiva", "tissue", "gingiva"}

	// displayKeywords selects which copyable, non-tissue files count
	// toward the "model size" figure shown to the operator.
	displayKeywords = []string{"model", "antag", "tooth", "teeth", "die", "modelbase"}
)

// Origin identifies which configured search root a folder came from.
// Restricted origins apply an additional allow-list filter.
type Origin struct {
	Label      string
	Restricted bool
}

// FileClass holds every classification attribute for a single filename.
type FileClass struct {
	IsSTL    bool
	Allowed  bool
	Copyable bool
	Tissue   bool
	Display  bool
}

func IsSTLFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".stl")
}

// IsAllowedForOrigin reports whether a file passes the origin's
// allow-list. Non-restricted origins allow everything.
func IsAllowedForOrigin(name string, origin Origin) bool {
	if !origin.Restricted {
		return true
	}
	return containsAny(strings.ToLower(name), restrictedAllowedKeywords)
}

// IsCopyable reports whether a file is eligible for the physical copy:
// STL extension plus the origin allow-list when one applies.
func IsCopyable(name string, origin Origin) bool {
	return IsSTLFile(name) && IsAllowedForOrigin(name, origin)
}

// IsTissueFile reports whether a file is routed to the tissue
// destination rather than the model destination.
func IsTissueFile(name string, origin Origin) bool {
	lower := strings.ToLower(name)
	if origin.Restricted {
		return containsAny(lower, restrictedTissueKeywords)
	}
	return strings.Contains(lower, "tissue") || strings.Contains(lower, "gingiva")
}

func MatchesDisplayKeywords(name string) bool {
	return containsAny(strings.ToLower(name), displayKeywords)
}

// Classify computes all attributes for one filename. Tissue and display
// counting are mutually exclusive: a tissue file never contributes to
// the display size.
func Classify(name string, origin Origin) FileClass {
	c := FileClass{
		IsSTL:   IsSTLFile(name),
		Allowed: IsAllowedForOrigin(name, origin),
	}
	c.Copyable = c.IsSTL && c.Allowed
	if !c.Copyable {
		return c
	}
	c.Tissue = IsTissueFile(name, origin)
	if !c.Tissue {
		c.Display = MatchesDisplayKeywords(name)
	}
	return c
}

func containsAny(lower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
