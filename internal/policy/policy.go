// Package policy holds the admissibility predicates providers apply at
// ingestion: keyword relevance, geography, and region allow/block lists.
// All predicates work on lower-cased substring or regex containment over
// the posting's title+description text.
package policy

import (
	"regexp"
	"strings"
)

// Config is the immutable policy configuration passed into the
// predicates and the scorer at call time.
type Config struct {
	Keywords             []string
	MinSalaryEUR         int
	AllowUSRemote        bool
	AllowedLocationHints []string
	BlockedLocationHints []string
	PreferredCountry     string
}

var (
	euHintsPattern   = regexp.MustCompile(`europe|eu timezone|emea|cet|cest|utc\+?\s*[0-2]|spain|portugal|italy|germany`)
	worldwidePattern = regexp.MustCompile(`worldwide|global|anywhere|remote anywhere|international`)
	usOnlyPattern    = regexp.MustCompile(`us\s*only|must be (located|based) in the us|us citizens? only|green\s*card required|work authorization in the us required|authorized to work in the us only`)
	onSitePattern    = regexp.MustCompile(`on-site|onsite only`)
	usRemotePattern  = regexp.MustCompile(`remote.*(us|americas|est|pst|cst|mst)`)

	regionOpenPattern   = regexp.MustCompile(`worldwide|anywhere`)
	europePattern       = regexp.MustCompile(`europe|eu|emea|european`)
	countryHintsPattern = regexp.MustCompile(`germany|france|italy|netherlands|belgium|portugal|sweden|norway|finland|denmark|poland|romania|czech|austria|switzerland|uk|ireland`)
)

// TextMatches reports whether at least one configured keyword appears as
// a substring of text (case-insensitive).
func TextMatches(text string, keywords []string) bool {
	hay := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(hay, k) {
			return true
		}
	}
	return false
}

// PassesGeoPolicy rejects on-site-only and US-only postings, accepts
// EU/worldwide hints, optionally accepts US-timezone remote postings,
// and accepts by default when no signal is present.
func PassesGeoPolicy(text string, allowUSRemote bool) bool {
	hay := strings.ToLower(text)

	if onSitePattern.MatchString(hay) {
		return false
	}
	if usOnlyPattern.MatchString(hay) {
		return false
	}
	if euHintsPattern.MatchString(hay) || worldwidePattern.MatchString(hay) {
		return true
	}
	if allowUSRemote && usRemotePattern.MatchString(hay) {
		return true
	}

	// Absence of a negative signal is not rejection.
	return true
}

// RegionAllowed evaluates the allow/block lists in strict order: the
// block list is absolute, then worldwide/anywhere, then the preferred
// country, then Europe hints, then a rejection for any other named
// European country, then accept by default.
func RegionAllowed(text string, allowed, blocked []string, preferredCountry string) bool {
	hay := strings.ToLower(text)
	preferred := strings.ToLower(preferredCountry)

	for _, b := range blocked {
		if b != "" && strings.Contains(hay, b) {
			return false
		}
	}

	if regionOpenPattern.MatchString(hay) {
		return true
	}

	if preferred != "" && strings.Contains(hay, preferred) {
		return true
	}

	if europePattern.MatchString(hay) {
		return true
	}

	if countryHintsPattern.MatchString(hay) && (preferred == "" || !strings.Contains(hay, preferred)) {
		return false
	}

	return true
}

// Admit composes the three ingestion gates most providers share. The
// remote flag is deliberately not part of it: non-remote postings are
// dropped per-provider or penalized by the scorer.
func Admit(text string, cfg Config) bool {
	return PassesGeoPolicy(text, cfg.AllowUSRemote) &&
		RegionAllowed(text, cfg.AllowedLocationHints, cfg.BlockedLocationHints, cfg.PreferredCountry) &&
		TextMatches(text, cfg.Keywords)
}
