package domain

import (
	"regexp"
	"time"
)

// SecuritiesTTL is how long the cached securities universe stays fresh.
// Once the oldest record is older than this, the set is eligible for a
// full refresh from the provider.
const SecuritiesTTL = 24 * time.Hour

// isinPattern matches ISINs: two letters followed by ten alphanumerics.
var isinPattern = regexp.MustCompile(`(?i)^[A-Z]{2}[A-Z0-9]{10}$`)

// IsISIN reports whether s looks like an ISIN.
// Strings that fail the check fall through to later resolution tiers;
// they are never treated as errors.
func IsISIN(s string) bool {
	return isinPattern.MatchString(s)
}

// Security represents one exchange-listed instrument.
// The scrip code is the unique exchange identifier.
type Security struct {
	// Code is the numeric scrip code, unique across the exchange.
	Code string

	// Symbol is the short ticker (scrip id). May be empty.
	Symbol string

	// Name is the official listed name.
	Name string

	// IssuerName is the legal entity name, which may differ from Name.
	IssuerName string

	// Group is the market-segment tag (A, B, T, ...).
	// Used only as a tie-breaker during resolution.
	Group string

	// ISIN is the 12-character international identifier. Optional.
	ISIN string

	// CachedAt is when this record was last refreshed from the provider.
	CachedAt time.Time
}

// SecurityMatch is one resolution candidate with its confidence score.
type SecurityMatch struct {
	Code       string  `json:"scrip_code"`
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	IssuerName string  `json:"issuer_name,omitempty"`
	Group      string  `json:"group,omitempty"`
	ISIN       string  `json:"isin,omitempty"`
	Score      float64 `json:"score"`
}

// SecurityGroups is the fixed set of market-segment groups enumerated
// on a full refresh of the securities universe.
var SecurityGroups = []string{"A", "B", "T", "X", "XT", "Z", "M", "MT", "P"}

// groupPriority ranks market segments for tie-breaking, largest-cap first.
var groupPriority = map[string]int{"A": 0, "B": 1, "T": 2, "M": 3}

// GroupPriority returns the tie-break rank for a market-segment group.
// Unranked segments sort last.
func GroupPriority(group string) int {
	if p, ok := groupPriority[group]; ok {
		return p
	}
	return 9
}
