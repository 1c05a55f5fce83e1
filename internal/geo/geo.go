package geo

import "context"

// MatchType expresses how confidently a species string matched the regional
// native table.
type MatchType string

const (
	MatchExact   MatchType = "exact"
	MatchGenus   MatchType = "genus"
	MatchKeyword MatchType = "keyword"
	MatchNone    MatchType = "none"
)

// Verdict is the nativity decision for one species and coordinate pair.
// Points is 0 whenever the species is non-native or unknown.
type Verdict struct {
	IsNative   bool
	Points     int
	Region     string
	CommonName string // empty when no match
	MatchType  MatchType
}

// Geocoder resolves coordinates to an ISO 3166-1 alpha-2 country code.
type Geocoder interface {
	CountryCode(ctx context.Context, lat, lng float64) (string, error)
}
