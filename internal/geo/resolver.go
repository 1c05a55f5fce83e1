package geo

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Resolver decides whether a species is native to the submitter's region.
// Region resolution runs a fixed ladder: primary geocoder, optional secondary
// geocoder, static bounding boxes, then DEFAULT. Outcomes are memoized per
// exact coordinate pair for the process lifetime, so repeated identical
// coordinates never pay for a second external call.
type Resolver struct {
	primary   Geocoder // may be nil for offline operation
	secondary Geocoder // optional, tried only after the primary fails
	logger    *zap.Logger

	mu   sync.RWMutex
	memo map[[2]float64]string
}

func NewResolver(primary, secondary Geocoder, logger *zap.Logger) *Resolver {
	return &Resolver{
		primary:   primary,
		secondary: secondary,
		logger:    logger.Named("nativity_resolver"),
		memo:      make(map[[2]float64]string),
	}
}

// Region resolves a coordinate pair to a region code. Absent coordinates
// short-circuit to DEFAULT without touching the memo.
func (r *Resolver) Region(ctx context.Context, lat, lng *float64) string {
	if lat == nil || lng == nil {
		return DefaultRegion
	}

	key := [2]float64{*lat, *lng}
	r.mu.RLock()
	code, ok := r.memo[key]
	r.mu.RUnlock()
	if ok {
		return code
	}

	code = r.resolveRegion(ctx, *lat, *lng)
	r.mu.Lock()
	r.memo[key] = code
	r.mu.Unlock()
	return code
}

func (r *Resolver) resolveRegion(ctx context.Context, lat, lng float64) string {
	if r.primary != nil {
		code, err := r.primary.CountryCode(ctx, lat, lng)
		if err == nil && code != "" {
			r.logger.Debug("primary geocoder resolved region", zap.String("region", code))
			return code
		}
		if err != nil {
			r.logger.Warn("primary geocoder failed", zap.Error(err))
		}
	}

	if r.secondary != nil {
		code, err := r.secondary.CountryCode(ctx, lat, lng)
		if err == nil && code != "" {
			r.logger.Debug("secondary geocoder resolved region", zap.String("region", code))
			return code
		}
		if err != nil {
			r.logger.Warn("secondary geocoder failed", zap.Error(err))
		}
	}

	for _, box := range regionBoxes {
		if lat >= box.minLat && lat <= box.maxLat && lng >= box.minLng && lng <= box.maxLng {
			return box.code
		}
	}
	return DefaultRegion
}

// CheckNative matches scientificName against the resolved region's native
// table. Ladder precedence, first match wins: exact scientific name for full
// points, genus (first-token equality) for half, case-insensitive substring
// for half, otherwise no match.
func (r *Resolver) CheckNative(ctx context.Context, scientificName string, lat, lng *float64) Verdict {
	region := r.Region(ctx, lat, lng)
	table := nativeSpeciesByRegion[region]
	if len(table) == 0 || scientificName == "" {
		return Verdict{Region: region, MatchType: MatchNone}
	}

	for _, sp := range table {
		if sp.Scientific == scientificName {
			return Verdict{IsNative: true, Points: sp.Points, Region: region, CommonName: sp.Common, MatchType: MatchExact}
		}
	}

	genus := firstToken(scientificName)
	for _, sp := range table {
		if firstToken(sp.Scientific) == genus {
			return Verdict{IsNative: true, Points: sp.Points / 2, Region: region, CommonName: sp.Common, MatchType: MatchGenus}
		}
	}

	lower := strings.ToLower(scientificName)
	for _, sp := range table {
		spLower := strings.ToLower(sp.Scientific)
		if strings.Contains(lower, spLower) || strings.Contains(spLower, lower) {
			return Verdict{IsNative: true, Points: sp.Points / 2, Region: region, CommonName: sp.Common, MatchType: MatchKeyword}
		}
	}

	return Verdict{Region: region, MatchType: MatchNone}
}

func firstToken(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return s
}
