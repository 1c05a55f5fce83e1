package species

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ecoally/ecolens/internal/imaging"
)

const (
	lookupTimeout = 10 * time.Second
	// minLookupScore discards external matches that are barely better than a
	// guess; below it the colour heuristic takes over.
	minLookupScore = 0.15
	uploadQuality  = 85
)

// Identifier resolves a plant raster to a best-guess species using a
// two-tier strategy: external lookup first, colour heuristic as the
// guaranteed-total fallback. Successful lookups are memoized by perceptual
// hash so identical-looking images across requests skip the external call.
type Identifier struct {
	lookup  Lookup // nil when no external lookup is configured
	cache   Cache
	logger  *zap.Logger
	timeout time.Duration
}

func NewIdentifier(lookup Lookup, cache Cache, logger *zap.Logger) *Identifier {
	return &Identifier{
		lookup:  lookup,
		cache:   cache,
		logger:  logger.Named("species_identifier"),
		timeout: lookupTimeout,
	}
}

// Identify never fails: every tier that declines falls through to the next,
// and the heuristic is total over valid rasters. Only external successes are
// cached; failures stay retryable.
func (id *Identifier) Identify(ctx context.Context, img *imaging.Image) Identification {
	if id.lookup == nil {
		return HeuristicIdentify(img)
	}

	key, err := img.PerceptualHash()
	if err != nil {
		id.logger.Warn("perceptual hash failed", zap.Error(err))
		key = ""
	}
	if key != "" {
		if cached, ok := id.cache.Get(ctx, key); ok {
			id.logger.Debug("species cache hit", zap.String("species", cached.ScientificName))
			return cached
		}
	}

	if found, ok := id.identifyExternal(ctx, img); ok {
		if key != "" {
			id.cache.Set(ctx, key, found)
		}
		return found
	}
	return HeuristicIdentify(img)
}

func (id *Identifier) identifyExternal(ctx context.Context, img *imaging.Image) (Identification, bool) {
	data, err := img.EncodeJPEG(uploadQuality)
	if err != nil {
		id.logger.Warn("jpeg encode failed, falling back to heuristic", zap.Error(err))
		return Identification{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, id.timeout)
	defer cancel()

	matches, err := id.lookup.Identify(ctx, data)
	if err != nil {
		id.logger.Warn("species lookup failed, falling back to heuristic", zap.Error(err))
		return Identification{}, false
	}
	if len(matches) == 0 {
		return Identification{}, false
	}

	top := matches[0]
	if top.Score < minLookupScore {
		id.logger.Info("species lookup below confidence floor, falling back to heuristic",
			zap.String("species", top.ScientificName),
			zap.Float64("score", top.Score),
		)
		return Identification{}, false
	}

	common := top.ScientificName
	if len(top.CommonNames) > 0 {
		common = top.CommonNames[0]
	} else if fields := strings.Fields(top.ScientificName); len(fields) > 0 {
		common = fields[0]
	}

	id.logger.Info("species identified",
		zap.String("species", top.ScientificName),
		zap.Float64("score", top.Score),
	)
	return Identification{
		ScientificName: top.ScientificName,
		CommonName:     common,
		Confidence:     top.Score,
		Source:         SourceLookup,
	}, true
}
