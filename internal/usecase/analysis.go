package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ecoally/ecolens/internal/classifier"
	"github.com/ecoally/ecolens/internal/geo"
	"github.com/ecoally/ecolens/internal/imaging"
	"github.com/ecoally/ecolens/internal/logging"
	"github.com/ecoally/ecolens/internal/species"
)

// speciesGateConfidence gates the species path: only confident plant
// classifications are worth an external identification.
const speciesGateConfidence = 0.45

// Request carries one image-analysis submission.
type Request struct {
	ImageURL    string
	StudentID   string
	ChallengeID string
	GeoLat      *float64
	GeoLng      *float64
}

// Result is the externally visible analysis record. Confidence is a
// percentage rounded to two decimals. On failure only Error, the safe
// defaults, and the rejection decision are meaningful.
type Result struct {
	Success            bool                `json:"success"`
	Error              string              `json:"error,omitempty"`
	Category           classifier.Category `json:"category"`
	Confidence         float64             `json:"confidence"`
	EcoScore           int                 `json:"ecoScore"`
	DetectedSpecies    *string             `json:"detectedSpecies"`
	IsNativeSpecies    *bool               `json:"isNativeSpecies"`
	AutoDecision       Decision            `json:"autoDecision"`
	AutoDecisionReason string              `json:"autoDecisionReason"`
	BonusMultiplier    float64             `json:"bonusMultiplier"`
	ScoreBreakdown     Breakdown           `json:"scoreBreakdown"`
	CheatFlags         []string            `json:"cheatFlags"`
}

// SpeciesIdentifier resolves a plant raster to a best-guess species.
type SpeciesIdentifier interface {
	Identify(ctx context.Context, img *imaging.Image) species.Identification
}

// NativityResolver decides whether a species is native to the submitter's
// region.
type NativityResolver interface {
	CheckNative(ctx context.Context, scientificName string, lat, lng *float64) geo.Verdict
}

// Features reports which optional integrations are configured; surfaced by
// the health endpoint.
type Features struct {
	PlantNet bool
	OpenCage bool
	Redis    bool
}

// ServiceStatus is the health endpoint's payload.
type ServiceStatus struct {
	Model     string `json:"model"`
	FineTuned bool   `json:"finetuned"`
	PlantNet  bool   `json:"plantnet"`
	Geocoding bool   `json:"geocoding"`
	OpenCage  bool   `json:"opencage"`
	Redis     bool   `json:"redis"`
}

// AnalysisUseCase orchestrates the scoring pipeline: classification,
// anti-cheat, the gated species and nativity path, image quality, and the
// final score, decision, and rationale.
type AnalysisUseCase struct {
	fetcher  imaging.Fetcher
	client   classifier.Client
	adapter  *classifier.Adapter
	species  SpeciesIdentifier
	nativity NativityResolver
	features Features
	logger   *zap.Logger
}

// NewAnalysisUseCase constructs the orchestrator around its collaborators.
func NewAnalysisUseCase(
	fetcher imaging.Fetcher,
	client classifier.Client,
	identifier SpeciesIdentifier,
	resolver NativityResolver,
	features Features,
	logger *zap.Logger,
) *AnalysisUseCase {
	return &AnalysisUseCase{
		fetcher:  fetcher,
		client:   client,
		adapter:  classifier.NewAdapter(client, logger),
		species:  identifier,
		nativity: resolver,
		features: features,
		logger:   logger.Named("analysis_usecase"),
	}
}

// Analyze runs the full pipeline for one request. Fetch and decode problems
// come back as a failure-shaped Result with a nil error; a non-nil error
// means the request failed internally and deserves a generic 500.
func (uc *AnalysisUseCase) Analyze(ctx context.Context, req Request) (*Result, error) {
	requestID := uuid.NewString()
	opLogger := logging.WithOperation(uc.logger, "usecase.analyze", requestID)
	opLogger.Info("analysis started",
		zap.String("student_id", req.StudentID),
		zap.String("challenge_id", req.ChallengeID),
	)

	img, err := uc.fetcher.Fetch(ctx, req.ImageURL)
	if err != nil {
		opLogger.Warn("image fetch failed", zap.String("url", req.ImageURL), zap.Error(err))
		return failureResult(err.Error()), nil
	}

	cheat := imaging.DetectCheating(img)
	if cheat.IsSuspicious {
		opLogger.Warn("suspicious image", zap.Strings("issues", cheat.Issues))
	}

	cls, err := uc.adapter.Classify(ctx, img)
	if err != nil {
		wrapped := logging.NewOperationError("usecase.classify", requestID, err)
		opLogger.Error("classification failed", zap.Error(wrapped))
		return nil, wrapped
	}

	effective := cls.Confidence - float64(cheat.ConfidencePenalty)/100
	if effective < 0 {
		effective = 0
	}

	var ident *species.Identification
	var verdict *geo.Verdict
	if cls.Category == classifier.CategoryPlant && effective > speciesGateConfidence {
		id := uc.species.Identify(ctx, img)
		ident = &id
		v := uc.nativity.CheckNative(ctx, id.ScientificName, req.GeoLat, req.GeoLng)
		verdict = &v
	}

	var display *string
	if ident != nil {
		s := ident.ScientificName
		if ident.CommonName != "" && ident.CommonName != ident.ScientificName {
			s = fmt.Sprintf("%s (%s)", ident.CommonName, ident.ScientificName)
		}
		display = &s
	}

	speciesConf := 0.0
	if ident != nil {
		speciesConf = ident.Confidence
	}
	nativePts := 0
	var isNative *bool
	if verdict != nil {
		nativePts = verdict.Points
		isNative = &verdict.IsNative
	}

	score := ComputeScore(ScoreInput{
		Category:          cls.Category,
		Confidence:        effective,
		Quality:           imaging.QualityScore(img),
		SpeciesConfidence: speciesConf,
		NativePoints:      nativePts,
		HasCoordinates:    req.GeoLat != nil && req.GeoLng != nil,
		CheatPenalty:      cheat.ConfidencePenalty,
	})

	decision := DeriveDecision(score.Total, cheat.RequiresManualReview)
	reason := buildReason(cls.Category, score.Total, effective, display, cheat.IsSuspicious)

	opLogger.Info("analysis complete",
		zap.String("category", string(cls.Category)),
		zap.Int("eco_score", score.Total),
		zap.String("decision", string(decision)),
		zap.Stringp("species", display),
	)

	return &Result{
		Success:            true,
		Category:           cls.Category,
		Confidence:         math.Round(effective*10000) / 100,
		EcoScore:           score.Total,
		DetectedSpecies:    display,
		IsNativeSpecies:    isNative,
		AutoDecision:       decision,
		AutoDecisionReason: reason,
		BonusMultiplier:    bonusMultiplier(display, isNative),
		ScoreBreakdown:     score.Breakdown,
		CheatFlags:         cheat.Issues,
	}, nil
}

// Status reports model availability and configured integrations. Geocoding is
// always available thanks to the offline bounding-box tier.
func (uc *AnalysisUseCase) Status(ctx context.Context) ServiceStatus {
	info, err := uc.client.Info(ctx)
	if err != nil {
		uc.logger.Warn("model info unavailable", zap.Error(err))
	}
	return ServiceStatus{
		Model:     info.Model,
		FineTuned: info.FineTuned,
		PlantNet:  uc.features.PlantNet,
		Geocoding: true,
		OpenCage:  uc.features.OpenCage,
		Redis:     uc.features.Redis,
	}
}

// failureResult is the terminal record for images that never reached the
// scoring pipeline.
func failureResult(message string) *Result {
	return &Result{
		Success:            false,
		Error:              message,
		Category:           classifier.CategoryIrrelevant,
		Confidence:         0,
		EcoScore:           0,
		AutoDecision:       DecisionAutoRejected,
		AutoDecisionReason: message,
		BonusMultiplier:    1.0,
		CheatFlags:         []string{},
	}
}
