package usecase

import (
	"fmt"
	"strings"

	"github.com/ecoally/ecolens/internal/classifier"
)

// Decision is the tri-state automated outcome.
type Decision string

const (
	DecisionAutoApproved  Decision = "AUTO_APPROVED"
	DecisionAutoRejected  Decision = "AUTO_REJECTED"
	DecisionPendingReview Decision = "PENDING_REVIEW"
)

const (
	approveThreshold = 70
	rejectThreshold  = 40
	maxNativeBonus   = 20
	geoBonusPoints   = 5
)

// baseScores is the per-category starting score, immutable startup data.
var baseScores = map[classifier.Category]int{
	classifier.CategoryPlant:      50,
	classifier.CategoryWaterBody:  45,
	classifier.CategoryWildlife:   48,
	classifier.CategoryWaste:      40,
	classifier.CategoryUrbanGreen: 35,
	classifier.CategoryIrrelevant: 0,
}

// Breakdown retains every signed addend so the clamped total stays auditable.
// CheatPenalty is stored as its negative contribution.
type Breakdown struct {
	BaseCategory  int `json:"base_category"`
	Confidence    int `json:"confidence"`
	ImageQuality  int `json:"image_quality"`
	SpeciesID     int `json:"species_id"`
	NativeSpecies int `json:"native_species"`
	GeoVerified   int `json:"geo_verified"`
	CheatPenalty  int `json:"cheat_penalty"`
}

// ScoreInput carries the signals the composite score is built from.
type ScoreInput struct {
	Category          classifier.Category
	Confidence        float64 // effective confidence, cheat penalty already applied
	Quality           int
	SpeciesConfidence float64
	NativePoints      int
	HasCoordinates    bool
	CheatPenalty      int
}

// Score is the composed eco-score with its addends.
type Score struct {
	Total     int
	Breakdown Breakdown
}

// ComputeScore composes the eco-score from its addends and clamps the total
// to [0,100].
func ComputeScore(in ScoreInput) Score {
	base := baseScores[in.Category]
	confBonus := int(in.Confidence * 20)
	speciesBonus := speciesTier(in.SpeciesConfidence)

	nativeBonus := in.NativePoints
	if nativeBonus > maxNativeBonus {
		nativeBonus = maxNativeBonus
	}

	geoBonus := 0
	if in.HasCoordinates {
		geoBonus = geoBonusPoints
	}

	sum := base + confBonus + in.Quality + speciesBonus + nativeBonus + geoBonus - in.CheatPenalty
	total := sum
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return Score{
		Total: total,
		Breakdown: Breakdown{
			BaseCategory:  base,
			Confidence:    confBonus,
			ImageQuality:  in.Quality,
			SpeciesID:     speciesBonus,
			NativeSpecies: nativeBonus,
			GeoVerified:   geoBonus,
			CheatPenalty:  -in.CheatPenalty,
		},
	}
}

// speciesTier maps identification confidence to bonus points. Boundaries are
// strict: exactly 0.8 falls into the 10-point tier.
func speciesTier(conf float64) int {
	switch {
	case conf > 0.8:
		return 15
	case conf > 0.5:
		return 10
	case conf > 0.15:
		return 5
	default:
		return 0
	}
}

// DeriveDecision maps score and review flag to the automated outcome. The
// review flag overrides the score in both directions.
func DeriveDecision(total int, requiresReview bool) Decision {
	if requiresReview {
		return DecisionPendingReview
	}
	if total >= approveThreshold {
		return DecisionAutoApproved
	}
	if total < rejectThreshold {
		return DecisionAutoRejected
	}
	return DecisionPendingReview
}

// buildReason renders the submitter-facing rationale. Templates are tried in
// priority order; the first match wins.
func buildReason(cat classifier.Category, total int, confidence float64, species *string, suspicious bool) string {
	if suspicious {
		return "Image flagged - possible screenshot or re-upload. Please take a fresh photo."
	}
	if cat == classifier.CategoryIrrelevant {
		return "Image does not show an environmental action. Submit a photo of a plant, wildlife, or eco-activity."
	}

	human := strings.ReplaceAll(string(cat), "_", " ")
	if total >= approveThreshold {
		base := fmt.Sprintf("High-confidence %s detected", human)
		if species != nil {
			return fmt.Sprintf("%s - identified as %s. Great eco-action!", base, *species)
		}
		return base + ". Keep it up!"
	}
	if total < rejectThreshold {
		return fmt.Sprintf("Low confidence (%d%%). Please retake in good lighting.", int(confidence*100))
	}
	return fmt.Sprintf("Moderate confidence in %s. Sent for teacher review.", human)
}

// bonusMultiplier rewards native species over merely identified ones. The
// sentinel "Unknown" species never earns a multiplier.
func bonusMultiplier(species *string, isNative *bool) float64 {
	if species == nil {
		return 1.0
	}
	if isNative != nil && *isNative {
		return 1.5
	}
	if !strings.Contains(*species, "Unknown") {
		return 1.2
	}
	return 1.0
}
