package classifier

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ecoally/ecolens/internal/imaging"
)

const (
	// genericMassFloor is the minimum summed probability mass for a generic
	// prediction to count as an eco category at all.
	genericMassFloor = 0.05
	// genericConfScale stretches summed mass into a usable confidence.
	genericConfScale = 2.5
)

// Adapter narrows a raw CNN prediction into the eco-category space. With a
// fine-tuned head the prediction is used directly; otherwise the generic
// class probabilities are remapped through genericEcoMap, trading accuracy
// for graceful degradation without trained weights.
type Adapter struct {
	client Client
	logger *zap.Logger
}

func NewAdapter(client Client, logger *zap.Logger) *Adapter {
	return &Adapter{client: client, logger: logger.Named("classifier_adapter")}
}

// Classify produces the eco category and confidence for one raster.
func (a *Adapter) Classify(ctx context.Context, img *imaging.Image) (Result, error) {
	pred, err := a.client.Predict(ctx, img)
	if err != nil {
		return Result{}, fmt.Errorf("classifier predict: %w", err)
	}
	if pred.FineTuned {
		return a.fineTuned(pred)
	}
	return a.remapGeneric(pred), nil
}

func (a *Adapter) fineTuned(pred Prediction) (Result, error) {
	if len(pred.Probs) != len(Categories) {
		return Result{}, fmt.Errorf("fine-tuned prediction has %d probabilities, want %d", len(pred.Probs), len(Categories))
	}
	best := 0
	for i, p := range pred.Probs {
		if p > pred.Probs[best] {
			best = i
		}
	}
	return Result{Category: Categories[best], Confidence: pred.Probs[best]}, nil
}

// remapGeneric sums probability mass over the class group of each category
// and picks the heaviest. Mass below the floor means the image shows none of
// the eco actions; the raw top-1 probability is kept as the confidence so the
// caller still sees how sure the model was about whatever it did see.
func (a *Adapter) remapGeneric(pred Prediction) Result {
	var best Category
	bestMass := -1.0
	for _, cat := range Categories {
		indices, ok := genericEcoMap[cat]
		if !ok {
			continue
		}
		mass := 0.0
		for _, idx := range indices {
			if idx < len(pred.Probs) {
				mass += pred.Probs[idx]
			}
		}
		if mass > bestMass {
			best = cat
			bestMass = mass
		}
	}

	if bestMass < genericMassFloor {
		top := 0.0
		for _, p := range pred.Probs {
			if p > top {
				top = p
			}
		}
		return Result{Category: CategoryIrrelevant, Confidence: top}
	}

	conf := bestMass * genericConfScale
	if conf > 1 {
		conf = 1
	}
	return Result{Category: best, Confidence: conf}
}
