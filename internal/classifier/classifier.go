package classifier

import (
	"context"

	"github.com/ecoally/ecolens/internal/imaging"
)

// Category is one of the six fixed eco-action labels.
type Category string

const (
	CategoryPlant      Category = "plant"
	CategoryWaterBody  Category = "water_body"
	CategoryWaste      Category = "waste"
	CategoryWildlife   Category = "wildlife"
	CategoryUrbanGreen Category = "urban_green"
	CategoryIrrelevant Category = "irrelevant"
)

// Categories lists the labels in model-head order. Fine-tuned predictions
// index into this slice.
var Categories = []Category{
	CategoryPlant,
	CategoryWaterBody,
	CategoryWaste,
	CategoryWildlife,
	CategoryUrbanGreen,
	CategoryIrrelevant,
}

// Prediction is the raw output of the black-box CNN: either a probability
// vector over the six eco categories (fine-tuned head) or over the generic
// 1000-class space.
type Prediction struct {
	Probs     []float64
	FineTuned bool
}

// ModelInfo describes the model behind the collaborator, surfaced by the
// health endpoint.
type ModelInfo struct {
	Model     string `json:"model"`
	FineTuned bool   `json:"finetuned"`
}

// Client is the black-box classifier collaborator: raster in, probability
// vector out.
type Client interface {
	Predict(ctx context.Context, img *imaging.Image) (Prediction, error)
	Info(ctx context.Context) (ModelInfo, error)
}

// Result is the adapter's verdict for one raster.
type Result struct {
	Category   Category
	Confidence float64
}
