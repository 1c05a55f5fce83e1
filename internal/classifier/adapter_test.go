package classifier

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/ecoally/ecolens/internal/imaging"
)

type stubClient struct {
	pred Prediction
	err  error
}

func (s *stubClient) Predict(ctx context.Context, img *imaging.Image) (Prediction, error) {
	return s.pred, s.err
}

func (s *stubClient) Info(ctx context.Context) (ModelInfo, error) {
	return ModelInfo{Model: "stub", FineTuned: s.pred.FineTuned}, nil
}

func genericProbs(entries map[int]float64) []float64 {
	probs := make([]float64, 1000)
	for i, p := range entries {
		probs[i] = p
	}
	return probs
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestClassifyFineTuned(t *testing.T) {
	client := &stubClient{pred: Prediction{
		Probs:     []float64{0.05, 0.1, 0.6, 0.1, 0.1, 0.05},
		FineTuned: true,
	}}
	adapter := NewAdapter(client, zap.NewNop())

	res, err := adapter.Classify(context.Background(), nil)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if res.Category != CategoryWaste {
		t.Fatalf("expected waste, got %s", res.Category)
	}
	if !almostEqual(res.Confidence, 0.6) {
		t.Fatalf("expected confidence 0.6, got %f", res.Confidence)
	}
}

func TestClassifyFineTunedWrongLength(t *testing.T) {
	client := &stubClient{pred: Prediction{
		Probs:     []float64{0.5, 0.5},
		FineTuned: true,
	}}
	adapter := NewAdapter(client, zap.NewNop())

	if _, err := adapter.Classify(context.Background(), nil); err == nil {
		t.Fatal("expected error for malformed probability vector")
	}
}

func TestClassifyPredictError(t *testing.T) {
	client := &stubClient{err: errors.New("model server down")}
	adapter := NewAdapter(client, zap.NewNop())

	if _, err := adapter.Classify(context.Background(), nil); err == nil {
		t.Fatal("expected propagated predict error")
	}
}

func TestClassifyGenericRemap(t *testing.T) {
	cases := []struct {
		name     string
		entries  map[int]float64
		category Category
		conf     float64
	}{
		{
			name:     "plant mass scaled",
			entries:  map[int]float64{5: 0.2, 985: 0.12},
			category: CategoryPlant,
			conf:     0.8,
		},
		{
			name:     "confidence clamped to one",
			entries:  map[int]float64{0: 0.5},
			category: CategoryPlant,
			conf:     1.0,
		},
		{
			name:     "water body from lake and seashore classes",
			entries:  map[int]float64{978: 0.04, 979: 0.03},
			category: CategoryWaterBody,
			conf:     0.175,
		},
		{
			name:     "unmapped class falls to irrelevant with raw top-1",
			entries:  map[int]float64{450: 0.9},
			category: CategoryIrrelevant,
			conf:     0.9,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := &stubClient{pred: Prediction{Probs: genericProbs(tc.entries)}}
			adapter := NewAdapter(client, zap.NewNop())

			res, err := adapter.Classify(context.Background(), nil)
			if err != nil {
				t.Fatalf("Classify returned error: %v", err)
			}
			if res.Category != tc.category {
				t.Fatalf("expected category %s, got %s", tc.category, res.Category)
			}
			if !almostEqual(res.Confidence, tc.conf) {
				t.Fatalf("expected confidence %f, got %f", tc.conf, res.Confidence)
			}
		})
	}
}
