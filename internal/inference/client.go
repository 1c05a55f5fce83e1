package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ecoally/ecolens/internal/classifier"
	"github.com/ecoally/ecolens/internal/imaging"
	"github.com/ecoally/ecolens/internal/logging"
)

const (
	defaultTimeout = 30 * time.Second
	uploadQuality  = 85
)

// Client calls a remote model server over HTTP. The server receives a JPEG
// and answers with a probability vector plus a flag telling whether a
// fine-tuned eco head produced it.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient returns a ready-to-use classifier client for the model server.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("inference_client"),
	}
}

type predictResponse struct {
	Probs     []float64 `json:"probs"`
	FineTuned bool      `json:"finetuned"`
}

// Predict submits the raster for classification.
func (c *Client) Predict(ctx context.Context, img *imaging.Image) (classifier.Prediction, error) {
	data, err := img.EncodeJPEG(uploadQuality)
	if err != nil {
		return classifier.Prediction{}, logging.NewOperationError("inference.encode_image", "", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(data))
	if err != nil {
		return classifier.Prediction{}, logging.NewOperationError("inference.predict", "", err)
	}
	req.Header.Set("Content-Type", "image/jpeg")

	resp, err := c.client.Do(req)
	if err != nil {
		wrapped := logging.NewOperationError("inference.predict", "", err)
		c.logger.Error("model server call failed", zap.Error(wrapped))
		return classifier.Prediction{}, wrapped
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("model server returned HTTP %d", resp.StatusCode)
		return classifier.Prediction{}, logging.NewOperationError("inference.predict", "", err)
	}

	var payload predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return classifier.Prediction{}, logging.NewOperationError("inference.decode_response", "", err)
	}

	return classifier.Prediction{Probs: payload.Probs, FineTuned: payload.FineTuned}, nil
}

// Info reports which model the server is running.
func (c *Client) Info(ctx context.Context) (classifier.ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/model", nil)
	if err != nil {
		return classifier.ModelInfo{}, logging.NewOperationError("inference.model_info", "", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return classifier.ModelInfo{}, logging.NewOperationError("inference.model_info", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("model server returned HTTP %d", resp.StatusCode)
		return classifier.ModelInfo{}, logging.NewOperationError("inference.model_info", "", err)
	}

	var info classifier.ModelInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return classifier.ModelInfo{}, logging.NewOperationError("inference.model_info", "", err)
	}
	return info, nil
}
