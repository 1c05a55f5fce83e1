package species

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"go.uber.org/zap"

	"github.com/ecoally/ecolens/internal/logging"
)

// DefaultPlantNetURL is the production identify endpoint.
const DefaultPlantNetURL = "https://my-api.plantnet.org/v2/identify/all"

// PlantNetClient implements Lookup against the PlantNet v2 identify API.
// The request is a multipart POST carrying the JPEG and an organs field; the
// API key travels as a query parameter.
type PlantNetClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewPlantNetClient(apiKey, baseURL string, logger *zap.Logger) *PlantNetClient {
	if baseURL == "" {
		baseURL = DefaultPlantNetURL
	}
	return &PlantNetClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{},
		logger:  logger.Named("plantnet_client"),
	}
}

type plantNetSpecies struct {
	ScientificNameWithoutAuthor string   `json:"scientificNameWithoutAuthor"`
	CommonNames                 []string `json:"commonNames"`
}

type plantNetResult struct {
	Score   float64         `json:"score"`
	Species plantNetSpecies `json:"species"`
}

type plantNetResponse struct {
	Results []plantNetResult `json:"results"`
}

// Identify submits the JPEG and returns the ranked matches. The caller owns
// the timeout via ctx.
func (c *PlantNetClient) Identify(ctx context.Context, jpegData []byte) ([]Match, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="images"; filename="photo.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, logging.NewOperationError("plantnet.build_request", "", err)
	}
	if _, err := part.Write(jpegData); err != nil {
		return nil, logging.NewOperationError("plantnet.build_request", "", err)
	}
	if err := writer.WriteField("organs", "auto"); err != nil {
		return nil, logging.NewOperationError("plantnet.build_request", "", err)
	}
	if err := writer.Close(); err != nil {
		return nil, logging.NewOperationError("plantnet.build_request", "", err)
	}

	query := url.Values{}
	query.Set("api-key", c.apiKey)
	query.Set("include-related-images", "false")
	query.Set("lang", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"?"+query.Encode(), body)
	if err != nil {
		return nil, logging.NewOperationError("plantnet.build_request", "", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, logging.NewOperationError("plantnet.identify", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("plantnet returned HTTP %d", resp.StatusCode)
		return nil, logging.NewOperationError("plantnet.identify", "", err)
	}

	var payload plantNetResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, logging.NewOperationError("plantnet.decode_response", "", err)
	}

	matches := make([]Match, 0, len(payload.Results))
	for _, r := range payload.Results {
		matches = append(matches, Match{
			ScientificName: r.Species.ScientificNameWithoutAuthor,
			CommonNames:    r.Species.CommonNames,
			Score:          r.Score,
		})
	}
	c.logger.Debug("plantnet identify complete", zap.Int("matches", len(matches)))
	return matches, nil
}
