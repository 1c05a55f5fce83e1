package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ecoally/ecolens/internal/logging"
)

const geocodeTimeout = 5 * time.Second

// DefaultBigDataCloudURL is the keyless reverse-geocode endpoint used as the
// primary provider.
const DefaultBigDataCloudURL = "https://api.bigdatacloud.net/data/reverse-geocode-client"

// DefaultOpenCageURL is the secondary provider endpoint; it needs an API key.
const DefaultOpenCageURL = "https://api.opencagedata.com/geocode/v1/json"

// BigDataCloudClient is the primary reverse geocoder. No API key required.
type BigDataCloudClient struct {
	baseURL string
	client  *http.Client
}

func NewBigDataCloudClient(baseURL string) *BigDataCloudClient {
	if baseURL == "" {
		baseURL = DefaultBigDataCloudURL
	}
	return &BigDataCloudClient{baseURL: baseURL, client: &http.Client{}}
}

func (c *BigDataCloudClient) CountryCode(ctx context.Context, lat, lng float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()

	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%v", lat))
	query.Set("longitude", fmt.Sprintf("%v", lng))
	query.Set("localityLanguage", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", logging.NewOperationError("geo.bigdatacloud", "", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", logging.NewOperationError("geo.bigdatacloud", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("geocoder returned HTTP %d", resp.StatusCode)
		return "", logging.NewOperationError("geo.bigdatacloud", "", err)
	}

	var payload struct {
		CountryCode string `json:"countryCode"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", logging.NewOperationError("geo.bigdatacloud", "", err)
	}
	if payload.CountryCode == "" {
		return "", errors.New("geocoder returned empty country code")
	}
	return payload.CountryCode, nil
}

// OpenCageClient is the optional secondary reverse geocoder.
type OpenCageClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOpenCageClient(apiKey, baseURL string) *OpenCageClient {
	if baseURL == "" {
		baseURL = DefaultOpenCageURL
	}
	return &OpenCageClient{apiKey: apiKey, baseURL: baseURL, client: &http.Client{}}
}

func (c *OpenCageClient) CountryCode(ctx context.Context, lat, lng float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()

	query := url.Values{}
	query.Set("q", fmt.Sprintf("%v+%v", lat, lng))
	query.Set("key", c.apiKey)
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", logging.NewOperationError("geo.opencage", "", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", logging.NewOperationError("geo.opencage", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("geocoder returned HTTP %d", resp.StatusCode)
		return "", logging.NewOperationError("geo.opencage", "", err)
	}

	var payload struct {
		Results []struct {
			Components struct {
				CountryCode string `json:"ISO_3166-1_alpha-2"`
			} `json:"components"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", logging.NewOperationError("geo.opencage", "", err)
	}
	if len(payload.Results) == 0 || payload.Results[0].Components.CountryCode == "" {
		return "", errors.New("geocoder returned no results")
	}
	return payload.Results[0].Components.CountryCode, nil
}
