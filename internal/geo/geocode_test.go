package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBigDataCloudCountryCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("latitude") != "19.07" || q.Get("longitude") != "72.87" {
			t.Errorf("unexpected coordinates %s,%s", q.Get("latitude"), q.Get("longitude"))
		}
		if q.Get("localityLanguage") != "en" {
			t.Errorf("expected localityLanguage=en, got %q", q.Get("localityLanguage"))
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"countryCode": "IN"})
	}))
	defer server.Close()

	client := NewBigDataCloudClient(server.URL)
	code, err := client.CountryCode(context.Background(), 19.07, 72.87)
	if err != nil {
		t.Fatalf("CountryCode returned error: %v", err)
	}
	if code != "IN" {
		t.Fatalf("expected IN, got %q", code)
	}
}

func TestBigDataCloudEmptyCountryCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"countryCode": ""})
	}))
	defer server.Close()

	client := NewBigDataCloudClient(server.URL)
	if _, err := client.CountryCode(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error for empty country code")
	}
}

func TestBigDataCloudServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewBigDataCloudClient(server.URL)
	if _, err := client.CountryCode(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error for HTTP 503 response")
	}
}

func TestOpenCageCountryCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key := r.URL.Query().Get("key"); key != "oc-key" {
			t.Errorf("expected key query param, got %q", key)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"components": map[string]string{"ISO_3166-1_alpha-2": "GB"}},
			},
		})
	}))
	defer server.Close()

	client := NewOpenCageClient("oc-key", server.URL)
	code, err := client.CountryCode(context.Background(), 51.5, -0.1)
	if err != nil {
		t.Fatalf("CountryCode returned error: %v", err)
	}
	if code != "GB" {
		t.Fatalf("expected GB, got %q", code)
	}
}

func TestOpenCageNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	}))
	defer server.Close()

	client := NewOpenCageClient("oc-key", server.URL)
	if _, err := client.CountryCode(context.Background(), 51.5, -0.1); err == nil {
		t.Fatal("expected error for empty result set")
	}
}
