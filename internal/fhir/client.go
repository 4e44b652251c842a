package fhir

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/glucotrack/glucotrack/internal/config"
	apperrors "github.com/glucotrack/glucotrack/internal/errors"
)

// Client registers patients with the external identity service (a HAPI FHIR
// server). It is a pure adapter: no local state, one call per registration.
// Timeouts and connection failures collapse into a single upstream outcome;
// callers retry the whole operation or give up, never this call alone.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.FHIRConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

type patientName struct {
	Use    string   `json:"use"`
	Family string   `json:"family"`
	Given  []string `json:"given"`
}

type patientResource struct {
	ResourceType string        `json:"resourceType"`
	Name         []patientName `json:"name"`
	BirthDate    string        `json:"birthDate"`
}

// RegisterPatient creates a Patient resource and returns the raw response
// payload. The payload is retained verbatim for audit and never parsed.
func (c *Client) RegisterPatient(ctx context.Context, firstName, lastName, dob string) ([]byte, error) {
	patient := patientResource{
		ResourceType: "Patient",
		Name: []patientName{
			{Use: "official", Family: lastName, Given: []string{firstName}},
		},
		BirthDate: dob,
	}

	body, err := json.Marshal(patient)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/Patient", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/fhir+json")
	req.Header.Set("Accept", "application/fhir+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError(err, "patient identity service")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUpstreamError(err, "patient identity service")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewUpstreamError(
			fmt.Errorf("unexpected status %d", resp.StatusCode),
			"patient identity service",
		).WithContext("status_code", resp.StatusCode)
	}

	return payload, nil
}
