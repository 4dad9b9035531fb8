// Package ons fetches published time series from the ONS API. The pipeline
// consumes only the monthly observations of one index series, filtered to a
// single reference month per year.
package ons

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cspspay/internal/dataset"
	ierrors "cspspay/internal/errors"
)

// Client calls the ONS time series API. Unavailability is terminal for the
// run; there is no retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the given API base URL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// timeseriesResponse mirrors the months block of the ONS time series
// payload. All fields arrive as strings.
type timeseriesResponse struct {
	Months []struct {
		Date  string `json:"date"`
		Month string `json:"month"`
		Year  string `json:"year"`
		Value string `json:"value"`
	} `json:"months"`
}

// MonthlySeries fetches every monthly observation of the series.
func (c *Client) MonthlySeries(ctx context.Context, seriesID, datasetID string) ([]dataset.CPIObservation, error) {
	url := fmt.Sprintf("%s/timeseries/%s/dataset/%s/data", c.baseURL, seriesID, datasetID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build ONS request: %w", err)
	}

	c.logger.InfoContext(ctx, "fetching ONS time series",
		"series", seriesID,
		"dataset", datasetID,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ierrors.Newf(ierrors.CodeSourceUnavailable, "ONS API unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ierrors.Newf(ierrors.CodeSourceUnavailable,
			"ONS API returned status %d for series %s", resp.StatusCode, seriesID)
	}

	var payload timeseriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode ONS response: %w", err)
	}

	observations := make([]dataset.CPIObservation, 0, len(payload.Months))
	for _, m := range payload.Months {
		year, err := strconv.Atoi(strings.TrimSpace(m.Year))
		if err != nil {
			c.logger.WarnContext(ctx, "skipping observation with unparseable year",
				"date", m.Date,
				"year", m.Year,
			)
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(m.Value), 64)
		if err != nil {
			c.logger.WarnContext(ctx, "skipping observation with unparseable value",
				"date", m.Date,
				"value", m.Value,
			)
			continue
		}
		observations = append(observations, dataset.CPIObservation{
			Year:  year,
			Month: m.Month,
			Value: value,
		})
	}

	c.logger.InfoContext(ctx, "fetched ONS time series",
		"series", seriesID,
		"observations", len(observations),
	)
	return observations, nil
}

// FilterMonth restricts observations to one calendar month and an inclusive
// year range. Zero bounds leave that end open.
func FilterMonth(observations []dataset.CPIObservation, month string, minYear, maxYear int) []dataset.CPIObservation {
	out := make([]dataset.CPIObservation, 0, len(observations))
	for _, obs := range observations {
		if !strings.EqualFold(obs.Month, month) {
			continue
		}
		if minYear != 0 && obs.Year < minYear {
			continue
		}
		if maxYear != 0 && obs.Year > maxYear {
			continue
		}
		out = append(out, obs)
	}
	return out
}
