// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package vision analyzes stored images through the Azure Computer Vision
// v3.2 analyze API, returning a one-sentence caption and a tag list. Both
// feed the curation engine; analysis failures degrade to empty values so a
// post page still renders.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Analysis is the distilled result of an image analysis call.
type Analysis struct {
	Caption string
	Tags    []string
}

// Client calls the Azure Computer Vision analyze endpoint.
type Client struct {
	endpoint string
	key      string
	client   *http.Client
}

// New creates a vision client. Returns nil if endpoint or key is empty,
// allowing the app to run without image analysis.
func New(endpoint, key string) *Client {
	if endpoint == "" || key == "" {
		return nil
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Analyze submits an image URL for description and tagging. The caption is
// the highest-confidence description; tags keep the API's confidence order.
func (c *Client) Analyze(ctx context.Context, imageURL string) (*Analysis, error) {
	payload, err := json.Marshal(analyzeRequest{URL: imageURL})
	if err != nil {
		return nil, fmt.Errorf("vision marshal: %w", err)
	}

	url := c.endpoint + "/vision/v3.2/analyze?visualFeatures=Description,Tags"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("vision request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vision http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("vision read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result analyzeResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("vision unmarshal: %w", err)
	}

	a := &Analysis{}
	if len(result.Description.Captions) > 0 {
		a.Caption = result.Description.Captions[0].Text
	}
	for _, t := range result.Tags {
		a.Tags = append(a.Tags, t.Name)
	}
	return a, nil
}

type analyzeRequest struct {
	URL string `json:"url"`
}

type analyzeResponse struct {
	Description struct {
		Captions []struct {
			Text       string  `json:"text"`
			Confidence float64 `json:"confidence"`
		} `json:"captions"`
	} `json:"description"`
	Tags []struct {
		Name       string  `json:"name"`
		Confidence float64 `json:"confidence"`
	} `json:"tags"`
}
