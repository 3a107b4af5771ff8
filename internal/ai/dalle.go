// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ImageClient generates images through the OpenAI images API (DALL-E).
// The API returns a short-lived hosted URL; callers are expected to
// download and re-store the image before the URL expires.
type ImageClient struct {
	config ProviderConfig
	client *http.Client
}

// NewImageClient creates a DALL-E image client.
func NewImageClient(cfg ProviderConfig) *ImageClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "dall-e-3"
	}
	return &ImageClient{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// SynthesizeURL renders a single image for the prompt and returns the
// transient URL where the provider hosts the result.
func (c *ImageClient) SynthesizeURL(ctx context.Context, prompt string) (string, error) {
	body := imageRequest{
		Model:          c.config.Model,
		Prompt:         prompt,
		N:              1,
		ResponseFormat: "url",
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("dalle marshal: %w", err)
	}

	url := c.config.BaseURL + "/images/generations"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("dalle request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("dalle http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("dalle read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("dalle API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result imageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("dalle unmarshal: %w", err)
	}

	if len(result.Data) == 0 || result.Data[0].URL == "" {
		return "", fmt.Errorf("dalle: no image returned")
	}

	return result.Data[0].URL, nil
}

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	ResponseFormat string `json:"response_format"`
}

type imageResponse struct {
	Data []imageDatum `json:"data"`
}

type imageDatum struct {
	URL string `json:"url"`
}
