// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package speech converts image captions to spoken audio through the Azure
// Speech text-to-speech REST API. Output is 16kHz mono WAV suitable for
// direct download.
package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const outputFormat = "riff-16khz-16bit-mono-pcm"

// Client calls the Azure Speech synthesis endpoint.
type Client struct {
	endpoint string
	key      string
	voice    string
	client   *http.Client
}

// New creates a speech client. Returns nil if endpoint or key is empty,
// allowing the app to run without text-to-speech.
func New(endpoint, key, voice string) *Client {
	if endpoint == "" || key == "" {
		return nil
	}
	if voice == "" {
		voice = "ko-KR-SunHiNeural"
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		voice:    voice,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Synthesize renders text with the configured voice and returns WAV bytes.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	ssml := fmt.Sprintf(
		`<speak version='1.0' xml:lang='ko-KR'><voice name='%s'>%s</voice></speak>`,
		c.voice, escapeSSML(text),
	)

	url := c.endpoint + "/cognitiveservices/v1"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(ssml))
	if err != nil {
		return nil, fmt.Errorf("speech request: %w", err)
	}

	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("X-Microsoft-OutputFormat", outputFormat)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("speech read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech API error (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// escapeSSML escapes characters with meaning in XML so captions cannot
// break the SSML envelope.
func escapeSSML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
