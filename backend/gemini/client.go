// Package gemini is the generation gateway. Every call goes through a
// single HTTP proxy endpoint accepting {task, model, contents|prompt,
// config} and returning provider-shaped JSON. Callers get typed results;
// the raw response shape is normalized at this boundary only.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	ModelFlash     = "gemini-2.5-flash"
	ModelPro       = "gemini-3-pro-preview"
	ModelImage     = "gemini-3-pro-image-preview"
	ModelImageEdit = "gemini-2.5-flash-image"
	ModelTTS       = "gemini-2.5-flash-preview-tts"
	ModelVideo     = "veo-3.1-fast-generate-preview"
)

type Client struct {
	proxyURL   string
	httpClient *http.Client
	logger     *log.Logger
}

func NewClient(proxyURL string, logger *log.Logger) *Client {
	return &Client{
		proxyURL:   proxyURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		logger:     logger,
	}
}

// Request mirrors the proxy payload one to one.
type Request struct {
	Task          string         `json:"task"`
	Model         string         `json:"model,omitempty"`
	Contents      any            `json:"contents,omitempty"`
	Config        map[string]any `json:"config,omitempty"`
	Prompt        string         `json:"prompt,omitempty"`
	Image         any            `json:"image,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

// Response is the provider-shaped result. Only the fields the app reads
// are declared; everything else is dropped at the boundary.
type Response struct {
	Text       string          `json:"text"`
	Candidates []Candidate     `json:"candidates"`
	Name       string          `json:"name"`
	Done       bool            `json:"done"`
	Result     json.RawMessage `json:"response"`
	Error      string          `json:"error"`
}

type Candidate struct {
	Content struct {
		Parts []Part `json:"parts"`
	} `json:"content"`
}

type Part struct {
	Text       string      `json:"text"`
	InlineData *InlineData `json:"inlineData"`
}

type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// FirstText normalizes the two places the provider may put text output.
func (r *Response) FirstText() string {
	if r.Text != "" {
		return r.Text
	}
	if len(r.Candidates) > 0 && len(r.Candidates[0].Content.Parts) > 0 {
		return r.Candidates[0].Content.Parts[0].Text
	}
	return ""
}

// FirstInlineData returns the first inline payload (image or audio bytes).
func (r *Response) FirstInlineData() *InlineData {
	for _, cand := range r.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil {
				return part.InlineData
			}
		}
	}
	return nil
}

func (c *Client) call(ctx context.Context, payload Request) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.proxyURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var out Response
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Error payloads are {error: "..."}; fall back to the status code.
		if json.Unmarshal(raw, &out) == nil && out.Error != "" {
			return nil, fmt.Errorf("%s", out.Error)
		}
		return nil, fmt.Errorf("server error: %d", resp.StatusCode)
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) warnf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf("gemini: "+format, args...)
	}
}

// textParts wraps a prompt into the structured contents shape.
func textParts(prompt string) map[string]any {
	return map[string]any{
		"parts": []map[string]any{{"text": prompt}},
	}
}

// searchGrounding enables the provider's search tool. Structured output
// mode cannot be combined with it, so grounded calls return free text and
// go through the JSON salvage step.
func searchGrounding() map[string]any {
	return map[string]any{
		"tools": []map[string]any{{"googleSearch": map[string]any{}}},
	}
}
