// Package feed pulls items from an external RSS feed through a
// CORS-bypassing proxy and converts single items into tool or article
// drafts via the generation gateway.
package feed

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	MinItems = 1
	MaxItems = 50
)

// Item is one reduced feed entry.
type Item struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Fetcher struct {
	proxyURL   string
	httpClient *http.Client
}

func NewFetcher(proxyURL string) *Fetcher {
	return &Fetcher{
		proxyURL:   proxyURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// proxyEnvelope is the CORS proxy's response wrapper.
type proxyEnvelope struct {
	Contents string `json:"contents"`
}

type rssDocument struct {
	Channel struct {
		Items []struct {
			Title       string `xml:"title"`
			Description string `xml:"description"`
		} `xml:"item"`
	} `xml:"channel"`
}

// Fetch retrieves the feed, truncates to maxItems (clamped to [1,50]) and
// assigns sequential synthetic ids. Network and parse failures share one
// generic error on purpose; the cause is wrapped for callers that care.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string, maxItems int) ([]Item, error) {
	if maxItems < MinItems {
		maxItems = MinItems
	}
	if maxItems > MaxItems {
		maxItems = MaxItems
	}

	target := f.proxyURL + "?url=" + url.QueryEscape(feedURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fetchErr(err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fetchErr(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fetchErr(err)
	}

	var envelope proxyEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fetchErr(err)
	}
	if envelope.Contents == "" {
		return nil, fetchErr(fmt.Errorf("empty proxy response"))
	}

	var doc rssDocument
	if err := xml.Unmarshal([]byte(envelope.Contents), &doc); err != nil {
		return nil, fetchErr(err)
	}

	raw := doc.Channel.Items
	if len(raw) > maxItems {
		raw = raw[:maxItems]
	}

	items := make([]Item, 0, len(raw))
	for i, entry := range raw {
		items = append(items, Item{
			ID:          fmt.Sprintf("rss-%d", i),
			Title:       entry.Title,
			Description: entry.Description,
		})
	}
	return items, nil
}

func fetchErr(cause error) error {
	return fmt.Errorf("failed to fetch feed: %w", cause)
}
