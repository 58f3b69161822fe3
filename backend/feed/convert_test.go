package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vetorre/backend/gemini"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// extractionStub answers every gateway call with the given model text.
func extractionStub(text string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"text": text})
	}))
}

func TestToToolUsesExtraction(t *testing.T) {
	srv := extractionStub(`{"name":"FlowPaint","description":"Paints flows","category":"Image","tags":["art","design","flow"],"price":"Freemium"}`)
	defer srv.Close()

	converter := NewConverter(gemini.NewClient(srv.URL, nil))
	item := Item{ID: "rss-0", Title: "A new painting tool appears", Description: "Some long feed text"}

	tool, err := converter.ToTool(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, "FlowPaint", tool.Name)
	assert.Equal(t, "Image", tool.Category)
	assert.Equal(t, "Freemium", tool.Price)
	assert.Equal(t, "#", tool.Website)
	assert.Contains(t, tool.ImageURL, "picsum.photos")
}

func TestToToolFallbacks(t *testing.T) {
	// Unparseable extraction leaves every field empty; the raw item fills in
	srv := extractionStub("the model rambled instead of answering")
	defer srv.Close()

	converter := NewConverter(gemini.NewClient(srv.URL, nil))
	item := Item{ID: "rss-0", Title: "Raw title", Description: "Raw description"}

	tool, err := converter.ToTool(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, "Raw title", tool.Name)
	assert.Equal(t, "Raw description", tool.Description)
	assert.Equal(t, "News", tool.Category)
	assert.Equal(t, "Unknown", tool.Price)
	assert.Equal(t, []string{"RSS"}, []string(tool.Tags))
}

func TestToArticleFallbacks(t *testing.T) {
	srv := extractionStub("nothing useful")
	defer srv.Close()

	converter := NewConverter(gemini.NewClient(srv.URL, nil))
	item := Item{ID: "rss-3", Title: "Launch day", Description: "It launched"}

	article, err := converter.ToArticle(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, "Launch day", article.Title)
	assert.Equal(t, "It launched", article.Content)
	assert.Equal(t, "Tech News", article.Category)
	assert.Equal(t, "RSS Feed", article.Source)
}

func TestPreviewArticleID(t *testing.T) {
	srv := extractionStub(`{"title":"Preview me","content":"Body"}`)
	defer srv.Close()

	converter := NewConverter(gemini.NewClient(srv.URL, nil))
	article, err := converter.PreviewArticle(context.Background(), Item{ID: "rss-7", Title: "t", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, "preview-rss-7", article.ID)
}
