package store

import (
	"context"
	"log"

	"vetorre/backend/models"
)

// SyncTools does an initial snapshot fetch into the mirror and then
// re-fetches on every change signal until ctx is cancelled. Run it in its
// own goroutine.
func SyncTools(ctx context.Context, cs ContentStore, m *Mirror[models.Tool], logger *log.Logger) {
	refresh := func() {
		tools, err := cs.Tools(ctx)
		if err != nil {
			if logger != nil {
				logger.Printf("WARN: tools mirror refresh failed: %v", err)
			}
			return
		}
		m.Replace(tools)
	}

	ch, cancel := cs.Subscribe(CollectionTools)
	defer cancel()

	refresh()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ch:
			refresh()
		}
	}
}

// SyncArticles mirrors the articles collection the same way.
func SyncArticles(ctx context.Context, cs ContentStore, m *Mirror[models.Article], logger *log.Logger) {
	refresh := func() {
		articles, err := cs.Articles(ctx)
		if err != nil {
			if logger != nil {
				logger.Printf("WARN: articles mirror refresh failed: %v", err)
			}
			return
		}
		m.Replace(articles)
	}

	ch, cancel := cs.Subscribe(CollectionArticles)
	defer cancel()

	refresh()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ch:
			refresh()
		}
	}
}
