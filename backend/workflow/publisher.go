// Package workflow validates and persists tools and articles, as creates
// or updates, and implements the optimistic delete with rollback — the one
// compensating-action pattern in the system.
package workflow

import (
	"context"
	"errors"
	"time"

	"vetorre/backend/models"
	"vetorre/backend/store"
)

var (
	ErrToolInvalid    = errors.New("tool requires a name and a description")
	ErrArticleInvalid = errors.New("article requires a title and content")
)

type Publisher struct {
	store store.ContentStore
}

func NewPublisher(s store.ContentStore) *Publisher {
	return &Publisher{store: s}
}

// CreateTool fills defaults and persists a new tool. Gateway errors pass
// through verbatim; there are no retries.
func (p *Publisher) CreateTool(ctx context.Context, tool *models.Tool) error {
	if tool.Name == "" || tool.Description == "" {
		return ErrToolInvalid
	}
	applyToolDefaults(tool)
	return p.store.CreateTool(ctx, tool)
}

func (p *Publisher) UpdateTool(ctx context.Context, id string, tool *models.Tool) error {
	if tool.Name == "" || tool.Description == "" {
		return ErrToolInvalid
	}
	applyToolDefaults(tool)
	return p.store.UpdateTool(ctx, id, tool)
}

// DeleteTool removes the entity from the mirror immediately, then calls
// the gateway. On failure the previous snapshot is restored and the error
// is returned for the caller to surface.
func (p *Publisher) DeleteTool(ctx context.Context, mirror *store.Mirror[models.Tool], id string) error {
	restore, ok := mirror.Remove(id)
	if !ok {
		return p.store.DeleteTool(ctx, id)
	}
	if err := p.store.DeleteTool(ctx, id); err != nil {
		restore()
		return err
	}
	return nil
}

func (p *Publisher) CreateArticle(ctx context.Context, article *models.Article) error {
	if article.Title == "" || article.Content == "" {
		return ErrArticleInvalid
	}
	applyArticleDefaults(article)
	article.Date = time.Now()
	return p.store.CreateArticle(ctx, article)
}

// UpdateArticle resets the publication date: dates are not preserved
// across edits.
func (p *Publisher) UpdateArticle(ctx context.Context, id string, article *models.Article) error {
	if article.Title == "" || article.Content == "" {
		return ErrArticleInvalid
	}
	applyArticleDefaults(article)
	article.Date = time.Now()
	return p.store.UpdateArticle(ctx, id, article)
}

func (p *Publisher) DeleteArticle(ctx context.Context, mirror *store.Mirror[models.Article], id string) error {
	restore, ok := mirror.Remove(id)
	if !ok {
		return p.store.DeleteArticle(ctx, id)
	}
	if err := p.store.DeleteArticle(ctx, id); err != nil {
		restore()
		return err
	}
	return nil
}
