// Package store is the content store gateway: CRUD over the two entity
// collections plus a push-based change feed that tells subscribers to
// re-fetch. The GORM implementation is the single source of truth for
// published tools and articles.
package store

import (
	"context"
	"sync"
	"time"

	"vetorre/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CollectionTools    = "tools"
	CollectionArticles = "articles"
)

// ContentStore abstracts persistence for tools and articles. Errors come
// back as plain messages, there are no structured error codes at this layer.
type ContentStore interface {
	Tools(ctx context.Context) ([]models.Tool, error)
	CreateTool(ctx context.Context, tool *models.Tool) error
	UpdateTool(ctx context.Context, id string, tool *models.Tool) error
	DeleteTool(ctx context.Context, id string) error

	Articles(ctx context.Context) ([]models.Article, error)
	CreateArticle(ctx context.Context, article *models.Article) error
	UpdateArticle(ctx context.Context, id string, article *models.Article) error
	DeleteArticle(ctx context.Context, id string) error

	// Subscribe returns a channel that receives a signal after every
	// successful mutation of the named collection. The returned func
	// cancels the subscription.
	Subscribe(collection string) (<-chan struct{}, func())
}

// GormStore implements ContentStore on a relational database.
type GormStore struct {
	db       *gorm.DB
	notifier *notifier
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, notifier: newNotifier()}
}

// Migrate creates the tables for all persisted models.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&models.User{}, &models.Tool{}, &models.Article{})
}

func (s *GormStore) Tools(ctx context.Context) ([]models.Tool, error) {
	var tools []models.Tool
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&tools).Error
	return tools, err
}

func (s *GormStore) CreateTool(ctx context.Context, tool *models.Tool) error {
	// The store assigns the id; an empty id means "not yet persisted" and
	// any synthetic draft id is discarded here.
	tool.ID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(tool).Error; err != nil {
		return err
	}
	s.notifier.broadcast(CollectionTools)
	return nil
}

func (s *GormStore) UpdateTool(ctx context.Context, id string, tool *models.Tool) error {
	tool.ID = id
	if err := s.db.WithContext(ctx).Save(tool).Error; err != nil {
		return err
	}
	s.notifier.broadcast(CollectionTools)
	return nil
}

func (s *GormStore) DeleteTool(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&models.Tool{}, "id = ?", id).Error; err != nil {
		return err
	}
	s.notifier.broadcast(CollectionTools)
	return nil
}

func (s *GormStore) Articles(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.WithContext(ctx).Order("date DESC").Find(&articles).Error
	return articles, err
}

func (s *GormStore) CreateArticle(ctx context.Context, article *models.Article) error {
	article.ID = uuid.NewString()
	if article.Date.IsZero() {
		article.Date = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(article).Error; err != nil {
		return err
	}
	s.notifier.broadcast(CollectionArticles)
	return nil
}

func (s *GormStore) UpdateArticle(ctx context.Context, id string, article *models.Article) error {
	article.ID = id
	if err := s.db.WithContext(ctx).Save(article).Error; err != nil {
		return err
	}
	s.notifier.broadcast(CollectionArticles)
	return nil
}

func (s *GormStore) DeleteArticle(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&models.Article{}, "id = ?", id).Error; err != nil {
		return err
	}
	s.notifier.broadcast(CollectionArticles)
	return nil
}

func (s *GormStore) Subscribe(collection string) (<-chan struct{}, func()) {
	return s.notifier.subscribe(collection)
}

// notifier fans out change signals per collection. Sends never block: a
// subscriber that has not drained its channel keeps the single pending
// signal, which is enough because consumers re-fetch the full snapshot.
type notifier struct {
	mu   sync.Mutex
	subs map[string]map[int]chan struct{}
	next int
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string]map[int]chan struct{})}
}

func (n *notifier) subscribe(collection string) (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs[collection] == nil {
		n.subs[collection] = make(map[int]chan struct{})
	}
	id := n.next
	n.next++
	ch := make(chan struct{}, 1)
	n.subs[collection][id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs[collection], id)
	}
	return ch, cancel
}

func (n *notifier) broadcast(collection string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
