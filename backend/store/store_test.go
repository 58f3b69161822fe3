package store

import (
	"context"
	"testing"
	"time"

	"vetorre/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	s := NewGormStore(db)
	require.NoError(t, s.Migrate())
	return s
}

func TestCreateToolAssignsID(t *testing.T) {
	s := newSQLiteStore(t)
	tool := models.Tool{ID: "gen-123-0", Name: "X", Description: "Y"}
	require.NoError(t, s.CreateTool(context.Background(), &tool))

	// Synthetic draft ids never survive persistence
	assert.NotEqual(t, "gen-123-0", tool.ID)
	assert.NotEmpty(t, tool.ID)
}

func TestToolsNewestFirst(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	first := models.Tool{Name: "First", Description: "d", CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, s.CreateTool(ctx, &first))
	second := models.Tool{Name: "Second", Description: "d"}
	require.NoError(t, s.CreateTool(ctx, &second))

	tools, err := s.Tools(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, "Second", tools[0].Name)
}

func TestArticleDateDefaultsOnCreate(t *testing.T) {
	s := newSQLiteStore(t)
	article := models.Article{Title: "T", Content: "C"}
	require.NoError(t, s.CreateArticle(context.Background(), &article))
	assert.False(t, article.Date.IsZero())
}

func TestSubscribeSignalsOnMutation(t *testing.T) {
	s := newSQLiteStore(t)
	ch, cancel := s.Subscribe(CollectionTools)
	defer cancel()

	tool := models.Tool{Name: "X", Description: "Y"}
	require.NoError(t, s.CreateTool(context.Background(), &tool))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a change signal after create")
	}

	require.NoError(t, s.DeleteTool(context.Background(), tool.ID))
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a change signal after delete")
	}
}

func TestSubscribeIsPerCollection(t *testing.T) {
	s := newSQLiteStore(t)
	ch, cancel := s.Subscribe(CollectionArticles)
	defer cancel()

	tool := models.Tool{Name: "X", Description: "Y"}
	require.NoError(t, s.CreateTool(context.Background(), &tool))

	select {
	case <-ch:
		t.Fatal("tool mutations must not signal article subscribers")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCancelStopsSignals(t *testing.T) {
	s := newSQLiteStore(t)
	ch, cancel := s.Subscribe(CollectionTools)
	cancel()

	tool := models.Tool{Name: "X", Description: "Y"}
	require.NoError(t, s.CreateTool(context.Background(), &tool))

	select {
	case <-ch:
		t.Fatal("cancelled subscription must not receive signals")
	case <-time.After(50 * time.Millisecond):
	}
}
