package controllers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vetorre/backend/config"
	"vetorre/backend/feed"
	"vetorre/backend/gemini"
	"vetorre/backend/models"
	"vetorre/backend/store"
	"vetorre/backend/utils"
	"vetorre/backend/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app       *fiber.App
	db        *gorm.DB
	cfg       *config.Config
	store     *store.GormStore
	tools     *store.Mirror[models.Tool]
	news      *store.Mirror[models.Article]
	publisher *workflow.Publisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	contentStore := store.NewGormStore(db)
	require.NoError(t, contentStore.Migrate())

	cfg := &config.Config{
		JWTSecret:      "testsecret",
		CheckoutSecret: "checkout-secret",
		ProgressDir:    t.TempDir(),
	}

	return &testEnv{
		app:       fiber.New(),
		db:        db,
		cfg:       cfg,
		store:     contentStore,
		tools:     store.NewMirror(func(tl models.Tool) string { return tl.ID }),
		news:      store.NewMirror(func(a models.Article) string { return a.ID }),
		publisher: workflow.NewPublisher(contentStore),
	}
}

// asUser injects an authenticated user id, standing in for the JWT
// middleware so handler behavior is tested in isolation.
func asUser(id uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", id)
		return c.Next()
	}
}

func (e *testEnv) createUser(t *testing.T, username, role, plan string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
		Plan:         plan,
	}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestRegisterAndLogin(t *testing.T) {
	e := newTestEnv(t)
	ctrl := NewAuthController(e.db, e.cfg)
	e.app.Post("/api/auth/register", ctrl.Register)
	e.app.Post("/api/auth/login", ctrl.Login)

	var result map[string]interface{}
	code := doJSON(t, e.app, "POST", "/api/auth/register", map[string]string{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "password123",
	}, &result)
	assert.Equal(t, fiber.StatusOK, code)
	assert.NotEmpty(t, result["token"])

	// The stored hash must verify against the password that was submitted
	var stored models.User
	require.NoError(t, e.db.Where("username = ?", "newuser").First(&stored).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("")))

	// Login round trip with the credentials used at registration
	result = nil
	code = doJSON(t, e.app, "POST", "/api/auth/login", map[string]string{
		"username": "newuser",
		"password": "password123",
	}, &result)
	assert.Equal(t, fiber.StatusOK, code)
	assert.NotEmpty(t, result["token"])

	code = doJSON(t, e.app, "POST", "/api/auth/login", map[string]string{
		"username": "newuser",
		"password": "wrong",
	}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code = doJSON(t, e.app, "POST", "/api/auth/register", map[string]string{
		"username": "nopassword",
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestGetProfileReportsPlanLimits(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, "starterfan", "user", models.PlanStarter)

	token, err := utils.GenerateJWTToken(user.ID, e.cfg)
	require.NoError(t, err)

	ctrl := NewUserController(e.db, e.cfg)
	e.app.Get("/api/user/profile", ctrl.GetProfile)

	req := httptest.NewRequest("GET", "/api/user/profile", nil)
	req.Header.Set("Authorization", token)
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result utils.SuccessResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	data := result.Data.(map[string]interface{})
	assert.Equal(t, "starter", data["plan"])
	generations := data["generations"].(map[string]interface{})
	assert.Equal(t, float64(100), generations["limit"])
}

func TestToolsListAndFilters(t *testing.T) {
	e := newTestEnv(t)
	e.tools.Replace([]models.Tool{
		{ID: "1", Name: "Painter", Category: "Image", Price: "Free"},
		{ID: "2", Name: "Writer", Category: "Writing", Price: "Paid ($20/mo)"},
		{ID: "3", Name: "Editor", Category: "Writing", Price: "Freemium"},
	})

	ctrl := NewToolsController(e.cfg, e.tools, e.news, nil)
	e.app.Get("/api/tools", ctrl.GetTools)
	e.app.Get("/api/tools/categories", ctrl.GetCategories)
	e.app.Get("/api/tools/:id", ctrl.GetTool)

	var result utils.SuccessResponse
	code := doJSON(t, e.app, "GET", "/api/tools?category=Writing", nil, &result)
	assert.Equal(t, fiber.StatusOK, code)
	data := result.Data.(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])

	result = utils.SuccessResponse{}
	doJSON(t, e.app, "GET", "/api/tools?price=paid", nil, &result)
	data = result.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])

	result = utils.SuccessResponse{}
	doJSON(t, e.app, "GET", "/api/tools?category=All", nil, &result)
	data = result.Data.(map[string]interface{})
	assert.Equal(t, float64(3), data["total"])

	code = doJSON(t, e.app, "GET", "/api/tools/2", nil, nil)
	assert.Equal(t, fiber.StatusOK, code)
	code = doJSON(t, e.app, "GET", "/api/tools/missing", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}

func newAdmin(e *testEnv) *AdminController {
	return NewAdminController(e.db, e.cfg, nil, nil, nil, e.publisher, e.tools, e.news)
}

func TestQueuePublishFlow(t *testing.T) {
	e := newTestEnv(t)
	admin := newAdmin(e)

	e.app.Get("/api/admin/queue/tools", admin.GetToolQueue)
	e.app.Post("/api/admin/queue/tools/:id/publish", admin.PublishTool)
	e.app.Put("/api/admin/queue/tools/:id", admin.UpdateToolDraft)
	e.app.Delete("/api/admin/queue/tools/:id", admin.DiscardToolDraft)

	admin.ToolQueue.EnqueueMany([]models.Tool{
		{ID: "gen-1-0", Name: "Draft A", Description: "First"},
		{ID: "gen-1-1", Name: "Draft B", Description: "Second"},
	})

	// Edit keeps the draft pending
	code := doJSON(t, e.app, "PUT", "/api/admin/queue/tools/gen-1-0", map[string]any{
		"name": "Draft A+", "description": "First, edited",
	}, nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, 2, admin.ToolQueue.Len())

	// Publish removes it from the queue and persists it with a fresh id
	code = doJSON(t, e.app, "POST", "/api/admin/queue/tools/gen-1-0/publish", nil, nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, 1, admin.ToolQueue.Len())

	published, err := e.store.Tools(context.Background())
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "Draft A+", published[0].Name)
	assert.NotEqual(t, "gen-1-0", published[0].ID)

	// Publishing twice fails: the draft is gone
	code = doJSON(t, e.app, "POST", "/api/admin/queue/tools/gen-1-0/publish", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, code)

	code = doJSON(t, e.app, "DELETE", "/api/admin/queue/tools/gen-1-1", nil, nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, 0, admin.ToolQueue.Len())
}

func TestPublishAllNeedsConfirmation(t *testing.T) {
	e := newTestEnv(t)
	admin := newAdmin(e)
	e.app.Post("/api/admin/queue/tools/publish-all", admin.PublishAllTools)

	admin.ToolQueue.EnqueueMany([]models.Tool{
		{ID: "gen-1-0", Name: "A", Description: "a"},
		{ID: "gen-1-1", Name: "", Description: "invalid, no name"},
	})

	code := doJSON(t, e.app, "POST", "/api/admin/queue/tools/publish-all", map[string]any{
		"confirmed": false,
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, 2, admin.ToolQueue.Len())

	var result utils.SuccessResponse
	code = doJSON(t, e.app, "POST", "/api/admin/queue/tools/publish-all", map[string]any{
		"confirmed": true,
	}, &result)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, 0, admin.ToolQueue.Len())

	results := result.Data.(map[string]interface{})["results"].([]interface{})
	require.Len(t, results, 2)
	first := results[0].(map[string]interface{})
	second := results[1].(map[string]interface{})
	assert.Equal(t, true, first["ok"])
	assert.Equal(t, false, second["ok"])

	published, err := e.store.Tools(context.Background())
	require.NoError(t, err)
	assert.Len(t, published, 1)
}

func TestAdminDeleteToolOptimistic(t *testing.T) {
	e := newTestEnv(t)
	admin := newAdmin(e)
	e.app.Delete("/api/admin/tools/:id", admin.DeleteTool)

	tool := models.Tool{Name: "Painter", Description: "Paints"}
	require.NoError(t, e.publisher.CreateTool(context.Background(), &tool))
	tools, err := e.store.Tools(context.Background())
	require.NoError(t, err)
	e.tools.Replace(tools)

	code := doJSON(t, e.app, "DELETE", "/api/admin/tools/"+tool.ID, nil, nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, 0, e.tools.Len())

	remaining, err := e.store.Tools(context.Background())
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestImportFeedReportsFailures(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, "curator", "admin", models.PlanPro)

	rss := `<?xml version="1.0"?><rss version="2.0"><channel>` +
		`<item><title>Alpha Tool</title><description>First</description></item>` +
		`<item><title>Beta Tool</title><description>Second</description></item>` +
		`</channel></rss>`
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"contents": rss})
	}))
	defer proxy.Close()

	// The second item's extraction fails at the gateway
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gemini.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if prompt, _ := req.Contents.(string); strings.Contains(prompt, "Beta Tool") {
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(map[string]string{"error": "extraction unavailable"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"text": `{"name":"Alpha","description":"First tool","category":"Coding","price":"Free","tags":["ai"]}`,
		})
	}))
	defer gateway.Close()

	client := gemini.NewClient(gateway.URL, nil)
	admin := NewAdminController(e.db, e.cfg, client,
		feed.NewFetcher(proxy.URL), feed.NewConverter(client),
		e.publisher, e.tools, e.news)
	e.app.Post("/api/admin/feed/import", asUser(user.ID), admin.ImportFeed)

	var result utils.SuccessResponse
	code := doJSON(t, e.app, "POST", "/api/admin/feed/import", map[string]any{
		"url": "https://example.com/rss", "count": 2, "kind": "tools",
	}, &result)
	assert.Equal(t, fiber.StatusOK, code)

	data := result.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["imported"])
	assert.Equal(t, float64(1), data["failed"])
	failures := data["failures"].([]interface{})
	require.Len(t, failures, 1)
	assert.Equal(t, "Beta Tool", failures[0].(map[string]interface{})["title"])
	assert.Equal(t, 1, admin.ToolQueue.Len())
}

func TestGenerationLimitBlocksFreePlan(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, "freeloader", "admin", models.PlanFree)
	require.NoError(t, e.db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("generations_count", models.PlanLimit(models.PlanFree)).Error)

	admin := newAdmin(e)
	e.app.Post("/api/admin/report", asUser(user.ID), admin.TrendReport)

	code := doJSON(t, e.app, "POST", "/api/admin/report", nil, nil)
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestVerifyCheckoutUpgradesPlan(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, "buyer", "user", models.PlanFree)

	verifier := &HMACVerifier{Secret: e.cfg.CheckoutSecret}
	ctrl := NewBillingController(e.db, e.cfg, verifier)
	e.app.Post("/api/billing/verify", asUser(user.ID), ctrl.VerifyCheckout)

	mac := hmac.New(sha256.New, []byte(e.cfg.CheckoutSecret))
	mac.Write([]byte("order-1:pro"))
	signature := hex.EncodeToString(mac.Sum(nil))

	code := doJSON(t, e.app, "POST", "/api/billing/verify", map[string]any{
		"orderId":   "order-1",
		"plan":      "pro",
		"lifetime":  true,
		"signature": signature,
	}, nil)
	assert.Equal(t, fiber.StatusOK, code)

	var updated models.User
	require.NoError(t, e.db.First(&updated, user.ID).Error)
	assert.Equal(t, models.PlanPro, updated.Plan)
	require.NotNil(t, updated.SubscriptionEnd)
	assert.Greater(t, updated.SubscriptionEnd.Year(), 2100)

	// Tampered signature is rejected
	code = doJSON(t, e.app, "POST", "/api/billing/verify", map[string]any{
		"orderId":   "order-2",
		"plan":      "pro",
		"signature": "deadbeef",
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
}
