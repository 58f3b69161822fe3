package controllers

import (
	"context"
	"errors"
	"fmt"

	"vetorre/backend/config"
	"vetorre/backend/feed"
	"vetorre/backend/gemini"
	"vetorre/backend/models"
	"vetorre/backend/review"
	"vetorre/backend/store"
	"vetorre/backend/utils"
	"vetorre/backend/workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AdminController owns the curation surface: draft generation, the review
// queues, publication and the published-content CRUD. Queues live in
// memory and are lost on restart; only published content is durable.
type AdminController struct {
	DB  *gorm.DB
	Cfg *config.Config

	Gemini    *gemini.Client
	Fetcher   *feed.Fetcher
	Converter *feed.Converter
	Publisher *workflow.Publisher

	ToolQueue *review.Queue[models.Tool]
	NewsQueue *review.Queue[models.Article]
	EditState *workflow.EditState

	Tools *store.Mirror[models.Tool]
	News  *store.Mirror[models.Article]
}

func NewAdminController(
	db *gorm.DB,
	cfg *config.Config,
	client *gemini.Client,
	fetcher *feed.Fetcher,
	converter *feed.Converter,
	publisher *workflow.Publisher,
	tools *store.Mirror[models.Tool],
	news *store.Mirror[models.Article],
) *AdminController {
	return &AdminController{
		DB:        db,
		Cfg:       cfg,
		Gemini:    client,
		Fetcher:   fetcher,
		Converter: converter,
		Publisher: publisher,
		ToolQueue: review.NewQueue(func(t models.Tool) string { return t.ID }),
		NewsQueue: review.NewQueue(func(a models.Article) string { return a.ID }),
		EditState: &workflow.EditState{},
		Tools:     tools,
		News:      news,
	}
}

// chargeGeneration enforces the plan's generation budget and spends one
// unit. The unit is spent up front, a failed generation still counts.
func (ac *AdminController) chargeGeneration(c *fiber.Ctx) (*models.User, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	if !user.CanGenerate() {
		return nil, fiber.NewError(fiber.StatusForbidden,
			fmt.Sprintf("Generation limit reached for plan %q (%d)", user.Plan, models.PlanLimit(user.Plan)))
	}

	user.GenerationsCount++
	if err := ac.DB.Model(&user).Update("generations_count", user.GenerationsCount).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not update usage")
	}
	return &user, nil
}

// GenerateTools godoc
// @Summary Generate tool drafts
// @Description Generates a batch of tool drafts and prepends them to the review queue
// @Tags admin
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "count and category"
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /admin/generate/tools [post]
func (ac *AdminController) GenerateTools(c *fiber.Ctx) error {
	type input struct {
		Count    int    `json:"count"`
		Category string `json:"category"`
	}
	var in input
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if in.Count <= 0 {
		in.Count = 3
	}

	if _, err := ac.chargeGeneration(c); err != nil {
		return err
	}

	tools, err := ac.Gemini.DirectoryTools(c.Context(), in.Count, in.Category)
	if err != nil {
		return utils.Error(c, fiber.StatusBadGateway, err)
	}
	ac.ToolQueue.EnqueueMany(tools)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"generated": len(tools),
		"queue":     ac.ToolQueue.Items(),
	})
}

// GenerateNews godoc
// @Summary Generate news drafts
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /admin/generate/news [post]
func (ac *AdminController) GenerateNews(c *fiber.Ctx) error {
	type input struct {
		Count int `json:"count"`
	}
	var in input
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if in.Count <= 0 {
		in.Count = 3
	}

	if _, err := ac.chargeGeneration(c); err != nil {
		return err
	}

	articles, err := ac.Gemini.DirectoryNews(c.Context(), in.Count)
	if err != nil {
		return utils.Error(c, fiber.StatusBadGateway, err)
	}
	ac.NewsQueue.EnqueueMany(articles)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"generated": len(articles),
		"queue":     ac.NewsQueue.Items(),
	})
}

// GenerateToolDetails godoc
// @Summary Generate one tool draft from a topic
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /admin/generate/tool [post]
func (ac *AdminController) GenerateToolDetails(c *fiber.Ctx) error {
	type input struct {
		Topic string `json:"topic"`
	}
	var in input
	if err := c.BodyParser(&in); err != nil || in.Topic == "" {
		return utils.BadRequest(c, "Topic is required")
	}

	if _, err := ac.chargeGeneration(c); err != nil {
		return err
	}

	tool, err := ac.Gemini.ToolDetails(c.Context(), in.Topic)
	if err != nil {
		return utils.Error(c, fiber.StatusBadGateway, err)
	}
	ac.ToolQueue.EnqueueMany([]models.Tool{tool})

	return utils.Success(c, fiber.StatusOK, tool)
}

// GenerateNewsDetails godoc
// @Summary Generate one news draft from a topic
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /admin/generate/news-item [post]
func (ac *AdminController) GenerateNewsDetails(c *fiber.Ctx) error {
	type input struct {
		Topic string `json:"topic"`
	}
	var in input
	if err := c.BodyParser(&in); err != nil || in.Topic == "" {
		return utils.BadRequest(c, "Topic is required")
	}

	if _, err := ac.chargeGeneration(c); err != nil {
		return err
	}

	article, err := ac.Gemini.NewsDetails(c.Context(), in.Topic)
	if err != nil {
		return utils.Error(c, fiber.StatusBadGateway, err)
	}
	ac.NewsQueue.EnqueueMany([]models.Article{article})

	return utils.Success(c, fiber.StatusOK, article)
}

// GetToolQueue returns the pending tool drafts, newest first.
func (ac *AdminController) GetToolQueue(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"queue": ac.ToolQueue.Items(),
		"total": ac.ToolQueue.Len(),
	})
}

// GetNewsQueue returns the pending news drafts, newest first.
func (ac *AdminController) GetNewsQueue(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"queue": ac.NewsQueue.Items(),
		"total": ac.NewsQueue.Len(),
	})
}

// PublishTool godoc
// @Summary Publish one tool draft
// @Description Removes the draft from the queue and persists it. A failed
// publish does not restore the draft.
// @Tags admin
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/queue/tools/:id/publish [post]
func (ac *AdminController) PublishTool(c *fiber.Ctx) error {
	id := c.Params("id")
	err := ac.ToolQueue.Publish(c.Context(), id, func(ctx context.Context, t models.Tool) error {
		return ac.Publisher.CreateTool(ctx, &t)
	})
	if errors.Is(err, review.ErrNotFound) {
		return utils.NotFound(c, "Draft not found")
	}
	if err != nil {
		// The draft is already gone from the queue; report the failure and
		// let the admin regenerate.
		return utils.Error(c, fiber.StatusInternalServerError, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"published": id})
}

// PublishNews publishes one news draft the same way.
func (ac *AdminController) PublishNews(c *fiber.Ctx) error {
	id := c.Params("id")
	err := ac.NewsQueue.Publish(c.Context(), id, func(ctx context.Context, a models.Article) error {
		return ac.Publisher.CreateArticle(ctx, &a)
	})
	if errors.Is(err, review.ErrNotFound) {
		return utils.NotFound(c, "Draft not found")
	}
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"published": id})
}

// PublishAllTools godoc
// @Summary Publish every pending tool draft
// @Description Requires confirmed=true; reports per-draft outcomes
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/queue/tools/publish-all [post]
func (ac *AdminController) PublishAllTools(c *fiber.Ctx) error {
	type input struct {
		Confirmed bool `json:"confirmed"`
	}
	var in input
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	results, err := ac.ToolQueue.PublishAll(c.Context(), in.Confirmed, func(ctx context.Context, t models.Tool) error {
		return ac.Publisher.CreateTool(ctx, &t)
	})
	if errors.Is(err, review.ErrConfirmationRequired) {
		return utils.BadRequest(c, "Publish all requires confirmation")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"results": publishReport(results)})
}

// PublishAllNews drains the news queue under the same confirmation gate.
func (ac *AdminController) PublishAllNews(c *fiber.Ctx) error {
	type input struct {
		Confirmed bool `json:"confirmed"`
	}
	var in input
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	results, err := ac.NewsQueue.PublishAll(c.Context(), in.Confirmed, func(ctx context.Context, a models.Article) error {
		return ac.Publisher.CreateArticle(ctx, &a)
	})
	if errors.Is(err, review.ErrConfirmationRequired) {
		return utils.BadRequest(c, "Publish all requires confirmation")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"results": publishReport(results)})
}

func publishReport(results []review.PublishResult) []fiber.Map {
	report := make([]fiber.Map, 0, len(results))
	for _, r := range results {
		entry := fiber.Map{"id": r.ID, "ok": r.Err == nil}
		if r.Err != nil {
			entry["error"] = r.Err.Error()
		}
		report = append(report, entry)
	}
	return report
}

// UpdateToolDraft edits a pending draft in place, keeping its queue position.
func (ac *AdminController) UpdateToolDraft(c *fiber.Ctx) error {
	id := c.Params("id")
	var tool models.Tool
	if err := c.BodyParser(&tool); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	tool.ID = id
	if !ac.ToolQueue.Update(id, tool) {
		return utils.NotFound(c, "Draft not found")
	}
	return utils.Success(c, fiber.StatusOK, tool)
}

// UpdateNewsDraft edits a pending news draft in place.
func (ac *AdminController) UpdateNewsDraft(c *fiber.Ctx) error {
	id := c.Params("id")
	var article models.Article
	if err := c.BodyParser(&article); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	article.ID = id
	if !ac.NewsQueue.Update(id, article) {
		return utils.NotFound(c, "Draft not found")
	}
	return utils.Success(c, fiber.StatusOK, article)
}

// DiscardToolDraft drops a pending draft permanently.
func (ac *AdminController) DiscardToolDraft(c *fiber.Ctx) error {
	if !ac.ToolQueue.Discard(c.Params("id")) {
		return utils.NotFound(c, "Draft not found")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"discarded": c.Params("id")})
}

// DiscardNewsDraft drops a pending news draft permanently.
func (ac *AdminController) DiscardNewsDraft(c *fiber.Ctx) error {
	if !ac.NewsQueue.Discard(c.Params("id")) {
		return utils.NotFound(c, "Draft not found")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"discarded": c.Params("id")})
}

// CreateTool godoc
// @Summary Create a published tool directly
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} models.Tool
// @Security ApiKeyAuth
// @Router /admin/tools [post]
func (ac *AdminController) CreateTool(c *fiber.Ctx) error {
	var tool models.Tool
	if err := c.BodyParser(&tool); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := ac.Publisher.CreateTool(c.Context(), &tool); err != nil {
		if errors.Is(err, workflow.ErrToolInvalid) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.Error(c, fiber.StatusInternalServerError, err)
	}
	return utils.Success(c, fiber.StatusOK, tool)
}

// UpdateTool godoc
// @Summary Update a published tool
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Tool ID"
// @Success 200 {object} models.Tool
// @Security ApiKeyAuth
// @Router /admin/tools/:id [put]
func (ac *AdminController) UpdateTool(c *fiber.Ctx) error {
	id := c.Params("id")
	var tool models.Tool
	if err := c.BodyParser(&tool); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	ac.EditState.Start(id)
	defer ac.EditState.Finish()

	if err := ac.Publisher.UpdateTool(c.Context(), id, &tool); err != nil {
		if errors.Is(err, workflow.ErrToolInvalid) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.Error(c, fiber.StatusInternalServerError, err)
	}
	return utils.Success(c, fiber.StatusOK, tool)
}

// DeleteTool godoc
// @Summary Delete a published tool
// @Description Optimistic: the tool leaves the local mirror immediately and
// is restored only when the store delete fails
// @Tags admin
// @Produce json
// @Param id path string true "Tool ID"
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /admin/tools/:id [delete]
func (ac *AdminController) DeleteTool(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := ac.Publisher.DeleteTool(c.Context(), ac.Tools, id); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": id})
}

// CreateArticle creates a published article directly.
func (ac *AdminController) CreateArticle(c *fiber.Ctx) error {
	var article models.Article
	if err := c.BodyParser(&article); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := ac.Publisher.CreateArticle(c.Context(), &article); err != nil {
		if errors.Is(err, workflow.ErrArticleInvalid) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.Error(c, fiber.StatusInternalServerError, err)
	}
	return utils.Success(c, fiber.StatusOK, article)
}

// UpdateArticle updates a published article; the publication date resets.
func (ac *AdminController) UpdateArticle(c *fiber.Ctx) error {
	id := c.Params("id")
	var article models.Article
	if err := c.BodyParser(&article); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	ac.EditState.Start(id)
	defer ac.EditState.Finish()

	if err := ac.Publisher.UpdateArticle(c.Context(), id, &article); err != nil {
		if errors.Is(err, workflow.ErrArticleInvalid) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.Error(c, fiber.StatusInternalServerError, err)
	}
	return utils.Success(c, fiber.StatusOK, article)
}

// DeleteArticle optimistically deletes a published article.
func (ac *AdminController) DeleteArticle(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := ac.Publisher.DeleteArticle(c.Context(), ac.News, id); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": id})
}

// ImportFeed godoc
// @Summary Ingest an RSS feed into a review queue
// @Description Fetches the feed through the CORS proxy, converts each item
// into a draft and enqueues the batch
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /admin/feed/import [post]
func (ac *AdminController) ImportFeed(c *fiber.Ctx) error {
	type input struct {
		URL   string `json:"url"`
		Count int    `json:"count"`
		Kind  string `json:"kind"` // tools or news
	}
	var in input
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if in.URL == "" {
		in.URL = ac.Cfg.DefaultFeedURL
	}

	items, err := ac.Fetcher.Fetch(c.Context(), in.URL, in.Count)
	if err != nil {
		return utils.Error(c, fiber.StatusBadGateway, err)
	}

	if _, err := ac.chargeGeneration(c); err != nil {
		return err
	}

	failures := []fiber.Map{}
	switch in.Kind {
	case "tools":
		drafts := make([]models.Tool, 0, len(items))
		for _, item := range items {
			tool, err := ac.Converter.ToTool(c.Context(), item)
			if err != nil {
				failures = append(failures, fiber.Map{"title": item.Title, "error": err.Error()})
				continue
			}
			drafts = append(drafts, tool)
		}
		ac.ToolQueue.EnqueueMany(drafts)
		return utils.Success(c, fiber.StatusOK, fiber.Map{
			"imported": len(drafts),
			"failed":   len(failures),
			"failures": failures,
			"queue":    ac.ToolQueue.Items(),
		})
	default:
		drafts := make([]models.Article, 0, len(items))
		for _, item := range items {
			article, err := ac.Converter.ToArticle(c.Context(), item)
			if err != nil {
				failures = append(failures, fiber.Map{"title": item.Title, "error": err.Error()})
				continue
			}
			drafts = append(drafts, article)
		}
		ac.NewsQueue.EnqueueMany(drafts)
		return utils.Success(c, fiber.StatusOK, fiber.Map{
			"imported": len(drafts),
			"failed":   len(failures),
			"failures": failures,
			"queue":    ac.NewsQueue.Items(),
		})
	}
}

// PreviewFeed fetches a feed and converts the first item without touching
// any queue; the preview draft carries a preview- id.
func (ac *AdminController) PreviewFeed(c *fiber.Ctx) error {
	url := c.Query("url")
	if url == "" {
		url = ac.Cfg.DefaultFeedURL
	}

	items, err := ac.Fetcher.Fetch(c.Context(), url, 1)
	if err != nil {
		return utils.Error(c, fiber.StatusBadGateway, err)
	}
	if len(items) == 0 {
		return utils.NotFound(c, "Feed has no items")
	}

	article, err := ac.Converter.PreviewArticle(c.Context(), items[0])
	if err != nil {
		return utils.Error(c, fiber.StatusBadGateway, err)
	}
	return utils.Success(c, fiber.StatusOK, article)
}

// GenerateSlides attaches a generated slide deck to a published tool.
func (ac *AdminController) GenerateSlides(c *fiber.Ctx) error {
	return ac.enrichTool(c, func(ctx context.Context, tool *models.Tool) error {
		slides, err := ac.Gemini.ToolSlides(ctx, *tool)
		if err != nil {
			return err
		}
		tool.Slides = datatypes.JSONSlice[models.Slide](slides)
		return nil
	})
}

// GenerateTutorial attaches a generated visual tutorial to a published tool.
func (ac *AdminController) GenerateTutorial(c *fiber.Ctx) error {
	return ac.enrichTool(c, func(ctx context.Context, tool *models.Tool) error {
		sections, err := ac.Gemini.ToolTutorial(ctx, *tool)
		if err != nil {
			return err
		}
		tool.Tutorial = datatypes.JSONSlice[models.TutorialSection](sections)
		return nil
	})
}

// GenerateCourse attaches a generated deep-dive course to a published tool.
func (ac *AdminController) GenerateCourse(c *fiber.Ctx) error {
	return ac.enrichTool(c, func(ctx context.Context, tool *models.Tool) error {
		course, err := ac.Gemini.FullCourse(ctx, *tool)
		if err != nil {
			return err
		}
		wrapped := datatypes.NewJSONType(course)
		tool.Course = &wrapped
		return nil
	})
}

// GeneratePodcast returns a podcast script and its synthesized audio for a
// published tool, without persisting anything.
func (ac *AdminController) GeneratePodcast(c *fiber.Ctx) error {
	tool, ok := ac.findTool(c.Params("id"))
	if !ok {
		return utils.NotFound(c, "Tool not found")
	}

	if _, err := ac.chargeGeneration(c); err != nil {
		return err
	}

	script, err := ac.Gemini.PodcastScript(c.Context(), tool)
	if err != nil {
		return utils.Error(c, fiber.StatusBadGateway, err)
	}
	audio, err := ac.Gemini.Speech(c.Context(), script, "")
	if err != nil {
		return utils.Error(c, fiber.StatusBadGateway, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"script": script,
		"audio":  audio,
	})
}

// TrendReport generates a market trend report over the published directory.
func (ac *AdminController) TrendReport(c *fiber.Ctx) error {
	if _, err := ac.chargeGeneration(c); err != nil {
		return err
	}

	report, err := ac.Gemini.TrendReport(c.Context(), ac.Tools.Items())
	if err != nil {
		return utils.Error(c, fiber.StatusBadGateway, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"report":     report,
		"reportHtml": utils.RenderMarkdown(report),
	})
}

func (ac *AdminController) findTool(id string) (models.Tool, bool) {
	for _, tool := range ac.Tools.Items() {
		if tool.ID == id {
			return tool, true
		}
	}
	return models.Tool{}, false
}

// enrichTool loads a published tool, lets enrich mutate it and saves the
// result back through the publisher.
func (ac *AdminController) enrichTool(c *fiber.Ctx, enrich func(context.Context, *models.Tool) error) error {
	tool, ok := ac.findTool(c.Params("id"))
	if !ok {
		return utils.NotFound(c, "Tool not found")
	}

	if _, err := ac.chargeGeneration(c); err != nil {
		return err
	}

	if err := enrich(c.Context(), &tool); err != nil {
		return utils.Error(c, fiber.StatusBadGateway, err)
	}
	if err := ac.Publisher.UpdateTool(c.Context(), tool.ID, &tool); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, err)
	}
	return utils.Success(c, fiber.StatusOK, tool)
}
