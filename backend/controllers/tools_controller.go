package controllers

import (
	"strings"

	"vetorre/backend/config"
	"vetorre/backend/gemini"
	"vetorre/backend/models"
	"vetorre/backend/store"
	"vetorre/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// ToolsController serves the public directory. Reads go through the local
// mirror, never the database, so list pages stay fast and survive short
// store outages.
type ToolsController struct {
	Cfg    *config.Config
	Mirror *store.Mirror[models.Tool]
	News   *store.Mirror[models.Article]
	Gemini *gemini.Client
}

func NewToolsController(cfg *config.Config, mirror *store.Mirror[models.Tool], news *store.Mirror[models.Article], client *gemini.Client) *ToolsController {
	return &ToolsController{Cfg: cfg, Mirror: mirror, News: news, Gemini: client}
}

// GetTools godoc
// @Summary List directory tools
// @Description Returns published tools, optionally filtered by category and price
// @Tags tools
// @Produce json
// @Param category query string false "Category filter"
// @Param price query string false "Price substring filter"
// @Success 200 {object} map[string]interface{}
// @Router /tools [get]
func (tc *ToolsController) GetTools(c *fiber.Ctx) error {
	category := c.Query("category")
	price := c.Query("price")

	tools := tc.Mirror.Items()
	filtered := make([]models.Tool, 0, len(tools))
	for _, tool := range tools {
		if category != "" && !strings.EqualFold(category, "All") && !strings.EqualFold(tool.Category, category) {
			continue
		}
		if price != "" && !strings.Contains(strings.ToLower(tool.Price), strings.ToLower(price)) {
			continue
		}
		filtered = append(filtered, tool)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"tools": filtered,
		"total": len(filtered),
	})
}

// GetTool godoc
// @Summary Get one tool
// @Tags tools
// @Produce json
// @Param id path string true "Tool ID"
// @Success 200 {object} models.Tool
// @Failure 404 {object} utils.ErrorResponse
// @Router /tools/:id [get]
func (tc *ToolsController) GetTool(c *fiber.Ctx) error {
	id := c.Params("id")
	for _, tool := range tc.Mirror.Items() {
		if tool.ID == id {
			return utils.Success(c, fiber.StatusOK, tool)
		}
	}
	return utils.NotFound(c, "Tool not found")
}

// Search godoc
// @Summary Intelligent search
// @Description Semantic search over tools and news; degrades to no hits on model failure
// @Tags tools
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {object} map[string]interface{}
// @Router /search [get]
func (tc *ToolsController) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return utils.BadRequest(c, "Query is required")
	}

	tools := tc.Mirror.Items()
	news := tc.News.Items()
	hits := tc.Gemini.IntelligentSearch(c.Context(), query, tools, news)

	matchedTools := make([]models.Tool, 0, len(hits.ToolIDs))
	for _, id := range hits.ToolIDs {
		for _, tool := range tools {
			if tool.ID == id {
				matchedTools = append(matchedTools, tool)
				break
			}
		}
	}
	matchedNews := make([]models.Article, 0, len(hits.NewsIDs))
	for _, id := range hits.NewsIDs {
		for _, article := range news {
			if article.ID == id {
				matchedNews = append(matchedNews, article)
				break
			}
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"tools": matchedTools,
		"news":  matchedNews,
	})
}

// GetCategories godoc
// @Summary List distinct tool categories
// @Tags tools
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /tools/categories [get]
func (tc *ToolsController) GetCategories(c *fiber.Ctx) error {
	seen := make(map[string]struct{})
	categories := []string{}
	for _, tool := range tc.Mirror.Items() {
		if tool.Category == "" {
			continue
		}
		if _, ok := seen[tool.Category]; ok {
			continue
		}
		seen[tool.Category] = struct{}{}
		categories = append(categories, tool.Category)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"categories": categories})
}
