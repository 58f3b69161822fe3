package controllers

import (
	"sort"
	"strings"

	"vetorre/backend/config"
	"vetorre/backend/models"
	"vetorre/backend/store"
	"vetorre/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// NewsController serves the published news feed from the articles mirror.
type NewsController struct {
	Cfg    *config.Config
	Mirror *store.Mirror[models.Article]
}

func NewNewsController(cfg *config.Config, mirror *store.Mirror[models.Article]) *NewsController {
	return &NewsController{Cfg: cfg, Mirror: mirror}
}

// GetNews godoc
// @Summary List news articles
// @Description Returns published articles newest first, optionally filtered by category
// @Tags news
// @Produce json
// @Param category query string false "Category filter"
// @Param sort query string false "oldest to reverse the default order"
// @Success 200 {object} map[string]interface{}
// @Router /news [get]
func (nc *NewsController) GetNews(c *fiber.Ctx) error {
	category := c.Query("category")

	articles := nc.Mirror.Items()
	filtered := make([]models.Article, 0, len(articles))
	for _, article := range articles {
		if category != "" && !strings.EqualFold(category, "All") && !strings.EqualFold(article.Category, category) {
			continue
		}
		filtered = append(filtered, article)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})
	if c.Query("sort") == "oldest" {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"articles": filtered,
		"total":    len(filtered),
	})
}

// GetArticle godoc
// @Summary Get one article
// @Description Returns the article with its markdown content rendered to HTML
// @Tags news
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Router /news/:id [get]
func (nc *NewsController) GetArticle(c *fiber.Ctx) error {
	id := c.Params("id")
	for _, article := range nc.Mirror.Items() {
		if article.ID == id {
			return utils.Success(c, fiber.StatusOK, fiber.Map{
				"article":     article,
				"contentHtml": utils.RenderMarkdown(article.Content),
			})
		}
	}
	return utils.NotFound(c, "Article not found")
}
