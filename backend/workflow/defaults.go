package workflow

import (
	"vetorre/backend/models"
	"vetorre/backend/utils"
)

func applyToolDefaults(tool *models.Tool) {
	if tool.Category == "" {
		tool.Category = "Uncategorized"
	}
	if tool.Price == "" {
		tool.Price = "Free"
	}
	if tool.Website == "" {
		tool.Website = "#"
	}
	if tool.ImageURL == "" {
		tool.ImageURL = utils.PlaceholderImage(tool.Name, 400, 250)
	}
}

func applyArticleDefaults(article *models.Article) {
	if article.Category == "" {
		article.Category = "General"
	}
	if article.Source == "" {
		article.Source = "Vetorre Blog"
	}
	if article.ImageURL == "" {
		article.ImageURL = utils.PlaceholderImage(article.Title, 800, 400)
	}
}
