package feed

import (
	"context"

	"vetorre/backend/gemini"
	"vetorre/backend/models"
	"vetorre/backend/utils"

	"gorm.io/datatypes"
)

// Converter turns a single feed item into a draft through the generation
// gateway. It is stateless: calling it twice performs two independent
// extractions. Serializing conversions (one item in flight at a time) is a
// caller contract, not enforced here.
type Converter struct {
	gemini *gemini.Client
}

func NewConverter(client *gemini.Client) *Converter {
	return &Converter{gemini: client}
}

// ToTool extracts a tool draft from the item, falling back to the raw
// title/description for any field the extraction omitted.
func (c *Converter) ToTool(ctx context.Context, item Item) (models.Tool, error) {
	extract, err := c.gemini.ExtractToolFromFeedItem(ctx, item.Title, item.Description)
	if err != nil {
		return models.Tool{}, err
	}

	tool := models.Tool{
		Name:        fallback(extract.Name, item.Title),
		Description: fallback(extract.Description, item.Description),
		Category:    fallback(extract.Category, "News"),
		Price:       fallback(extract.Price, "Unknown"),
		Tags:        datatypes.JSONSlice[string](extract.Tags),
		Website:     "#",
	}
	if len(tool.Tags) == 0 {
		tool.Tags = datatypes.JSONSlice[string]{"RSS"}
	}
	tool.ImageURL = utils.PlaceholderImage(tool.Name, 400, 250)
	return tool, nil
}

// ToArticle extracts an article draft from the item.
func (c *Converter) ToArticle(ctx context.Context, item Item) (models.Article, error) {
	extract, err := c.gemini.ExtractArticleFromFeedItem(ctx, item.Title, item.Description)
	if err != nil {
		return models.Article{}, err
	}

	article := models.Article{
		Title:       fallback(extract.Title, item.Title),
		Description: fallback(extract.Description, item.Description),
		Content:     fallback(extract.Content, item.Description),
		Category:    fallback(extract.Category, "Tech News"),
		Source:      "RSS Feed",
	}
	article.ImageURL = utils.PlaceholderImage(article.Title, 800, 400)
	return article, nil
}

// PreviewArticle is ToArticle plus the synthetic fields a preview needs.
func (c *Converter) PreviewArticle(ctx context.Context, item Item) (models.Article, error) {
	article, err := c.ToArticle(ctx, item)
	if err != nil {
		return models.Article{}, err
	}
	article.ID = "preview-" + item.ID
	return article, nil
}

func fallback(value, alt string) string {
	if value != "" {
		return value
	}
	return alt
}
