package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vetorre/backend/models"
	"vetorre/backend/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// toolDraft is the shape the model is asked to produce for a tool.
type toolDraft struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       string   `json:"price"`
	Website     string   `json:"website"`
	Tags        []string `json:"tags"`
	Features    []string `json:"features"`
	UseCases    []string `json:"useCases"`
	Pros        []string `json:"pros"`
	Cons        []string `json:"cons"`
	HowToUse    string   `json:"howToUse"`
}

func (d toolDraft) toModel() models.Tool {
	return models.Tool{
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Price:       d.Price,
		Website:     d.Website,
		Tags:        datatypes.JSONSlice[string](d.Tags),
		Features:    datatypes.JSONSlice[string](d.Features),
		UseCases:    datatypes.JSONSlice[string](d.UseCases),
		Pros:        datatypes.JSONSlice[string](d.Pros),
		Cons:        datatypes.JSONSlice[string](d.Cons),
		HowToUse:    d.HowToUse,
	}
}

type articleDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	Source      string `json:"source"`
}

// GenerateImage asks the image model for an inline PNG and returns it as a
// data URL. Any failure falls back to a placeholder so image generation can
// never sink the surrounding operation.
func (c *Client) GenerateImage(ctx context.Context, prompt, aspectRatio string) string {
	resp, err := c.call(ctx, Request{
		Task:     "generateContent",
		Model:    ModelImage,
		Contents: textParts(prompt),
		Config: map[string]any{
			"imageConfig": map[string]any{"aspectRatio": aspectRatio, "imageSize": "1K"},
		},
	})
	if err == nil {
		if data := resp.FirstInlineData(); data != nil && data.Data != "" {
			return "data:image/png;base64," + data.Data
		}
	}
	c.warnf("image generation failed, using placeholder: %v", err)
	return utils.PlaceholderImage(uuid.NewString(), 800, 400)
}

// DirectoryTools generates a batch of trending tool candidates. A salvage
// failure yields an empty batch, not an error.
func (c *Client) DirectoryTools(ctx context.Context, count int, category string) ([]models.Tool, error) {
	scope := ""
	if category != "" {
		scope = fmt.Sprintf(" specifically for %s", category)
	}
	prompt := fmt.Sprintf(`Use Google Search to find %d REAL, currently trending AI tools%s.

Return a raw JSON array (no markdown formatting) of these tools.
Each tool object MUST have:
- name (The actual name of the tool)
- description (A concise summary, max 15 words)
- category (Best fit: Writing, Image, Video, Audio, Coding, Business)
- tags (3 relevant tags)
- price (Use one of these EXACT formats: "Free", "Freemium", "Paid ($X/mo)", "Paid (One-time)", or "Free Trial")
- website (Real URL found in search)
- features (3 real key features)
- useCases (2 real-world use cases)
- pros (2 real pros based on reviews)
- cons (1 real con based on reviews)
- howToUse (1-sentence quick start guide)`, count, scope)

	resp, err := c.call(ctx, Request{
		Task:     "generateContent",
		Model:    ModelFlash,
		Contents: prompt,
		Config:   searchGrounding(),
	})
	if err != nil {
		return nil, err
	}

	var drafts []toolDraft
	if !SalvageJSON(resp.FirstText(), &drafts) {
		c.warnf("tool batch response was not parseable, returning empty batch")
		return []models.Tool{}, nil
	}

	now := time.Now().UnixMilli()
	tools := make([]models.Tool, 0, len(drafts))
	for i, d := range drafts {
		tool := d.toModel()
		// Fresh synthetic id per candidate; duplicates across
		// regenerations are intended.
		tool.ID = fmt.Sprintf("gen-%d-%d", now, i)
		imgPrompt := fmt.Sprintf(`Futuristic 3D icon or interface for the AI tool "%s". %s. Sleek, modern, tech style.`, d.Name, d.Description)
		tool.ImageURL = c.GenerateImage(ctx, imgPrompt, "16:9")
		tools = append(tools, tool)
	}
	return tools, nil
}

// ToolDetails researches a single tool by name or topic.
func (c *Client) ToolDetails(ctx context.Context, topic string) (models.Tool, error) {
	prompt := fmt.Sprintf(`Research the AI tool "%s" using Google Search to get the latest details.
If "%s" is a general concept, find the best REAL tool matching it.

Return a raw JSON object (no markdown) with accurate details:
- name
- description (compelling, 2 sentences)
- category (one of: Writing, Image, Video, Audio, Coding, Business)
- price (Use one of these EXACT formats: "Free", "Freemium", "Paid ($X/mo)", "Paid (One-time)", or "Free Trial")
- website (Real URL)
- tags (3-5 relevant tags)
- features (3-5 real key features)
- useCases (3 real-world use cases)
- pros (3 real pros)
- cons (2 real cons)
- howToUse (A short step-by-step guide)`, topic, topic)

	resp, err := c.call(ctx, Request{
		Task:     "generateContent",
		Model:    ModelFlash,
		Contents: prompt,
		Config:   searchGrounding(),
	})
	if err != nil {
		return models.Tool{}, err
	}

	var draft toolDraft
	if !SalvageJSON(resp.FirstText(), &draft) {
		c.warnf("tool details response was not parseable")
	}

	tool := draft.toModel()
	tool.ID = fmt.Sprintf("gen-%d-0", time.Now().UnixMilli())
	name := draft.Name
	if name == "" {
		name = topic
	}
	imgPrompt := fmt.Sprintf(`A futuristic, high-tech abstract representation of the AI tool "%s". Digital art, sleek, modern UI elements, glowing nodes.`, name)
	tool.ImageURL = c.GenerateImage(ctx, imgPrompt, "16:9")
	return tool, nil
}

// NewsDetails writes a full article about a topic.
func (c *Client) NewsDetails(ctx context.Context, topic string) (models.Article, error) {
	prompt := fmt.Sprintf(`Write a comprehensive, engaging news article about "%s".
Use Google Search to find accurate, up-to-date facts, dates, and sources.

Return raw JSON (no markdown) with:
- title: Catchy headline based on real events
- description: Short summary (2 sentences)
- content: Full article body (approx 200 words), use markdown inside the string for formatting.
- category: e.g. Technology, AI, Business.
- source: The primary source found (e.g. "TechCrunch", "The Verge", or "VETORRE Reporter")`, topic)

	resp, err := c.call(ctx, Request{
		Task:     "generateContent",
		Model:    ModelFlash,
		Contents: prompt,
		Config:   searchGrounding(),
	})
	if err != nil {
		return models.Article{}, err
	}

	var draft articleDraft
	if !SalvageJSON(resp.FirstText(), &draft) {
		c.warnf("news details response was not parseable")
	}

	title := draft.Title
	if title == "" {
		title = topic
	}
	imgPrompt := fmt.Sprintf(`Editorial news illustration for "%s". Photorealistic, high quality, 4k, cinematic lighting.`, title)
	return models.Article{
		ID:          fmt.Sprintf("news-gen-%d-0", time.Now().UnixMilli()),
		Title:       draft.Title,
		Description: draft.Description,
		Content:     draft.Content,
		Category:    draft.Category,
		Source:      draft.Source,
		ImageURL:    c.GenerateImage(ctx, imgPrompt, "16:9"),
		Date:        time.Now(),
	}, nil
}

// DirectoryNews generates a batch of trending news candidates.
func (c *Client) DirectoryNews(ctx context.Context, count int) ([]models.Article, error) {
	prompt := fmt.Sprintf(`Use Google Search to find the top %d trending AI news stories from the last 24 hours.

Return raw JSON array (no markdown). Each item MUST have:
- title (Real headline)
- description (Summary of the event)
- content (Detailed report, ~150 words)
- category
- source (The publication found)`, count)

	resp, err := c.call(ctx, Request{
		Task:     "generateContent",
		Model:    ModelFlash,
		Contents: prompt,
		Config:   searchGrounding(),
	})
	if err != nil {
		return nil, err
	}

	var drafts []articleDraft
	if !SalvageJSON(resp.FirstText(), &drafts) {
		c.warnf("news batch response was not parseable, returning empty batch")
		return []models.Article{}, nil
	}

	now := time.Now().UnixMilli()
	articles := make([]models.Article, 0, len(drafts))
	for i, d := range drafts {
		imgPrompt := fmt.Sprintf(`News illustration for "%s". %s. Professional photography style.`, d.Title, d.Description)
		articles = append(articles, models.Article{
			ID:          fmt.Sprintf("news-gen-%d-%d", now, i),
			Title:       d.Title,
			Description: d.Description,
			Content:     d.Content,
			Category:    d.Category,
			Source:      d.Source,
			ImageURL:    c.GenerateImage(ctx, imgPrompt, "16:9"),
			Date:        time.Now(),
		})
	}
	return articles, nil
}

// ToolExtract is the structured-fact extraction result for one feed item.
// Zero-valued fields mean the extraction omitted them; callers fall back to
// the raw item.
type ToolExtract struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       string   `json:"price"`
	Tags        []string `json:"tags"`
}

func (c *Client) ExtractToolFromFeedItem(ctx context.Context, title, description string) (ToolExtract, error) {
	prompt := fmt.Sprintf(`Analyze this RSS feed item and extract structured data to create an AI Tool listing.
Title: %s
Description: %s
Use Google Search to confirm details and pricing if the description is sparse.

Return raw JSON object (no markdown) with:
- name: A catchy tool name based on the title
- description: A concise 1-sentence description
- category: The best fitting category (e.g., Writing, Image, Video, Coding, Analytics)
- tags: A list of 3 relevant tags
- price: Estimated price model (e.g. "Free", "Paid", "Freemium") - guess based on context or default to "Waitlist"`, title, description)

	resp, err := c.call(ctx, Request{
		Task:     "generateContent",
		Model:    ModelFlash,
		Contents: prompt,
		Config:   searchGrounding(),
	})
	if err != nil {
		return ToolExtract{}, err
	}

	var extract ToolExtract
	if !SalvageJSON(resp.FirstText(), &extract) {
		c.warnf("feed tool extraction was not parseable")
	}
	return extract, nil
}

// ArticleExtract is the structured extraction result used to turn a feed
// item into an article draft.
type ArticleExtract struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Category    string `json:"category"`
}

func (c *Client) ExtractArticleFromFeedItem(ctx context.Context, title, description string) (ArticleExtract, error) {
	prompt := fmt.Sprintf(`Write a detailed news article based on this topic: "%s - %s".
Use Google Search to find the latest details and expand on it with real facts.

Return raw JSON object (no markdown) with:
- title: A clean, engaging headline
- description: A short summary (max 2 sentences)
- content: A longer, well-formatted blog post body (approx 200 words).
- category: The best fitting category.`, title, description)

	resp, err := c.call(ctx, Request{
		Task:     "generateContent",
		Model:    ModelFlash,
		Contents: prompt,
		Config:   searchGrounding(),
	})
	if err != nil {
		return ArticleExtract{}, err
	}

	var extract ArticleExtract
	if !SalvageJSON(resp.FirstText(), &extract) {
		c.warnf("feed article extraction was not parseable")
	}
	return extract, nil
}

// ToolSlides produces the presentation deck. Schema-constrained output is
// strict: a parse failure is an error here, not an empty result.
func (c *Client) ToolSlides(ctx context.Context, tool models.Tool) ([]models.Slide, error) {
	prompt := fmt.Sprintf(`Create a 4-slide presentation about the AI tool "%s".
Description: %s.
Category: %s.

Return JSON array of slides.`, tool.Name, tool.Description, tool.Category)

	resp, err := c.call(ctx, Request{
		Task:     "generateContent",
		Model:    ModelFlash,
		Contents: prompt,
		Config: map[string]any{
			"responseMimeType": "application/json",
			"responseSchema": map[string]any{
				"type": "ARRAY",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"title":   map[string]any{"type": "STRING"},
						"content": map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	var slides []models.Slide
	if err := json.Unmarshal([]byte(resp.FirstText()), &slides); err != nil {
		return nil, fmt.Errorf("invalid slides payload: %w", err)
	}
	return slides, nil
}

// ToolTutorial produces the visual mini-course, generating one educational
// illustration per section.
func (c *Client) ToolTutorial(ctx context.Context, tool models.Tool) ([]models.TutorialSection, error) {
	prompt := fmt.Sprintf(`You are an expert AI instructor. Create a visual mini-course for the AI tool "%s".
Target audience: Beginners.

Return a JSON list of 3 educational modules.
Each module must have:
- title: Module Title (e.g. "Step 1: Setup")
- content: 2-3 sentences explaining the concept simply.
- imageDescription: A detailed visual description to generate an educational illustration for this specific module (e.g. "A minimalist diagram showing data flow...").`, tool.Name)

	resp, err := c.call(ctx, Request{
		Task:     "generateContent",
		Model:    ModelFlash,
		Contents: prompt,
		Config: map[string]any{
			"responseMimeType": "application/json",
			"responseSchema": map[string]any{
				"type": "ARRAY",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"title":            map[string]any{"type": "STRING"},
						"content":          map[string]any{"type": "STRING"},
						"imageDescription": map[string]any{"type": "STRING"},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	var raw []struct {
		Title            string `json:"title"`
		Content          string `json:"content"`
		ImageDescription string `json:"imageDescription"`
	}
	if err := json.Unmarshal([]byte(resp.FirstText()), &raw); err != nil {
		return nil, fmt.Errorf("invalid tutorial payload: %w", err)
	}

	sections := make([]models.TutorialSection, 0, len(raw))
	for _, mod := range raw {
		sections = append(sections, models.TutorialSection{
			Title:    mod.Title,
			Content:  mod.Content,
			ImageURL: c.GenerateImage(ctx, "Educational illustration: "+mod.ImageDescription, "16:9"),
		})
	}
	return sections, nil
}

// FullCourse produces the deep-dive course artifact.
func (c *Client) FullCourse(ctx context.Context, tool models.Tool) (models.Course, error) {
	prompt := fmt.Sprintf(`Create a comprehensive deep-dive educational course about the AI tool "%s".
Description: %s.

The course must be structured as valid JSON.
It should have 2 Modules. Each module has 1 Lesson.

Structure:
- title: Course Title
- totalDurationHours: Estimated hours
- suggestedResources: string[] (3 links or books)
- modules: Array of Modules
  - title
  - overview (short)
  - videoScript: A 30-word script for a video intro to this module.
  - lessons: Array of Lessons
     - title
     - durationMinutes
     - content: A detailed markdown lesson (at least 200 words) with headers and bullet points explaining how to use "%s".
  - practicalExercises: string[] (2 practical tasks)
  - quiz: Object
     - questions: Array of 2 questions
        - type: "multiple-choice" or "true-false"
        - question: The question text
        - options: string array. For True/False, use ["True", "False"]. For multiple-choice, provide 4 options.
        - correctAnswerIndex: number (0-3 for MC, 0-1 for TF)
        - explanation: A concise, helpful sentence explaining why the correct answer is right.`, tool.Name, tool.Description, tool.Name)

	resp, err := c.call(ctx, Request{
		Task:     "generateContent",
		Model:    ModelFlash,
		Contents: prompt,
		Config:   map[string]any{"responseMimeType": "application/json"},
	})
	if err != nil {
		return models.Course{}, err
	}

	var course models.Course
	if err := json.Unmarshal([]byte(resp.FirstText()), &course); err != nil {
		return models.Course{}, fmt.Errorf("invalid course payload: %w", err)
	}
	return course, nil
}

// PodcastScript writes a short intro script for a tool.
func (c *Client) PodcastScript(ctx context.Context, tool models.Tool) (string, error) {
	prompt := fmt.Sprintf(`Write a very short, enthusiastic podcast intro script (approx 50 words) introducing the AI tool "%s".
The host is excited about features: %s.`, tool.Name, tool.Description)

	resp, err := c.call(ctx, Request{Task: "generateContent", Model: ModelFlash, Contents: prompt})
	if err != nil {
		return "", err
	}
	return resp.FirstText(), nil
}

// Audio is a synthesized speech payload.
type Audio struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

// Speaker pairs a dialogue name with a prebuilt provider voice.
type Speaker struct {
	Name  string
	Voice string
}

// Speech synthesizes a single-voice narration.
func (c *Client) Speech(ctx context.Context, text, voice string) (Audio, error) {
	if voice == "" {
		voice = "Kore"
	}
	resp, err := c.call(ctx, Request{
		Task:     "generateContent",
		Model:    ModelTTS,
		Contents: textParts(text),
		Config: map[string]any{
			"responseModalities": []string{"AUDIO"},
			"speechConfig": map[string]any{
				"voiceConfig": map[string]any{
					"prebuiltVoiceConfig": map[string]any{"voiceName": voice},
				},
			},
		},
	})
	if err != nil {
		return Audio{}, err
	}

	data := resp.FirstInlineData()
	if data == nil || data.Data == "" {
		return Audio{}, fmt.Errorf("no audio data in response")
	}
	return Audio{MimeType: data.MimeType, Data: data.Data}, nil
}

// ConversationScript writes a two-host podcast dialogue about a topic.
func (c *Client) ConversationScript(ctx context.Context, topic string, first, second Speaker) (string, error) {
	prompt := fmt.Sprintf(`Write a short, engaging podcast dialogue (approx 150 words) between two hosts, %s and %s, discussing the topic: "%s".
Format it exactly like this:
%s: [Text]
%s: [Text]
Keep it natural, conversational, and enthusiastic.`, first.Name, second.Name, topic, first.Name, second.Name)

	resp, err := c.call(ctx, Request{Task: "generateContent", Model: ModelFlash, Contents: prompt})
	if err != nil {
		return "", err
	}
	return resp.FirstText(), nil
}

// MultiSpeakerSpeech synthesizes a dialogue with one voice per speaker.
func (c *Client) MultiSpeakerSpeech(ctx context.Context, script string, first, second Speaker) (Audio, error) {
	resp, err := c.call(ctx, Request{
		Task:     "generateContent",
		Model:    ModelTTS,
		Contents: textParts("TTS the following conversation:\n" + script),
		Config: map[string]any{
			"responseModalities": []string{"AUDIO"},
			"speechConfig": map[string]any{
				"multiSpeakerVoiceConfig": map[string]any{
					"speakerVoiceConfigs": []map[string]any{
						{
							"speaker":     first.Name,
							"voiceConfig": map[string]any{"prebuiltVoiceConfig": map[string]any{"voiceName": first.Voice}},
						},
						{
							"speaker":     second.Name,
							"voiceConfig": map[string]any{"prebuiltVoiceConfig": map[string]any{"voiceName": second.Voice}},
						},
					},
				},
			},
		},
	})
	if err != nil {
		return Audio{}, err
	}

	data := resp.FirstInlineData()
	if data == nil || data.Data == "" {
		return Audio{}, fmt.Errorf("no audio data in response")
	}
	return Audio{MimeType: data.MimeType, Data: data.Data}, nil
}

// EditImage applies a prompt to an existing image and returns the edited
// PNG as a data URL.
func (c *Client) EditImage(ctx context.Context, prompt, imageBase64 string) (string, error) {
	resp, err := c.call(ctx, Request{
		Task:  "generateContent",
		Model: ModelImageEdit,
		Contents: map[string]any{
			"parts": []map[string]any{
				{"inlineData": map[string]any{"mimeType": "image/png", "data": imageBase64}},
				{"text": prompt},
			},
		},
	})
	if err != nil {
		return "", err
	}

	data := resp.FirstInlineData()
	if data == nil || data.Data == "" {
		return "", fmt.Errorf("no image data in response")
	}
	return "data:image/png;base64," + data.Data, nil
}

// GenerateVideo starts an asynchronous video generation and returns the
// operation name for polling.
func (c *Client) GenerateVideo(ctx context.Context, prompt, imageBase64, aspectRatio string) (string, error) {
	if aspectRatio == "" {
		aspectRatio = "16:9"
	}
	req := Request{
		Task:   "generateVideos",
		Model:  ModelVideo,
		Prompt: prompt,
		Config: map[string]any{
			"numberOfVideos": 1,
			"resolution":     "720p",
			"aspectRatio":    aspectRatio,
		},
	}
	if imageBase64 != "" {
		req.Image = map[string]any{"imageBytes": imageBase64, "mimeType": "image/png"}
	}

	resp, err := c.call(ctx, req)
	if err != nil {
		return "", err
	}
	if resp.Name == "" {
		return "", fmt.Errorf("no operation name in response")
	}
	return resp.Name, nil
}

// PollVideo checks an in-flight video operation.
func (c *Client) PollVideo(ctx context.Context, operationName string) (*Response, error) {
	return c.call(ctx, Request{Task: "getVideosOperation", OperationName: operationName})
}

// TrendReport produces a markdown market analysis of the current directory.
func (c *Client) TrendReport(ctx context.Context, tools []models.Tool) (string, error) {
	list := ""
	for _, t := range tools {
		list += fmt.Sprintf("- %s (%s): %s\n", t.Name, t.Category, t.Description)
	}
	prompt := fmt.Sprintf(`You are an expert market analyst for AI technologies.
Analyze the following list of AI tools currently in our directory:

%s
Please provide a concise but insightful report covering:
1. **Current Trend**: What is the dominant theme?
2. **Market Gap**: What kind of tool is missing or underrepresented?
3. **Prediction**: What should be the next big tool we build?

Format the response in Markdown with clear headings.`, list)

	resp, err := c.call(ctx, Request{
		Task:     "generateContent",
		Model:    ModelPro,
		Contents: prompt,
		Config:   map[string]any{"thinkingConfig": map[string]any{"thinkingBudget": 32768}},
	})
	if err != nil {
		return "", err
	}
	if text := resp.FirstText(); text != "" {
		return text, nil
	}
	return "Unable to generate analysis.", nil
}

// SearchHits are entity ids matched by the intelligent search.
type SearchHits struct {
	ToolIDs []string `json:"toolIds"`
	NewsIDs []string `json:"newsIds"`
}

// IntelligentSearch ranks directory entities for a free-text query. Any
// failure degrades to zero hits.
func (c *Client) IntelligentSearch(ctx context.Context, query string, tools []models.Tool, news []models.Article) SearchHits {
	type slimTool struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Tags        []string `json:"tags"`
	}
	type slimNews struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}

	slimTools := make([]slimTool, 0, len(tools))
	for _, t := range tools {
		slimTools = append(slimTools, slimTool{
			ID: t.ID, Name: t.Name, Description: t.Description,
			Category: t.Category, Tags: []string(t.Tags),
		})
	}
	slimArticles := make([]slimNews, 0, len(news))
	for _, n := range news {
		slimArticles = append(slimArticles, slimNews{
			ID: n.ID, Title: n.Title, Description: n.Description, Category: n.Category,
		})
	}

	toolsJSON, _ := json.Marshal(slimTools)
	newsJSON, _ := json.Marshal(slimArticles)

	prompt := fmt.Sprintf(`You are an intelligent search engine for an AI tool directory.
User Query: "%s"

Analyze the user's intent. Do they want a tool for a specific task? Are they looking for news about a topic? Or both?

Here is the available data:
TOOLS: %s
NEWS: %s

Return a JSON object with two arrays containing the IDs of relevant items.
Be permissive but prioritize relevance.`, query, toolsJSON, newsJSON)

	resp, err := c.call(ctx, Request{
		Task:     "generateContent",
		Model:    ModelFlash,
		Contents: prompt,
		Config: map[string]any{
			"responseMimeType": "application/json",
			"responseSchema": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"toolIds": map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}},
					"newsIds": map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}},
				},
			},
		},
	})
	if err != nil {
		c.warnf("intelligent search failed: %v", err)
		return SearchHits{}
	}

	var hits SearchHits
	if err := json.Unmarshal([]byte(resp.FirstText()), &hits); err != nil {
		c.warnf("intelligent search returned invalid JSON: %v", err)
		return SearchHits{}
	}
	return hits
}
