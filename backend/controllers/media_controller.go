package controllers

import (
	"vetorre/backend/config"
	"vetorre/backend/gemini"
	"vetorre/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MediaController exposes the audio, image and video generation endpoints
// of the admin studio. Nothing here is persisted; results go straight back
// to the caller.
type MediaController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Gemini *gemini.Client
	Admin  *AdminController
}

func NewMediaController(db *gorm.DB, cfg *config.Config, client *gemini.Client, admin *AdminController) *MediaController {
	return &MediaController{DB: db, Cfg: cfg, Gemini: client, Admin: admin}
}

// Speak godoc
// @Summary Synthesize speech from text
// @Tags media
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /admin/media/speech [post]
func (mc *MediaController) Speak(c *fiber.Ctx) error {
	type input struct {
		Text  string `json:"text"`
		Voice string `json:"voice"`
	}
	var in input
	if err := c.BodyParser(&in); err != nil || in.Text == "" {
		return utils.BadRequest(c, "Text is required")
	}

	if _, err := mc.Admin.chargeGeneration(c); err != nil {
		return err
	}

	audio, err := mc.Gemini.Speech(c.Context(), in.Text, in.Voice)
	if err != nil {
		return utils.Error(c, fiber.StatusBadGateway, err)
	}
	return utils.Success(c, fiber.StatusOK, audio)
}

// Conversation godoc
// @Summary Generate and voice a two-speaker dialogue
// @Tags media
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /admin/media/conversation [post]
func (mc *MediaController) Conversation(c *fiber.Ctx) error {
	type input struct {
		Topic       string `json:"topic"`
		FirstName   string `json:"firstName"`
		FirstVoice  string `json:"firstVoice"`
		SecondName  string `json:"secondName"`
		SecondVoice string `json:"secondVoice"`
	}
	var in input
	if err := c.BodyParser(&in); err != nil || in.Topic == "" {
		return utils.BadRequest(c, "Topic is required")
	}

	if _, err := mc.Admin.chargeGeneration(c); err != nil {
		return err
	}

	first := gemini.Speaker{Name: in.FirstName, Voice: in.FirstVoice}
	second := gemini.Speaker{Name: in.SecondName, Voice: in.SecondVoice}

	script, err := mc.Gemini.ConversationScript(c.Context(), in.Topic, first, second)
	if err != nil {
		return utils.Error(c, fiber.StatusBadGateway, err)
	}
	audio, err := mc.Gemini.MultiSpeakerSpeech(c.Context(), script, first, second)
	if err != nil {
		return utils.Error(c, fiber.StatusBadGateway, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"script": script,
		"audio":  audio,
	})
}

// EditImage godoc
// @Summary Edit an image with a text instruction
// @Tags media
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /admin/media/image-edit [post]
func (mc *MediaController) EditImage(c *fiber.Ctx) error {
	type input struct {
		Prompt string `json:"prompt"`
		Image  string `json:"image"` // base64
	}
	var in input
	if err := c.BodyParser(&in); err != nil || in.Prompt == "" || in.Image == "" {
		return utils.BadRequest(c, "Prompt and image are required")
	}

	if _, err := mc.Admin.chargeGeneration(c); err != nil {
		return err
	}

	edited, err := mc.Gemini.EditImage(c.Context(), in.Prompt, in.Image)
	if err != nil {
		return utils.Error(c, fiber.StatusBadGateway, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"image": edited})
}

// StartVideo godoc
// @Summary Start an asynchronous video generation
// @Description Returns the operation name to poll for completion
// @Tags media
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /admin/media/video [post]
func (mc *MediaController) StartVideo(c *fiber.Ctx) error {
	type input struct {
		Prompt      string `json:"prompt"`
		Image       string `json:"image"` // optional base64 first frame
		AspectRatio string `json:"aspectRatio"`
	}
	var in input
	if err := c.BodyParser(&in); err != nil || in.Prompt == "" {
		return utils.BadRequest(c, "Prompt is required")
	}

	if _, err := mc.Admin.chargeGeneration(c); err != nil {
		return err
	}

	operation, err := mc.Gemini.GenerateVideo(c.Context(), in.Prompt, in.Image, in.AspectRatio)
	if err != nil {
		return utils.Error(c, fiber.StatusBadGateway, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"operation": operation})
}

// PollVideo godoc
// @Summary Poll a running video generation
// @Tags media
// @Produce json
// @Param operation query string true "Operation name"
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /admin/media/video [get]
func (mc *MediaController) PollVideo(c *fiber.Ctx) error {
	operation := c.Query("operation")
	if operation == "" {
		return utils.BadRequest(c, "Operation is required")
	}

	status, err := mc.Gemini.PollVideo(c.Context(), operation)
	if err != nil {
		return utils.Error(c, fiber.StatusBadGateway, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"done":   status.Done,
		"result": status.Result,
	})
}
