package controllers

import (
	"fmt"
	"path/filepath"
	"sync"

	"vetorre/backend/config"
	"vetorre/backend/models"
	"vetorre/backend/progress"
	"vetorre/backend/store"
	"vetorre/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// CourseController drives the course player and the completion tracker.
// Player sessions are in-memory per (user, tool); completion state is
// persisted per user under the progress directory, keyed by course title.
type CourseController struct {
	Cfg   *config.Config
	Tools *store.Mirror[models.Tool]

	mu       sync.Mutex
	sessions map[string]*courseSession
}

type courseSession struct {
	tracker *progress.Tracker
	player  *progress.Player
}

func NewCourseController(cfg *config.Config, tools *store.Mirror[models.Tool]) *CourseController {
	return &CourseController{
		Cfg:      cfg,
		Tools:    tools,
		sessions: make(map[string]*courseSession),
	}
}

func (cc *CourseController) course(toolID string) (models.Course, bool) {
	for _, tool := range cc.Tools.Items() {
		if tool.ID == toolID && tool.Course != nil {
			return tool.Course.Data(), true
		}
	}
	return models.Course{}, false
}

// session returns the live player session for this user and tool, creating
// it (and loading saved completion state) on first access.
func (cc *CourseController) session(c *fiber.Ctx, toolID string) (*courseSession, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	course, ok := cc.course(toolID)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Course not found")
	}

	key := fmt.Sprintf("%d:%s", userID, toolID)

	cc.mu.Lock()
	defer cc.mu.Unlock()

	if s, ok := cc.sessions[key]; ok {
		return s, nil
	}

	fileStore, err := progress.NewFileStore(filepath.Join(cc.Cfg.ProgressDir, fmt.Sprint(userID)))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not open progress storage")
	}
	tracker := progress.NewTracker(course, fileStore)
	s := &courseSession{
		tracker: tracker,
		player:  progress.NewPlayer(course, tracker),
	}
	cc.sessions[key] = s
	return s, nil
}

func playerState(s *courseSession) fiber.Map {
	return fiber.Map{
		"moduleIndex":    s.player.ModuleIndex(),
		"lessonIndex":    s.player.LessonIndex(),
		"mode":           s.player.Mode(),
		"done":           s.player.Done(),
		"answers":        s.player.Answers(),
		"submitted":      s.player.Submitted(),
		"canGoPrevious":  s.player.CanGoPrevious(),
		"courseProgress": s.tracker.CourseProgress(),
	}
}

// GetCourse godoc
// @Summary Get a tool's course
// @Tags courses
// @Produce json
// @Param toolId path string true "Tool ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/:toolId [get]
func (cc *CourseController) GetCourse(c *fiber.Ctx) error {
	course, ok := cc.course(c.Params("toolId"))
	if !ok {
		return utils.NotFound(c, "Course not found")
	}
	return utils.Success(c, fiber.StatusOK, course)
}

// GetLesson godoc
// @Summary Get one lesson with rendered content
// @Tags courses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /courses/:toolId/modules/:module/lessons/:lesson [get]
func (cc *CourseController) GetLesson(c *fiber.Ctx) error {
	course, ok := cc.course(c.Params("toolId"))
	if !ok {
		return utils.NotFound(c, "Course not found")
	}
	moduleIndex, _ := c.ParamsInt("module")
	lessonIndex, _ := c.ParamsInt("lesson")
	if moduleIndex < 0 || moduleIndex >= len(course.Modules) {
		return utils.NotFound(c, "Module not found")
	}
	lessons := course.Modules[moduleIndex].Lessons
	if lessonIndex < 0 || lessonIndex >= len(lessons) {
		return utils.NotFound(c, "Lesson not found")
	}

	lesson := lessons[lessonIndex]
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"lesson":      lesson,
		"contentHtml": utils.RenderMarkdown(lesson.Content),
	})
}

// GetProgress godoc
// @Summary Get completion stats for a course
// @Tags courses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /courses/:toolId/progress [get]
func (cc *CourseController) GetProgress(c *fiber.Ctx) error {
	s, err := cc.session(c, c.Params("toolId"))
	if err != nil {
		return err
	}

	course, _ := cc.course(c.Params("toolId"))
	modules := make([]progress.Stats, len(course.Modules))
	for i := range course.Modules {
		modules[i] = s.tracker.ModuleProgress(i)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"modules": modules,
		"course":  s.tracker.CourseProgress(),
	})
}

type progressItemInput struct {
	Type   string `json:"type"` // lesson, exercises, quiz, script
	Module int    `json:"module"`
	Lesson *int   `json:"lesson"`
}

// ToggleItem godoc
// @Summary Toggle a completion item
// @Tags courses
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /courses/:toolId/progress/toggle [post]
func (cc *CourseController) ToggleItem(c *fiber.Ctx) error {
	s, err := cc.session(c, c.Params("toolId"))
	if err != nil {
		return err
	}
	var in progressItemInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	typ := progress.ItemType(in.Type)
	if in.Lesson != nil {
		s.tracker.Toggle(typ, in.Module, *in.Lesson)
	} else {
		s.tracker.Toggle(typ, in.Module)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"course": s.tracker.CourseProgress()})
}

// GetPlayer returns the current player state.
func (cc *CourseController) GetPlayer(c *fiber.Ctx) error {
	s, err := cc.session(c, c.Params("toolId"))
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, playerState(s))
}

// PlayerNext advances the player one step.
func (cc *CourseController) PlayerNext(c *fiber.Ctx) error {
	s, err := cc.session(c, c.Params("toolId"))
	if err != nil {
		return err
	}
	s.player.Next()
	return utils.Success(c, fiber.StatusOK, playerState(s))
}

// PlayerPrevious steps the player back.
func (cc *CourseController) PlayerPrevious(c *fiber.Ctx) error {
	s, err := cc.session(c, c.Params("toolId"))
	if err != nil {
		return err
	}
	s.player.Previous()
	return utils.Success(c, fiber.StatusOK, playerState(s))
}

// PlayerResources opens the suggested-resources panel.
func (cc *CourseController) PlayerResources(c *fiber.Ctx) error {
	s, err := cc.session(c, c.Params("toolId"))
	if err != nil {
		return err
	}
	s.player.ShowResources()
	return utils.Success(c, fiber.StatusOK, playerState(s))
}

// AnswerQuiz records one quiz answer; ignored once the quiz is submitted.
func (cc *CourseController) AnswerQuiz(c *fiber.Ctx) error {
	s, err := cc.session(c, c.Params("toolId"))
	if err != nil {
		return err
	}
	type input struct {
		Question int `json:"question"`
		Option   int `json:"option"`
	}
	var in input
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	s.player.Answer(in.Question, in.Option)
	return utils.Success(c, fiber.StatusOK, playerState(s))
}

// SubmitQuiz grades the current module quiz. Refused while any question is
// unanswered.
func (cc *CourseController) SubmitQuiz(c *fiber.Ctx) error {
	s, err := cc.session(c, c.Params("toolId"))
	if err != nil {
		return err
	}
	score, ok := s.player.SubmitQuiz()
	if !ok {
		return utils.BadRequest(c, "Answer every question before submitting")
	}
	state := playerState(s)
	state["score"] = score
	return utils.Success(c, fiber.StatusOK, state)
}
