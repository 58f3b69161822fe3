package controllers

import (
	"vetorre/backend/config"
	"vetorre/backend/models"
	"vetorre/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns authenticated user's profile data
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	limit := models.PlanLimit(user.Plan)

	// Формируем ответ без чувствительных данных
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":               user.ID,
		"username":         user.Username,
		"email":            user.Email,
		"role":             user.Role,
		"plan":             user.Plan,
		"subscription_end": user.SubscriptionEnd,
		"created_at":       user.CreatedAt,
		"generations": fiber.Map{
			"used":      user.GenerationsCount,
			"limit":     limit,
			"remaining": limit - user.GenerationsCount,
		},
	})
}

// GetUsage godoc
// @Summary Get generation usage
// @Description Returns how much of the plan's generation budget is spent
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/usage [get]
func (uc *UserController) GetUsage(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"plan":         user.Plan,
		"used":         user.GenerationsCount,
		"limit":        models.PlanLimit(user.Plan),
		"can_generate": user.CanGenerate(),
	})
}
