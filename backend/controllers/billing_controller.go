package controllers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"vetorre/backend/config"
	"vetorre/backend/models"
	"vetorre/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CheckoutVerifier validates a checkout claim with the payment provider.
type CheckoutVerifier interface {
	Verify(ctx context.Context, orderID, plan, signature string) error
}

// HMACVerifier checks the signature the checkout page sends back:
// hex(hmac-sha256(secret, orderID + ":" + plan)).
type HMACVerifier struct {
	Secret string
}

func (v *HMACVerifier) Verify(_ context.Context, orderID, plan, signature string) error {
	mac := hmac.New(sha256.New, []byte(v.Secret))
	mac.Write([]byte(orderID + ":" + plan))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid checkout signature")
	}
	return nil
}

// BillingController upgrades accounts after a verified checkout.
type BillingController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Verifier CheckoutVerifier
}

func NewBillingController(db *gorm.DB, cfg *config.Config, verifier CheckoutVerifier) *BillingController {
	return &BillingController{DB: db, Cfg: cfg, Verifier: verifier}
}

// VerifyCheckout godoc
// @Summary Verify a checkout and upgrade the plan
// @Description Applies the purchased plan; lifetime purchases get a far
// future subscription end instead of a special flag
// @Tags billing
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /billing/verify [post]
func (bc *BillingController) VerifyCheckout(c *fiber.Ctx) error {
	type input struct {
		OrderID   string `json:"orderId"`
		Plan      string `json:"plan"`
		Lifetime  bool   `json:"lifetime"`
		Signature string `json:"signature"`
	}
	var in input
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if in.Plan != models.PlanStarter && in.Plan != models.PlanPro {
		return utils.BadRequest(c, "Unknown plan")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	if err := bc.Verifier.Verify(c.Context(), in.OrderID, in.Plan, in.Signature); err != nil {
		return utils.BadRequest(c, "Checkout verification failed")
	}

	var user models.User
	if err := bc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	end := time.Now().AddDate(0, 1, 0)
	if in.Lifetime {
		// Lifetime is modeled as a subscription ending a century out.
		end = end.AddDate(100, 0, 0)
	}

	user.Plan = in.Plan
	user.SubscriptionEnd = &end
	if err := bc.DB.Save(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"plan":             user.Plan,
		"subscription_end": user.SubscriptionEnd,
	})
}
