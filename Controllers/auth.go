package Controllers

import (
	"errors"
	"log"

	"PalletTrack/Models"
	"PalletTrack/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthController handles PIN login and session endpoints.
type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type LoginRequest struct {
	Pin string `json:"pin" validate:"required,len=4"`
}

// Login exchanges a 4-digit PIN for a session cookie. The response never
// reveals whether a PIN exists; unknown and wrong PINs answer the same way.
func (a *AuthController) Login(ctx *fiber.Ctx) error {
	var input LoginRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid PIN format"})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid PIN format"})
	}

	var user Models.User
	result := a.DB.Where("pin = ?", input.Pin).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid PIN"})
		}
		log.Println("Login error:", result.Error)
		return internalError(ctx)
	}

	if !user.IsActive {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Account is inactive"})
	}

	if err := middleware.IssueSessionCookie(ctx, user); err != nil {
		log.Println("Login error:", err)
		return internalError(ctx)
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":   user.ID,
			"name": user.Name,
			"role": user.Role,
		},
	})
}

// Logout resets the session cookie. Idempotent, works with or without a
// live session.
func (a *AuthController) Logout(ctx *fiber.Ctx) error {
	middleware.ClearSessionCookie(ctx)
	return ctx.JSON(fiber.Map{"success": true})
}

// Me returns the identity stored in the session. Runs behind Verify, so the
// session is always present here.
func (a *AuthController) Me(ctx *fiber.Ctx) error {
	sess := middleware.SessionFrom(ctx)
	return ctx.JSON(fiber.Map{
		"isLoggedIn": true,
		"user": fiber.Map{
			"id":   sess.UserID,
			"name": sess.UserName,
			"role": sess.Role,
		},
	})
}
