package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Hrhcoolshegs/verdict/internal/middleware"
	"github.com/Hrhcoolshegs/verdict/internal/model"
	"github.com/Hrhcoolshegs/verdict/internal/service"
)

type AuthHandler struct {
	svc *service.OTPService
}

func NewAuthHandler(svc *service.OTPService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Begin handles POST /api/auth/verify — dispatches a one-time passcode.
func (h *AuthHandler) Begin(c fiber.Ctx) error {
	var req model.BeginVerificationRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if err := h.svc.Begin(c.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_EMAIL", "Please enter a valid email address.")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to send verification email")
	}

	Metrics.PasscodesSent.Inc()

	return c.JSON(fiber.Map{"sent": true})
}

// Confirm handles POST /api/auth/confirm — exchanges a passcode for a session.
func (h *AuthHandler) Confirm(c fiber.Ctx) error {
	var req model.ConfirmVerificationRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	sess, err := h.svc.Confirm(c.Context(), req.Email, req.Passcode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_EMAIL", "Please enter a valid email address.")
		case errors.Is(err, service.ErrPasscodeMismatch):
			return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "PASSCODE_MISMATCH", "Passcode is incorrect or expired.")
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to confirm passcode")
		}
	}

	return c.JSON(sess)
}

// SignOut handles POST /api/auth/signout
func (h *AuthHandler) SignOut(c fiber.Ctx) error {
	token, errMsg := middleware.ValidateSessionToken(c.Get("X-Session-Token"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.SignOut(c.Context(), token); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sign out")
	}

	return c.JSON(fiber.Map{"success": true})
}
