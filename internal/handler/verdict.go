package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/Hrhcoolshegs/verdict/internal/middleware"
	"github.com/Hrhcoolshegs/verdict/internal/model"
	"github.com/Hrhcoolshegs/verdict/internal/repository"
	"github.com/Hrhcoolshegs/verdict/internal/service"
	"github.com/Hrhcoolshegs/verdict/pkg/hash"
)

type VerdictHandler struct {
	svc    *service.VerdictService
	ipSalt string
}

func NewVerdictHandler(svc *service.VerdictService, ipSalt string) *VerdictHandler {
	return &VerdictHandler{svc: svc, ipSalt: ipSalt}
}

// Submit handles POST /api/verdicts
func (h *VerdictHandler) Submit(c fiber.Ctx) error {
	var req model.VerdictRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if req.MovieID <= 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "movieId must be a positive integer")
	}

	identityKey, errMsg := middleware.ValidateIdentityKey(req.IdentityKey)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.IdentityKey = identityKey

	choice, errMsg := middleware.ValidateChoice(string(req.Choice))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CHOICE", errMsg)
	}
	req.Choice = choice

	req.UserAgent = middleware.ValidateUserAgent(req.UserAgent)

	ipHash := hash.HashIP(c.IP(), h.ipSalt)

	resp, err := h.svc.Submit(c.Context(), req, ipHash)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyJudged):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "ALREADY_JUDGED",
				"You have already submitted a verdict for this movie.")
		case errors.Is(err, pgx.ErrNoRows):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Movie not found")
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record verdict")
		}
	}

	Metrics.VerdictsTotal.WithLabelValues(string(req.Choice)).Inc()

	return c.JSON(resp)
}

// HasVoted handles GET /api/verdicts/:movieId/voted?identityKey=
func (h *VerdictHandler) HasVoted(c fiber.Ctx) error {
	movieID, errMsg := middleware.ValidateMovieID(c.Params("movieId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	identityKey, errMsg := middleware.ValidateIdentityKey(c.Query("identityKey"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	voted, err := h.svc.HasVoted(c.Context(), movieID, identityKey)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check verdict")
	}

	return c.JSON(fiber.Map{"hasVoted": voted})
}

// Prior handles GET /api/verdicts/:movieId?identityKey=
func (h *VerdictHandler) Prior(c fiber.Ctx) error {
	movieID, errMsg := middleware.ValidateMovieID(c.Params("movieId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	identityKey, errMsg := middleware.ValidateIdentityKey(c.Query("identityKey"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	prior, err := h.svc.Prior(c.Context(), movieID, identityKey)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(model.PriorVerdictResponse{HasJudged: false})
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch verdict")
	}

	return c.JSON(prior)
}
