package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/Hrhcoolshegs/verdict/internal/middleware"
	"github.com/Hrhcoolshegs/verdict/internal/service"
)

type MovieHandler struct {
	svc *service.CatalogService
}

func NewMovieHandler(svc *service.CatalogService) *MovieHandler {
	return &MovieHandler{svc: svc}
}

// List handles GET /api/movies
func (h *MovieHandler) List(c fiber.Ctx) error {
	movies, err := h.svc.List(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch movies")
	}
	return c.JSON(movies)
}

// GetByID handles GET /api/movies/:movieId
func (h *MovieHandler) GetByID(c fiber.Ctx) error {
	movieID, errMsg := middleware.ValidateMovieID(c.Params("movieId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	movie, err := h.svc.Get(c.Context(), movieID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Movie not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch movie")
	}

	return c.JSON(movie)
}

// Search handles GET /api/movies/search?q=
func (h *MovieHandler) Search(c fiber.Ctx) error {
	query, errMsg := middleware.ValidateSearchQuery(c.Query("q"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	movies, err := h.svc.Search(c.Context(), query)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Search failed")
	}

	// An empty result is a valid response, not an error — the client routes
	// the user to a manual-judgment fallback.
	return c.JSON(movies)
}

// Random handles GET /api/movies/random
func (h *MovieHandler) Random(c fiber.Ctx) error {
	movie, err := h.svc.Random(c.Context())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Catalog is empty")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch random movie")
	}

	return c.JSON(movie)
}
