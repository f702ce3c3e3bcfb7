package service

import (
	"context"
	"log"

	"github.com/goccy/go-json"

	"github.com/Hrhcoolshegs/verdict/internal/model"
	"github.com/Hrhcoolshegs/verdict/internal/rating"
	"github.com/Hrhcoolshegs/verdict/internal/repository"
)

// CatalogService serves movie lookups with derived rating fields and a
// cache-aside layer for single-movie fetches.
type CatalogService struct {
	repo      *repository.MovieRepo
	cache     *CacheService
	threshold int
}

func NewCatalogService(repo *repository.MovieRepo, cache *CacheService, threshold int) *CatalogService {
	if threshold <= 0 {
		threshold = rating.DefaultThreshold
	}
	return &CatalogService{repo: repo, cache: cache, threshold: threshold}
}

// Threshold returns the configured cinema classification cutoff.
func (s *CatalogService) Threshold() int {
	return s.threshold
}

// List returns the full catalog with derived fields, ordered by id.
func (s *CatalogService) List(ctx context.Context) ([]model.MovieResponse, error) {
	movies, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.buildResponses(movies), nil
}

// Get returns one movie, consulting the cache first.
func (s *CatalogService) Get(ctx context.Context, id int64) (*model.MovieResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.GetMovie(ctx, id)
		if err != nil {
			log.Printf("cache: movie get error: %v", err)
		}
		if cached != nil {
			var resp model.MovieResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := rating.Response(movie, s.threshold)
	if s.cache != nil {
		if err := s.cache.SetMovie(ctx, id, resp); err != nil {
			log.Printf("cache: movie set error: %v", err)
		}
	}
	return &resp, nil
}

// Search finds movies by substring match on title or director.
func (s *CatalogService) Search(ctx context.Context, query string) ([]model.MovieResponse, error) {
	movies, err := s.repo.Search(ctx, query, 10)
	if err != nil {
		return nil, err
	}
	return s.buildResponses(movies), nil
}

// Random returns one uniformly random movie.
func (s *CatalogService) Random(ctx context.Context) (*model.MovieResponse, error) {
	movie, err := s.repo.Random(ctx)
	if err != nil {
		return nil, err
	}
	resp := rating.Response(movie, s.threshold)
	return &resp, nil
}

func (s *CatalogService) buildResponses(movies []model.Movie) []model.MovieResponse {
	responses := make([]model.MovieResponse, 0, len(movies))
	for i := range movies {
		responses = append(responses, rating.Response(&movies[i], s.threshold))
	}
	return responses
}
