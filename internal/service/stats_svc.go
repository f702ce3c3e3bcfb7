package service

import (
	"context"
	"log"

	"github.com/goccy/go-json"

	"github.com/Hrhcoolshegs/verdict/internal/model"
	"github.com/Hrhcoolshegs/verdict/internal/rating"
	"github.com/Hrhcoolshegs/verdict/internal/repository"
)

// StatsService computes the global community statistics snapshot.
type StatsService struct {
	movies    *repository.MovieRepo
	verdicts  *repository.VerdictRepo
	cache     *CacheService
	threshold int
}

func NewStatsService(movies *repository.MovieRepo, verdicts *repository.VerdictRepo, cache *CacheService, threshold int) *StatsService {
	if threshold <= 0 {
		threshold = rating.DefaultThreshold
	}
	return &StatsService{movies: movies, verdicts: verdicts, cache: cache, threshold: threshold}
}

// GetStats returns the snapshot, from cache when fresh.
func (s *StatsService) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.GetStats(ctx)
		if err != nil {
			log.Printf("cache: stats get error: %v", err)
		}
		if cached != nil {
			var resp model.StatsResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	resp, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetStats(ctx, resp); err != nil {
			log.Printf("cache: stats set error: %v", err)
		}
	}
	return resp, nil
}

// Refresh recomputes the snapshot and overwrites the cache. Used by the
// stats worker after verdict batches.
func (s *StatsService) Refresh(ctx context.Context) error {
	resp, err := s.compute(ctx)
	if err != nil {
		return err
	}
	if s.cache != nil {
		return s.cache.SetStats(ctx, resp)
	}
	return nil
}

func (s *StatsService) compute(ctx context.Context) (*model.StatsResponse, error) {
	movies, err := s.movies.List(ctx)
	if err != nil {
		return nil, err
	}

	totalVerdicts, err := s.verdicts.CountVerdicts(ctx)
	if err != nil {
		return nil, err
	}

	resp := &model.StatsResponse{
		TotalMovies:   len(movies),
		TotalVerdicts: totalVerdicts,
	}
	for i := range movies {
		resp.CinemaVotes += movies[i].CinemaVotes
		resp.NotCinemaVotes += movies[i].NotCinemaVotes
		if rating.IsCinema(&movies[i], s.threshold) {
			resp.CinemaTitles++
		}
	}
	return resp, nil
}
