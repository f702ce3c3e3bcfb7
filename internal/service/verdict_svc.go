package service

import (
	"context"
	"log"

	"github.com/Hrhcoolshegs/verdict/internal/model"
	"github.com/Hrhcoolshegs/verdict/internal/rating"
	"github.com/Hrhcoolshegs/verdict/internal/repository"
)

// VerdictService records verdicts and keeps caches coherent afterwards.
type VerdictService struct {
	repo      *repository.VerdictRepo
	cache     *CacheService
	threshold int
}

func NewVerdictService(repo *repository.VerdictRepo, cache *CacheService, threshold int) *VerdictService {
	if threshold <= 0 {
		threshold = rating.DefaultThreshold
	}
	return &VerdictService{repo: repo, cache: cache, threshold: threshold}
}

// Submit records a verdict. The repository enforces one verdict per
// (identity, movie); counts in the returned movie are authoritative.
func (s *VerdictService) Submit(ctx context.Context, req model.VerdictRequest, ipHash string) (*model.VerdictResponse, error) {
	movie, err := s.repo.Record(ctx, req.MovieID, req.IdentityKey, req.Choice, ipHash, req.UserAgent)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateMovie(ctx, req.MovieID); err != nil {
			log.Printf("cache: invalidate movie error: %v", err)
		}
		if err := s.cache.InvalidateStats(ctx); err != nil {
			log.Printf("cache: invalidate stats error: %v", err)
		}
	}

	resp := rating.Response(movie, s.threshold)
	return &model.VerdictResponse{
		Success: true,
		Movie:   &resp,
		Message: "Verdict recorded",
	}, nil
}

// HasVoted reports whether the identity already judged the movie. This is
// the defensive pre-check clients use; Record remains the final arbiter.
func (s *VerdictService) HasVoted(ctx context.Context, movieID int64, identityKey string) (bool, error) {
	return s.repo.HasVoted(ctx, movieID, identityKey)
}

// Prior returns the identity's recorded choice for the movie, if any.
func (s *VerdictService) Prior(ctx context.Context, movieID int64, identityKey string) (*model.PriorVerdictResponse, error) {
	choice, err := s.repo.GetChoice(ctx, movieID, identityKey)
	if err != nil {
		return nil, err
	}
	return &model.PriorVerdictResponse{HasJudged: true, Choice: choice}, nil
}
