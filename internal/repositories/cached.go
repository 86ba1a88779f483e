package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/spenzaga/cbt-exam-service/internal/cache"
	"github.com/spenzaga/cbt-exam-service/internal/models"
	"github.com/spenzaga/cbt-exam-service/internal/utils"
)

const (
	questionCacheKey = "cbt:questions"
	questionCacheTTL = 10 * time.Minute
)

// cachedQuestionRepository fronts the question snapshot with a
// read-through cache. The snapshot is immutable while an exam session
// runs, so a short TTL plus invalidation on Replace is enough.
type cachedQuestionRepository struct {
	inner  QuestionRepository
	cache  cache.CacheService
	logger utils.Logger
}

func NewCachedQuestionRepository(inner QuestionRepository, cs cache.CacheService, logger utils.Logger) QuestionRepository {
	return &cachedQuestionRepository{inner: inner, cache: cs, logger: logger}
}

func (r *cachedQuestionRepository) GetAll(ctx context.Context) ([]models.Question, error) {
	var cached []models.Question
	err := r.cache.Get(ctx, questionCacheKey, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("question cache read failed, falling back to store", "error", err)
	}

	questions, err := r.inner.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, questionCacheKey, questions, questionCacheTTL); err != nil {
		r.logger.Warn("question cache write failed", "error", err)
	}
	return questions, nil
}

func (r *cachedQuestionRepository) Replace(ctx context.Context, questions []models.Question) error {
	if err := r.inner.Replace(ctx, questions); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, questionCacheKey); err != nil {
		r.logger.Warn("question cache invalidation failed", "error", err)
	}
	return nil
}
