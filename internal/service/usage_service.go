package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/fitness-ai/internal/config"
	"alcyxob/fitness-ai/internal/domain"
	"alcyxob/fitness-ai/internal/metrics"
	"alcyxob/fitness-ai/internal/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UsageLimiter enforces the per-user daily caps on AI calls.
type UsageLimiter interface {
	// Consume counts one call of kind for today, or returns
	// ErrDailyLimitReached without counting.
	Consume(ctx context.Context, userID primitive.ObjectID, kind domain.UsageKind) error
}

type usageService struct {
	users   repository.UserRepository
	limits  map[domain.UsageKind]int
	metrics *metrics.Manager
	now     func() time.Time
}

// NewUsageService builds a limiter from cfg. A limit of zero or less disables
// the cap for that kind.
func NewUsageService(users repository.UserRepository, cfg config.LimitsConfig, m *metrics.Manager) UsageLimiter {
	return &usageService{
		users: users,
		limits: map[domain.UsageKind]int{
			domain.UsageExerciseSearch: cfg.DailyExerciseSearches,
			domain.UsageWorkout:        cfg.DailyWorkouts,
		},
		metrics: m,
		now:     time.Now,
	}
}

func (s *usageService) Consume(ctx context.Context, userID primitive.ObjectID, kind domain.UsageKind) error {
	limit := s.limits[kind]
	if limit <= 0 {
		return nil
	}

	day := s.now().UTC().Format(time.DateOnly)
	count, err := s.users.ConsumeDailyQuota(ctx, userID, kind, day, limit)
	if err != nil {
		if errors.Is(err, repository.ErrQuotaExhausted) {
			s.metrics.ObserveQuotaRejection(string(kind))
			return fmt.Errorf("%w: %d %s calls per day", ErrDailyLimitReached, limit, kind)
		}
		return fmt.Errorf("consume %s quota: %w", kind, err)
	}

	logrus.WithFields(logrus.Fields{
		"user":  userID.Hex(),
		"kind":  kind,
		"count": count,
		"limit": limit,
	}).Debug("AI usage counted")
	return nil
}
