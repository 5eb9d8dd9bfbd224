package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"alcyxob/fitness-ai/internal/domain"
	"alcyxob/fitness-ai/internal/llm"
	"alcyxob/fitness-ai/internal/metrics"
	"alcyxob/fitness-ai/internal/recovery"
	"alcyxob/fitness-ai/internal/repository"
	"alcyxob/fitness-ai/internal/storage"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const (
	historyDays             = 4
	defaultGeneratedListLen = 20
	maxInlineRawResponse    = 16000
)

var (
	workoutOptions     = llm.Options{MaxTokens: 1500, Temperature: 0.7}
	simplifiedOptions  = llm.Options{MaxTokens: 3800, Temperature: 0.5}
	replacementOptions = llm.Options{MaxTokens: 3800, Temperature: 0.7}
)

type WorkoutRequest struct {
	Goal               string
	TargetMuscleGroups []string
	Duration           int
	FitnessLevel       string
	Equipment          []string
	Focus              string
}

type ReplaceRequest struct {
	ExerciseName string
	MuscleGroups []string
	Equipment    []string
	FitnessLevel string
	Exclude      []string
}

type WorkoutResult struct {
	Workout          *domain.GeneratedWorkout `json:"workout"`
	Balance          MuscleBalance            `json:"muscleBalance"`
	InjuryTips       []string                 `json:"injuryTips"`
	ValidationErrors []string                 `json:"validationErrors,omitempty"`
}

type ReplaceResult struct {
	Alternatives []domain.Alternative `json:"alternatives"`
	FallbackUsed bool                 `json:"fallbackUsed"`
	ParseError   bool                 `json:"parseError"`
	Rejected     []string             `json:"rejected,omitempty"`
	RawResponse  string               `json:"rawResponse,omitempty"`
}

// WorkoutAIService generates workouts. Model trouble never reaches the caller
// for these paths: it ends in the fallback workout instead.
type WorkoutAIService interface {
	Generate(ctx context.Context, userID primitive.ObjectID, req WorkoutRequest) (*WorkoutResult, error)
	// GenerateSmart also steers the fallback away from recently used
	// templates and exercises.
	GenerateSmart(ctx context.Context, userID primitive.ObjectID, req WorkoutRequest) (*WorkoutResult, error)
	ReplaceExercise(ctx context.Context, userID primitive.ObjectID, req ReplaceRequest) (*ReplaceResult, error)
	LogSession(ctx context.Context, userID primitive.ObjectID, session *domain.WorkoutSession) (*domain.WorkoutSession, error)
	ListGenerated(ctx context.Context, userID primitive.ObjectID) ([]domain.GeneratedWorkout, error)
	RawResponseURL(ctx context.Context, workoutID primitive.ObjectID) (string, error)
}

type workoutAIService struct {
	gen      llm.Generator
	pipeline *recovery.Pipeline
	library  LibraryService
	sessions repository.WorkoutSessionRepository
	workouts repository.GeneratedWorkoutRepository
	usage    UsageLimiter
	archive  storage.RawResponseArchive // nil when not configured
	metrics  *metrics.Manager
	now      func() time.Time
}

func NewWorkoutAIService(
	gen llm.Generator,
	pipeline *recovery.Pipeline,
	library LibraryService,
	sessions repository.WorkoutSessionRepository,
	workouts repository.GeneratedWorkoutRepository,
	usage UsageLimiter,
	archive storage.RawResponseArchive,
	m *metrics.Manager,
) WorkoutAIService {
	return &workoutAIService{
		gen:      gen,
		pipeline: pipeline,
		library:  library,
		sessions: sessions,
		workouts: workouts,
		usage:    usage,
		archive:  archive,
		metrics:  m,
		now:      time.Now,
	}
}

func (s *workoutAIService) Generate(ctx context.Context, userID primitive.ObjectID, req WorkoutRequest) (*WorkoutResult, error) {
	return s.generate(ctx, userID, req, false)
}

func (s *workoutAIService) GenerateSmart(ctx context.Context, userID primitive.ObjectID, req WorkoutRequest) (*WorkoutResult, error) {
	return s.generate(ctx, userID, req, true)
}

// workoutHistory is what the prompt and the fallback know about the user.
type workoutHistory struct {
	sessions    []domain.WorkoutSession
	recommended []domain.LibraryExercise
}

func (s *workoutAIService) generate(ctx context.Context, userID primitive.ObjectID, req WorkoutRequest, smart bool) (*WorkoutResult, error) {
	req.Goal = strings.TrimSpace(req.Goal)
	if req.Goal == "" {
		return nil, fmt.Errorf("%w: goal is required", ErrInvalidInput)
	}
	if req.Duration <= 0 {
		req.Duration = domain.DefaultWorkoutDuration
	}
	req.FitnessLevel = NormalizeFitnessLevel(req.FitnessLevel)
	req.TargetMuscleGroups = cleanStrings(req.TargetMuscleGroups)
	req.Equipment = cleanStrings(req.Equipment)

	if err := s.usage.Consume(ctx, userID, domain.UsageWorkout); err != nil {
		return nil, err
	}

	hist := s.loadHistory(ctx, userID, req)
	balance := AnalyzeMuscleBalance(hist.sessions)
	tips := InjuryTips(req.FitnessLevel)
	recentExercises := RecentExerciseNames(hist.sessions)

	prompt, err := llm.WorkoutPrompt(workoutPromptData(req, hist, balance, tips))
	if err != nil {
		return nil, fmt.Errorf("render workout prompt: %w", err)
	}
	raw := s.generateWithRetry(ctx, req, prompt)

	rctx := recovery.Context{
		TargetMuscleGroups:       req.TargetMuscleGroups,
		AvailableEquipment:       req.Equipment,
		RequestedDurationMinutes: req.Duration,
		Goal:                     req.Goal,
	}
	if smart {
		rctx.RecentWorkoutNames = RecentWorkoutNames(hist.sessions)
		rctx.ExcludeNames = recentExercises
	}
	res := s.pipeline.RecoverWorkout(raw, rctx)
	s.metrics.ObserveRecovery("workout", recoveryOutcome(res.FallbackUsed), string(res.Strategy), workoutFallbackReason(raw, res))

	record := &domain.GeneratedWorkout{
		UserID:       userID,
		Goal:         req.Goal,
		Workout:      res.Workout,
		FallbackUsed: res.FallbackUsed,
		ParseError:   res.ParseError,
		CreatedAt:    s.now().UTC(),
	}
	if res.ParseError {
		record.RawResponseKey = s.archiveRaw(ctx, "workout", res.RawText)
		if record.RawResponseKey == "" {
			record.RawResponse = inlineRaw(res.RawText)
		}
	}
	if id, err := s.workouts.Create(ctx, record); err != nil {
		logrus.WithFields(logrus.Fields{"user": userID.Hex()}).WithError(err).Error("failed to save generated workout")
	} else {
		record.ID = id
	}

	return &WorkoutResult{
		Workout:          record,
		Balance:          balance,
		InjuryTips:       tips,
		ValidationErrors: res.ValidationErrors,
	}, nil
}

// loadHistory reads recent sessions and library recommendations in parallel.
// Either side failing leaves that part empty.
func (s *workoutAIService) loadHistory(ctx context.Context, userID primitive.ObjectID, req WorkoutRequest) workoutHistory {
	var hist workoutHistory
	since := s.now().Add(-historyDays * 24 * time.Hour)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sessions, err := s.sessions.GetSince(gctx, userID, since)
		if err != nil {
			logrus.WithFields(logrus.Fields{"user": userID.Hex()}).WithError(err).Warn("workout history unavailable")
			return nil
		}
		hist.sessions = sessions
		return nil
	})
	g.Go(func() error {
		recommended, err := s.library.Recommend(gctx, RecommendQuery{
			Muscles:      req.TargetMuscleGroups,
			Equipment:    req.Equipment,
			FitnessLevel: req.FitnessLevel,
		})
		if err != nil {
			logrus.WithError(err).Warn("exercise recommendations unavailable")
			return nil
		}
		hist.recommended = recommended
		return nil
	})
	_ = g.Wait()

	// recommendations skip whatever the user did in the window
	recent := RecentExerciseNames(hist.sessions)
	kept := hist.recommended[:0:0]
	for _, e := range hist.recommended {
		if !containsFold(recent, e.Name) {
			kept = append(kept, e)
		}
	}
	hist.recommended = kept
	return hist
}

// generateWithRetry returns "" when the model cannot be used, which the
// pipeline turns into the fallback workout.
func (s *workoutAIService) generateWithRetry(ctx context.Context, req WorkoutRequest, prompt string) string {
	raw, err := s.gen.Generate(ctx, prompt, workoutOptions)
	if err == nil {
		return raw
	}
	if !errors.Is(err, llm.ErrEmptyResponse) {
		logrus.WithError(err).Warn("workout generation failed, using fallback")
		return ""
	}

	logrus.Info("empty workout reply, retrying with simplified prompt")
	simple, err := llm.SimplifiedWorkoutPrompt(llm.SimplifiedWorkoutData{
		Goal:         req.Goal,
		FitnessLevel: req.FitnessLevel,
		Duration:     req.Duration,
	})
	if err != nil {
		logrus.WithError(err).Error("render simplified workout prompt")
		return ""
	}
	raw, err = s.gen.Generate(ctx, simple, simplifiedOptions)
	if err != nil {
		logrus.WithError(err).Warn("simplified workout generation failed, using fallback")
		return ""
	}
	return raw
}

func (s *workoutAIService) ReplaceExercise(ctx context.Context, userID primitive.ObjectID, req ReplaceRequest) (*ReplaceResult, error) {
	req.ExerciseName = strings.TrimSpace(req.ExerciseName)
	if req.ExerciseName == "" {
		return nil, fmt.Errorf("%w: exerciseName is required", ErrInvalidInput)
	}
	req.FitnessLevel = NormalizeFitnessLevel(req.FitnessLevel)
	exclude := append(cleanStrings(req.Exclude), req.ExerciseName)

	if err := s.usage.Consume(ctx, userID, domain.UsageWorkout); err != nil {
		return nil, err
	}

	prompt, err := llm.ReplacementPrompt(llm.ReplacementData{
		Exercise:     req.ExerciseName,
		Muscles:      cleanStrings(req.MuscleGroups),
		Equipment:    cleanStrings(req.Equipment),
		FitnessLevel: req.FitnessLevel,
		Exclude:      exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("render replacement prompt: %w", err)
	}

	raw, err := s.gen.Generate(ctx, prompt, replacementOptions)
	if err != nil {
		logrus.WithFields(logrus.Fields{"exercise": req.ExerciseName}).WithError(err).Warn("replacement generation failed, using fallback")
		raw = ""
	}

	res := s.pipeline.RecoverAlternatives(raw, recovery.Context{
		TargetMuscleGroups: cleanStrings(req.MuscleGroups),
		AvailableEquipment: cleanStrings(req.Equipment),
		ExcludeNames:       exclude,
	})
	reason := ""
	if res.FallbackUsed {
		reason = "no_valid_alternatives"
	}
	s.metrics.ObserveRecovery("alternatives", recoveryOutcome(res.FallbackUsed), string(res.Strategy), reason)
	out := &ReplaceResult{
		Alternatives: res.Alternatives,
		FallbackUsed: res.FallbackUsed,
		ParseError:   res.ParseError,
		Rejected:     res.Rejected,
	}
	if res.ParseError && s.archiveRaw(ctx, "alternatives", res.RawText) == "" {
		out.RawResponse = inlineRaw(res.RawText)
	}
	return out, nil
}

func (s *workoutAIService) LogSession(ctx context.Context, userID primitive.ObjectID, session *domain.WorkoutSession) (*domain.WorkoutSession, error) {
	session.WorkoutName = strings.TrimSpace(session.WorkoutName)
	if session.WorkoutName == "" || len(session.Exercises) == 0 {
		return nil, fmt.Errorf("%w: workoutName and at least one exercise are required", ErrInvalidInput)
	}
	session.ID = primitive.NilObjectID
	session.UserID = userID
	if session.CompletedAt.IsZero() {
		session.CompletedAt = s.now().UTC()
	}

	id, err := s.sessions.Create(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("save workout session: %w", err)
	}
	session.ID = id
	return session, nil
}

func (s *workoutAIService) ListGenerated(ctx context.Context, userID primitive.ObjectID) ([]domain.GeneratedWorkout, error) {
	return s.workouts.GetByUserID(ctx, userID, defaultGeneratedListLen)
}

func (s *workoutAIService) RawResponseURL(ctx context.Context, workoutID primitive.ObjectID) (string, error) {
	if s.archive == nil {
		return "", ErrArchiveUnavailable
	}
	w, err := s.workouts.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: workout %s", ErrNotFound, workoutID.Hex())
		}
		return "", err
	}
	if w.RawResponseKey == "" {
		return "", fmt.Errorf("%w: no archived reply for workout %s", ErrNotFound, workoutID.Hex())
	}
	return s.archive.PresignGet(ctx, w.RawResponseKey, storage.DefaultPresignedURLExpiry)
}

// archiveRaw stores raw and returns its key, or "" when the archive is not
// configured or the upload failed.
func (s *workoutAIService) archiveRaw(ctx context.Context, kind, raw string) string {
	if s.archive == nil || strings.TrimSpace(raw) == "" {
		return ""
	}
	key, err := s.archive.Put(ctx, kind, raw)
	if err != nil {
		logrus.WithFields(logrus.Fields{"kind": kind}).WithError(err).Warn("failed to archive raw model reply")
		return ""
	}
	return key
}

// inlineRaw bounds a raw model reply stored on a record instead of the archive.
func inlineRaw(raw string) string {
	r := []rune(raw)
	if len(r) <= maxInlineRawResponse {
		return raw
	}
	return string(r[:maxInlineRawResponse])
}

func workoutPromptData(req WorkoutRequest, hist workoutHistory, balance MuscleBalance, tips []string) llm.WorkoutData {
	data := llm.WorkoutData{
		Goal:          req.Goal,
		FitnessLevel:  req.FitnessLevel,
		Duration:      req.Duration,
		TargetMuscles: req.TargetMuscleGroups,
		Equipment:     req.Equipment,
		Focus:         req.Focus,
		Overworked:    balance.Overworked,
		Underworked:   balance.Underworked,
		InjuryTips:    tips,
		MinExercises:  int(math.Ceil(float64(req.Duration) / 8)),
		MaxExercises:  int(math.Ceil(float64(req.Duration) / 5)),
	}
	for _, sess := range hist.sessions {
		entry := llm.HistoryEntry{Name: sess.WorkoutName, Date: sess.CompletedAt.UTC().Format(time.DateOnly)}
		for _, e := range sess.Exercises {
			entry.Exercises = append(entry.Exercises, e.Name)
		}
		data.History = append(data.History, entry)
	}
	for _, e := range hist.recommended {
		data.Recommended = append(data.Recommended, e.Name)
	}
	return data
}

func recoveryOutcome(fallbackUsed bool) string {
	if fallbackUsed {
		return "fallback"
	}
	return "recovered"
}

func workoutFallbackReason(raw string, res recovery.WorkoutResult) string {
	switch {
	case !res.FallbackUsed:
		return ""
	case strings.TrimSpace(raw) == "":
		return "empty_reply"
	case res.ParseError:
		return "parse_error"
	}
	return "invalid_workout"
}
