package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"alcyxob/fitness-ai/internal/domain"
	"alcyxob/fitness-ai/internal/llm"
	"alcyxob/fitness-ai/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var fixedNow = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	cp := *user
	r.users[user.ID] = &cp
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) ConsumeDailyQuota(_ context.Context, userID primitive.ObjectID, kind domain.UsageKind, day string, limit int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	u, ok := r.users[userID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	if u.Usage == nil {
		u.Usage = map[domain.UsageKind]domain.DailyUsage{}
	}
	usage := u.Usage[kind]
	if usage.Date != day {
		usage = domain.DailyUsage{Date: day}
	}
	if usage.Count >= limit {
		return 0, repository.ErrQuotaExhausted
	}
	usage.Count++
	u.Usage[kind] = usage
	return usage.Count, nil
}

type fakeLibraryRepo struct {
	mu        sync.Mutex
	exercises []domain.LibraryExercise
	err       error
	lists     int
}

func (r *fakeLibraryRepo) Create(_ context.Context, e *domain.LibraryExercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = primitive.NewObjectID()
	r.exercises = append(r.exercises, *e)
	return e.ID, nil
}

func (r *fakeLibraryRepo) List(_ context.Context, _ repository.ExerciseFilter) ([]domain.LibraryExercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
	if r.err != nil {
		return nil, r.err
	}
	return slices.Clone(r.exercises), nil
}

func (r *fakeLibraryRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.exercises)), nil
}

type fakeGeneratedExerciseRepo struct {
	mu    sync.Mutex
	saved []domain.GeneratedExercise
	err   error
}

func (r *fakeGeneratedExerciseRepo) Create(_ context.Context, e *domain.GeneratedExercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return primitive.NilObjectID, r.err
	}
	e.ID = primitive.NewObjectID()
	r.saved = append(r.saved, *e)
	return e.ID, nil
}

func (r *fakeGeneratedExerciseRepo) GetByUserID(_ context.Context, userID primitive.ObjectID, _ int64) ([]domain.GeneratedExercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.GeneratedExercise
	for _, e := range r.saved {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeWorkoutRepo struct {
	mu    sync.Mutex
	saved []domain.GeneratedWorkout
}

func (r *fakeWorkoutRepo) Create(_ context.Context, w *domain.GeneratedWorkout) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w.ID = primitive.NewObjectID()
	r.saved = append(r.saved, *w)
	return w.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.GeneratedWorkout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.saved {
		if w.ID == id {
			cp := w
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkoutRepo) GetByUserID(_ context.Context, userID primitive.ObjectID, _ int64) ([]domain.GeneratedWorkout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.GeneratedWorkout
	for _, w := range r.saved {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions []domain.WorkoutSession
	err      error
	since    time.Time
}

func (r *fakeSessionRepo) Create(_ context.Context, s *domain.WorkoutSession) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = primitive.NewObjectID()
	r.sessions = append(r.sessions, *s)
	return s.ID, nil
}

func (r *fakeSessionRepo) GetSince(_ context.Context, userID primitive.ObjectID, since time.Time) ([]domain.WorkoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.since = since
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.WorkoutSession
	for _, s := range r.sessions {
		if s.UserID == userID && !s.CompletedAt.Before(since) {
			out = append(out, s)
		}
	}
	return out, nil
}

type generatorCall struct {
	prompt string
	opts   llm.Options
}

// scriptedGenerator replays replies in order and records every call.
type scriptedGenerator struct {
	mu      sync.Mutex
	replies []reply
	calls   []generatorCall
}

type reply struct {
	text string
	err  error
}

func newScriptedGenerator(replies ...reply) *scriptedGenerator {
	return &scriptedGenerator{replies: replies}
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string, opts llm.Options) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, generatorCall{prompt: prompt, opts: opts})
	if len(g.replies) == 0 {
		return "", errors.New("no scripted reply left")
	}
	r := g.replies[0]
	g.replies = g.replies[1:]
	return r.text, r.err
}

func (g *scriptedGenerator) Calls() []generatorCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.calls)
}

type fakeArchive struct {
	mu      sync.Mutex
	objects map[string]string
	err     error
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{objects: map[string]string{}}
}

func (a *fakeArchive) Put(_ context.Context, kind, body string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return "", a.err
	}
	key := fmt.Sprintf("raw-responses/%s/%d.txt", kind, len(a.objects))
	a.objects[key] = body
	return key, nil
}

func (a *fakeArchive) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://archive.test/" + key + "?signed", nil
}

type fakeLimiter struct {
	mu    sync.Mutex
	err   error
	kinds []domain.UsageKind
}

func (l *fakeLimiter) Consume(_ context.Context, _ primitive.ObjectID, kind domain.UsageKind) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.kinds = append(l.kinds, kind)
	return nil
}

// staticLibrary is a LibraryService with canned answers.
type staticLibrary struct {
	recommended []domain.LibraryExercise
	err         error
}

func (l *staticLibrary) Similar(context.Context, SimilarQuery) SimilarResult { return SimilarResult{} }

func (l *staticLibrary) Recommend(context.Context, RecommendQuery) ([]domain.LibraryExercise, error) {
	return l.recommended, l.err
}

func (l *staticLibrary) Search(context.Context, string) ([]domain.LibraryExercise, error) {
	return l.recommended, l.err
}

func (l *staticLibrary) Suggestions(context.Context, int) ([]WorkoutSuggestion, error) {
	return nil, l.err
}

func (l *staticLibrary) Health(context.Context) LibraryHealth {
	return LibraryHealth{Healthy: l.err == nil}
}

func libraryExercise(name, muscle string, group domain.MuscleGroup, level string, equipment ...string) domain.LibraryExercise {
	if len(equipment) == 0 {
		equipment = []string{"Bodyweight"}
	}
	return domain.LibraryExercise{
		Exercise: domain.Exercise{
			Name:           name,
			Category:       domain.CategoryStrength,
			Equipment:      equipment,
			PrimaryMuscles: []string{muscle},
			TargetRegion:   []string{string(group)},
			Difficulty:     domain.DifficultyBeginner,
			MovementType:   domain.MovementCompound,
			MuscleGroup:    group,
		},
		FitnessLevel: level,
	}
}
