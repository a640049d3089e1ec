package state

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/rcliao/shadow-journal/internal/model"
)

// Profile returns a copy of the user profile.
func (s *State) Profile() model.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.user
	u.Progress.ChaptersCompleted = slices.Clone(u.Progress.ChaptersCompleted)
	u.Progress.ActivitiesCompleted = slices.Clone(u.Progress.ActivitiesCompleted)
	u.Progress.QuizzesCompleted = slices.Clone(u.Progress.QuizzesCompleted)
	return u
}

// SetUserName renames the user.
func (s *State) SetUserName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.user.Name = name
	return s.persist(ctx, KeyUser, s.user)
}

// CompleteActivity records catalogue activity id and awards a crystal.
// Completing an activity twice changes nothing and reports false.
func (s *State) CompleteActivity(ctx context.Context, id string) (bool, error) {
	if _, _, ok := model.ActivityByID(id); !ok {
		return false, fmt.Errorf("%w: activity %q", ErrNotFound, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return false, err
	}
	if slices.Contains(s.user.Progress.ActivitiesCompleted, id) {
		return false, nil
	}
	s.user.Progress.ActivitiesCompleted = append(s.user.Progress.ActivitiesCompleted, id)
	s.user.InsightCrystals++
	return true, s.persist(ctx, KeyUser, s.user)
}

// CompleteChapter records catalogue chapter n and awards a crystal, once.
func (s *State) CompleteChapter(ctx context.Context, n int) (bool, error) {
	if _, ok := model.ChapterByID(n); !ok {
		return false, fmt.Errorf("%w: chapter %d", ErrNotFound, n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return false, err
	}
	if slices.Contains(s.user.Progress.ChaptersCompleted, n) {
		return false, nil
	}
	s.user.Progress.ChaptersCompleted = append(s.user.Progress.ChaptersCompleted, n)
	s.user.InsightCrystals++
	return true, s.persist(ctx, KeyUser, s.user)
}

// CompleteQuiz records quiz id, once. Quizzes award no crystal.
func (s *State) CompleteQuiz(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return false, err
	}
	if slices.Contains(s.user.Progress.QuizzesCompleted, id) {
		return false, nil
	}
	s.user.Progress.QuizzesCompleted = append(s.user.Progress.QuizzesCompleted, id)
	return true, s.persist(ctx, KeyUser, s.user)
}

// AwardCrystal adds n insight crystals.
func (s *State) AwardCrystal(ctx context.Context, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: crystal count %d", ErrInvalid, n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.user.InsightCrystals += n
	return s.persist(ctx, KeyUser, s.user)
}

// UpdatePathProgress sets path progress, clamped to 0..100.
func (s *State) UpdatePathProgress(ctx context.Context, p float64) error {
	if math.IsNaN(p) {
		return fmt.Errorf("%w: path progress is NaN", ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.user.Progress.PathProgress = min(max(p, 0), 100)
	return s.persist(ctx, KeyUser, s.user)
}
