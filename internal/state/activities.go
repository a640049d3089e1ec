package state

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rcliao/shadow-journal/internal/model"
)

// SortNeed moves need card id into bucket. BucketUnsorted puts it back.
func (s *State) SortNeed(ctx context.Context, id string, bucket model.NeedBucket) (model.NeedCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return model.NeedCard{}, err
	}
	i := slices.IndexFunc(s.needCards, func(c model.NeedCard) bool { return c.ID == id })
	if i < 0 {
		return model.NeedCard{}, fmt.Errorf("%w: need card %s", ErrNotFound, id)
	}
	s.needCards[i].Bucket = bucket
	return s.needCards[i], s.persist(ctx, KeyNeedCards, s.needCards)
}

// ResetNeeds moves every need card back to unsorted.
func (s *State) ResetNeeds(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}
	for i := range s.needCards {
		s.needCards[i].Bucket = model.BucketUnsorted
	}
	return s.persist(ctx, KeyNeedCards, s.needCards)
}

// NeedCards returns the sorter cards in scenario order.
func (s *State) NeedCards() []model.NeedCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.needCards)
}

// AddSaboteurLetter composes l from its fields, stamps it and puts it first.
func (s *State) AddSaboteurLetter(ctx context.Context, l model.SaboteurLetter) (model.SaboteurLetter, error) {
	for _, f := range []string{l.Goal, l.Behavior, l.Fear, l.Reassurance} {
		if strings.TrimSpace(f) == "" {
			return l, fmt.Errorf("%w: letter needs goal, behavior, fear and reassurance", ErrInvalid)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return model.SaboteurLetter{}, err
	}
	l.ID = s.newID()
	l.Timestamp = s.now().UTC()
	l.Letter = l.ComposeLetter()
	s.letters = prepend(s.letters, l)
	return l, s.persist(ctx, KeyLetters, s.letters)
}

// SaboteurLetters returns letters newest first.
func (s *State) SaboteurLetters() []model.SaboteurLetter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.letters)
}

// AddSaboteurInterview stamps iv and appends it.
func (s *State) AddSaboteurInterview(ctx context.Context, iv model.SaboteurInterview) (model.SaboteurInterview, error) {
	if len(iv.Conversation) == 0 {
		return iv, fmt.Errorf("%w: interview has no conversation", ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return model.SaboteurInterview{}, err
	}
	iv.ID = s.newID()
	iv.Date = s.now().UTC()
	s.interviews = append(s.interviews, iv)
	return iv, s.persist(ctx, KeyInterviews, s.interviews)
}

// SaboteurInterviews returns interviews oldest first.
func (s *State) SaboteurInterviews() []model.SaboteurInterview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.interviews)
}

// AddTimelineEvent stamps ev and keeps the timeline newest first. Type
// defaults to reflection and Impact to model.DefaultImpact.
func (s *State) AddTimelineEvent(ctx context.Context, ev model.TimelineEvent) (model.TimelineEvent, error) {
	if strings.TrimSpace(ev.Title) == "" || strings.TrimSpace(ev.Description) == "" {
		return ev, fmt.Errorf("%w: event needs title and description", ErrInvalid)
	}
	if ev.Type == "" {
		ev.Type = model.EventReflection
	}
	if !model.ValidEventTypes[ev.Type] {
		return ev, fmt.Errorf("%w: event type %q", ErrInvalid, ev.Type)
	}
	if ev.Impact == 0 {
		ev.Impact = model.DefaultImpact
	}
	if ev.Impact < 1 || ev.Impact > 10 {
		return ev, fmt.Errorf("%w: impact %d (want 1..10)", ErrInvalid, ev.Impact)
	}
	if ev.Emotions == nil {
		ev.Emotions = []string{}
	}
	if ev.Learnings == nil {
		ev.Learnings = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return model.TimelineEvent{}, err
	}
	ev.ID = s.newID()
	ev.Date = s.now().UTC()
	s.timeline = append(s.timeline, ev)
	slices.SortStableFunc(s.timeline, func(a, b model.TimelineEvent) int {
		return cmp.Compare(b.Date.UnixNano(), a.Date.UnixNano())
	})
	return ev, s.persist(ctx, KeyTimeline, s.timeline)
}

// RemoveTimelineEvent deletes event id.
func (s *State) RemoveTimelineEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}
	i := slices.IndexFunc(s.timeline, func(e model.TimelineEvent) bool { return e.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: timeline event %s", ErrNotFound, id)
	}
	s.timeline = slices.Delete(s.timeline, i, i+1)
	return s.persist(ctx, KeyTimeline, s.timeline)
}

// TimelineEvents returns the transformation timeline newest first.
func (s *State) TimelineEvents() []model.TimelineEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.timeline)
}
