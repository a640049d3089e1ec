package state

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rcliao/shadow-journal/internal/model"
)

func prepend[T any](list []T, v T) []T {
	return append([]T{v}, list...)
}

// AddJournalEntry stamps e with an id and date and puts it first.
func (s *State) AddJournalEntry(ctx context.Context, e model.JournalEntry) (model.JournalEntry, error) {
	if e.Type == "" {
		e.Type = model.JournalGeneral
	}
	if !model.ValidJournalTypes[e.Type] {
		return e, fmt.Errorf("%w: journal type %q", ErrInvalid, e.Type)
	}
	if strings.TrimSpace(e.Content) == "" {
		return e, fmt.Errorf("%w: journal content is empty", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return model.JournalEntry{}, err
	}
	e.ID = s.newID()
	e.Date = s.now().UTC()
	s.journals = prepend(s.journals, e)
	return e, s.persist(ctx, KeyJournals, s.journals)
}

// JournalEntries returns entries newest first.
func (s *State) JournalEntries() []model.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.journals)
}

// SearchJournal returns entries whose title, content, mood, type or tags
// contain query, ignoring case.
func (s *State) SearchJournal(query string) []model.JournalEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.JournalEntry
	for _, e := range s.journals {
		if q == "" || journalMatches(e, q) {
			out = append(out, e)
		}
	}
	return out
}

func journalMatches(e model.JournalEntry, q string) bool {
	for _, field := range []string{e.Title, e.Content, e.Mood, e.Type} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// AddTrigger stamps t and puts it first.
func (s *State) AddTrigger(ctx context.Context, t model.TriggerLog) (model.TriggerLog, error) {
	if strings.TrimSpace(t.Situation) == "" {
		return t, fmt.Errorf("%w: trigger situation is empty", ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return model.TriggerLog{}, err
	}
	t.ID = s.newID()
	t.Date = s.now().UTC()
	if t.Emotions == nil {
		t.Emotions = []model.EmotionEntry{}
	}
	s.triggers = prepend(s.triggers, t)
	return t, s.persist(ctx, KeyTriggers, s.triggers)
}

// Triggers returns trigger logs newest first.
func (s *State) Triggers() []model.TriggerLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.triggers)
}

// AddTimeCapsule stamps c and appends it. The capsule starts closed.
func (s *State) AddTimeCapsule(ctx context.Context, c model.TimeCapsule) (model.TimeCapsule, error) {
	if strings.TrimSpace(c.Letter) == "" {
		return c, fmt.Errorf("%w: capsule letter is empty", ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return model.TimeCapsule{}, err
	}
	c.ID = s.newID()
	c.CreatedDate = s.now().UTC()
	c.Opened = false
	s.capsules = append(s.capsules, c)
	return c, s.persist(ctx, KeyCapsules, s.capsules)
}

// OpenTimeCapsule flips the opened flag of capsule id.
func (s *State) OpenTimeCapsule(ctx context.Context, id string) (model.TimeCapsule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return model.TimeCapsule{}, err
	}
	i := slices.IndexFunc(s.capsules, func(c model.TimeCapsule) bool { return c.ID == id })
	if i < 0 {
		return model.TimeCapsule{}, fmt.Errorf("%w: capsule %s", ErrNotFound, id)
	}
	s.capsules[i].Opened = !s.capsules[i].Opened
	return s.capsules[i], s.persist(ctx, KeyCapsules, s.capsules)
}

// TimeCapsules returns capsules in creation order.
func (s *State) TimeCapsules() []model.TimeCapsule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.capsules)
}

// Ready reports whether a capsule may be opened at now.
func Ready(c model.TimeCapsule, now time.Time) bool {
	return !now.Before(c.OpenDate)
}

// AddDreamLog stamps d and puts it first.
func (s *State) AddDreamLog(ctx context.Context, d model.DreamLog) (model.DreamLog, error) {
	if strings.TrimSpace(d.Description) == "" {
		return d, fmt.Errorf("%w: dream description is empty", ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return model.DreamLog{}, err
	}
	d.ID = s.newID()
	d.Date = s.now().UTC()
	s.dreams = prepend(s.dreams, d)
	return d, s.persist(ctx, KeyDreams, s.dreams)
}

// DreamLogs returns dreams newest first.
func (s *State) DreamLogs() []model.DreamLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.dreams)
}

// ClaimArchetype flips the claimed flag of archetype a's card.
func (s *State) ClaimArchetype(ctx context.Context, a model.Archetype) (model.ArchetypeCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return model.ArchetypeCard{}, err
	}
	i := slices.IndexFunc(s.archetypes, func(c model.ArchetypeCard) bool { return c.ID == a })
	if i < 0 {
		return model.ArchetypeCard{}, fmt.Errorf("%w: archetype %s", ErrNotFound, a)
	}
	s.archetypes[i].Claimed = !s.archetypes[i].Claimed
	return s.archetypes[i], s.persist(ctx, KeyArchetypes, s.archetypes)
}

// ArchetypeCards returns the catalogue.
func (s *State) ArchetypeCards() []model.ArchetypeCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.archetypes)
}

// AddCommunityInsight stamps in and puts it first.
func (s *State) AddCommunityInsight(ctx context.Context, in model.CommunityInsight) (model.CommunityInsight, error) {
	if strings.TrimSpace(in.Text) == "" {
		return in, fmt.Errorf("%w: insight text is empty", ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return model.CommunityInsight{}, err
	}
	in.ID = s.newID()
	in.Date = s.now().UTC()
	s.insights = prepend(s.insights, in)
	return in, s.persist(ctx, KeyInsights, s.insights)
}

// CommunityInsights returns insights newest first.
func (s *State) CommunityInsights() []model.CommunityInsight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.insights)
}

// SaveAssessment replaces the stored assessment result.
func (s *State) SaveAssessment(ctx context.Context, rec model.InsightRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.assessment = &rec
	return s.persist(ctx, KeyAssessment, rec)
}

// LatestAssessment returns the last saved assessment result.
func (s *State) LatestAssessment() (model.InsightRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.assessment == nil {
		return model.InsightRecord{}, false
	}
	return *s.assessment, true
}
