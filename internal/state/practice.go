package state

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rcliao/shadow-journal/internal/model"
)

func defaultVolumes() model.Volumes {
	v := model.Volumes{Current: make(map[model.Archetype]int, model.NumArchetypes)}
	for _, a := range model.Archetypes {
		v.Current[a] = 0
	}
	return v
}

// AddControlEntry appends a behaviour/fear pair to the control matrix.
func (s *State) AddControlEntry(ctx context.Context, e model.ControlEntry) (model.ControlEntry, error) {
	if strings.TrimSpace(e.Behavior) == "" || strings.TrimSpace(e.Fear) == "" {
		return e, fmt.Errorf("%w: control entry needs behavior and fear", ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return model.ControlEntry{}, err
	}
	e.ID = s.newID()
	s.controls = append(s.controls, e)
	return e, s.persist(ctx, KeyControl, s.controls)
}

// RemoveControlEntry deletes entry id.
func (s *State) RemoveControlEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}
	i := slices.IndexFunc(s.controls, func(e model.ControlEntry) bool { return e.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: control entry %s", ErrNotFound, id)
	}
	s.controls = slices.Delete(s.controls, i, i+1)
	return s.persist(ctx, KeyControl, s.controls)
}

// ControlEntries returns the control matrix in insertion order.
func (s *State) ControlEntries() []model.ControlEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.controls)
}

// AddReframe appends a victim-to-victor reframe.
func (s *State) AddReframe(ctx context.Context, r model.Reframe) (model.Reframe, error) {
	if strings.TrimSpace(r.Thought) == "" || strings.TrimSpace(r.Reframe) == "" {
		return r, fmt.Errorf("%w: reframe needs thought and reframe", ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return model.Reframe{}, err
	}
	r.ID = s.newID()
	r.Timestamp = s.now().UTC()
	s.reframes = append(s.reframes, r)
	return r, s.persist(ctx, KeyReframes, s.reframes)
}

// Reframes returns reframes in insertion order.
func (s *State) Reframes() []model.Reframe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.reframes)
}

// AddJudgmentLog stamps j and puts it first.
func (s *State) AddJudgmentLog(ctx context.Context, j model.JudgmentLog) (model.JudgmentLog, error) {
	if strings.TrimSpace(j.Judgment) == "" {
		return j, fmt.Errorf("%w: judgment is empty", ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return model.JudgmentLog{}, err
	}
	j.ID = s.newID()
	j.Timestamp = s.now().UTC()
	s.judgments = prepend(s.judgments, j)
	return j, s.persist(ctx, KeyJudgments, s.judgments)
}

// SetJudgmentDecode attaches an AI decoding to judgment id.
func (s *State) SetJudgmentDecode(ctx context.Context, id string, d model.JudgmentDecode) (model.JudgmentLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return model.JudgmentLog{}, err
	}
	i := slices.IndexFunc(s.judgments, func(j model.JudgmentLog) bool { return j.ID == id })
	if i < 0 {
		return model.JudgmentLog{}, fmt.Errorf("%w: judgment %s", ErrNotFound, id)
	}
	s.judgments[i].AIDecoded = &d
	return s.judgments[i], s.persist(ctx, KeyJudgments, s.judgments)
}

// JudgmentLogs returns judgments newest first.
func (s *State) JudgmentLogs() []model.JudgmentLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.judgments)
}

// RecordRebelChoice stores the answer for a rebel scenario. Answering again
// replaces the earlier choice.
func (s *State) RecordRebelChoice(ctx context.Context, scenarioID string, choice model.RebelChoice) error {
	if !slices.ContainsFunc(model.RebelScenarios, func(sc model.Scenario) bool { return sc.ID == scenarioID }) {
		return fmt.Errorf("%w: scenario %s", ErrNotFound, scenarioID)
	}
	if choice != model.RebelReactive && choice != model.RebelAuthentic {
		return fmt.Errorf("%w: rebel choice %q", ErrInvalid, choice)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.rebel[scenarioID] = choice
	return s.persist(ctx, KeyRebel, s.rebel)
}

// RebelResults returns the recorded choices by scenario id.
func (s *State) RebelResults() map[string]model.RebelChoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.rebel)
}

// ResetRebel clears every recorded rebel choice.
func (s *State) ResetRebel(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.rebel = map[string]model.RebelChoice{}
	return s.persist(ctx, KeyRebel, s.rebel)
}

// SetVolume sets the council volume for a, clamped to 0..100.
func (s *State) SetVolume(ctx context.Context, a model.Archetype, v int) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %d", model.ErrUnknownArchetype, uint8(a))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.volumes.Current[a] = min(max(v, 0), 100)
	return s.persist(ctx, KeyVolumes, s.volumes)
}

// Volumes returns the current council volumes.
func (s *State) Volumes() map[model.Archetype]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.volumes.Current)
}

// SaveCheckIn snapshots the current volumes. Only the newest MaxCheckIns
// are kept, newest first.
func (s *State) SaveCheckIn(ctx context.Context) (model.CheckIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return model.CheckIn{}, err
	}
	c := model.CheckIn{
		Timestamp: s.now().UTC(),
		Volumes:   maps.Clone(s.volumes.Current),
	}
	s.checkIns = prepend(s.checkIns, c)
	if len(s.checkIns) > model.MaxCheckIns {
		s.checkIns = s.checkIns[:model.MaxCheckIns]
	}
	return c, s.persist(ctx, KeyCheckIns, s.checkIns)
}

// CheckIns returns saved check-ins newest first.
func (s *State) CheckIns() []model.CheckIn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.checkIns)
}
