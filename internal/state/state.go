// Package state holds the single user's application state in memory and
// mirrors every mutation to a store.KV under a write policy.
package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/rcliao/shadow-journal/internal/model"
	"github.com/rcliao/shadow-journal/internal/store"
)

// Storage keys.
const (
	KeyUser       = "alchemical-user"
	KeyJournals   = "alchemical-journals"
	KeyTriggers   = "alchemical-triggers"
	KeyCapsules   = "alchemical-capsules"
	KeyDreams     = "alchemical-dreams"
	KeyArchetypes = "alchemical-archetypes"
	KeyInsights   = "alchemical-insights"
	KeyAssessment = "triggerIdentifierResults"
	KeyControl    = "tyrant-control-matrix"
	KeyReframes   = "victim-reframes"
	KeyJudgments  = "judgment-logs"
	KeyRebel      = "rebel-results"
	KeyVolumes    = "archetype-volumes"
	KeyCheckIns   = "archetype-check-ins"
	KeyNeedCards  = "martyr-cards"
	KeyLetters    = "saboteur-letters"
	KeyInterviews = "saboteur-interviews"
	KeyTimeline   = "transformationTimeline"
)

// Keys lists every key the state reads or writes.
var Keys = []string{
	KeyUser, KeyJournals, KeyTriggers, KeyCapsules, KeyDreams, KeyArchetypes, KeyInsights,
	KeyAssessment, KeyControl, KeyReframes, KeyJudgments, KeyRebel, KeyVolumes, KeyCheckIns,
	KeyNeedCards, KeyLetters, KeyInterviews, KeyTimeline,
}

// QuizTriggerIdentifier is the quiz id recorded on the profile when an
// assessment is saved.
const QuizTriggerIdentifier = "trigger-identifier"

// DefaultUserName is the name given to a lazily created profile.
const DefaultUserName = "Seeker"

var (
	// ErrNotFound is returned when an id does not match any record.
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned for a record that fails validation.
	ErrInvalid = errors.New("invalid")
	// ErrClosed is returned by mutations after Close.
	ErrClosed = errors.New("state closed")
)

// Options configures Open.
type Options struct {
	Policy        WritePolicy
	FlushInterval time.Duration
	Logger        *zap.Logger
	// Now is the clock used for ids and dates. Defaults to time.Now.
	Now func() time.Time
}

// State owns every mutable collection. It is safe for concurrent use.
// Mutations update memory first and then persist; a failed write leaves
// memory ahead of the store until the next successful write of that key.
type State struct {
	mu      sync.Mutex
	w       *writer
	log     *zap.Logger
	now     func() time.Time
	entropy io.Reader

	user       model.UserProfile
	journals   []model.JournalEntry
	triggers   []model.TriggerLog
	capsules   []model.TimeCapsule
	dreams     []model.DreamLog
	archetypes []model.ArchetypeCard
	insights   []model.CommunityInsight
	assessment *model.InsightRecord

	controls  []model.ControlEntry
	reframes  []model.Reframe
	judgments []model.JudgmentLog
	rebel     map[string]model.RebelChoice
	volumes   model.Volumes
	checkIns  []model.CheckIn

	needCards  []model.NeedCard
	letters    []model.SaboteurLetter
	interviews []model.SaboteurInterview
	timeline   []model.TimelineEvent
}

// Open hydrates a State from kv. Missing core collections are written back
// with their defaults; corrupt values are logged and replaced. The caller
// keeps ownership of kv and must Close the State before closing kv.
func Open(ctx context.Context, kv store.KV, opts Options) (*State, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &State{
		log:     log.Named("state"),
		now:     now,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(now().UnixNano())), 0),
	}
	s.w = newWriter(kv, opts.Policy, opts.FlushInterval, s.log)

	if err := s.hydrate(ctx, kv); err != nil {
		return nil, err
	}
	s.log.Debug("state opened",
		zap.Stringer("policy", opts.Policy),
		zap.Int("journals", len(s.journals)),
		zap.Int("triggers", len(s.triggers)))
	return s, nil
}

func (s *State) hydrate(ctx context.Context, kv store.KV) error {
	var err error
	if s.journals, err = loadKey(ctx, s.log, kv, KeyJournals, empty[model.JournalEntry], true); err != nil {
		return err
	}
	if s.triggers, err = loadKey(ctx, s.log, kv, KeyTriggers, empty[model.TriggerLog], true); err != nil {
		return err
	}
	if s.capsules, err = loadKey(ctx, s.log, kv, KeyCapsules, empty[model.TimeCapsule], true); err != nil {
		return err
	}
	if s.dreams, err = loadKey(ctx, s.log, kv, KeyDreams, empty[model.DreamLog], true); err != nil {
		return err
	}
	if s.archetypes, err = loadKey(ctx, s.log, kv, KeyArchetypes, model.DefaultArchetypeCards, true); err != nil {
		return err
	}
	if s.insights, err = loadKey(ctx, s.log, kv, KeyInsights, empty[model.CommunityInsight], true); err != nil {
		return err
	}

	// Practice keys stay absent until first used.
	if s.controls, err = loadKey(ctx, s.log, kv, KeyControl, empty[model.ControlEntry], false); err != nil {
		return err
	}
	if s.reframes, err = loadKey(ctx, s.log, kv, KeyReframes, empty[model.Reframe], false); err != nil {
		return err
	}
	if s.judgments, err = loadKey(ctx, s.log, kv, KeyJudgments, empty[model.JudgmentLog], false); err != nil {
		return err
	}
	if s.rebel, err = loadKey(ctx, s.log, kv, KeyRebel, func() map[string]model.RebelChoice { return map[string]model.RebelChoice{} }, false); err != nil {
		return err
	}
	if s.volumes, err = loadKey(ctx, s.log, kv, KeyVolumes, defaultVolumes, false); err != nil {
		return err
	}
	if s.checkIns, err = loadKey(ctx, s.log, kv, KeyCheckIns, empty[model.CheckIn], false); err != nil {
		return err
	}
	if s.assessment, err = loadKey(ctx, s.log, kv, KeyAssessment, nilOf[model.InsightRecord], false); err != nil {
		return err
	}
	if s.needCards, err = loadKey(ctx, s.log, kv, KeyNeedCards, model.DefaultNeedCards, false); err != nil {
		return err
	}
	if s.letters, err = loadKey(ctx, s.log, kv, KeyLetters, empty[model.SaboteurLetter], false); err != nil {
		return err
	}
	if s.interviews, err = loadKey(ctx, s.log, kv, KeyInterviews, empty[model.SaboteurInterview], false); err != nil {
		return err
	}
	if s.timeline, err = loadKey(ctx, s.log, kv, KeyTimeline, empty[model.TimelineEvent], false); err != nil {
		return err
	}

	if s.volumes.Current == nil {
		s.volumes = defaultVolumes()
	}
	if s.rebel == nil {
		s.rebel = map[string]model.RebelChoice{}
	}
	return s.hydrateUser(ctx, kv)
}

// hydrateUser loads the profile, creating it on first open, and stamps the
// visit.
func (s *State) hydrateUser(ctx context.Context, kv store.KV) error {
	user, err := loadKey(ctx, s.log, kv, KeyUser, nilOf[model.UserProfile], false)
	if err != nil {
		return err
	}
	if user == nil {
		user = &model.UserProfile{
			ID:   s.newID(),
			Name: DefaultUserName,
			Progress: model.Progress{
				ChaptersCompleted:   []int{},
				ActivitiesCompleted: []string{},
				QuizzesCompleted:    []string{},
			},
		}
		s.log.Info("created profile", zap.String("id", user.ID))
	}
	user.Progress.LastVisit = s.now().UTC()
	s.user = *user
	if err := store.SetJSON(ctx, kv, KeyUser, s.user); err != nil {
		return fmt.Errorf("write %s: %w", KeyUser, err)
	}
	return nil
}

func empty[T any]() []T { return []T{} }

func nilOf[T any]() *T { return nil }

// loadKey decodes key. A missing key yields def(), persisted at once when
// writeBack is set. A corrupt value is logged and replaced by def().
func loadKey[T any](ctx context.Context, log *zap.Logger, kv store.KV, key string, def func() T, writeBack bool) (T, error) {
	v, err := store.GetJSON[T](ctx, kv, key)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, store.ErrNotFound):
	case errors.Is(err, store.ErrCorrupt):
		log.Warn("discarding corrupt value", zap.String("key", key), zap.Error(err))
		writeBack = true
	default:
		return v, fmt.Errorf("read %s: %w", key, err)
	}

	v = def()
	if writeBack {
		if err := store.SetJSON(ctx, kv, key, v); err != nil {
			return v, fmt.Errorf("write default %s: %w", key, err)
		}
	}
	return v, nil
}

func (s *State) newID() string {
	return ulid.MustNew(ulid.Timestamp(s.now()), s.entropy).String()
}

// checkOpen returns ErrClosed once Close has run. Mutators call it before
// touching memory.
func (s *State) checkOpen() error {
	if s.w.isClosed() {
		return ErrClosed
	}
	return nil
}

// persist hands the current value of key to the writer. Callers hold mu.
func (s *State) persist(ctx context.Context, key string, v any) error {
	return s.w.write(ctx, key, v)
}

// Flush forces pending write-behind values to the store.
func (s *State) Flush(ctx context.Context) error {
	return s.w.flush(ctx)
}

// Dirty returns how many keys await a write-behind flush.
func (s *State) Dirty() int {
	return s.w.dirty()
}

// Close flushes pending writes and stops the write-behind timer. Later
// mutations return ErrClosed and leave memory unchanged.
func (s *State) Close() error {
	return s.w.close(context.Background())
}
