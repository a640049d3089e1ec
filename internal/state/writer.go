package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/shadow-journal/internal/store"
)

// WritePolicy decides when mutations reach the store.
type WritePolicy int

const (
	// WriteThrough writes the whole collection before a mutation returns.
	WriteThrough WritePolicy = iota
	// WriteBehind marks the key dirty and writes it after the flush
	// interval, or on Flush or Close. A crash loses at most one interval.
	WriteBehind
)

// DefaultFlushInterval is the write-behind delay when none is configured.
const DefaultFlushInterval = 2 * time.Second

func (p WritePolicy) String() string {
	switch p {
	case WriteThrough:
		return "through"
	case WriteBehind:
		return "behind"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParseWritePolicy accepts "through", "write-through", "behind" or
// "write-behind". Empty means WriteThrough.
func ParseWritePolicy(s string) (WritePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "through", "write-through":
		return WriteThrough, nil
	case "behind", "write-behind":
		return WriteBehind, nil
	}
	return 0, fmt.Errorf("unknown write policy %q", s)
}

// writer serialises values and delivers them to the store according to
// the policy.
type writer struct {
	kv       store.KV
	policy   WritePolicy
	interval time.Duration
	log      *zap.Logger

	mu      sync.Mutex
	pending map[string]string
	order   []string
	timer   *time.Timer
	closed  bool

	// flushMu keeps at most one flush talking to the store.
	flushMu sync.Mutex
	wg      sync.WaitGroup
}

func newWriter(kv store.KV, policy WritePolicy, interval time.Duration, log *zap.Logger) *writer {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	return &writer{
		kv:       kv,
		policy:   policy,
		interval: interval,
		log:      log,
		pending:  make(map[string]string),
	}
}

func (w *writer) write(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	if w.policy == WriteThrough {
		w.mu.Unlock()
		if err := w.kv.Set(ctx, key, string(b)); err != nil {
			return fmt.Errorf("write %s: %w", key, err)
		}
		return nil
	}

	w.enqueue(key, string(b))
	w.arm()
	w.mu.Unlock()
	return nil
}

// arm starts the flush timer unless one is already running or the writer
// is closed. It must be called with mu held.
func (w *writer) arm() {
	if w.timer != nil || w.closed {
		return
	}
	w.wg.Add(1)
	w.timer = time.AfterFunc(w.interval, func() {
		defer w.wg.Done()
		if err := w.flush(context.Background()); err != nil {
			w.log.Error("write-behind flush failed", zap.Error(err))
		}
	})
}

// enqueue must be called with mu held.
func (w *writer) enqueue(key, value string) {
	if _, ok := w.pending[key]; !ok {
		w.order = append(w.order, key)
	}
	w.pending[key] = value
}

// flush writes every dirty key in first-dirtied order. Keys that fail are
// queued again unless a newer value arrived meanwhile, and the timer is
// re-armed so they are retried one interval later.
func (w *writer) flush(ctx context.Context) error {
	w.flushMu.Lock()
	defer w.flushMu.Unlock()

	w.mu.Lock()
	pending, order := w.pending, w.order
	w.pending = make(map[string]string)
	w.order = nil
	if w.timer != nil {
		if w.timer.Stop() {
			w.wg.Done()
		}
		w.timer = nil
	}
	w.mu.Unlock()

	var errs []error
	for _, key := range order {
		if err := w.kv.Set(ctx, key, pending[key]); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", key, err))
			w.mu.Lock()
			if _, newer := w.pending[key]; !newer {
				w.enqueue(key, pending[key])
			}
			w.mu.Unlock()
			continue
		}
		w.log.Debug("flushed", zap.String("key", key))
	}

	w.mu.Lock()
	if len(w.pending) > 0 {
		w.arm()
	}
	w.mu.Unlock()
	return errors.Join(errs...)
}

func (w *writer) isClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// dirty reports how many keys await a write-behind flush.
func (w *writer) dirty() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

func (w *writer) close(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	err := w.flush(ctx)
	w.wg.Wait()
	return err
}
