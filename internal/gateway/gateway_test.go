package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rcliao/shadow-journal/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *observer.ObservedLogs) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	core, logs := observer.New(zapcore.DebugLevel)
	return New(Config{BaseURL: srv.URL + "/", Logger: zap.New(core)}), logs
}

func respondJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestJournalLive(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"tyrant":80,"victim":10,"martyr":0,"saboteur":5,"judge":20,"rebel":0,
			"topArchetype":"Tyrant","secondaryArchetype":"Judge","insight":"Control shows up.","suggestedActivity":"Control-Fear Matrix"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "secret"})
	res := c.Journal(context.Background(), "I had to redo everyone's work again.")

	require.Equal(t, Live, res.Outcome)
	require.NoError(t, res.Err)
	assert.Equal(t, "/journal", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "I had to redo everyone's work again.", gotBody["entry"])
	assert.Equal(t, 80, res.Value.Score(model.Tyrant))
	assert.Equal(t, "Control-Fear Matrix", res.Value.SuggestedActivity)
}

func TestNoAuthHeaderWithoutKey(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"question":"What do you control?","context":"socratic_coaching"}`))
	})
	res := c.Socratic(context.Background(), "Nothing ever works out", nil)
	require.Equal(t, Live, res.Outcome)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "What do you control?", res.Value.Question)
}

func TestNon2xxReturnsExactFallback(t *testing.T) {
	cases := []struct {
		name string
		run  func(*Client) (any, Outcome)
		want any
	}{
		{"dialogue", func(c *Client) (any, Outcome) {
			r := c.Dialogue(context.Background(), DialogueRequest{Message: "why are you here?"})
			return r.Value, r.Outcome
		}, FallbackDialogue()},
		{"patterns", func(c *Client) (any, Outcome) {
			r := c.Patterns(context.Background(), PatternsRequest{RelationshipHistory: []string{"ex"}})
			return r.Value, r.Outcome
		}, FallbackPatterns()},
		{"authenticity", func(c *Client) (any, Outcome) {
			r := c.Authenticity(context.Background(), AuthenticityRequest{Responses: []any{3, "often"}})
			return r.Value, r.Outcome
		}, FallbackAuthenticity()},
		{"timeline", func(c *Client) (any, Outcome) {
			r := c.Timeline(context.Background(), TimelineRequest{Events: []TimelineEvent{{ID: "1", Title: "first"}}})
			return r.Value, r.Outcome
		}, FallbackTimeline()},
		{"journal", func(c *Client) (any, Outcome) {
			r := c.Journal(context.Background(), "entry")
			return r.Value, r.Outcome
		}, FallbackJournal()},
		{"trigger", func(c *Client) (any, Outcome) {
			r := c.Trigger(context.Background(), "story")
			return r.Value, r.Outcome
		}, FallbackTrigger()},
		{"judgment", func(c *Client) (any, Outcome) {
			r := c.Judgment(context.Background(), "they're so fake", "coworker")
			return r.Value, r.Outcome
		}, FallbackJudgment()},
		{"socratic", func(c *Client) (any, Outcome) {
			r := c.Socratic(context.Background(), "I can't", nil)
			return r.Value, r.Outcome
		}, FallbackSocratic()},
		{"saboteur", func(c *Client) (any, Outcome) {
			r := c.Saboteur(context.Background(), "why do you stop me?", "new job")
			return r.Value, r.Outcome
		}, FallbackSaboteur()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream down", http.StatusBadGateway)
			})
			got, outcome := tc.run(c)
			assert.Equal(t, Degraded, outcome)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("fallback mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
		})
	}
}

func TestNetworkFailureReturnsFallback(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(Config{BaseURL: url})
	res := c.Trigger(context.Background(), "I said nothing again")
	assert.Equal(t, Degraded, res.Outcome)
	assert.Error(t, res.Err)
	assert.Equal(t, FallbackTrigger(), res.Value)
	assert.True(t, res.Usable())
}

func TestNoBaseURLDegrades(t *testing.T) {
	c := New(Config{})
	assert.False(t, c.Configured())
	res := c.Saboteur(context.Background(), "hello", "")
	assert.Equal(t, Degraded, res.Outcome)
	assert.ErrorIs(t, res.Err, ErrNoBaseURL)
	assert.Equal(t, FallbackSaboteur(), res.Value)
}

func TestStrictFails(t *testing.T) {
	c := New(Config{Strict: true})
	res := c.Journal(context.Background(), "entry")
	assert.Equal(t, Failed, res.Outcome)
	assert.ErrorIs(t, res.Err, ErrNoBaseURL)
	assert.Equal(t, JournalAnalysis{}, res.Value)
	assert.False(t, res.Usable())
}

func TestEmptyInputFails(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	ctx := context.Background()

	assert.ErrorIs(t, c.Journal(ctx, "  ").Err, ErrEmptyInput)
	assert.ErrorIs(t, c.Trigger(ctx, "").Err, ErrEmptyInput)
	assert.ErrorIs(t, c.Dialogue(ctx, DialogueRequest{}).Err, ErrEmptyInput)
	assert.ErrorIs(t, c.Patterns(ctx, PatternsRequest{}).Err, ErrEmptyInput)
	assert.ErrorIs(t, c.Timeline(ctx, TimelineRequest{}).Err, ErrEmptyInput)
	assert.ErrorIs(t, c.Authenticity(ctx, AuthenticityRequest{}).Err, ErrEmptyInput)
	assert.ErrorIs(t, c.Judgment(ctx, "", "x").Err, ErrEmptyInput)
	assert.ErrorIs(t, c.Socratic(ctx, "", nil).Err, ErrEmptyInput)
	assert.Equal(t, Failed, c.Saboteur(ctx, "", "x").Outcome)
}

func TestMalformedBodyDegrades(t *testing.T) {
	c, _ := newTestClient(t, respondJSON(`this is not json at all`))
	res := c.Judgment(context.Background(), "they're lazy", "roommate")
	assert.Equal(t, Degraded, res.Outcome)
	assert.ErrorIs(t, res.Err, ErrInvalidResponse)
	assert.Equal(t, FallbackJudgment(), res.Value)
}

func TestIncompleteBodyDegrades(t *testing.T) {
	c, _ := newTestClient(t, respondJSON(`{"primaryArchetype":"Wizard","confidence":0.9}`))
	res := c.Trigger(context.Background(), "story")
	assert.Equal(t, Degraded, res.Outcome)
	assert.ErrorIs(t, res.Err, ErrInvalidResponse)
	assert.Equal(t, FallbackTrigger(), res.Value)
}

func TestFencedBodyIsExtracted(t *testing.T) {
	c, _ := newTestClient(t, respondJSON("Here you go:\n```json\n{\"saboteurMessage\":\"Stay small.\",\"tone\":\"fearful\",\"underlyingFear\":\"rejection\"}\n```"))
	res := c.Saboteur(context.Background(), "I want to apply", "")
	require.Equal(t, Live, res.Outcome)
	assert.Equal(t, "Stay small.", res.Value.SaboteurMessage)
	assert.Equal(t, ToneFearful, res.Value.Tone)
}

func TestTruncatedBodyIsRepaired(t *testing.T) {
	c, _ := newTestClient(t, respondJSON(`{"archetype":"Judge","projection":"Your own sloppiness","goldValue":"Craft","integrationTip":"Finish one thing well"`))
	res := c.Judgment(context.Background(), "they're sloppy", "team")
	require.Equal(t, Live, res.Outcome, "err: %v", res.Err)
	assert.Equal(t, "Craft", res.Value.GoldValue)
	assert.Equal(t, model.JudgmentDecode{
		Projection:     "Your own sloppiness",
		GoldValue:      "Craft",
		IntegrationTip: "Finish one thing well",
	}, res.Value.Decode())
}

func TestCancelledContextFails(t *testing.T) {
	release := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	res := c.Dialogue(ctx, DialogueRequest{Message: "hello"})
	assert.Equal(t, Failed, res.Outcome)
	assert.True(t, errors.Is(res.Err, context.Canceled))

	res = c.Dialogue(ctx, DialogueRequest{Message: "hello"})
	assert.Equal(t, Failed, res.Outcome)
}

func TestTimeoutDegrades(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	res := c.Timeline(context.Background(), TimelineRequest{Events: []TimelineEvent{{ID: "1"}}})
	assert.Equal(t, Degraded, res.Outcome)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	assert.Equal(t, FallbackTimeline(), res.Value)
}

func TestFallbacksAreFresh(t *testing.T) {
	a := FallbackPatterns()
	a.Patterns[0].Name = "changed"
	assert.Equal(t, "Seeking Validation", FallbackPatterns().Patterns[0].Name)
}

func TestFallbacksValidate(t *testing.T) {
	for _, v := range []validator{
		FallbackDialogue(), FallbackPatterns(), FallbackAuthenticity(), FallbackTimeline(),
		FallbackJournal(), FallbackTrigger(), FallbackJudgment(), FallbackSocratic(), FallbackSaboteur(),
	} {
		assert.NoError(t, v.validate(), "%T", v)
	}
}

func TestExtractJSONPayload(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSONPayload("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSONPayload(`noise {"a":1} trailing`))
	assert.Equal(t, `{"a":1`, extractJSONPayload(`{"a":1`))
	assert.Equal(t, "", extractJSONPayload("   "))
}

func TestOutcomeText(t *testing.T) {
	b, err := json.Marshal(map[string]Outcome{"o": Degraded})
	require.NoError(t, err)
	assert.JSONEq(t, `{"o":"degraded"}`, string(b))
}
