// Package gateway calls the external AI analysis endpoint. Every feature
// has a static fallback: recoverable failures return it with a Degraded
// outcome instead of an error.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"
)

var (
	// ErrNoBaseURL means no gateway endpoint is configured.
	ErrNoBaseURL = errors.New("gateway base url not configured")
	// ErrEmptyInput means the request carried no text to analyse.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidResponse means the endpoint answered with an unusable body.
	ErrInvalidResponse = errors.New("invalid gateway response")
)

// Feature names, used as the endpoint path suffix.
const (
	FeatureDialogue     = "dialogue"
	FeaturePatterns     = "patterns"
	FeatureAuthenticity = "authenticity"
	FeatureTimeline     = "timeline"
	FeatureJournal      = "journal"
	FeatureTrigger      = "trigger"
	FeatureJudgment     = "judgment"
	FeatureSocratic     = "socratic"
	FeatureSaboteur     = "saboteur"
)

// Features lists every supported feature.
var Features = []string{
	FeatureDialogue, FeaturePatterns, FeatureAuthenticity, FeatureTimeline,
	FeatureJournal, FeatureTrigger, FeatureJudgment, FeatureSocratic, FeatureSaboteur,
}

// Outcome says where a Result's value came from.
type Outcome int

const (
	// Live is a real answer from the endpoint.
	Live Outcome = iota
	// Degraded is the static fallback substituted after a recoverable failure.
	Degraded
	// Failed is a hard failure; the value is the zero value.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Live:
		return "live"
	case Degraded:
		return "degraded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result carries a feature's value and how it was obtained. Value is usable
// for Live and Degraded; Err explains Degraded and Failed outcomes.
type Result[T any] struct {
	Value   T
	Outcome Outcome
	Err     error
}

// Usable reports whether Value can be shown to the user.
func (r Result[T]) Usable() bool {
	return r.Outcome != Failed
}

// Config configures a Client.
type Config struct {
	BaseURL string
	APIKey  string
	// Timeout bounds each call. Zero means no timeout beyond ctx.
	Timeout time.Duration
	// Strict turns recoverable failures into Failed instead of substituting
	// fallbacks.
	Strict     bool
	Logger     *zap.Logger
	HTTPClient *http.Client
}

// Client issues one POST per call, with no retries.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	strict     bool
	log        *zap.Logger
	httpClient *http.Client
}

// New builds a Client. An empty BaseURL is allowed: every call then
// degrades to its fallback.
func New(cfg Config) *Client {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		timeout:    cfg.Timeout,
		strict:     cfg.Strict,
		log:        log.Named("gateway"),
		httpClient: hc,
	}
}

// Configured reports whether a base URL is set.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

type validator interface {
	validate() error
}

// call posts payload to feature and decodes a T, substituting fallback()
// on any recoverable failure.
func call[T any](ctx context.Context, c *Client, feature string, payload any, fallback func() T) Result[T] {
	if err := ctx.Err(); err != nil {
		return Result[T]{Outcome: Failed, Err: err}
	}
	if c.baseURL == "" {
		return degrade(c, feature, ErrNoBaseURL, fallback)
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := c.doJSON(callCtx, "/"+feature, payload)
	if err != nil {
		// Caller cancellation discards the call entirely.
		if ctx.Err() != nil {
			return Result[T]{Outcome: Failed, Err: ctx.Err()}
		}
		return degrade(c, feature, err, fallback)
	}

	var out T
	if err := decode(body, &out); err != nil {
		return degrade(c, feature, err, fallback)
	}
	if v, ok := any(out).(validator); ok {
		if err := v.validate(); err != nil {
			return degrade(c, feature, fmt.Errorf("%w: %v", ErrInvalidResponse, err), fallback)
		}
	}
	c.log.Debug("gateway call", zap.String("feature", feature))
	return Result[T]{Value: out, Outcome: Live}
}

func degrade[T any](c *Client, feature string, err error, fallback func() T) Result[T] {
	if c.strict {
		c.log.Warn("gateway call failed", zap.String("feature", feature), zap.Error(err))
		return Result[T]{Outcome: Failed, Err: err}
	}
	c.log.Warn("gateway call failed, using fallback", zap.String("feature", feature), zap.Error(err))
	return Result[T]{Value: fallback(), Outcome: Degraded, Err: err}
}

func failed[T any](err error) Result[T] {
	return Result[T]{Outcome: Failed, Err: err}
}

func (c *Client) doJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway request failed, status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return respBody, nil
}

// decode extracts the JSON object from body and unmarshals it into out,
// repairing malformed model output when a plain decode fails.
func decode(body []byte, out any) error {
	payload := extractJSONPayload(string(body))
	if payload == "" {
		return fmt.Errorf("%w: empty body", ErrInvalidResponse)
	}
	err := json.Unmarshal([]byte(payload), out)
	if err == nil {
		return nil
	}
	repaired, rerr := jsonrepair.JSONRepair(payload)
	if rerr != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func extractJSONPayload(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
		trimmed = strings.TrimSpace(trimmed)
	}
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end >= start {
		return trimmed[start : end+1]
	}
	if start >= 0 {
		return trimmed[start:]
	}
	return trimmed
}
