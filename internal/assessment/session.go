package assessment

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/rcliao/shadow-journal/internal/model"
)

var (
	// ErrFinished is returned when a session has already produced results.
	ErrFinished = errors.New("assessment finished")
	// ErrRatingRange is returned for a rating outside 0..MaxRating.
	ErrRatingRange = errors.New("rating out of range")
	// ErrFirstQuestion is returned by Previous on the first question.
	ErrFirstQuestion = errors.New("already at first question")
)

// Phase is the session's position in the assessment flow.
type Phase int

const (
	// AwaitingQuestion waits for an answer to the current question.
	AwaitingQuestion Phase = iota
	// Scoring runs once, right after the last answer.
	Scoring
	// ShowingResults is terminal and holds the computed scores.
	ShowingResults
)

func (p Phase) String() string {
	switch p {
	case AwaitingQuestion:
		return "awaiting-question"
	case Scoring:
		return "scoring"
	case ShowingResults:
		return "showing-results"
	}
	return "phase(" + strconv.Itoa(int(p)) + ")"
}

// Session walks one user through every question once. Answers are kept
// when moving back; answering a question again replaces its rating.
// Once the last question is answered the session scores itself and stays
// in ShowingResults. Start a new Session to retake.
type Session struct {
	questions []model.Question
	responses map[string]int
	index     int
	phase     Phase
	now       func() time.Time

	scores Scores
	record model.InsightRecord
}

// NewSession starts a session over questions. now stamps the result and
// defaults to time.Now.
func NewSession(questions []model.Question, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	s := &Session{
		questions: questions,
		responses: make(map[string]int, len(questions)),
		now:       now,
	}
	if len(questions) == 0 {
		s.finish()
	}
	return s
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Index returns the position of the current question.
func (s *Session) Index() int { return s.index }

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Current returns the question awaiting an answer.
func (s *Session) Current() (model.Question, bool) {
	if s.phase != AwaitingQuestion {
		return model.Question{}, false
	}
	return s.questions[s.index], true
}

// Rating returns the recorded rating for the current question, if any.
func (s *Session) Rating() (int, bool) {
	if s.phase != AwaitingQuestion {
		return 0, false
	}
	r, ok := s.responses[s.questions[s.index].ID]
	return r, ok
}

// Answer records rating for the current question and advances. Answering
// the last question scores the session.
func (s *Session) Answer(rating int) error {
	if s.phase != AwaitingQuestion {
		return ErrFinished
	}
	if rating < 0 || rating > MaxRating {
		return fmt.Errorf("%w: %d (want 0..%d)", ErrRatingRange, rating, MaxRating)
	}
	s.responses[s.questions[s.index].ID] = rating

	if s.index == len(s.questions)-1 {
		s.finish()
		return nil
	}
	s.index++
	return nil
}

// Previous moves back one question without discarding answers.
func (s *Session) Previous() error {
	if s.phase != AwaitingQuestion {
		return ErrFinished
	}
	if s.index == 0 {
		return ErrFirstQuestion
	}
	s.index--
	return nil
}

func (s *Session) finish() {
	s.phase = Scoring
	s.scores = ComputeScores(s.responses, s.questions)
	s.record = model.InsightRecord{
		Scores:    s.scores.List(),
		Date:      s.now().UTC(),
		Responses: s.Responses(),
	}
	s.phase = ShowingResults
}

// Responses returns the answers given so far ordered by question position.
func (s *Session) Responses() []model.Response {
	pos := make(map[string]int, len(s.questions))
	for i, q := range s.questions {
		pos[q.ID] = i
	}
	out := make([]model.Response, 0, len(s.responses))
	for id, r := range s.responses {
		out = append(out, model.Response{QuestionID: id, Rating: r})
	}
	sort.Slice(out, func(i, j int) bool {
		return pos[out[i].QuestionID] < pos[out[j].QuestionID]
	})
	return out
}

// Result returns the scores and record once the session is finished.
func (s *Session) Result() (Scores, model.InsightRecord, bool) {
	if s.phase != ShowingResults {
		return Scores{}, model.InsightRecord{}, false
	}
	return s.scores, s.record, true
}

// Run answers every question from ratings in order, a non-interactive
// shortcut for callers holding a complete answer sheet.
func Run(questions []model.Question, ratings []int, now func() time.Time) (Scores, model.InsightRecord, error) {
	if len(ratings) != len(questions) {
		return Scores{}, model.InsightRecord{}, fmt.Errorf("got %d ratings for %d questions", len(ratings), len(questions))
	}
	s := NewSession(questions, now)
	for i, r := range ratings {
		if err := s.Answer(r); err != nil {
			return Scores{}, model.InsightRecord{}, fmt.Errorf("question %s: %w", questions[i].ID, err)
		}
	}
	scores, rec, _ := s.Result()
	return scores, rec, nil
}
