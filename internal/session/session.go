// Package session implements the quiz session state machine: a cursor over a
// selected question subset plus an append-only answer log. A session belongs
// to exactly one caller and is not safe for concurrent use.
package session

import (
	"time"

	"ela-quiz-service/internal/bank"
	"ela-quiz-service/internal/domain"
)

// State is the lifecycle position of a session.
type State int

const (
	StateNotStarted State = iota
	// StateEmpty is terminal: the criterion matched no questions. Distinct
	// from StateCompleted, which requires every question to have been answered.
	StateEmpty
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateEmpty:
		return "empty"
	case StateInProgress:
		return "in progress"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Session runs one quiz attempt. It owns a copy of the selected questions and
// never mutates the bank it was started from.
type Session struct {
	questions []domain.Question
	cursor    int
	answers   []domain.AnswerRecord
	state     State
	now       func() time.Time
}

func New() *Session {
	return newWithClock(time.Now)
}

// NewWithClock is test-only for deterministic answer timestamps.
func NewWithClock(now func() time.Time) *Session {
	return newWithClock(now)
}

func newWithClock(now func() time.Time) *Session {
	return &Session{state: StateNotStarted, now: now}
}

// Start selects the practice subset and moves to InProgress. When nothing
// matches the criterion the session settles in the terminal Empty state and
// domain.ErrEmptySelection is returned so callers can offer another criterion.
func (s *Session) Start(b domain.Bank, criterion domain.Criterion) error {
	return s.StartWithQuestions(bank.Select(b, criterion))
}

// StartWithQuestions starts from an already-selected subset. The presentation
// layer uses this to apply its own ordering (e.g. shuffling) before play.
func (s *Session) StartWithQuestions(questions []domain.Question) error {
	if s.state != StateNotStarted {
		return domain.ErrSessionAlreadyStarted
	}
	if len(questions) == 0 {
		s.state = StateEmpty
		return domain.ErrEmptySelection
	}
	s.questions = append([]domain.Question(nil), questions...)
	s.state = StateInProgress
	return nil
}

func (s *Session) State() State {
	return s.state
}

// CurrentQuestion returns the question at the cursor, or false once the
// session is Completed or Empty.
func (s *Session) CurrentQuestion() (domain.Question, bool) {
	if s.state != StateInProgress {
		return domain.Question{}, false
	}
	return s.questions[s.cursor], true
}

// Position reports the 1-based number of the current question and the session
// total. The first value is meaningful only while InProgress.
func (s *Session) Position() (current, total int) {
	return s.cursor + 1, len(s.questions)
}

// SubmitAnswer records the 1-based selected index against the current
// question and advances the cursor. An out-of-range index fails with
// InvalidAnswerIndexError and leaves the cursor and answer log untouched.
func (s *Session) SubmitAnswer(selected int) (domain.AnswerRecord, error) {
	if s.state != StateInProgress {
		return domain.AnswerRecord{}, domain.ErrSessionNotActive
	}
	question := s.questions[s.cursor]
	if selected < 1 || selected > len(question.Choices) {
		return domain.AnswerRecord{}, &domain.InvalidAnswerIndexError{
			Selected: selected,
			Choices:  len(question.Choices),
		}
	}

	record := domain.AnswerRecord{
		QuestionID:    question.ID,
		SelectedIndex: selected,
		IsCorrect:     question.IsCorrect(selected),
		AnsweredAt:    s.now(),
	}
	s.answers = append(s.answers, record)
	s.cursor++
	if s.cursor >= len(s.questions) {
		s.state = StateCompleted
	}
	return record, nil
}

// Score is valid in every state and idempotent between submissions.
func (s *Session) Score() domain.Score {
	correct := 0
	for _, a := range s.answers {
		if a.IsCorrect {
			correct++
		}
	}
	return domain.Score{
		Correct:  correct,
		Answered: len(s.answers),
		Total:    len(s.questions),
	}
}

// Answers returns the recorded answers in answering order.
func (s *Session) Answers() []domain.AnswerRecord {
	return append([]domain.AnswerRecord(nil), s.answers...)
}

// BreakdownByTopic groups results by the originating question's topic.
func (s *Session) BreakdownByTopic() map[string]domain.GroupScore {
	return s.breakdown(func(q domain.Question) string { return q.Topic })
}

// BreakdownByDifficulty groups results by question difficulty.
func (s *Session) BreakdownByDifficulty() map[domain.Difficulty]domain.GroupScore {
	byKey := s.breakdown(func(q domain.Question) string { return string(q.Difficulty) })
	out := make(map[domain.Difficulty]domain.GroupScore, len(byKey))
	for key, group := range byKey {
		out[domain.Difficulty(key)] = group
	}
	return out
}

func (s *Session) breakdown(key func(domain.Question) string) map[string]domain.GroupScore {
	byID := make(map[int]domain.Question, len(s.questions))
	for _, q := range s.questions {
		byID[q.ID] = q
	}
	out := make(map[string]domain.GroupScore)
	for _, a := range s.answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		group := out[key(q)]
		group.Attempted++
		if a.IsCorrect {
			group.Correct++
		}
		out[key(q)] = group
	}
	return out
}
