package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrBankNotFound indicates the requested question bank does not exist.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrEmptySelection is returned when a practice criterion matches no questions.
	ErrEmptySelection = errors.New("no questions match the practice criterion")
	// ErrSessionNotActive is returned when an answer is submitted outside InProgress.
	ErrSessionNotActive = errors.New("quiz session is not in progress")
	// ErrSessionAlreadyStarted is returned when Start is called twice.
	ErrSessionAlreadyStarted = errors.New("quiz session already started")
	// ErrTranslationUnavailable marks a failed automatic translation. It never
	// reaches callers of the resolver; resolution degrades to the source text.
	ErrTranslationUnavailable = errors.New("translation unavailable")
)

// MalformedBankError rejects a whole bank at load time. QuestionID is 0 when
// the failing record has no usable id.
type MalformedBankError struct {
	QuestionID int
	Field      string
	Reason     string
}

func (e *MalformedBankError) Error() string {
	if e.QuestionID != 0 {
		return fmt.Sprintf("malformed question bank: question %d: field %q: %s", e.QuestionID, e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed question bank: field %q: %s", e.Field, e.Reason)
}

// InvalidAnswerIndexError reports an out-of-range answer. The session cursor
// and answer log are left untouched; callers should re-prompt.
type InvalidAnswerIndexError struct {
	Selected int
	Choices  int
}

func (e *InvalidAnswerIndexError) Error() string {
	return fmt.Sprintf("answer index %d out of range [1, %d]", e.Selected, e.Choices)
}
