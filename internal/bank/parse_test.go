package bank_test

import (
	"errors"
	"strings"
	"testing"

	"ela-quiz-service/internal/bank"
	"ela-quiz-service/internal/domain"
)

const validBankYAML = `
quiz_metadata:
  title: "Mini Quiz"
  version: "1.0"
  created_date: "2025-06-15"
  total_questions: 2
questions:
  - id: 1
    topic: "Grammar"
    difficulty: "easy"
    question: "Pick one"
    choices: ["a", "b", "c"]
    correct_answer: 2
    explanation: "b is right"
    explanation_zh_TW: "答案是 b"
    tags: ["t1"]
  - id: 2
    topic: "Spelling"
    difficulty: "Hard"
    question: "Pick again"
    choices: ["x", "y"]
    correct_answer: 1
`

func TestParseValidBank(t *testing.T) {
	b, warnings, err := bank.Parse([]byte(validBankYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if b.Metadata.Title != "Mini Quiz" || b.Metadata.TotalQuestions != 2 {
		t.Fatalf("unexpected metadata: %+v", b.Metadata)
	}
	if len(b.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(b.Questions))
	}
	if b.Questions[0].ID != 1 || b.Questions[1].ID != 2 {
		t.Fatalf("expected bank order preserved, got %d then %d", b.Questions[0].ID, b.Questions[1].ID)
	}
	if b.Questions[1].Difficulty != domain.DifficultyHard {
		t.Fatalf("expected difficulty normalized to hard, got %q", b.Questions[1].Difficulty)
	}
	if got := b.Questions[0].Explanations["zh_TW"]; got != "答案是 b" {
		t.Fatalf("expected manual zh_TW translation collected, got %q", got)
	}
}

func TestParseInvariantHoldsPostLoad(t *testing.T) {
	b, _, err := bank.Parse([]byte(validBankYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, q := range b.Questions {
		if q.CorrectAnswer < 1 || q.CorrectAnswer > len(q.Choices) {
			t.Fatalf("question %d: correct answer %d outside [1, %d]", q.ID, q.CorrectAnswer, len(q.Choices))
		}
	}
}

func TestParseRejectsOutOfRangeCorrectAnswer(t *testing.T) {
	doc := `
questions:
  - id: 1
    topic: "Grammar"
    difficulty: "easy"
    question: "Pick one"
    choices: ["a", "b"]
    correct_answer: 3
`
	assertMalformed(t, doc, 1, "correct_answer")

	doc = strings.Replace(doc, "correct_answer: 3", "correct_answer: 0", 1)
	assertMalformed(t, doc, 1, "correct_answer")
}

func TestParseRejectsTooFewChoices(t *testing.T) {
	doc := `
questions:
  - id: 7
    topic: "Grammar"
    difficulty: "easy"
    question: "Pick one"
    choices: ["only"]
    correct_answer: 1
`
	assertMalformed(t, doc, 7, "choices")
}

func TestParseRejectsMissingFields(t *testing.T) {
	doc := `
questions:
  - id: 3
    difficulty: "easy"
    question: "Pick one"
    choices: ["a", "b"]
    correct_answer: 1
`
	assertMalformed(t, doc, 3, "topic")

	doc = `
questions:
  - topic: "Grammar"
    difficulty: "easy"
    question: "Pick one"
    choices: ["a", "b"]
    correct_answer: 1
`
	assertMalformed(t, doc, 0, "id")

	doc = `
questions:
  - id: 4
    topic: "Grammar"
    difficulty: "easy"
    question: "Pick one"
    choices: ["a", "b"]
`
	assertMalformed(t, doc, 4, "correct_answer")
}

func TestParseRejectsUnknownDifficulty(t *testing.T) {
	doc := `
questions:
  - id: 5
    topic: "Grammar"
    difficulty: "impossible"
    question: "Pick one"
    choices: ["a", "b"]
    correct_answer: 1
`
	assertMalformed(t, doc, 5, "difficulty")
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	doc := `
questions:
  - id: 1
    topic: "Grammar"
    difficulty: "easy"
    question: "Pick one"
    choices: ["a", "b"]
    correct_answer: 1
  - id: 1
    topic: "Spelling"
    difficulty: "easy"
    question: "Pick two"
    choices: ["a", "b"]
    correct_answer: 2
`
	assertMalformed(t, doc, 1, "id")
}

func TestParseIgnoresUnknownFields(t *testing.T) {
	doc := `
quiz_metadata:
  title: "Forward Compatible"
  total_questions: 1
  future_field: "ignored"
questions:
  - id: 1
    topic: "Grammar"
    difficulty: "easy"
    question: "Pick one"
    choices: ["a", "b"]
    correct_answer: 1
    hint: "unused extra field"
    weight: 3
`
	b, _, err := bank.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("expected unknown fields to be ignored, got %v", err)
	}
	if len(b.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(b.Questions))
	}
}

func TestParseWarnsOnTotalMismatch(t *testing.T) {
	doc := `
quiz_metadata:
  title: "Mismatched"
  total_questions: 5
questions:
  - id: 1
    topic: "Grammar"
    difficulty: "easy"
    question: "Pick one"
    choices: ["a", "b"]
    correct_answer: 1
`
	b, warnings, err := bank.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("mismatch must not be fatal: %v", err)
	}
	if len(b.Questions) != 1 {
		t.Fatalf("expected bank to load, got %d questions", len(b.Questions))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "total_questions") {
		t.Fatalf("expected a total_questions warning, got %v", warnings)
	}
}

func TestSampleBankIsValid(t *testing.T) {
	b, warnings, err := bank.Parse(bank.SampleYAML())
	if err != nil {
		t.Fatalf("sample bank must parse: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("sample bank must be warning-free, got %v", warnings)
	}
	if len(b.Questions) != b.Metadata.TotalQuestions {
		t.Fatalf("sample bank count mismatch: declared %d, got %d", b.Metadata.TotalQuestions, len(b.Questions))
	}
}

func assertMalformed(t *testing.T, doc string, questionID int, field string) {
	t.Helper()
	_, _, err := bank.Parse([]byte(doc))
	var malformed *domain.MalformedBankError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedBankError, got %v", err)
	}
	if malformed.QuestionID != questionID {
		t.Fatalf("expected failure on question %d, got %d (%v)", questionID, malformed.QuestionID, malformed)
	}
	if malformed.Field != field {
		t.Fatalf("expected failing field %q, got %q (%v)", field, malformed.Field, malformed)
	}
}
