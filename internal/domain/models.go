package domain

import (
	"strings"
	"time"
)

// Difficulty is one of the three levels a question can be rated at.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty normalizes raw difficulty strings case-insensitively.
func ParseDifficulty(raw string) (Difficulty, bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(raw))) {
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyMedium:
		return DifficultyMedium, true
	case DifficultyHard:
		return DifficultyHard, true
	}
	return "", false
}

// Question is a single multiple-choice question. Immutable after load.
type Question struct {
	ID         int        `json:"id"`
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Prompt     string     `json:"prompt"`
	// Passage holds optional reading-comprehension context shown before the prompt.
	Passage string   `json:"passage,omitempty"`
	Choices []string `json:"choices"`
	// CorrectAnswer is a 1-based index into Choices.
	CorrectAnswer int    `json:"correctAnswer"`
	Explanation   string `json:"explanation,omitempty"`
	// Explanations maps a language code (e.g. "zh_TW") to a manually written
	// translation of Explanation.
	Explanations map[string]string `json:"explanations,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
}

// IsCorrect reports whether the 1-based selected index is the right answer.
func (q Question) IsCorrect(selected int) bool {
	return selected == q.CorrectAnswer
}

// BankMetadata describes a question bank.
type BankMetadata struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	CreatedDate string `json:"createdDate"`
	// TotalQuestions is the declared count from the source document. Advisory
	// only; a mismatch with the actual count is a warning, not an error.
	TotalQuestions int    `json:"totalQuestions"`
	Description    string `json:"description,omitempty"`
}

// Bank is an immutable, validated collection of questions.
type Bank struct {
	Metadata  BankMetadata `json:"metadata"`
	Questions []Question   `json:"questions"`
}

// CriterionKind tags the practice-criterion variants.
type CriterionKind int

const (
	CriterionAll CriterionKind = iota
	CriterionTopic
	CriterionDifficulty
)

// Criterion selects a practice subset of a bank.
type Criterion struct {
	Kind  CriterionKind
	Value string
}

// AllQuestions selects every question in bank order.
func AllQuestions() Criterion {
	return Criterion{Kind: CriterionAll}
}

// ByTopic selects questions whose topic matches case-insensitively.
func ByTopic(topic string) Criterion {
	return Criterion{Kind: CriterionTopic, Value: topic}
}

// ByDifficulty selects questions whose difficulty matches case-insensitively.
func ByDifficulty(difficulty string) Criterion {
	return Criterion{Kind: CriterionDifficulty, Value: difficulty}
}

func (c Criterion) String() string {
	switch c.Kind {
	case CriterionTopic:
		return "topic: " + c.Value
	case CriterionDifficulty:
		return "difficulty: " + c.Value
	default:
		return "all questions"
	}
}

// AnswerRecord captures one submitted answer, in answering order.
type AnswerRecord struct {
	QuestionID    int       `json:"questionId"`
	SelectedIndex int       `json:"selectedIndex"`
	IsCorrect     bool      `json:"correct"`
	AnsweredAt    time.Time `json:"answeredAt"`
}

// Score summarizes a session.
type Score struct {
	Correct  int `json:"correct"`
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// Accuracy is the percentage of session questions answered correctly,
// defined as 0 for an empty session.
func (s Score) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total) * 100
}

// GroupScore is a per-topic or per-difficulty slice of the session results.
type GroupScore struct {
	Correct   int `json:"correct"`
	Attempted int `json:"attempted"`
}
