// Package bank loads, validates and queries question banks.
//
// The source format is a YAML document with `quiz_metadata` and `questions`
// top-level keys. JSON documents parse too (YAML superset), which is how the
// postgres loader reuses this parser for JSONB columns.
package bank

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"ela-quiz-service/internal/domain"
)

const explanationPrefix = "explanation_"

type bankDocument struct {
	Metadata  metadataDocument   `yaml:"quiz_metadata"`
	Questions []questionDocument `yaml:"questions"`
}

type metadataDocument struct {
	Title          string `yaml:"title"`
	Version        string `yaml:"version"`
	CreatedDate    string `yaml:"created_date"`
	TotalQuestions int    `yaml:"total_questions"`
	Description    string `yaml:"description"`
}

// questionDocument mirrors the wire shape. Pointer fields distinguish a
// missing key from a zero value. Unmatched keys land in Rest, which is where
// the per-language explanation_<code> fields come from; anything else in Rest
// is ignored for forward compatibility.
type questionDocument struct {
	ID            *int           `yaml:"id"`
	Topic         string         `yaml:"topic"`
	Difficulty    string         `yaml:"difficulty"`
	Question      string         `yaml:"question"`
	Passage       string         `yaml:"passage"`
	Choices       []string       `yaml:"choices"`
	CorrectAnswer *int           `yaml:"correct_answer"`
	Explanation   string         `yaml:"explanation"`
	Tags          []string       `yaml:"tags"`
	Rest          map[string]any `yaml:",inline"`
}

// Parse decodes and validates a bank document. The whole bank is rejected on
// the first validation failure; warnings cover advisory issues only.
func Parse(data []byte) (domain.Bank, []string, error) {
	var doc bankDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Bank{}, nil, &domain.MalformedBankError{Field: "document", Reason: err.Error()}
	}

	questions := make([]domain.Question, 0, len(doc.Questions))
	seen := make(map[int]bool, len(doc.Questions))
	for i, qd := range doc.Questions {
		q, err := qd.validate(i)
		if err != nil {
			return domain.Bank{}, nil, err
		}
		if seen[q.ID] {
			return domain.Bank{}, nil, &domain.MalformedBankError{
				QuestionID: q.ID, Field: "id", Reason: "duplicate question id",
			}
		}
		seen[q.ID] = true
		questions = append(questions, q)
	}

	bank := domain.Bank{
		Metadata: domain.BankMetadata{
			Title:          doc.Metadata.Title,
			Version:        doc.Metadata.Version,
			CreatedDate:    doc.Metadata.CreatedDate,
			TotalQuestions: doc.Metadata.TotalQuestions,
			Description:    doc.Metadata.Description,
		},
		Questions: questions,
	}

	var warnings []string
	if bank.Metadata.Title == "" {
		warnings = append(warnings, "quiz_metadata.title is empty")
	}
	if declared := bank.Metadata.TotalQuestions; declared != 0 && declared != len(questions) {
		warnings = append(warnings, fmt.Sprintf(
			"quiz_metadata.total_questions declares %d questions but the bank has %d", declared, len(questions)))
	}
	return bank, warnings, nil
}

// LoadFile reads and parses a bank from a YAML file.
func LoadFile(path string) (domain.Bank, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Bank{}, nil, err
	}
	return Parse(data)
}

func (qd questionDocument) validate(index int) (domain.Question, error) {
	fail := func(id int, field, reason string) (domain.Question, error) {
		if id == 0 {
			reason = fmt.Sprintf("questions[%d]: %s", index, reason)
		}
		return domain.Question{}, &domain.MalformedBankError{QuestionID: id, Field: field, Reason: reason}
	}

	if qd.ID == nil {
		return fail(0, "id", "missing required field")
	}
	id := *qd.ID
	if id <= 0 {
		return fail(0, "id", fmt.Sprintf("id must be a positive integer, got %d", id))
	}
	if strings.TrimSpace(qd.Topic) == "" {
		return fail(id, "topic", "missing required field")
	}
	difficulty, ok := domain.ParseDifficulty(qd.Difficulty)
	if !ok {
		return fail(id, "difficulty", fmt.Sprintf("%q is not one of easy, medium, hard", qd.Difficulty))
	}
	if strings.TrimSpace(qd.Question) == "" {
		return fail(id, "question", "missing required field")
	}
	if len(qd.Choices) < 2 {
		return fail(id, "choices", fmt.Sprintf("need at least 2 choices, got %d", len(qd.Choices)))
	}
	if qd.CorrectAnswer == nil {
		return fail(id, "correct_answer", "missing required field")
	}
	if ca := *qd.CorrectAnswer; ca < 1 || ca > len(qd.Choices) {
		return fail(id, "correct_answer", fmt.Sprintf("index %d outside [1, %d]", ca, len(qd.Choices)))
	}

	return domain.Question{
		ID:            id,
		Topic:         qd.Topic,
		Difficulty:    difficulty,
		Prompt:        qd.Question,
		Passage:       qd.Passage,
		Choices:       qd.Choices,
		CorrectAnswer: *qd.CorrectAnswer,
		Explanation:   qd.Explanation,
		Explanations:  qd.manualTranslations(),
		Tags:          qd.Tags,
	}, nil
}

// manualTranslations collects explanation_<code> keys from the unmatched
// remainder of the record. Empty strings are dropped so the resolver's
// presence checks stay simple.
func (qd questionDocument) manualTranslations() map[string]string {
	var out map[string]string
	for key, value := range qd.Rest {
		if !strings.HasPrefix(key, explanationPrefix) {
			continue
		}
		text, ok := value.(string)
		if !ok || text == "" {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[strings.TrimPrefix(key, explanationPrefix)] = text
	}
	return out
}
