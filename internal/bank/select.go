package bank

import (
	"strings"

	"ela-quiz-service/internal/domain"
)

// Select returns the practice subset for a criterion, preserving bank order.
// An empty result is not an error; callers decide how to handle it.
func Select(b domain.Bank, criterion domain.Criterion) []domain.Question {
	switch criterion.Kind {
	case domain.CriterionTopic:
		return filter(b, func(q domain.Question) bool {
			return strings.EqualFold(q.Topic, criterion.Value)
		})
	case domain.CriterionDifficulty:
		want, ok := domain.ParseDifficulty(criterion.Value)
		if !ok {
			return nil
		}
		return filter(b, func(q domain.Question) bool {
			return q.Difficulty == want
		})
	default:
		return filter(b, func(domain.Question) bool { return true })
	}
}

func filter(b domain.Bank, keep func(domain.Question) bool) []domain.Question {
	var out []domain.Question
	for _, q := range b.Questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

// Topics lists the distinct topics in bank order of first appearance.
func Topics(b domain.Bank) []string {
	var topics []string
	seen := make(map[string]bool)
	for _, q := range b.Questions {
		key := strings.ToLower(q.Topic)
		if !seen[key] {
			seen[key] = true
			topics = append(topics, q.Topic)
		}
	}
	return topics
}
