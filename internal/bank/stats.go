package bank

import "ela-quiz-service/internal/domain"

// Stats summarizes bank composition for reporting.
type Stats struct {
	Title          string
	TotalQuestions int
	Topics         map[string]int
	Difficulties   map[domain.Difficulty]int
}

// Summarize counts questions per topic and difficulty.
func Summarize(b domain.Bank) Stats {
	stats := Stats{
		Title:          b.Metadata.Title,
		TotalQuestions: len(b.Questions),
		Topics:         make(map[string]int),
		Difficulties:   make(map[domain.Difficulty]int),
	}
	for _, q := range b.Questions {
		stats.Topics[q.Topic]++
		stats.Difficulties[q.Difficulty]++
	}
	return stats
}
