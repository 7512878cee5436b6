package memory

import (
	"context"
	"strconv"
	"sync"
)

// TranslationCache memoizes resolved translations for the process lifetime.
// Append-only and shared across sessions.
type TranslationCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewTranslationCache() *TranslationCache {
	return &TranslationCache{entries: make(map[string]string)}
}

func (c *TranslationCache) Get(_ context.Context, questionID int, language string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	text, ok := c.entries[translationKey(questionID, language)]
	return text, ok
}

func (c *TranslationCache) Set(_ context.Context, questionID int, language, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[translationKey(questionID, language)] = text
}

func translationKey(questionID int, language string) string {
	return strconv.Itoa(questionID) + ":" + language
}
