// Package translate resolves the best available explanation text for a
// language: a manual translation from the bank, a manual variant (simplified
// Chinese stands in for traditional), a memoized automatic translation, or
// the source-language text as last resort.
package translate

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"ela-quiz-service/internal/domain"
)

// Provider is the external automatic-translation capability. Implementations
// are expected to be slow, flaky, or absent; the resolver absorbs all of that.
type Provider interface {
	Translate(ctx context.Context, text, targetCode string) (string, error)
}

// Cache memoizes resolved automatic translations per (questionID, language).
// Implementations absorb their own errors; a failed Get is just a miss.
type Cache interface {
	Get(ctx context.Context, questionID int, language string) (string, bool)
	Set(ctx context.Context, questionID int, language, text string)
}

// providerCodes maps recognized bank language codes to the codes the
// translation provider accepts. Unlisted codes skip automatic translation.
var providerCodes = map[string]string{
	"zh_TW": "zh-tw",
	"zh_CN": "zh-cn",
	"zh":    "zh-tw", // bare Chinese defaults to Traditional
}

// manualVariants lists manual-translation fallbacks tried before calling out.
var manualVariants = map[string][]string{
	"zh_TW": {"zh_CN", "zh"},
	"zh":    {"zh_TW", "zh_CN"},
}

const defaultTimeout = 5 * time.Second

// Resolver picks explanation text for a language. Safe for concurrent use
// across sessions; concurrent fetches for the same question are deduplicated.
type Resolver struct {
	provider Provider
	cache    Cache
	timeout  time.Duration
	sf       singleflight.Group
}

// NewResolver builds a resolver. provider may be nil (no automatic
// translation) and cache may be nil (no memoization).
func NewResolver(provider Provider, cache Cache, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Resolver{provider: provider, cache: cache, timeout: timeout}
}

// Resolve returns the best explanation for the question in the requested
// language. It never fails: any translation problem falls back to the
// source-language explanation.
func (r *Resolver) Resolve(ctx context.Context, q domain.Question, language string) string {
	if text, ok := q.Explanations[language]; ok && text != "" {
		return text
	}
	for _, variant := range manualVariants[language] {
		if text, ok := q.Explanations[variant]; ok && text != "" {
			return text
		}
	}

	targetCode, recognized := providerCodes[language]
	if !recognized || q.Explanation == "" {
		return q.Explanation
	}

	if r.cache != nil {
		if text, ok := r.cache.Get(ctx, q.ID, language); ok {
			return text
		}
	}
	if r.provider == nil {
		return q.Explanation
	}

	key := fmt.Sprintf("%d:%s", q.ID, language)
	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()
		translated, err := r.provider.Translate(fetchCtx, q.Explanation, targetCode)
		if err != nil {
			return nil, err
		}
		if r.cache != nil {
			r.cache.Set(ctx, q.ID, language, translated)
		}
		return translated, nil
	})
	if err != nil {
		log.Printf("translate question %d to %s: %v (falling back to source text)", q.ID, language, err)
		return q.Explanation
	}
	return result.(string)
}
