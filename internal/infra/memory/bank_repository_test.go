package memory_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"ela-quiz-service/internal/domain"
	"ela-quiz-service/internal/infra/memory"
)

type countingLoader struct {
	calls atomic.Int64
	bank  domain.Bank
	err   error
}

func (l *countingLoader) LoadBank(_ context.Context, _ string) (domain.Bank, error) {
	l.calls.Add(1)
	if l.err != nil {
		return domain.Bank{}, l.err
	}
	return l.bank, nil
}

func testBank() domain.Bank {
	return domain.Bank{
		Metadata: domain.BankMetadata{Title: "ELA Practice"},
		Questions: []domain.Question{
			{ID: 1, Topic: "Grammar", Difficulty: domain.DifficultyEasy, Prompt: "Pick one.", Choices: []string{"a", "b"}, CorrectAnswer: 1},
		},
	}
}

func TestGetBankCachesWithinTTL(t *testing.T) {
	loader := &countingLoader{bank: testBank()}
	repo := memory.NewBankRepository(loader, time.Minute)

	for i := 0; i < 3; i++ {
		bank, err := repo.GetBank(context.Background(), "ela")
		if err != nil {
			t.Fatalf("GetBank: %v", err)
		}
		if bank.Metadata.Title != "ELA Practice" {
			t.Fatalf("unexpected bank %q", bank.Metadata.Title)
		}
	}
	if calls := loader.calls.Load(); calls != 1 {
		t.Fatalf("expected a single load, got %d", calls)
	}
}

func TestGetBankPropagatesLoaderError(t *testing.T) {
	loader := &countingLoader{err: domain.ErrBankNotFound}
	repo := memory.NewBankRepository(loader, time.Minute)

	_, err := repo.GetBank(context.Background(), "missing")
	if !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
	// Errors are not cached.
	repo.GetBank(context.Background(), "missing")
	if calls := loader.calls.Load(); calls != 2 {
		t.Fatalf("expected reload after error, got %d calls", calls)
	}
}

func TestStaticBankLoader(t *testing.T) {
	loader := memory.NewStaticBankLoader(map[string]domain.Bank{"ela": testBank()})

	if _, err := loader.LoadBank(context.Background(), "ela"); err != nil {
		t.Fatalf("LoadBank: %v", err)
	}
	if _, err := loader.LoadBank(context.Background(), "nope"); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
}

func TestTranslationCacheRoundTrip(t *testing.T) {
	cache := memory.NewTranslationCache()
	ctx := context.Background()

	if _, ok := cache.Get(ctx, 7, "zh_TW"); ok {
		t.Fatalf("expected miss on empty cache")
	}
	cache.Set(ctx, 7, "zh_TW", "翻譯")
	got, ok := cache.Get(ctx, 7, "zh_TW")
	if !ok || got != "翻譯" {
		t.Fatalf("expected hit, got %q ok=%v", got, ok)
	}
	if _, ok := cache.Get(ctx, 7, "zh_CN"); ok {
		t.Fatalf("languages must not collide")
	}
}
