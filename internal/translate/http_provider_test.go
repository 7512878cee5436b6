package translate_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ela-quiz-service/internal/domain"
	"ela-quiz-service/internal/translate"
)

func TestHTTPProviderTranslates(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"translatedText": "翻譯結果"})
	}))
	defer server.Close()

	provider := translate.NewHTTPProvider(server.URL, "secret", time.Second)
	got, err := provider.Translate(context.Background(), "The subject is singular.", "zh-tw")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "翻譯結果" {
		t.Fatalf("unexpected translation %q", got)
	}
	if gotBody["q"] != "The subject is singular." || gotBody["target"] != "zh-tw" {
		t.Fatalf("unexpected request body %v", gotBody)
	}
	if gotBody["source"] != "en" || gotBody["api_key"] != "secret" {
		t.Fatalf("unexpected request body %v", gotBody)
	}
}

func TestHTTPProviderWrapsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := translate.NewHTTPProvider(server.URL, "", time.Second)
	_, err := provider.Translate(context.Background(), "text", "zh-tw")
	if !errors.Is(err, domain.ErrTranslationUnavailable) {
		t.Fatalf("expected ErrTranslationUnavailable, got %v", err)
	}
}

func TestHTTPProviderRejectsEmptyTranslation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"translatedText": ""})
	}))
	defer server.Close()

	provider := translate.NewHTTPProvider(server.URL, "", time.Second)
	if _, err := provider.Translate(context.Background(), "text", "zh-tw"); !errors.Is(err, domain.ErrTranslationUnavailable) {
		t.Fatalf("expected ErrTranslationUnavailable, got %v", err)
	}
}

func TestHTTPProviderUnreachableEndpoint(t *testing.T) {
	provider := translate.NewHTTPProvider("http://127.0.0.1:1", "", 100*time.Millisecond)
	if _, err := provider.Translate(context.Background(), "text", "zh-tw"); !errors.Is(err, domain.ErrTranslationUnavailable) {
		t.Fatalf("expected ErrTranslationUnavailable, got %v", err)
	}
}
