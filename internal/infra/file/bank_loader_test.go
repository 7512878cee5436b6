package file_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ela-quiz-service/internal/bank"
	"ela-quiz-service/internal/domain"
	"ela-quiz-service/internal/infra/file"
)

func TestLoadBankReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, filepath.Join(dir, "ela.yaml"), bank.SampleYAML())

	loader := file.NewBankLoader(dir)
	b, err := loader.LoadBank(context.Background(), "ela")
	if err != nil {
		t.Fatalf("LoadBank: %v", err)
	}
	if len(b.Questions) != 20 {
		t.Fatalf("expected 20 questions, got %d", len(b.Questions))
	}
}

func TestLoadBankAcceptsYmlExtension(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, filepath.Join(dir, "ela.yml"), bank.SampleYAML())

	loader := file.NewBankLoader(dir)
	if _, err := loader.LoadBank(context.Background(), "ela"); err != nil {
		t.Fatalf("LoadBank: %v", err)
	}
}

func TestLoadBankMissingFile(t *testing.T) {
	loader := file.NewBankLoader(t.TempDir())

	if _, err := loader.LoadBank(context.Background(), "nope"); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
}

func TestLoadBankRejectsPathTraversal(t *testing.T) {
	loader := file.NewBankLoader(t.TempDir())

	for _, id := range []string{"", "../ela", `..\ela`, "sub/ela"} {
		if _, err := loader.LoadBank(context.Background(), id); !errors.Is(err, domain.ErrBankNotFound) {
			t.Fatalf("id %q: expected ErrBankNotFound, got %v", id, err)
		}
	}
}

func TestLoadBankSurfacesParseErrors(t *testing.T) {
	dir := t.TempDir()
	broken := `
quiz_metadata:
  title: Broken
questions:
  - id: 1
    topic: Grammar
    difficulty: easy
    question: Pick one.
    choices: ["a", "b"]
    correct_answer: 5
`
	writeBank(t, filepath.Join(dir, "broken.yaml"), []byte(broken))

	loader := file.NewBankLoader(dir)
	var malformed *domain.MalformedBankError
	if _, err := loader.LoadBank(context.Background(), "broken"); !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedBankError, got %v", err)
	}
}

func TestListReturnsBankIDs(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, filepath.Join(dir, "ela.yaml"), bank.SampleYAML())
	writeBank(t, filepath.Join(dir, "extra.yml"), bank.SampleYAML())
	writeBank(t, filepath.Join(dir, "notes.txt"), []byte("ignore me"))

	loader := file.NewBankLoader(dir)
	ids, err := loader.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 bank IDs, got %v", ids)
	}
}

func writeBank(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
