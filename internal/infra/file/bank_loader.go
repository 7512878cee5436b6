// Package file loads question banks from a directory of YAML documents,
// one bank per file, addressed as <dir>/<bankID>.yaml (or .yml).
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"ela-quiz-service/internal/bank"
	"ela-quiz-service/internal/domain"
)

type BankLoader struct {
	dir string
}

func NewBankLoader(dir string) *BankLoader {
	return &BankLoader{dir: dir}
}

func (l *BankLoader) LoadBank(_ context.Context, bankID string) (domain.Bank, error) {
	if strings.ContainsAny(bankID, `/\`) || bankID == "" {
		return domain.Bank{}, domain.ErrBankNotFound
	}

	var data []byte
	var err error
	for _, ext := range []string{".yaml", ".yml"} {
		data, err = os.ReadFile(filepath.Join(l.dir, bankID+ext))
		if err == nil {
			break
		}
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Bank{}, domain.ErrBankNotFound
		}
		return domain.Bank{}, fmt.Errorf("read bank %q: %w", bankID, err)
	}

	b, warnings, err := bank.Parse(data)
	if err != nil {
		return domain.Bank{}, fmt.Errorf("bank %q: %w", bankID, err)
	}
	for _, warning := range warnings {
		log.Printf("bank %q: %s", bankID, warning)
	}
	return b, nil
}

// List returns the bank IDs available in the directory.
func (l *BankLoader) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext == ".yaml" || ext == ".yml" {
			ids = append(ids, strings.TrimSuffix(name, ext))
		}
	}
	return ids, nil
}
