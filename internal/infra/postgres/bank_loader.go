package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"ela-quiz-service/internal/bank"
	"ela-quiz-service/internal/domain"
)

// BankLoader loads bank documents stored as JSONB in Postgres. The column
// holds the same quiz_metadata/questions shape the YAML files use, so the
// bank parser validates both paths identically.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_banks WHERE id=$1`, bankID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Bank{}, domain.ErrBankNotFound
	}
	if err != nil {
		return domain.Bank{}, fmt.Errorf("load bank %q: %w", bankID, err)
	}

	b, _, err := bank.Parse(raw)
	if err != nil {
		return domain.Bank{}, fmt.Errorf("bank %q: %w", bankID, err)
	}
	return b, nil
}
