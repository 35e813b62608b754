// Package numerator provides PostgreSQL implementation of document auto-numbering.
// This is the infrastructure layer - it implements core/numerator.Generator interface.
package numerator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	corenumerator "github.com/yochirolee/comercial-sub000/internal/core/numerator"
)

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service provides document numbering functionality using PostgreSQL.
// Sequence state lives in the sys_sequences table; the next value is
// claimed with a single UPSERT + RETURNING, so concurrent callers never
// receive the same number.
type Service struct {
	querier Querier
}

// Ensure compile-time interface compliance.
var _ corenumerator.Generator = (*Service)(nil)

// New creates a new numerator service.
func New(querier Querier) *Service {
	return &Service{querier: querier}
}

// NextNumber generates the next document number.
// Pattern: PREFIX-YEAR-XXXXX (e.g., INV-2026-00001).
func (s *Service) NextNumber(ctx context.Context, cfg corenumerator.Config, at time.Time) (string, error) {
	if s == nil || s.querier == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}

	key := buildKey(cfg, at)

	var num int64
	err := s.querier.QueryRow(ctx, `
        INSERT INTO sys_sequences (key, current_val)
        VALUES ($1, 1)
        ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
        RETURNING current_val
	`, key).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("next number for %s: %w", key, err)
	}

	return formatNumber(cfg, at, num), nil
}

// buildKey creates the sequence key based on config and period.
func buildKey(cfg corenumerator.Config, at time.Time) string {
	if cfg.YearInKey {
		return fmt.Sprintf("%s_%s", cfg.Prefix, at.Format("2006"))
	}
	return cfg.Prefix
}

// formatNumber creates the final number string.
func formatNumber(cfg corenumerator.Config, at time.Time, num int64) string {
	digits := cfg.Digits
	if digits == 0 {
		digits = 5
	}

	if cfg.YearInKey {
		return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, at.Format("2006"), digits, num)
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, digits, num)
}

// ParseNumber extracts the numeric part from a formatted number, the
// last dash-separated segment. Returns -1 if parsing fails.
func ParseNumber(formatted string) int64 {
	idx := strings.LastIndexByte(formatted, '-')
	if idx < 0 || idx == len(formatted)-1 {
		return -1
	}

	num, err := strconv.ParseInt(formatted[idx+1:], 10, 64)
	if err != nil {
		return -1
	}
	return num
}
