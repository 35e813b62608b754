package numerator

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Mock is an in-memory Generator for tests.
type Mock struct {
	mu   sync.Mutex
	last map[string]int64
}

// NewMock creates a mock generator starting each series at 1.
func NewMock() *Mock {
	return &Mock{last: make(map[string]int64)}
}

// NextNumber implements Generator.
func (m *Mock) NextNumber(ctx context.Context, cfg Config, at time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := cfg.Prefix
	if cfg.YearInKey {
		key = fmt.Sprintf("%s-%d", cfg.Prefix, at.Year())
	}
	m.last[key]++

	digits := cfg.Digits
	if digits <= 0 {
		digits = 5
	}
	if cfg.YearInKey {
		return fmt.Sprintf("%s-%d-%0*d", cfg.Prefix, at.Year(), digits, m.last[key]), nil
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, digits, m.last[key]), nil
}
