package numerator

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corenumerator "github.com/yochirolee/comercial-sub000/internal/core/numerator"
)

type fakeRow struct {
	val int64
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if p, ok := dest[0].(*int64); ok {
		*p = r.val
	}
	return nil
}

type fakeQuerier struct {
	counters map[string]int64
	lastKey  string
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	key := args[0].(string)
	q.lastKey = key
	if q.counters == nil {
		q.counters = make(map[string]int64)
	}
	q.counters[key]++
	return fakeRow{val: q.counters[key]}
}

func TestService_NextNumber(t *testing.T) {
	querier := &fakeQuerier{}
	svc := New(querier)
	at := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	num, err := svc.NextNumber(context.Background(), corenumerator.DefaultConfig("INV"), at)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00001", num)
	assert.Equal(t, "INV_2026", querier.lastKey)

	num, err = svc.NextNumber(context.Background(), corenumerator.DefaultConfig("INV"), at)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00002", num)
}

func TestService_NextNumberSeriesAreIndependent(t *testing.T) {
	querier := &fakeQuerier{}
	svc := New(querier)
	at := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	inv, err := svc.NextNumber(context.Background(), corenumerator.DefaultConfig("INV"), at)
	require.NoError(t, err)
	ofc, err := svc.NextNumber(context.Background(), corenumerator.DefaultConfig("OFC"), at)
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-00001", inv)
	assert.Equal(t, "OFC-2026-00001", ofc)
}

func TestService_NextNumberWithoutYear(t *testing.T) {
	querier := &fakeQuerier{}
	svc := New(querier)
	at := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	cfg := corenumerator.Config{Prefix: "PRD", Digits: 6}
	num, err := svc.NextNumber(context.Background(), cfg, at)
	require.NoError(t, err)
	assert.Equal(t, "PRD-000001", num)
	assert.Equal(t, "PRD", querier.lastKey)
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, int64(42), ParseNumber("INV-2026-00042"))
	assert.Equal(t, int64(7), ParseNumber("PRD-000007"))
	assert.Equal(t, int64(-1), ParseNumber("garbage"))
	assert.Equal(t, int64(-1), ParseNumber("INV-"))
	assert.Equal(t, int64(-1), ParseNumber("INV-2026-xyz"))
}
