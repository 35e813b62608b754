// Package numerator defines the document numbering contract.
// The PostgreSQL-backed implementation lives in infrastructure/numerator.
package numerator

import (
	"context"
	"time"
)

// Config describes a numbering series for one document type.
type Config struct {
	// Prefix identifies the series (e.g. "OFC", "OFI", "INV", "SHP")
	Prefix string

	// Digits is the zero-padded width of the sequential part
	Digits int

	// YearInKey resets the sequence each calendar year and embeds the
	// year in the generated number
	YearInKey bool
}

// DefaultConfig returns the standard series layout: PREFIX-YYYY-00001.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:    prefix,
		Digits:    5,
		YearInKey: true,
	}
}

// Generator issues the next number in a series.
type Generator interface {
	// NextNumber returns the next document number for the series at the
	// given business date. Numbers are unique within prefix+year.
	NextNumber(ctx context.Context, cfg Config, at time.Time) (string, error)
}
