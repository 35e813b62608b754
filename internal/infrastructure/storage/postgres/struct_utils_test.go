package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yochirolee/comercial-sub000/internal/domain/catalogs/customer"
)

type Embedded struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type sample struct {
	Embedded
	Code    string `db:"code"`
	Skipped string `db:"-"`
	NoTag   string
}

type hiddenBase struct {
	Secret string `db:"secret"`
}

type withHiddenBase struct {
	hiddenBase
	Code string `db:"code"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[sample]()
	assert.Equal(t, []string{"id", "name", "code"}, cols)
}

func TestExtractDBColumns_CatalogEntity(t *testing.T) {
	cols := ExtractDBColumns[customer.Customer]()

	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "code")
	assert.Contains(t, cols, "name")
	assert.Contains(t, cols, "tax_id")
	assert.Contains(t, cols, "payment_term_days")
	assert.NotContains(t, cols, "-")
}

func TestStructToMap(t *testing.T) {
	s := sample{
		Embedded: Embedded{ID: "1", Name: "test"},
		Code:     "CUS-00001",
		Skipped:  "hidden",
		NoTag:    "ignored",
	}

	m := StructToMap(&s)

	assert.Equal(t, "1", m["id"])
	assert.Equal(t, "test", m["name"])
	assert.Equal(t, "CUS-00001", m["code"])
	assert.NotContains(t, m, "-")
	assert.Len(t, m, 3)
}

func TestStructToMap_UnexportedEmbedded(t *testing.T) {
	s := withHiddenBase{
		hiddenBase: hiddenBase{Secret: "x"},
		Code:       "A",
	}

	var m map[string]any
	assert.NotPanics(t, func() { m = StructToMap(&s) })
	assert.Equal(t, "A", m["code"])
	assert.NotContains(t, m, "secret")
}

func TestDiff(t *testing.T) {
	oldState := map[string]any{"name": "old", "code": "A", "gone": 1}
	newState := map[string]any{"name": "new", "code": "A", "added": 2}

	changes := Diff(oldState, newState)

	assert.Contains(t, changes, "name")
	assert.Contains(t, changes, "gone")
	assert.Contains(t, changes, "added")
	assert.NotContains(t, changes, "code")
}
