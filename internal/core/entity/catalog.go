package entity

import (
	"context"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
)

// Catalog is the base type for reference data: customers, importers,
// products. Documents point at catalog entries; catalog entries are
// never derived from anything.
type Catalog struct {
	BaseCatalog

	// Code is the human-readable identifier, unique per catalog.
	Code string `db:"code" json:"code"`

	// Name is the display name.
	Name string `db:"name" json:"name"`

	// ParentID places the entry in a hierarchy, nil for top level.
	ParentID *string `db:"parent_id" json:"parentId,omitempty"`

	// IsFolder marks grouping nodes that carry no data of their own.
	IsFolder bool `db:"is_folder" json:"isFolder"`
}

// NewCatalog creates a catalog entry with a generated ID.
func NewCatalog(code, name string) Catalog {
	return Catalog{
		BaseCatalog: NewBaseCatalog(),
		Code:        code,
		Name:        name,
	}
}

// Validate implements the Validatable interface. Code is optional
// here; services may assign one from a numbering series before save.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// SetParent sets or clears the parent reference.
func (c *Catalog) SetParent(parentID string) {
	if parentID == "" {
		c.ParentID = nil
	} else {
		c.ParentID = &parentID
	}
}

// IsRoot reports whether the entry sits at the top of the hierarchy.
func (c *Catalog) IsRoot() bool {
	return c.ParentID == nil || *c.ParentID == ""
}
