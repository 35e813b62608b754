// Package customer provides the Customer catalog.
// Customers are the buyers offers are issued to and invoices billed against.
package customer

import (
	"context"
	"regexp"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/entity"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Customer represents a buyer: a final customer or an importing entity.
type Customer struct {
	entity.Catalog

	// FullName is the official registered name
	FullName *string `db:"full_name" json:"fullName,omitempty"`

	// TaxID is the fiscal identification number
	TaxID *string `db:"tax_id" json:"taxId,omitempty"`

	// Country is the country code (ISO 3166-1 alpha-2)
	Country *string `db:"country" json:"country,omitempty"`

	// LegalAddress is the registered address
	LegalAddress *string `db:"legal_address" json:"legalAddress,omitempty"`

	// DeliveryAddress is the shipping destination
	DeliveryAddress *string `db:"delivery_address" json:"deliveryAddress,omitempty"`

	// Phone is the primary contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Email is the primary contact email
	Email *string `db:"email" json:"email,omitempty"`

	// ContactPerson is the primary contact name
	ContactPerson *string `db:"contact_person" json:"contactPerson,omitempty"`

	// PaymentTermDays is the agreed payment term in days
	PaymentTermDays int `db:"payment_term_days" json:"paymentTermDays"`

	// Comment is a free-form note
	Comment *string `db:"comment" json:"comment,omitempty"`
}

// NewCustomer creates a new Customer with required fields.
func NewCustomer(code, name string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	if c.PaymentTermDays < 0 {
		return apperror.NewValidation("payment term cannot be negative").
			WithDetail("field", "paymentTermDays")
	}

	return nil
}
