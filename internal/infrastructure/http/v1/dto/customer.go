package dto

import (
	"github.com/yochirolee/comercial-sub000/internal/core/entity"
	"github.com/yochirolee/comercial-sub000/internal/domain/catalogs/customer"
)

// --- Request DTOs ---

// CreateCustomerRequest is the request body for creating a customer.
type CreateCustomerRequest struct {
	Code            string            `json:"code"`
	Name            string            `json:"name" binding:"required"`
	FullName        *string           `json:"fullName"`
	TaxID           *string           `json:"taxId"`
	Country         *string           `json:"country"`
	LegalAddress    *string           `json:"legalAddress"`
	DeliveryAddress *string           `json:"deliveryAddress"`
	Phone           *string           `json:"phone"`
	Email           *string           `json:"email"`
	ContactPerson   *string           `json:"contactPerson"`
	PaymentTermDays int               `json:"paymentTermDays"`
	Comment         *string           `json:"comment"`
	ParentID        *string           `json:"parentId"`
	IsFolder        bool              `json:"isFolder"`
	Attributes      entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCustomerRequest) ToEntity() *customer.Customer {
	c := customer.NewCustomer(r.Code, r.Name)
	c.FullName = r.FullName
	c.TaxID = r.TaxID
	c.Country = r.Country
	c.LegalAddress = r.LegalAddress
	c.DeliveryAddress = r.DeliveryAddress
	c.Phone = r.Phone
	c.Email = r.Email
	c.ContactPerson = r.ContactPerson
	c.PaymentTermDays = r.PaymentTermDays
	c.Comment = r.Comment
	c.ParentID = r.ParentID
	c.IsFolder = r.IsFolder
	c.Attributes = r.Attributes
	return c
}

// UpdateCustomerRequest is the request body for updating a customer.
type UpdateCustomerRequest struct {
	Code            string            `json:"code"`
	Name            string            `json:"name" binding:"required"`
	FullName        *string           `json:"fullName"`
	TaxID           *string           `json:"taxId"`
	Country         *string           `json:"country"`
	LegalAddress    *string           `json:"legalAddress"`
	DeliveryAddress *string           `json:"deliveryAddress"`
	Phone           *string           `json:"phone"`
	Email           *string           `json:"email"`
	ContactPerson   *string           `json:"contactPerson"`
	PaymentTermDays int               `json:"paymentTermDays"`
	Comment         *string           `json:"comment"`
	ParentID        *string           `json:"parentId"`
	IsFolder        bool              `json:"isFolder"`
	Attributes      entity.Attributes `json:"attributes"`
	Version         int               `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCustomerRequest) ApplyTo(c *customer.Customer) {
	c.Code = r.Code
	c.Name = r.Name
	c.FullName = r.FullName
	c.TaxID = r.TaxID
	c.Country = r.Country
	c.LegalAddress = r.LegalAddress
	c.DeliveryAddress = r.DeliveryAddress
	c.Phone = r.Phone
	c.Email = r.Email
	c.ContactPerson = r.ContactPerson
	c.PaymentTermDays = r.PaymentTermDays
	c.Comment = r.Comment
	c.ParentID = r.ParentID
	c.IsFolder = r.IsFolder
	c.Attributes = r.Attributes
	c.Version = r.Version
}

// --- Response DTOs ---

// CustomerResponse is the response body for a customer.
type CustomerResponse struct {
	CatalogResponse
	FullName        *string `json:"fullName,omitempty"`
	TaxID           *string `json:"taxId,omitempty"`
	Country         *string `json:"country,omitempty"`
	LegalAddress    *string `json:"legalAddress,omitempty"`
	DeliveryAddress *string `json:"deliveryAddress,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Email           *string `json:"email,omitempty"`
	ContactPerson   *string `json:"contactPerson,omitempty"`
	PaymentTermDays int     `json:"paymentTermDays"`
	Comment         *string `json:"comment,omitempty"`
}

// FromCustomer creates response DTO from domain entity.
func FromCustomer(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		CatalogResponse: FromCatalog(c.Catalog),
		FullName:        c.FullName,
		TaxID:           c.TaxID,
		Country:         c.Country,
		LegalAddress:    c.LegalAddress,
		DeliveryAddress: c.DeliveryAddress,
		Phone:           c.Phone,
		Email:           c.Email,
		ContactPerson:   c.ContactPerson,
		PaymentTermDays: c.PaymentTermDays,
		Comment:         c.Comment,
	}
}
