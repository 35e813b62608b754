package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/domain/catalogs/customer"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/storage/postgres"
)

const customerTable = "cat_customers"

// Compile-time check that CustomerRepo implements customer.Repository.
var _ customer.Repository = (*CustomerRepo)(nil)

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txManager *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*customer.Customer](
			txManager,
			customerTable,
			postgres.ExtractDBColumns[customer.Customer](),
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

// FindByTaxID retrieves a customer by fiscal identification number.
func (r *CustomerRepo) FindByTaxID(ctx context.Context, taxID string) (*customer.Customer, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"tax_id": taxID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("customer", taxID)
		}
		return nil, err
	}
	return item, nil
}
