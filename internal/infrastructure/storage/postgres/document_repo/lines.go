package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/storage/postgres"
)

// lineColumns are the columns of a priced line item. Offers and invoices
// share the same table part shape, so line persistence lives here once.
var lineColumns = []string{
	"line_id", "line_no", "product_id", "description", "unit",
	"quantity", "net_weight", "weight_priced",
	"original_price", "price", "subtotal",
}

// getLines retrieves line items for a document in line order.
func getLines(ctx context.Context, querier postgres.Querier, table string, docID id.ID) ([]documents.Line, error) {
	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select(lineColumns...).
		From(table).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []documents.Line
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// saveLines replaces all line items of a document (delete existing + insert new).
func saveLines(ctx context.Context, querier postgres.Querier, table string, docID id.ID, lines []documents.Line) error {
	deleteSQL := "DELETE FROM " + table + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert(table).
		Columns(append([]string{"document_id"}, lineColumns...)...)

	for _, line := range lines {
		q = q.Values(
			docID,
			line.LineID, line.LineNo, line.ProductID, line.Description, line.Unit,
			line.Quantity, line.NetWeight, line.WeightPriced,
			line.OriginalPrice, line.Price, line.Subtotal,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}
