package queries

import (
	"context"

	"hyperlocal/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves the caller's orders from the database.
// The role scope is part of the WHERE clause, not a post-filter: a buyer's
// query never reads other buyers' rows.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listing queries.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing query, newest orders first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where, args := h.scope(query)

	sql := `
		SELECT ` + orderColumns + `
		FROM orders
	`
	if where != "" {
		sql += " WHERE " + where
	}
	sql += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]OrderResponse, 0)
	for rows.Next() {
		response, scanErr := scanOrderRow(rows.Scan)
		if scanErr != nil {
			return nil, scanErr
		}
		responses = append(responses, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

// scope builds the role-dependent WHERE clause and its arguments.
func (h ListOrdersQueryHandler) scope(query ListOrdersQuery) (string, []any) {
	var (
		where string
		args  []any
	)

	switch query.Caller().Role() {
	case kernel.RoleBuyer:
		where = "buyer_id = ?"
		args = append(args, query.Caller().ID().Bytes())
	case kernel.RoleVendor:
		where = "shop_id = ?"
		args = append(args, query.Caller().ID().Bytes())
	case kernel.RoleCourier:
		where = "courier_id = ?"
		args = append(args, query.Caller().ID().Bytes())
	case kernel.RoleAdmin:
		// admins see the whole order book
	}

	if query.Status() != nil {
		if where != "" {
			where += " AND "
		}
		where += "status = ?"
		args = append(args, query.Status().String())
	}

	return where, args
}
