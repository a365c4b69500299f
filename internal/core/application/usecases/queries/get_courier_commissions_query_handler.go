package queries

import (
	"context"

	"hyperlocal/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCourierCommissionsQueryHandler reads a courier's commission ledger
// straight from storage, newest entries first.
type GetCourierCommissionsQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierCommissionsQueryHandler creates a handler for ledger retrieval.
func NewGetCourierCommissionsQueryHandler(db *gorm.DB) GetCourierCommissionsQueryHandler {
	return GetCourierCommissionsQueryHandler{db: db}
}

// Handle returns the ledger entries and the paid/pending totals for the
// courier named in the query.
func (h GetCourierCommissionsQueryHandler) Handle(
	ctx context.Context, query GetCourierCommissionsQuery,
) (GetCourierCommissionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierCommissionsQueryResponse{}, err
	}

	response := GetCourierCommissionsQueryResponse{
		CourierID: query.CourierID(),
		Entries:   []CommissionEntryResponse{},
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, order_id, amount, paid_status, created_at
		FROM commissions
		WHERE courier_id = ?
		ORDER BY created_at DESC`,
		query.CourierID().Bytes(),
	).Rows()
	if err != nil {
		return GetCourierCommissionsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		entry, err := scanCommissionRow(rows.Scan)
		if err != nil {
			return GetCourierCommissionsQueryResponse{}, err
		}

		response.Entries = append(response.Entries, entry)

		switch entry.PaidStatus {
		case "paid":
			response.TotalPaid += entry.Amount
		default:
			response.TotalPending += entry.Amount
		}
	}
	if err := rows.Err(); err != nil {
		return GetCourierCommissionsQueryResponse{}, err
	}

	return response, nil
}

func scanCommissionRow(scan func(dest ...any) error) (CommissionEntryResponse, error) {
	var (
		id      uuid.UUID
		orderID uuid.UUID
		entry   CommissionEntryResponse
	)

	if err := scan(&id, &orderID, &entry.Amount, &entry.PaidStatus, &entry.CreatedAt); err != nil {
		return CommissionEntryResponse{}, err
	}

	var err error

	entry.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return CommissionEntryResponse{}, err
	}

	entry.OrderID, err = kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return CommissionEntryResponse{}, err
	}

	return entry, nil
}
