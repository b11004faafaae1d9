package queries

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (Page[OrderSummary], error) {
	if err := query.Validate(); err != nil {
		return Page[OrderSummary]{}, err
	}

	page := Page[OrderSummary]{Page: query.page.Page, PageSize: query.page.PageSize, Results: []OrderSummary{}}
	if err := h.filtered(ctx, query.filter).Count(&page.Count).Error; err != nil {
		return page, err
	}
	if page.Count == 0 {
		return page, nil
	}

	var rows []struct {
		ID                    uuid.UUID
		OrderNumber           string
		Status                string
		Email                 string
		FirstName             string
		LastName              string
		TotalAmountCents      int64
		IsPaid                bool
		StripePaymentIntentID string
		CreatedAt             time.Time
	}
	err := h.filtered(ctx, query.filter).
		Select(`o.id, o.order_number, o.status, o.email, a.first_name, a.last_name,
			o.total_amount_cents, o.is_paid, o.stripe_payment_intent_id, o.created_at`).
		Order("o.created_at DESC, o.id").
		Limit(query.page.PageSize).
		Offset(query.page.offset()).
		Scan(&rows).Error
	if err != nil {
		return page, err
	}

	for _, row := range rows {
		page.Results = append(page.Results, OrderSummary{
			ID:              row.ID.String(),
			OrderNumber:     row.OrderNumber,
			Status:          row.Status,
			StatusDisplay:   statusDisplay(row.Status),
			Email:           row.Email,
			CustomerName:    strings.TrimSpace(row.FirstName + " " + row.LastName),
			TotalAmount:     formatCents(row.TotalAmountCents),
			IsPaid:          row.IsPaid,
			PaymentIntentID: row.StripePaymentIntentID,
			CreatedAt:       row.CreatedAt,
		})
	}
	return page, nil
}

func (h ListOrdersQueryHandler) filtered(ctx context.Context, f OrderFilter) *gorm.DB {
	q := h.db.WithContext(ctx).
		Table("orders o").
		Joins("JOIN order_addresses a ON a.id = o.shipping_address_id")
	if f.Status != "" {
		q = q.Where("o.status = ?", f.Status)
	}
	if f.IsPaid != nil {
		q = q.Where("o.is_paid = ?", *f.IsPaid)
	}
	if f.Search != "" {
		pattern := likePattern(f.Search)
		q = q.Where(`(o.order_number ILIKE ? OR o.email ILIKE ? OR o.id::text ILIKE ?
			OR o.stripe_payment_intent_id ILIKE ? OR a.first_name ILIKE ? OR a.last_name ILIKE ?
			OR a.email ILIKE ?)`,
			pattern, pattern, pattern, pattern, pattern, pattern, pattern)
	}
	return q
}
