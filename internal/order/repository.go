package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coursemarket-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Statistics aggregates order counts and amounts, optionally scoped to one
// user.
type Statistics struct {
	TotalOrders       int64   `json:"totalOrders"`
	TotalAmount       float64 `json:"totalAmount"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	PendingOrders     int64   `json:"pendingOrders"`
	CompletedOrders   int64   `json:"completedOrders"`
}

type Repository interface {
	CreateOrder(ctx context.Context, o *Order) (*Order, error)
	UpdateOrder(ctx context.Context, o *Order) (*Order, error)
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindByUserID(ctx context.Context, userID string) ([]*Order, error)
	GetOrderStatistics(ctx context.Context, userID *string) (*Statistics, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id, order_number, user_id, amount, tax, discount, total_amount,
	currency, payment_method, payment_gateway, payment_status,
	created_at, updated_at
`

// CreateOrder persists the order header, then its items with the order id as
// foreign key, then re-reads so the caller always observes back-references
// populated.
func (r *repository) CreateOrder(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("order_number", o.OrderNumber),
	)

	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, order_number, user_id, amount, tax, discount, total_amount,
			currency, payment_method, payment_gateway, payment_status,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW(),NOW())
	`,
		o.ID,
		o.OrderNumber,
		o.UserID,
		o.Amount,
		o.Tax,
		o.Discount,
		o.TotalAmount,
		o.Currency,
		o.PaymentMethod,
		o.PaymentGateway,
		o.PaymentStatus,
	)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	for i := range o.Items {
		item := &o.Items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.OrderID = o.ID

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				id, order_id, course_id, price, price_after_discount
			) VALUES ($1,$2,$3,$4,$5)
		`,
			item.ID,
			item.OrderID,
			item.CourseID,
			item.Price,
			item.PriceAfterDiscount,
		)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.Error(err),
			)
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return nil, err
	}
	committed = true

	return r.FindByID(ctx, o.ID)
}

// UpdateOrder persists the mutable order fields and re-reads the record.
func (r *repository) UpdateOrder(ctx context.Context, o *Order) (*Order, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET
			amount = $1,
			tax = $2,
			discount = $3,
			total_amount = $4,
			currency = $5,
			payment_method = $6,
			payment_gateway = $7,
			payment_status = $8,
			updated_at = NOW()
		WHERE id = $9
	`,
		o.Amount,
		o.Tax,
		o.Discount,
		o.TotalAmount,
		o.Currency,
		o.PaymentMethod,
		o.PaymentGateway,
		o.PaymentStatus,
		o.ID,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update order",
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
		return nil, err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, o.ID)
	}

	return r.FindByID(ctx, o.ID)
}

func (r *repository) FindByID(ctx context.Context, id string) (*Order, error) {
	return r.findOne(ctx, "o.id = $1", id)
}

func (r *repository) FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error) {
	return r.findOne(ctx, "o.order_number = $1", orderNumber)
}

func (r *repository) findOne(ctx context.Context, where string, arg any) (*Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		WHERE ` + where

	var o Order
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&o.ID,
		&o.OrderNumber,
		&o.UserID,
		&o.Amount,
		&o.Tax,
		&o.Discount,
		&o.TotalAmount,
		&o.Currency,
		&o.PaymentMethod,
		&o.PaymentGateway,
		&o.PaymentStatus,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %v", ErrOrderNotFound, arg)
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]

	return &o, nil
}

// FindByUserID returns a user's orders, newest first, with items attached.
func (r *repository) FindByUserID(ctx context.Context, userID string) ([]*Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query user orders",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	var ids []string

	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.OrderNumber,
			&o.UserID,
			&o.Amount,
			&o.Tax,
			&o.Discount,
			&o.TotalAmount,
			&o.Currency,
			&o.PaymentMethod,
			&o.PaymentGateway,
			&o.PaymentStatus,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.Items = items[o.ID]
	}

	return orders, nil
}

func (r *repository) loadItems(ctx context.Context, orderIDs []string) (map[string][]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, course_id, price, price_after_discount
		FROM order_items
		WHERE order_id = ANY($1)
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string][]OrderItem)
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.CourseID,
			&item.Price,
			&item.PriceAfterDiscount,
		); err != nil {
			return nil, err
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}

	return items, rows.Err()
}

// GetOrderStatistics computes all aggregates in a single query; it runs on
// every statistics request with no caching.
func (r *repository) GetOrderStatistics(ctx context.Context, userID *string) (*Statistics, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(total_amount), 0),
			COALESCE(AVG(total_amount), 0),
			COALESCE(SUM(CASE WHEN payment_status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN payment_status = 'completed' THEN 1 ELSE 0 END), 0)
		FROM orders`

	args := []any{}
	if userID != nil {
		query += " WHERE user_id = $1"
		args = append(args, *userID)
	}

	var stats Statistics
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalOrders,
		&stats.TotalAmount,
		&stats.AverageOrderValue,
		&stats.PendingOrders,
		&stats.CompletedOrders,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query order statistics", zap.Error(err))
		return nil, err
	}

	return &stats, nil
}
