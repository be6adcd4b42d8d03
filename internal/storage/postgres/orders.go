package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/eatery/internal/domain/errors"
	"github.com/polkiloo/eatery/internal/domain/model"
	"github.com/polkiloo/eatery/internal/domain/repository"
)

const dayLayout = "2006-01-02"

const orderColumns = `id, customer_name, phone, address, notes, items, total::text, status, date, order_day, user_id, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var (
		o     model.Order
		items []byte
		total string
		day   time.Time
	)
	if err := row.Scan(&o.ID, &o.CustomerName, &o.Phone, &o.Address, &o.Notes, &items, &total, &o.Status, &o.Date, &day, &o.UserID, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items of order %s: %w", o.ID, err)
	}
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("decode total of order %s: %w", o.ID, err)
	}
	o.Total = amount
	o.Day = day.Format(dayLayout)
	return &o, nil
}

// Create inserts order. The creation time and calendar day come from the
// database clock so that every instance agrees on them.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	const query = `INSERT INTO orders (id, customer_name, phone, address, notes, items, total, status, order_day, user_id)
                   VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, (NOW() AT TIME ZONE $9)::date, $10)
                   RETURNING date, order_day`
	var day time.Time
	err = r.storage.pool.QueryRow(ctx, query,
		order.ID, order.CustomerName, order.Phone, order.Address, order.Notes,
		items, order.Total.String(), string(order.Status), r.storage.location.String(), order.UserID,
	).Scan(&order.Date, &day)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	order.Day = day.Format(dayLayout)
	return nil
}

func (r *orderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return order, nil
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY date DESC`
	return r.list(ctx, query)
}

func (r *orderRepository) ListByUser(ctx context.Context, uid string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY date DESC`
	return r.list(ctx, query, uid)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus overwrites the order status. The row is locked while check
// inspects the current status, so two operators cannot interleave between the
// check and the write.
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, check repository.StatusCheck) (model.OrderStatus, time.Time, error) {
	var (
		previous  model.OrderStatus
		updatedAt time.Time
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1 FOR UPDATE`, id).Scan(&previous); err != nil {
			return notFound(err)
		}
		if check != nil {
			if err := check(previous); err != nil {
				return err
			}
		}
		const updateQuery = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING updated_at`
		return tx.QueryRow(ctx, updateQuery, string(status), id).Scan(&updatedAt)
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return previous, updatedAt, nil
}
