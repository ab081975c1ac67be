package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/exportsuite/internal/pricing"
)

const kindOrderItem = "order_item"

// Order is an order header with its items. Total is the sum of the item
// line totals and is computed on read.
type Order struct {
	ID        int64
	OrderNo   string
	Buyer     string
	Currency  string
	Items     []OrderItem
	Total     decimal.Decimal
	CreatedAt time.Time
}

// OrderItem is one priced line of an order.
type OrderItem struct {
	ID          int64
	OrderID     int64
	SKU         string
	Description string
	Line        pricing.OrderLine
}

func (s *Store) deriveItem(item OrderItem) (OrderItem, error) {
	line, err := pricing.DeriveOrderLine(item.Line)
	if err != nil {
		return OrderItem{}, err
	}
	s.observer.ObserveDerivation(kindOrderItem)
	item.Line = line
	item.SKU = strings.TrimSpace(item.SKU)
	return item, nil
}

// CreateOrder derives every item, assigns an order number when none is
// given and inserts the header and items in one transaction.
func (s *Store) CreateOrder(ctx context.Context, o Order) (Order, error) {
	items := make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		derived, err := s.deriveItem(item)
		if err != nil {
			var inputErr *pricing.InputError
			if errors.As(err, &inputErr) {
				return Order{}, &pricing.InputError{
					Field: fmt.Sprintf("items[%d].%s", i, inputErr.Field),
					Err:   inputErr.Err,
				}
			}
			return Order{}, err
		}
		items[i] = derived
	}

	orderNo := strings.TrimSpace(o.OrderNo)
	if orderNo == "" {
		var err error
		if orderNo, err = s.nextNumber(ctx, KindOrder); err != nil {
			return Order{}, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Order{}, fmt.Errorf("begin order transaction: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO orders (order_no, buyer, currency)
		VALUES (?, ?, ?)
	`, orderNo, o.Buyer, strings.ToUpper(strings.TrimSpace(o.Currency)))
	if err != nil {
		_ = tx.Rollback()
		return Order{}, writeError("insert order", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return Order{}, fmt.Errorf("read order id: %w", err)
	}

	for _, item := range items {
		if _, err := insertItem(ctx, tx, orderID, item); err != nil {
			_ = tx.Rollback()
			return Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Order{}, fmt.Errorf("commit order transaction: %w", err)
	}

	return s.GetOrder(ctx, orderID)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertItem(ctx context.Context, db execer, orderID int64, item OrderItem) (int64, error) {
	result, err := db.ExecContext(ctx, `
		INSERT INTO order_items (order_id, sku, description, qty, unit_price, discount_percent, line_total)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		orderID,
		item.SKU,
		item.Description,
		item.Line.Qty,
		item.Line.UnitPrice.String(),
		item.Line.DiscountPercent.String(),
		money(item.Line.LineTotal),
	)
	if err != nil {
		return 0, writeError("insert order item", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read order item id: %w", err)
	}
	return id, nil
}

// GetOrder loads order id with its items and total.
func (s *Store) GetOrder(ctx context.Context, id int64) (Order, error) {
	var o Order
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, order_no, buyer, currency, created_at
		FROM orders
		WHERE id = ?
	`, id).Scan(&o.ID, &o.OrderNo, &o.Buyer, &o.Currency, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Order{}, fmt.Errorf("query order %d: %w", id, err)
	}
	o.CreatedAt = parseTimestamp(createdAt)

	if o.Items, err = s.ListOrderItems(ctx, id); err != nil {
		return Order{}, err
	}

	lines := make([]pricing.OrderLine, len(o.Items))
	for i, item := range o.Items {
		lines[i] = item.Line
	}
	o.Total = pricing.SumLineTotals(lines)

	return o, nil
}

// ListOrderItems returns the items of order orderID in insertion order.
func (s *Store) ListOrderItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, sku, description, qty, unit_price, discount_percent, line_total
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	items := make([]OrderItem, 0)
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.SKU,
			&item.Description,
			&item.Line.Qty,
			&item.Line.UnitPrice,
			&item.Line.DiscountPercent,
			&item.Line.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

// GetOrderItem loads item itemID of order orderID.
func (s *Store) GetOrderItem(ctx context.Context, orderID, itemID int64) (OrderItem, error) {
	var item OrderItem
	err := s.db.QueryRowContext(ctx, `
		SELECT id, order_id, sku, description, qty, unit_price, discount_percent, line_total
		FROM order_items
		WHERE id = ? AND order_id = ?
	`, itemID, orderID).Scan(
		&item.ID,
		&item.OrderID,
		&item.SKU,
		&item.Description,
		&item.Line.Qty,
		&item.Line.UnitPrice,
		&item.Line.DiscountPercent,
		&item.Line.LineTotal,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderItem{}, fmt.Errorf("order %d item %d: %w", orderID, itemID, ErrNotFound)
	}
	if err != nil {
		return OrderItem{}, fmt.Errorf("query order item %d: %w", itemID, err)
	}
	return item, nil
}

// AddOrderItem derives and appends an item to order orderID.
func (s *Store) AddOrderItem(ctx context.Context, orderID int64, item OrderItem) (OrderItem, error) {
	item, err := s.deriveItem(item)
	if err != nil {
		return OrderItem{}, err
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = ?)`, orderID).Scan(&exists); err != nil {
		return OrderItem{}, fmt.Errorf("check order existence: %w", err)
	}
	if !exists {
		return OrderItem{}, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}

	id, err := insertItem(ctx, s.db, orderID, item)
	if err != nil {
		return OrderItem{}, err
	}
	return s.GetOrderItem(ctx, orderID, id)
}

// UpdateOrderItem derives and overwrites item itemID of order orderID.
func (s *Store) UpdateOrderItem(ctx context.Context, orderID, itemID int64, item OrderItem) (OrderItem, error) {
	item, err := s.deriveItem(item)
	if err != nil {
		return OrderItem{}, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE order_items
		SET
			sku = ?,
			description = ?,
			qty = ?,
			unit_price = ?,
			discount_percent = ?,
			line_total = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND order_id = ?
	`,
		item.SKU,
		item.Description,
		item.Line.Qty,
		item.Line.UnitPrice.String(),
		item.Line.DiscountPercent.String(),
		money(item.Line.LineTotal),
		itemID,
		orderID,
	)
	if err != nil {
		return OrderItem{}, writeError("update order item", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return OrderItem{}, fmt.Errorf("update order item: %w", err)
	}
	if affected == 0 {
		return OrderItem{}, fmt.Errorf("order %d item %d: %w", orderID, itemID, ErrNotFound)
	}

	return s.GetOrderItem(ctx, orderID, itemID)
}
