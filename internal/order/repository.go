package order

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"quiltshop-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrder(ctx context.Context, userID int64, input CheckoutInput) (*Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	GetByPaymentSession(ctx context.Context, sessionID string, userID int64) (*Order, error)
	SetPaymentSession(ctx context.Context, orderID int64, sessionID string) error
	MarkPaid(ctx context.Context, orderID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
	UpdateStatus(ctx context.Context, orderID int64, status Status, actorID int64) (*Order, error)
	SetTracking(ctx context.Context, orderID int64, carrier *string, trackingNo string, actorID int64) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	o.id, o.user_id, o.total_cents, o.status,
	o.shipping_name, o.shipping_addr1, o.shipping_addr2, o.shipping_city,
	o.shipping_state, o.shipping_postal, o.shipping_country,
	o.billing_name, o.billing_addr1, o.billing_addr2, o.billing_city,
	o.billing_state, o.billing_postal, o.billing_country,
	o.carrier, o.tracking_no, o.payment_session,
	o.created_at, o.shipped_at, o.fulfilled_at`

func scanOrder(row interface{ Scan(...interface{}) error }, o *Order) error {
	return row.Scan(
		&o.ID, &o.UserID, &o.TotalCents, &o.Status,
		&o.Shipping.Name, &o.Shipping.Addr1, &o.Shipping.Addr2, &o.Shipping.City,
		&o.Shipping.State, &o.Shipping.Postal, &o.Shipping.Country,
		&o.Billing.Name, &o.Billing.Addr1, &o.Billing.Addr2, &o.Billing.City,
		&o.Billing.State, &o.Billing.Postal, &o.Billing.Country,
		&o.Carrier, &o.TrackingNo, &o.PaymentSession,
		&o.CreatedAt, &o.ShippedAt, &o.FulfilledAt,
	)
}

// CreateOrder materializes a cart into one order row plus its items inside a
// single transaction. Prices are resolved from the catalog here; items whose
// product is missing or resolves to a non-positive price are dropped.
func (r *repository) CreateOrder(ctx context.Context, userID int64, input CheckoutInput) (*Order, error) {
	ids := make([]int64, 0, len(input.Items))
	for _, it := range input.Items {
		if it.ProductID > 0 {
			ids = append(ids, it.ProductID)
		}
	}
	if len(ids) == 0 {
		return nil, ErrNoValidItems
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT id, price_cents FROM products WHERE id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}

	priceMap := make(map[int64]int64)
	for rows.Next() {
		var id, cents int64
		if err := rows.Scan(&id, &cents); err != nil {
			rows.Close()
			return nil, err
		}
		priceMap[id] = cents
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	var (
		items []OrderItem
		total int64
	)
	for _, it := range input.Items {
		unit := priceMap[it.ProductID]
		if unit <= 0 {
			continue
		}
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		items = append(items, OrderItem{
			ProductID: it.ProductID,
			Quantity:  qty,
			UnitCents: unit,
		})
		total += unit * int64(qty)
	}
	if len(items) == 0 {
		return nil, ErrNoValidItems
	}

	o := &Order{
		UserID:     userID,
		TotalCents: total,
		Status:     StatusPending,
		Shipping:   input.Shipping,
		Billing:    input.Billing,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			user_id, total_cents, status,
			shipping_name, shipping_addr1, shipping_addr2, shipping_city,
			shipping_state, shipping_postal, shipping_country,
			billing_name, billing_addr1, billing_addr2, billing_city,
			billing_state, billing_postal, billing_country
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		RETURNING id, created_at
	`,
		o.UserID, o.TotalCents, string(o.Status),
		o.Shipping.Name, o.Shipping.Addr1, o.Shipping.Addr2, o.Shipping.City,
		o.Shipping.State, o.Shipping.Postal, o.Shipping.Country,
		o.Billing.Name, o.Billing.Addr1, o.Billing.Addr2, o.Billing.City,
		o.Billing.State, o.Billing.Postal, o.Billing.Country,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return nil, err
	}

	var (
		sb   strings.Builder
		args []interface{}
	)
	sb.WriteString("INSERT INTO order_items (order_id, product_id, quantity, unit_cents) VALUES ")
	for i, it := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 4
		sb.WriteString(fmt.Sprintf("($%d,$%d,$%d,$%d)", base+1, base+2, base+3, base+4))
		args = append(args, o.ID, it.ProductID, it.Quantity, it.UnitCents)
	}

	if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = o.ID
	}
	o.Items = items

	return o, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	query := fmt.Sprintf(`
		SELECT %s, u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1
	`, orderColumns)

	var o Order
	row := r.db.QueryRowContext(ctx, query, id)
	err := row.Scan(
		&o.ID, &o.UserID, &o.TotalCents, &o.Status,
		&o.Shipping.Name, &o.Shipping.Addr1, &o.Shipping.Addr2, &o.Shipping.City,
		&o.Shipping.State, &o.Shipping.Postal, &o.Shipping.Country,
		&o.Billing.Name, &o.Billing.Addr1, &o.Billing.Addr2, &o.Billing.City,
		&o.Billing.State, &o.Billing.Postal, &o.Billing.Country,
		&o.Carrier, &o.TrackingNo, &o.PaymentSession,
		&o.CreatedAt, &o.ShippedAt, &o.FulfilledAt,
		&o.UserName, &o.UserEmail,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, []*Order{&o}); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) GetByPaymentSession(ctx context.Context, sessionID string, userID int64) (*Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		WHERE o.payment_session = $1 AND o.user_id = $2
	`, orderColumns)

	var o Order
	err := scanOrder(r.db.QueryRowContext(ctx, query, sessionID, userID), &o)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) SetPaymentSession(ctx context.Context, orderID int64, sessionID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET payment_session = $1 WHERE id = $2
	`, sessionID, orderID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// MarkPaid transitions PENDING -> PAID. The update is conditional on the
// current status, so re-delivered completion notifications apply nothing and
// append no duplicate audit row. Returns whether the transition applied.
func (r *repository) MarkPaid(ctx context.Context, orderID int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders SET status = 'PAID' WHERE id = $1 AND status = 'PENDING'
	`, orderID)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if n > 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_audits (order_id, actor_id, action, note)
			VALUES ($1, $2, $3, $4)
		`, orderID, nil, ActionStatusUpdate, string(StatusPaid))
		if err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	return n > 0, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id DESC
	`, orderColumns)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.attachItems(ctx, refs); err != nil {
		return nil, err
	}

	return orders, nil
}

// List returns one keyset page, newest first by (created_at, id). The cursor
// is the last-seen order id; rows compare strictly below its (created_at, id)
// pair so same-timestamp orders stay totally ordered.
func (r *repository) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListOrders"),
	)

	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if opts.Status != "" && opts.Status != "ALL" {
		conds = append(conds, "o.status = "+arg(opts.Status))
	}
	if opts.From != nil {
		conds = append(conds, "o.created_at >= "+arg(*opts.From))
	}
	if opts.To != nil {
		conds = append(conds, "o.created_at <= "+arg(*opts.To))
	}
	if opts.Query != "" {
		q := arg("%" + opts.Query + "%")
		conds = append(conds, fmt.Sprintf(`(
			u.email ILIKE %[1]s OR u.name ILIKE %[1]s OR o.tracking_no ILIKE %[1]s OR
			EXISTS (
				SELECT 1 FROM order_items oi
				JOIN products p ON p.id = oi.product_id
				WHERE oi.order_id = o.id AND p.title ILIKE %[1]s
			)
		)`, q))
	}
	if opts.CursorID > 0 {
		conds = append(conds, fmt.Sprintf(
			"(o.created_at, o.id) < (SELECT created_at, id FROM orders WHERE id = %s)",
			arg(opts.CursorID),
		))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s, u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		%s
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT %s
	`, orderColumns, where, arg(opts.Take))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.TotalCents, &o.Status,
			&o.Shipping.Name, &o.Shipping.Addr1, &o.Shipping.Addr2, &o.Shipping.City,
			&o.Shipping.State, &o.Shipping.Postal, &o.Shipping.Country,
			&o.Billing.Name, &o.Billing.Addr1, &o.Billing.Addr2, &o.Billing.City,
			&o.Billing.State, &o.Billing.Postal, &o.Billing.Country,
			&o.Carrier, &o.TrackingNo, &o.PaymentSession,
			&o.CreatedAt, &o.ShippedAt, &o.FulfilledAt,
			&o.UserName, &o.UserEmail,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.attachItems(ctx, refs); err != nil {
		return nil, err
	}

	// A partial page signals end-of-results; no further cursor is issued.
	var next *int64
	if len(orders) == opts.Take && opts.Take > 0 {
		last := orders[len(orders)-1].ID
		next = &last
	}

	return &ListResult{Orders: orders, NextCursor: next}, nil
}

// attachItems fetches all line items for the given orders in one query to
// avoid an N+1 pattern.
func (r *repository) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, len(orders))
	byID := make(map[int64]*Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
		o.Items = []OrderItem{}
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_cents,
		       p.title, p.image_url
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id ASC
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitCents,
			&it.ProductTitle, &it.ProductImage,
		); err != nil {
			return err
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}

	return rows.Err()
}

// UpdateStatus applies an admin status transition and its audit row as one
// atomic unit. SHIPPED stamps shipped_at only when unset; DONE stamps
// fulfilled_at.
func (r *repository) UpdateStatus(ctx context.Context, orderID int64, status Status, actorID int64) (*Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	setParts := []string{"status = $1"}
	if status == StatusShipped {
		setParts = append(setParts, "shipped_at = COALESCE(shipped_at, NOW())")
	}
	if status == StatusDone {
		setParts = append(setParts, "fulfilled_at = COALESCE(fulfilled_at, NOW())")
	}

	query := fmt.Sprintf("UPDATE orders SET %s WHERE id = $2", strings.Join(setParts, ", "))
	res, err := tx.ExecContext(ctx, query, string(status), orderID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrOrderNotFound
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_audits (order_id, actor_id, action, note)
		VALUES ($1, $2, $3, $4)
	`, orderID, actorID, ActionStatusUpdate, string(status))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, orderID)
}

// SetTracking forces SHIPPED; the first shipment timestamp wins.
func (r *repository) SetTracking(ctx context.Context, orderID int64, carrier *string, trackingNo string, actorID int64) (*Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET carrier = $1, tracking_no = $2,
		    shipped_at = COALESCE(shipped_at, NOW()), status = 'SHIPPED'
		WHERE id = $3
	`, carrier, trackingNo, orderID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrOrderNotFound
	}

	note := trackingNo
	if carrier != nil && *carrier != "" {
		note = strings.TrimSpace(*carrier + " " + trackingNo)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_audits (order_id, actor_id, action, note)
		VALUES ($1, $2, $3, $4)
	`, orderID, actorID, ActionTrackingSet, note)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, orderID)
}
