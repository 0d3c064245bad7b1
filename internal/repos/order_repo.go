package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type OrderRow struct {
	ID        string  `db:"id"`
	UserID    string  `db:"user_id"`
	Total     float64 `db:"total"`
	CreatedAt string  `db:"created_at"`
}

// OrderItemRow carries the point-in-time snapshot taken at checkout; later
// edits or deletion of the source listing do not change it.
type OrderItemRow struct {
	ProductID string  `db:"product_id"`
	Title     string  `db:"title"`
	Price     float64 `db:"price"`
	Qty       int     `db:"qty"`
	Subtotal  float64 `db:"subtotal"`
}

// OrderWithItems is the fully populated aggregate returned by reads.
type OrderWithItems struct {
	OrderRow
	Items []OrderItemRow
}

// CreateFromCart converts the cart into an order inside one transaction:
// read the lines still backed by a listing, insert the order and its
// snapshot items, clear the whole cart (dangling lines included), commit.
// Returns sql.ErrNoRows when no line survives; nothing is written in that
// case. A concurrent checkout of the same cart sees the cleared cart and
// gets sql.ErrNoRows too, so no partial order is ever observable.
func (r *OrderRepo) CreateFromCart(orderID, userID, cartID string) (OrderWithItems, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return OrderWithItems{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var lines []OrderItemRow
	if err := tx.Select(&lines, `
	  SELECT ci.product_id, p.title, p.price, ci.qty, (ci.qty*p.price) AS subtotal
	  FROM cart_items ci JOIN products p ON p.id=ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY datetime(ci.created_at), ci.rowid
	`, cartID); err != nil {
		return OrderWithItems{}, err
	}
	total := 0.0
	for _, ln := range lines {
		total += ln.Subtotal
	}
	// A cart that recomputes to nothing is an empty cart
	if len(lines) == 0 || total == 0 {
		return OrderWithItems{}, sql.ErrNoRows
	}

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, user_id, total, created_at)
	  VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	`, orderID, userID, total); err != nil {
		return OrderWithItems{}, err
	}
	for _, ln := range lines {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, title, price, qty)
		  VALUES(?, ?, ?, ?, ?)
		`, orderID, ln.ProductID, ln.Title, ln.Price, ln.Qty); err != nil {
			return OrderWithItems{}, err
		}
	}
	if _, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return OrderWithItems{}, err
	}

	var o OrderRow
	if err := tx.Get(&o, `SELECT id, user_id, total, created_at FROM orders WHERE id=?`, orderID); err != nil {
		return OrderWithItems{}, err
	}
	if err := tx.Commit(); err != nil {
		return OrderWithItems{}, err
	}
	return OrderWithItems{OrderRow: o, Items: lines}, nil
}

func (r *OrderRepo) Get(orderID string) (OrderWithItems, error) {
	var o OrderRow
	if err := r.db.Get(&o, `SELECT id, user_id, total, created_at FROM orders WHERE id=?`, orderID); err != nil {
		return OrderWithItems{}, err
	}
	items, err := r.itemsFor([]string{orderID})
	if err != nil {
		return OrderWithItems{}, err
	}
	return OrderWithItems{OrderRow: o, Items: items[orderID]}, nil
}

// ListByUser returns the user's orders newest first, each with its items.
// Orders are read-only after creation; there is no update or delete path.
func (r *OrderRepo) ListByUser(userID string) ([]OrderWithItems, error) {
	var rows []OrderRow
	if err := r.db.Select(&rows, `
	  SELECT id, user_id, total, created_at
	  FROM orders
	  WHERE user_id = ?
	  ORDER BY datetime(created_at) DESC, rowid DESC
	`, userID); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []OrderWithItems{}, nil
	}

	ids := make([]string, len(rows))
	for i, o := range rows {
		ids[i] = o.ID
	}
	byOrder, err := r.itemsFor(ids)
	if err != nil {
		return nil, err
	}

	out := make([]OrderWithItems, len(rows))
	for i, o := range rows {
		out[i] = OrderWithItems{OrderRow: o, Items: byOrder[o.ID]}
	}
	return out, nil
}

func (r *OrderRepo) CountByUser(userID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders WHERE user_id=?`, userID)
	return n, err
}

func (r *OrderRepo) itemsFor(orderIDs []string) (map[string][]OrderItemRow, error) {
	type row struct {
		OrderID string `db:"order_id"`
		OrderItemRow
	}
	query, args, err := sqlx.In(`
	  SELECT order_id, product_id, title, price, qty, (qty*price) AS subtotal
	  FROM order_items
	  WHERE order_id IN (?)
	  ORDER BY rowid
	`, orderIDs)
	if err != nil {
		return nil, err
	}
	var rows []row
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, err
	}
	out := make(map[string][]OrderItemRow, len(orderIDs))
	for _, it := range rows {
		out[it.OrderID] = append(out[it.OrderID], it.OrderItemRow)
	}
	return out, nil
}
