package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
)

type FavoriteRepo struct{ db *sqlx.DB }

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

func (r *FavoriteRepo) Ensure(sessionID string) (string, error) {
	var id string
	if err := r.db.Get(&id, `SELECT id FROM favorites WHERE session_id=?`, sessionID); err == nil {
		return id, nil
	}
	_, err := r.db.Exec(`INSERT INTO favorites(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

func (r *FavoriteRepo) Add(favoriteID, productID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO favorite_items(favorite_id, product_id, created_at)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(favorite_id, product_id) DO NOTHING
	`, favoriteID, productID)
	return err
}

func (r *FavoriteRepo) Remove(favoriteID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM favorite_items WHERE favorite_id=? AND product_id=?`, favoriteID, productID)
	return err
}

type FavoriteRow struct {
	ProductID string  `db:"product_id"`
	Title     string  `db:"title"`
	Category  string  `db:"category"`
	Price     float64 `db:"price"`
}

func (r *FavoriteRepo) List(favoriteID string) ([]FavoriteRow, error) {
	out := []FavoriteRow{}
	err := r.db.Select(&out, `
	  SELECT p.id AS product_id, p.title, p.category, p.price
	  FROM favorite_items fi
	  JOIN products p ON p.id = fi.product_id
	  WHERE fi.favorite_id = ?
	  ORDER BY p.title
	`, favoriteID)
	return out, err
}
