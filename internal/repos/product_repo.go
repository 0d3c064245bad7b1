package repos

import (
	"ecofinds/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, owner_id, title, COALESCE(description,'') AS description, category, price,
  COALESCE(image_path,'') AS image_path, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Insert(p *domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id,owner_id,title,description,category,price,image_path)
	  VALUES(?,?,?,?,?,?,?)
	`, p.ID, p.OwnerID, p.Title, p.Description, p.Category, p.Price, p.ImagePath)
	return err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) Update(p *domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products
	  SET title=?, description=?, category=?, price=?, image_path=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, p.Title, p.Description, p.Category, p.Price, p.ImagePath, p.ID)
	return err
}

// Delete removes a listing; cart and favorite rows referencing it cascade away.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id=?`, id)
	return err
}

// Search lists newest-first, with optional case-insensitive substring match on
// title/description and exact category match. Empty filters mean no restriction.
func (r *ProductRepo) Search(q, category string) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ?)`
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	if category != "" {
		where += ` AND category = ?`
		args = append(args, category)
	}

	query := `SELECT ` + productCols + ` FROM products WHERE ` + where + `
	  ORDER BY datetime(created_at) DESC, rowid DESC`

	out := []domain.Product{}
	err := r.db.Select(&out, query, args...)
	return out, err
}

func (r *ProductRepo) ListByOwner(ownerID string) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  WHERE owner_id = ?
	  ORDER BY datetime(created_at) DESC, rowid DESC
	`, ownerID)
	return out, err
}

func (r *ProductRepo) CountByOwner(ownerID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE owner_id=?`, ownerID)
	return n, err
}
