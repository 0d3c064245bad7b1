package domain

// Categories is the fixed set a listing may belong to. Static process-wide
// configuration, not a persisted table.
var Categories = []string{"Home", "Fashion", "Electronics", "Outdoors", "Beauty", "Other"}

func ValidCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

type Product struct {
	ID          string  `db:"id"`
	OwnerID     string  `db:"owner_id"`
	Title       string  `db:"title"`
	Description string  `db:"description"`
	Category    string  `db:"category"`
	Price       float64 `db:"price"`
	ImagePath   string  `db:"image_path"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}
