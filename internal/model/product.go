package model

type Product struct {
	ID         int64    `db:"id"`
	CategoryID int64    `db:"category_id"`
	Name       string   `db:"name"`
	Quantity   float64  `db:"qty"`
	Limit      *float64 `db:"limit_qty"` // nil means no reorder limit
	BelowLimit bool     `db:"below_limit"`
}

// HasLimit reports whether a reorder limit is configured.
func (p *Product) HasLimit() bool {
	return p.Limit != nil
}

// IsBelowLimit reports whether the current quantity is at or under the limit.
// It is false when no limit is set.
func (p *Product) IsBelowLimit() bool {
	return p.Limit != nil && p.Quantity <= *p.Limit
}

// ReorderItem is a product that needs reordering, joined with its category.
type ReorderItem struct {
	CategoryID   int64   `db:"category_id"`
	CategoryName string  `db:"category_name"`
	ProductID    int64   `db:"product_id"`
	ProductName  string  `db:"product_name"`
	Quantity     float64 `db:"qty"`
	Limit        float64 `db:"limit_qty"`
}
