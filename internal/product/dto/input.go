package dto

type CreateProductInput struct {
	CategoryID int64
	Name       string
	Quantity   float64
	Limit      *float64 // nil for no reorder limit
}

type RenameProductInput struct {
	ID   int64
	Name string
}
