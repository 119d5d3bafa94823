package dto

type SetQuantityInput struct {
	ProductID int64
	Quantity  float64
	Source    string // "chat" or "kafka", for logs
}

type SetLimitInput struct {
	ProductID int64
	Limit     *float64 // nil clears the limit
	Source    string
}
