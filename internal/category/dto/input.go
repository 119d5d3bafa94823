package dto

type CreateCategoryInput struct {
	Name string
}

type RenameCategoryInput struct {
	ID   int64
	Name string
}
