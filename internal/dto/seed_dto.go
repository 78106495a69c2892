package dto

type SeedProduct struct {
	Name        string
	Description string
	Price       float64
	Images      []string
}

type SeedCategory struct {
	Name        string
	Description string
	Products    []SeedProduct
}

type SeedResult struct {
	CategoriesCreated int
	ProductsCreated   int
	Skipped           int
}
