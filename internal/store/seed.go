package store

// SeedProducts returns the sample records the store is populated with at
// startup. IDs are assigned by the store on insert.
func SeedProducts() []Product {
	return []Product{
		{Name: "Laptop", Description: "15-inch laptop with 16GB RAM", Price: 1299.99, Category: "Electronics", Stock: 12},
		{Name: "Smartphone", Description: "6.1-inch smartphone with dual camera", Price: 799.50, Category: "Electronics", Stock: 30},
		{Name: "Coffee Maker", Description: "Drip coffee maker with timer", Price: 49.90, Category: "Home", Stock: 8},
		{Name: "Desk Chair", Description: "Ergonomic office chair with lumbar support", Price: 189.00, Category: "Furniture", Stock: 5},
		{Name: "Notebook", Description: "A5 ruled notebook, 200 pages", Price: 4.25, Category: "Office", Stock: 100},
	}
}
