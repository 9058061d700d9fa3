package memory

import (
	domain "github.com/freshcart/api/internal/domain"
)

// SeedSupermarkets returns the built-in storefront roster. Delivery fees and
// prices are in minor currency units.
func SeedSupermarkets() []domain.Supermarket {
	return []domain.Supermarket{
		{
			ID:                  "1",
			Name:                "Fresh Market",
			ImageURL:            "https://images.unsplash.com/photo-1608686207856-001b95cf60ca?q=80&w=2940&auto=format&fit=crop",
			Rating:              4.8,
			RatingCount:         1204,
			DistanceKm:          1.2,
			DeliveryTimeMinutes: 25,
			HasDelivery:         true,
			DeliveryFee:         299,
			Categories:          []string{"Groceries", "Organic", "Dairy", "Meat"},
		},
		{
			ID:                  "2",
			Name:                "Gourmet Grocery",
			ImageURL:            "https://images.unsplash.com/photo-1542838132-92c53300491e?q=80&w=2874&auto=format&fit=crop",
			Rating:              4.6,
			RatingCount:         867,
			DistanceKm:          1.8,
			DeliveryTimeMinutes: 30,
			HasDelivery:         true,
			DeliveryFee:         199,
			Categories:          []string{"Groceries", "Imported", "Snacks", "Bakery"},
		},
		{
			ID:                  "3",
			Name:                "ValueMart",
			ImageURL:            "https://images.unsplash.com/photo-1578916171728-46686eac8d58?q=80&w=2874&auto=format&fit=crop",
			Rating:              4.3,
			RatingCount:         1547,
			DistanceKm:          2.5,
			DeliveryTimeMinutes: 40,
			HasDelivery:         true,
			DeliveryFee:         99,
			Categories:          []string{"Groceries", "Household", "Dairy", "Snacks"},
		},
		{
			ID:                  "4",
			Name:                "Premium Foods",
			ImageURL:            "https://images.unsplash.com/photo-1607349913338-fca8f39869d2?q=80&w=2728&auto=format&fit=crop",
			Rating:              4.9,
			RatingCount:         732,
			DistanceKm:          3.1,
			DeliveryTimeMinutes: 45,
			HasDelivery:         false,
			DeliveryFee:         0,
			Categories:          []string{"Organic", "Specialty", "Dairy", "Meat"},
		},
		{
			ID:                  "5",
			Name:                "Quick Mart",
			ImageURL:            "https://images.unsplash.com/photo-1534723452862-4c874018d66d?q=80&w=2940&auto=format&fit=crop",
			Rating:              4.2,
			RatingCount:         987,
			DistanceKm:          0.8,
			DeliveryTimeMinutes: 20,
			HasDelivery:         true,
			DeliveryFee:         349,
			Categories:          []string{"Groceries", "Snacks", "Beverages", "Frozen"},
		},
	}
}

// SeedProducts returns the built-in product catalog.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:            "101",
			Name:          "Organic Bananas",
			ImageURL:      "/placeholder.svg",
			Price:         199,
			Unit:          "bunch",
			Category:      "Groceries",
			SupermarketID: "1",
			Description:   "Organic, locally sourced bananas. Perfect ripeness guaranteed.",
			InStock:       true,
		},
		{
			ID:            "102",
			Name:          "Grass-fed Ground Beef",
			ImageURL:      "/placeholder.svg",
			Price:         899,
			OriginalPrice: 1099,
			Unit:          "lb",
			Category:      "Meat",
			SupermarketID: "1",
			Description:   "Premium grass-fed beef, free from antibiotics and hormones.",
			InStock:       true,
		},
		{
			ID:            "103",
			Name:          "Organic Whole Milk",
			ImageURL:      "/placeholder.svg",
			Price:         449,
			Unit:          "gallon",
			Category:      "Dairy",
			SupermarketID: "1",
			Description:   "Creamy, farm-fresh organic whole milk from pasture-raised cows.",
			InStock:       true,
		},
		{
			ID:            "104",
			Name:          "Organic Carrots",
			ImageURL:      "/placeholder.svg",
			Price:         249,
			Unit:          "bundle",
			Category:      "Groceries",
			SupermarketID: "1",
			Description:   "Fresh, organic carrots. Perfect for snacking or cooking.",
			InStock:       true,
		},
		{
			ID:            "201",
			Name:          "Artisan Sourdough Bread",
			ImageURL:      "/placeholder.svg",
			Price:         599,
			Unit:          "loaf",
			Category:      "Bakery",
			SupermarketID: "2",
			Description:   "Freshly baked artisan sourdough bread with a perfect crust.",
			InStock:       true,
		},
		{
			ID:            "202",
			Name:          "Imported Italian Pasta",
			ImageURL:      "/placeholder.svg",
			Price:         399,
			Unit:          "pack",
			Category:      "Imported",
			SupermarketID: "2",
			Description:   "Premium Italian pasta, made with the finest durum wheat.",
			InStock:       true,
		},
		{
			ID:            "203",
			Name:          "Gourmet Chocolate Truffles",
			ImageURL:      "/placeholder.svg",
			Price:         1299,
			OriginalPrice: 1599,
			Unit:          "box",
			Category:      "Snacks",
			SupermarketID: "2",
			Description:   "Luxurious handmade chocolate truffles in assorted flavors.",
			InStock:       true,
		},
		{
			ID:            "204",
			Name:          "Premium Coffee Beans",
			ImageURL:      "/placeholder.svg",
			Price:         1499,
			Unit:          "bag",
			Category:      "Beverages",
			SupermarketID: "2",
			Description:   "Single-origin, freshly roasted coffee beans with complex flavors.",
			InStock:       false,
		},
		{
			ID:            "301",
			Name:          "White Bread",
			ImageURL:      "/placeholder.svg",
			Price:         149,
			Unit:          "loaf",
			Category:      "Groceries",
			SupermarketID: "3",
			Description:   "Soft, sliced white bread, perfect for sandwiches.",
			InStock:       true,
		},
		{
			ID:            "302",
			Name:          "Potato Chips",
			ImageURL:      "/placeholder.svg",
			Price:         299,
			Unit:          "bag",
			Category:      "Snacks",
			SupermarketID: "3",
			Description:   "Crispy potato chips in classic salt flavor.",
			InStock:       true,
		},
		{
			ID:            "303",
			Name:          "Cheddar Cheese",
			ImageURL:      "/placeholder.svg",
			Price:         399,
			OriginalPrice: 499,
			Unit:          "block",
			Category:      "Dairy",
			SupermarketID: "3",
			Description:   "Sharp cheddar cheese, aged for perfect flavor.",
			InStock:       true,
		},
		{
			ID:            "304",
			Name:          "Paper Towels",
			ImageURL:      "/placeholder.svg",
			Price:         599,
			Unit:          "pack",
			Category:      "Household",
			SupermarketID: "3",
			Description:   "Absorbent paper towels, sold in a convenient multi-pack.",
			InStock:       true,
		},
	}
}

// SeedCouriers returns the built-in delivery partner roster.
func SeedCouriers() []domain.Courier {
	return []domain.Courier{
		{
			ID:       "d1",
			Name:     "James Wilson",
			Phone:    "+1234567890",
			Rating:   4.9,
			Vehicle:  "Honda Scooter",
			ImageURL: "/placeholder.svg",
		},
		{
			ID:       "d2",
			Name:     "Sarah Chen",
			Phone:    "+1234567891",
			Rating:   4.8,
			Vehicle:  "Electric Bike",
			ImageURL: "/placeholder.svg",
		},
		{
			ID:       "d3",
			Name:     "Miguel Rodriguez",
			Phone:    "+1234567892",
			Rating:   4.7,
			Vehicle:  "Toyota Prius",
			ImageURL: "/placeholder.svg",
		},
	}
}
