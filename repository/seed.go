package repository

import (
	"time"

	"storefront-service/models"
)

// seedProducts returns the demo catalog the service boots with.
func seedProducts() []*models.Product {
	return []*models.Product{
		{
			ID:           "1",
			Name:         "Wireless Bluetooth Headphones",
			Image:        "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?q=80&w=500",
			Description:  "Experience premium sound quality with these comfortable over-ear headphones. Features active noise cancellation and 30-hour battery life.",
			Brand:        "AudioTech",
			Category:     "Electronics",
			Price:        89.99,
			CountInStock: 10,
			Rating:       4.5,
			NumReviews:   12,
			Reviews: []models.Review{
				{
					ID:        "r1",
					Name:      "John Doe",
					Rating:    4,
					Comment:   "Great sound quality, very comfortable for long listening sessions.",
					UserID:    "u1",
					CreatedAt: time.Date(2023, 1, 15, 8, 30, 0, 0, time.UTC),
				},
			},
		},
		{
			ID:           "2",
			Name:         "Premium Smartphone",
			Image:        "https://images.unsplash.com/photo-1511707171634-5f897ff02ff9?q=80&w=500",
			Description:  "Latest model with high-resolution display, advanced camera system, and all-day battery life.",
			Brand:        "TechGiant",
			Category:     "Electronics",
			Price:        799.99,
			CountInStock: 7,
			Rating:       4.8,
			NumReviews:   8,
		},
		{
			ID:           "3",
			Name:         "Ergonomic Office Chair",
			Image:        "https://images.unsplash.com/photo-1596162954151-cdcb4c0f70a8?q=80&w=500",
			Description:  "Designed for comfort during long work sessions, with adjustable lumbar support and breathable mesh back.",
			Brand:        "ComfortPlus",
			Category:     "Furniture",
			Price:        199.99,
			CountInStock: 5,
			Rating:       4.3,
			NumReviews:   6,
		},
		{
			ID:           "4",
			Name:         "Professional Blender",
			Image:        "https://images.unsplash.com/photo-1570222094714-d942d004ae34?q=80&w=500",
			Description:  "High-performance 1200W blender with multiple speed settings perfect for smoothies, soups, and more.",
			Brand:        "KitchenPro",
			Category:     "Kitchen",
			Price:        149.99,
			CountInStock: 11,
			Rating:       4.6,
			NumReviews:   9,
		},
		{
			ID:           "5",
			Name:         "Fitness Smartwatch",
			Image:        "https://images.unsplash.com/photo-1523275335684-37898b6baf30?q=80&w=500",
			Description:  "Track your health and fitness with heart rate monitoring, GPS, and 7-day battery life.",
			Brand:        "FitTech",
			Category:     "Wearables",
			Price:        129.99,
			CountInStock: 6,
			Rating:       4.7,
			NumReviews:   14,
		},
		{
			ID:           "6",
			Name:         "Portable External SSD",
			Image:        "https://images.unsplash.com/photo-1597872200969-2b65d56bd16b?q=80&w=500",
			Description:  "Ultra-fast 1TB external SSD with USB-C connectivity for quick file transfers.",
			Brand:        "DataStore",
			Category:     "Electronics",
			Price:        159.99,
			CountInStock: 8,
			Rating:       4.4,
			NumReviews:   7,
		},
	}
}
