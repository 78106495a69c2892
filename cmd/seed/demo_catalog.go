package main

import (
	"ai-storefront-be/internal/dto"

	"github.com/google/uuid"
)

var demoSellerID = uuid.MustParse("5f0c7a52-8d3e-4b8a-9a51-2f6e1c9d7b10")

var demoCatalog = []dto.SeedCategory{
	{
		Name:        "Electronics",
		Description: "Phones, laptops, audio and accessories",
		Products: []dto.SeedProduct{
			{Name: "Aurora X1 Smartphone", Description: "6.5 inch OLED display, 128GB storage, dual camera with night mode and all-day battery.", Price: 499.00, Images: []string{"/images/aurora-x1.jpg"}},
			{Name: "Nimbus Pro Smartphone", Description: "Flagship phone with 256GB storage, 120Hz display, wireless charging and 5G.", Price: 899.00, Images: []string{"/images/nimbus-pro.jpg"}},
			{Name: "Pebble Lite Smartphone", Description: "Budget friendly phone with 64GB storage and a long lasting battery.", Price: 189.99},
			{Name: "Voyager 14 Laptop", Description: "Lightweight 14 inch laptop with 16GB RAM, 512GB SSD and 12 hour battery life.", Price: 1099.00, Images: []string{"/images/voyager-14.jpg"}},
			{Name: "Titan 16 Gaming Laptop", Description: "16 inch gaming laptop with RTX graphics, 32GB RAM and a 240Hz screen.", Price: 1899.00},
			{Name: "EchoBuds Wireless Earbuds", Description: "Noise cancelling wireless earbuds with 30 hours of total playback.", Price: 129.00},
			{Name: "Studio Over-Ear Headphones", Description: "Over-ear bluetooth headphones with active noise cancellation.", Price: 249.00},
			{Name: "Pulse Smartwatch", Description: "Fitness smartwatch with heart rate, GPS and sleep tracking.", Price: 199.00},
		},
	},
	{
		Name:        "Clothing",
		Description: "Everyday apparel for men and women",
		Products: []dto.SeedProduct{
			{Name: "Classic Cotton T-Shirt", Description: "Soft 100% cotton crew neck t-shirt available in six colors.", Price: 19.99},
			{Name: "Slim Fit Denim Jeans", Description: "Stretch denim jeans with a modern slim fit.", Price: 59.00},
			{Name: "Trailhead Rain Jacket", Description: "Waterproof breathable jacket with a packable hood.", Price: 89.00},
			{Name: "Merino Wool Sweater", Description: "Warm lightweight merino sweater for cold days.", Price: 79.00},
			{Name: "Linen Summer Dress", Description: "Breezy linen dress with adjustable straps.", Price: 64.50},
		},
	},
	{
		Name:        "Home & Kitchen",
		Description: "Appliances and essentials for the home",
		Products: []dto.SeedProduct{
			{Name: "BrewMaster Coffee Maker", Description: "12 cup programmable drip coffee maker with thermal carafe.", Price: 79.99},
			{Name: "Espresso Duo Machine", Description: "Compact espresso machine with milk frother.", Price: 229.00},
			{Name: "PowerBlend Blender", Description: "1200W blender for smoothies, soups and crushed ice.", Price: 99.00},
			{Name: "Chef Knife Set", Description: "Five piece stainless steel knife set with wooden block.", Price: 119.00},
			{Name: "Cloud Memory Foam Pillow", Description: "Ergonomic memory foam pillow with a washable cover.", Price: 39.00},
		},
	},
	{
		Name:        "Sports & Outdoors",
		Description: "Gear for training and adventures",
		Products: []dto.SeedProduct{
			{Name: "Stride Running Shoes", Description: "Lightweight cushioned running shoes for road training.", Price: 119.00},
			{Name: "Summit Hiking Backpack", Description: "35L hiking backpack with rain cover and hydration sleeve.", Price: 95.00},
			{Name: "FlexGrip Yoga Mat", Description: "Non slip 6mm yoga mat with carrying strap.", Price: 29.99},
			{Name: "Adjustable Dumbbell Pair", Description: "Pair of adjustable dumbbells from 2.5kg to 24kg.", Price: 299.00},
		},
	},
	{
		Name:        "Beauty & Personal Care",
		Description: "Skincare, haircare and grooming",
		Products: []dto.SeedProduct{
			{Name: "Hydra Glow Moisturizer", Description: "Daily face moisturizer with hyaluronic acid for dry skin.", Price: 24.00},
			{Name: "Vitamin C Serum", Description: "Brightening serum with 15% vitamin C.", Price: 32.00},
			{Name: "ProStyle Hair Dryer", Description: "Ionic hair dryer with three heat settings and a cool shot.", Price: 69.00},
			{Name: "Precision Electric Shaver", Description: "Rechargeable wet and dry electric shaver.", Price: 84.00},
		},
	},
	{
		Name:        "Gift Cards",
		Description: "Digital gift cards",
	},
}
