package upstream

import "golang-food-gateway/internal/models"

// Static fallback catalog served when the upstream is unreachable, so browse
// pages keep working offline. Mirrors the seed data the upstream ships with.

var MockMenus = []models.MenuItem{
	{ID: 1, Name: "Ayam Geprek", Description: "Ayam goreng dengan sambal pedas", Price: 25000, Image: "/images/food/ayam-geprek.svg", CategoryID: 1, Rating: 4.8, Location: "Jakarta Selatan", Distance: "1.2 km", RestaurantID: 1, RestaurantName: "Ayam Geprek"},
	{ID: 2, Name: "Bakso Malang", Description: "Bakso dengan isi telur puyuh", Price: 20000, Image: "/images/food/bakso.svg", CategoryID: 1, Rating: 4.7, Location: "Jakarta Pusat", Distance: "2.5 km", RestaurantID: 2, RestaurantName: "Bakso Malang"},
	{ID: 3, Name: "Burger King Whopper", Description: "Burger dengan daging sapi premium", Price: 50000, Image: "/images/food/burger.svg", CategoryID: 2, Rating: 4.9, Location: "Jakarta Barat", Distance: "3.0 km", RestaurantID: 3, RestaurantName: "Burger King"},
	{ID: 4, Name: "Pizza Margherita", Description: "Pizza klasik dengan keju mozzarella", Price: 75000, Image: "/images/food/pizza.svg", CategoryID: 2, Rating: 4.6, Location: "Jakarta Timur", Distance: "4.5 km", RestaurantID: 4, RestaurantName: "Pizza Place"},
	{ID: 5, Name: "Fried Chicken", Description: "Ayam goreng crispy", Price: 30000, Image: "/images/food/fried-chicken.svg", CategoryID: 1, Rating: 4.9, Location: "Jakarta Selatan", Distance: "1.8 km", RestaurantID: 5, RestaurantName: "Fried Chicken House"},
	{ID: 6, Name: "Nasi Padang", Description: "Nasi dengan lauk khas Padang", Price: 35000, Image: "/images/food/padang.svg", CategoryID: 1, Rating: 4.8, Location: "Jakarta Pusat", Distance: "2.0 km", RestaurantID: 6, RestaurantName: "Rumah Makan Padang"},
	{ID: 7, Name: "Sushi Roll Set", Description: "Set sushi dengan 8 potong roll", Price: 85000, Image: "/images/food/sushi.svg", CategoryID: 4, Rating: 4.7, Location: "Jakarta Barat", Distance: "3.5 km", RestaurantID: 7, RestaurantName: "Sushi Bar"},
	{ID: 8, Name: "Es Teler", Description: "Minuman segar dengan buah", Price: 15000, Image: "/images/food/esteler.svg", CategoryID: 5, Rating: 4.7, Location: "Jakarta Selatan", Distance: "1.5 km", RestaurantID: 8, RestaurantName: "Warung Es Teler"},
}

var MockCategories = []models.Category{
	{ID: 1, Name: "Fast Food"},
	{ID: 2, Name: "Beverages"},
	{ID: 3, Name: "Asian"},
	{ID: 4, Name: "Local"},
}
