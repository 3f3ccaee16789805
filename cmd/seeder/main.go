package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"marketplace-service/internal/model"
	"marketplace-service/pkg/config"
	"marketplace-service/pkg/database"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// catalogItem mirrors the fakestore API response shape.
type catalogItem struct {
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	} `json:"rating"`
}

func main() {
	catalogURL := flag.String("catalog", "https://fakestoreapi.com/products", "catalog endpoint to import from")
	flag.Parse()

	appConfig, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	db, err := database.Connect(appConfig)
	if err != nil {
		panic("Failed to initialize database: " + err.Error())
	}
	defer database.Close(db)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(*catalogURL)
	if err != nil {
		panic("Failed to fetch catalog: " + err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		panic(fmt.Sprintf("Catalog endpoint returned status %d", resp.StatusCode))
	}

	var items []catalogItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		panic("Failed to decode catalog response: " + err.Error())
	}

	products := make([]model.Product, len(items))
	for i, item := range items {
		products[i] = model.Product{
			Title:       item.Title,
			Price:       item.Price,
			Description: item.Description,
			Category:    item.Category,
			Image:       item.Image,
			Rate:        item.Rating.Rate,
			Count:       item.Rating.Count,
		}
	}

	if len(products) == 0 {
		fmt.Println("Catalog returned no products, nothing to import")
		return
	}

	if result := db.Create(&products); result.Error != nil {
		panic("Failed to insert products: " + result.Error.Error())
	}

	fmt.Printf("Imported %d products\n", len(products))
}
