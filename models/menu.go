package models

import "time"

// MenuItem, backend'in menü kataloğundaki tek bir ürünü temsil eder.
// Katalog tamamen sunucuya aittir — client sadece okur, asla yazmaz.
// Fiyat bilgisinin tek sahibi de katalogdur: sepet fiyat saklamaz,
// tutar hesabı her okumada bu katalogdan join edilir.
type MenuItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	Category    string    `json:"category,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}

// PriceLookup, ürün ID'sinden birim fiyat çözen collaborator interface'i.
// Sepet tutarı hesaplanırken kullanılır — katalogda olmayan ürün
// (ok=false) tutara sıfır katkı yapar, hata üretmez.
type PriceLookup interface {
	PriceOf(menuItemID string) (float64, bool)
}

// Catalog, menü listesinin PriceLookup implementasyonu.
// GetMenu sonucundan kurulur; sepet tutarı için hızlı ID → fiyat erişimi sağlar.
type Catalog struct {
	prices map[string]float64
}

// NewCatalog, menü listesinden bir Catalog oluşturur.
func NewCatalog(items []MenuItem) *Catalog {
	prices := make(map[string]float64, len(items))
	for _, item := range items {
		prices[item.ID] = item.Price
	}
	return &Catalog{prices: prices}
}

// PriceOf, ürünün birim fiyatını döner. Ürün katalogda yoksa (0, false).
func (c *Catalog) PriceOf(menuItemID string) (float64, bool) {
	price, ok := c.prices[menuItemID]
	return price, ok
}
