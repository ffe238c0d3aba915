package models

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus, bir siparişin sunucu tarafındaki yaşam döngüsü durumu.
// Durum geçişleri tamamen backend'e aittir — client sadece gösterir
// ve stream event'leri ile günceller.
type OrderStatus string

const (
	StatusOrderReceived  OrderStatus = "order_received"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
)

// ValidStatus, verilen string'in bilinen bir sipariş durumu olup olmadığını kontrol eder.
// Admin status güncellemesinde kullanıcı girdisini doğrulamak için kullanılır.
func ValidStatus(s string) bool {
	switch OrderStatus(s) {
	case StatusOrderReceived, StatusPreparing, StatusOutForDelivery, StatusDelivered:
		return true
	}
	return false
}

// Order, sunucuya ait otoriter sipariş kaydı.
// Client'taki kopyası her zaman cache'tir — sunucu ile çelişirse sunucu kazanır.
type Order struct {
	ID              string      `json:"id"`
	CustomerName    string      `json:"customer_name"`
	CustomerAddress string      `json:"customer_address"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerEmail   string      `json:"customer_email,omitempty"`
	Status          OrderStatus `json:"status"`
	TotalAmount     float64     `json:"total_amount"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Items           []OrderItem `json:"items,omitempty"`
}

// OrderItem, sipariş içindeki tek bir kalem.
// UnitPrice sipariş anındaki fiyattır — katalog sonradan değişse bile sabit kalır.
type OrderItem struct {
	ID         string  `json:"id,omitempty"`
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name,omitempty"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price,omitempty"`
	ImageURL   string  `json:"image_url,omitempty"`
}

// OrderPage, admin sipariş listesinin cursor-based pagination sonucu.
// NextCursor boş string ise daha fazla sayfa yoktur.
type OrderPage struct {
	Items      []Order `json:"items"`
	NextCursor string  `json:"nextCursor,omitempty"`
	Limit      int     `json:"limit"`
}

// CreateOrderRequest, sipariş oluşturma isteğinin gövdesi.
// Items sepetten kurulur; idempotency key HTTP header olarak ayrıca gönderilir.
type CreateOrderRequest struct {
	CustomerName    string      `json:"customer_name"`
	CustomerAddress string      `json:"customer_address"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerEmail   string      `json:"customer_email,omitempty"`
	Items           []OrderItem `json:"items"`
}

// Validate, CreateOrderRequest'in gönderilebilir olup olmadığını kontrol eder.
func (r *CreateOrderRequest) Validate() error {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CustomerAddress = strings.TrimSpace(r.CustomerAddress)
	r.CustomerPhone = strings.TrimSpace(r.CustomerPhone)

	if r.CustomerName == "" {
		return fmt.Errorf("customer_name is required")
	}
	if r.CustomerAddress == "" {
		return fmt.Errorf("customer_address is required")
	}
	if r.CustomerPhone == "" {
		return fmt.Errorf("customer_phone is required")
	}
	if len(r.Items) == 0 {
		return fmt.Errorf("order must contain at least one item")
	}
	for _, item := range r.Items {
		if item.MenuItemID == "" || item.Quantity < 1 {
			return fmt.Errorf("invalid order item: %s", item.MenuItemID)
		}
	}
	return nil
}
