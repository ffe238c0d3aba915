package models

// CartLine, sepetteki tek bir satırı temsil eder: ürün ID + adet.
//
// Sepet bilinçli olarak fiyat saklamaz — fiyatın sahibi menü kataloğudur.
// Tutar her okumada katalogdan join edilerek hesaplanır; böylece katalog
// fiyatı değiştiğinde sepetteki eski fiyat gösterilmez.
//
// Invariant'lar (CartService korur):
//   - Quantity >= 1 — 1'in altına düşen satır saklanmaz, silinir
//   - Aynı MenuItemID için en fazla bir satır bulunur
type CartLine struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}
