// Package ws, backend'e kurulan gerçek zamanlı sipariş stream'ini yönetir.
//
// Mimari:
// - Event: iki yönde de taşınan mesaj formatı
// - Stream: tek bir WebSocket bağlantısını temsil eder (dial, subscribe,
//   read loop, auto-reconnect)
// - Invalidator: inbound event'lerin çevrildiği cache-invalidation çağrıları
//
// Event akışı:
// 1. Backend'de bir siparişin durumu değişir
// 2. Backend, ilgili room'lara order_status_updated / order_updated yayınlar
// 3. Stream'in read loop'u event'i parse eder
// 4. dispatch, event türüne göre Invalidator metodlarını çağırır
// 5. İlgili cache entry'leri düşer — bir sonraki okuma API'den taze çeker
//
// Stream cache'e asla veri YAZMAZ; sadece bayatlatır. Böylece stream
// payload'ı ile API response'unun şekli birbirine bağlanmaz.
package ws

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op (operation): Event türü — "join_order_room", "order_status_updated" vb.
// Data: Event'e özgü payload.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
}

// Client → Server operasyonları
const (
	// OpJoinOrder: görüntülenen siparişin room'una abone ol.
	// Bağlantı kurulur kurulmaz, scope'ta sipariş varsa gönderilir.
	OpJoinOrder = "join_order_room"

	// OpJoinAdmin: global admin sipariş feed'ine abone ol (SELLER).
	OpJoinAdmin = "join_admin_room"
)

// Server → Client operasyonları
const (
	// OpOrderStatusChanged: tek bir siparişin durumu değişti.
	OpOrderStatusChanged = "order_status_updated"

	// OpOrderCollectionChanged: sipariş koleksiyonu değişti (yeni sipariş
	// geldi veya mevcut biri güncellendi) — admin listesi bayatladı.
	OpOrderCollectionChanged = "order_updated"
)

// JoinOrderData, join_order_room event'inin payload'ı.
type JoinOrderData struct {
	OrderID string `json:"order_id"`
}

// OrderStatusChangedData, order_status_updated event'inin payload'ı.
type OrderStatusChangedData struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// OrderCollectionChangedData, order_updated event'inin payload'ı.
type OrderCollectionChangedData struct {
	OrderID string `json:"order_id"`
}

// Invalidator, inbound event'lerin çağrıldığı cache-invalidation interface'i.
//
// Neden services.OrderService yerine kendi interface'imizi tanımlıyoruz?
// ws paketi cache policy bilmez, services paketi de ws'e bağımlı olmasın
// istiyoruz — iki paket bu küçük interface üzerinden buluşur, wire-up
// main.go'da yapılır (Dependency Inversion).
type Invalidator interface {
	// InvalidateOrder, tek bir siparişin cache'ini düşürür.
	// Cache'lenmemiş sipariş için no-op olmalıdır.
	InvalidateOrder(orderID string)

	// InvalidateMyOrders, "benim siparişlerim" listelerini düşürür.
	InvalidateMyOrders()

	// InvalidateAdminOrders, admin sipariş listesini düşürür.
	InvalidateAdminOrders()
}
