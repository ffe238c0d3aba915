// Package cache — Generic in-memory cache, TTL + explicit invalidation.
//
// Client'ın gösterdiği sunucu verisi (menü, sipariş, listeler) burada tutulur.
// İki yoldan bayatlar:
//   - TTL: her entry bir son kullanma tarihi taşır, geçince cache miss olur
//   - Invalidate: stream'den gelen bir event entry'yi açıkça düşürür
//
// Invalidation advisory'dir: cache'teki veriyi ASLA değiştirmez, sadece
// siler. Bir sonraki okuma kaynaktan (Order API) taze veri çeker. Böylece
// stream payload'ı ile API response'unun şekli birbirinden bağımsız kalır.
//
// Thread safety: sync.RWMutex — birden fazla goroutine aynı anda okuyabilir,
// yazma sırasında tüm erişim bloklanır.
package cache

import (
	"sync"
	"time"
)

// entry, cache'teki tek bir kayıttır.
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache, generic TTL + invalidation cache'i.
//
//	c := cache.New[string, models.Order](30*time.Second, 5*time.Minute)
//	c.Set("order:42", order)
//	order, ok := c.Get("order:42")
//	c.Invalidate("order:42")
type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration

	// stopCleanup: periyodik temizleme goroutine'ini durdurmak için.
	// Close() çağrıldığında bu channel kapatılır.
	stopCleanup chan struct{}
}

// New, yeni bir Cache oluşturur ve periyodik temizleme goroutine'ini başlatır.
//
// ttl: her entry'nin yaşam süresi.
// cleanupInterval: süresi dolan entry'lerin map'ten fiziksel silinme sıklığı.
// Get zaten süresi dolmuş entry döndürmez; periyodik silme sadece
// bellek büyümesini önler.
func New[K comparable, V any](ttl, cleanupInterval time.Duration) *Cache[K, V] {
	c := &Cache[K, V]{
		entries:     make(map[K]entry[V]),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.evictExpired()
			case <-c.stopCleanup:
				return
			}
		}
	}()

	return c
}

// Get, cache'ten bir değer okur.
// (value, true) — key varsa ve süresi dolmamışsa; (zero, false) aksi halde.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set, cache'e bir değer yazar (TTL ile).
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Invalidate, bir key'i cache'ten düşürür — bir sonraki Get miss olur.
// Key cache'te yoksa no-op; stream, cache'lenmemiş bir sipariş için
// event gönderdiğinde sessizce geçilir.
func (c *Cache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// InvalidateFunc, predicate'in true döndüğü tüm key'leri düşürür.
// Kullanım: admin listesinin tüm sayfalarını tek seferde invalidate etmek
// ("admin:" prefix'i ile eşleşen tüm entry'ler).
func (c *Cache[K, V]) InvalidateFunc(predicate func(key K) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if predicate(key) {
			delete(c.entries, key)
		}
	}
}

// Clear, tüm cache'i boşaltır.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]entry[V])
}

// Len, cache'teki toplam entry sayısını döner (süresi dolmuşlar dahil).
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Close, periyodik temizleme goroutine'ini durdurur.
// Cache artık kullanılmayacaksa çağrılmalıdır (goroutine leak önleme).
func (c *Cache[K, V]) Close() {
	close(c.stopCleanup)
}

// evictExpired, süresi dolan entry'leri map'ten fiziksel olarak siler.
func (c *Cache[K, V]) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
