package cli

import (
	"context"
	"fmt"

	"github.com/akinalp/lezzet/ws"
)

// refreshInvalidator, ws.Invalidator'ı sarar: asıl invalidation'ı
// OrderService'e iletir, ardından watch ekranına "yeniden çiz" sinyali
// gönderir. Cache policy yine OrderService'tedir — burada sadece UI tetiği var.
type refreshInvalidator struct {
	inner   ws.Invalidator
	refresh chan struct{}
}

func (r *refreshInvalidator) signal() {
	// Non-blocking: ekran zaten yenilenecekse ikinci sinyal gereksiz.
	select {
	case r.refresh <- struct{}{}:
	default:
	}
}

func (r *refreshInvalidator) InvalidateOrder(orderID string) {
	r.inner.InvalidateOrder(orderID)
	r.signal()
}

func (r *refreshInvalidator) InvalidateMyOrders() {
	r.inner.InvalidateMyOrders()
}

func (r *refreshInvalidator) InvalidateAdminOrders() {
	r.inner.InvalidateAdminOrders()
	r.signal()
}

// cmdWatch, tek bir siparişi canlı takip eder.
//
// Görüntüleme bağlamı: izlenen sipariş. Bağlam için TEK stream açılır;
// kullanıcı Enter'a basınca (veya ctx iptal olunca) stream'in context'i
// cancel edilir — abonelik bırakılır, bağlantı kapanır ve bu bağlam için
// havada kalan fetch'ler iptal olur. Geç gelen yanıt, terk edilmiş
// bağlamın ekranına asla yazılmaz.
func (c *CLI) cmdWatch(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "kullanım: watch <order-id>")
		return
	}
	orderID := args[0]

	scope := ws.Scope{OrderID: orderID}
	if session := c.session.Current(); session.IsSeller() {
		scope.Admin = true
	}

	c.runWatch(ctx, scope, func(watchCtx context.Context) {
		order, err := c.orders.Order(watchCtx, orderID)
		if watchCtx.Err() != nil {
			return // Bağlam terk edildi — geç yanıtı gösterme
		}
		if err != nil {
			fmt.Fprintf(c.out, "  durum okunamadı: %v\n", err)
			return
		}
		fmt.Fprintf(c.out, "  %s → %s\n", order.ID, order.Status)
	})
}

// runWatch, verilen scope için stream açar ve her invalidation'da render
// çağırır. Enter'a basılınca döner.
func (c *CLI) runWatch(ctx context.Context, scope ws.Scope, render func(context.Context)) {
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	wrapper := &refreshInvalidator{
		inner:   c.orders,
		refresh: make(chan struct{}, 1),
	}

	stream := ws.NewStream(c.streamURL(), scope, wrapper)
	go stream.Run(watchCtx)

	// İlk durum hemen gösterilir, sonrası event'lerle gelir.
	render(watchCtx)
	fmt.Fprintln(c.out, "canlı takip açık — çıkmak için Enter")

	go func() {
		for {
			select {
			case <-wrapper.refresh:
				render(watchCtx)
			case <-watchCtx.Done():
				return
			}
		}
	}()

	// Enter (veya EOF) gelene kadar blokla; defer cancel stream'i kapatır.
	c.readLine()
}

// streamURL, config'teki WebSocket adresini döner.
func (c *CLI) streamURL() string {
	return c.cfg.Stream.URL
}
