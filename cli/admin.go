package cli

import (
	"context"
	"fmt"

	"github.com/akinalp/lezzet/models"
	"github.com/akinalp/lezzet/ws"
)

// cmdAdmin, admin (SELLER) alt komutlarını yönlendirir.
// Role kontrolü UI akışı içindir — asıl yetki backend'de; 401 dönerse
// renderError oturumu düşürür.
func (c *CLI) cmdAdmin(ctx context.Context, args []string) {
	if !c.session.Current().IsSeller() {
		fmt.Fprintln(c.out, "admin komutları SELLER oturumu gerektirir")
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(c.out, "kullanım: admin orders [cursor] | admin status <id> <status> | admin watch")
		return
	}

	switch args[0] {
	case "orders":
		cursor := ""
		if len(args) > 1 {
			cursor = args[1]
		}
		c.cmdAdminOrders(ctx, cursor)
	case "status":
		if len(args) != 3 {
			fmt.Fprintln(c.out, "kullanım: admin status <order-id> <status>")
			return
		}
		c.cmdAdminStatus(ctx, args[1], args[2])
	case "watch":
		c.cmdAdminWatch(ctx)
	default:
		fmt.Fprintf(c.out, "bilinmeyen admin komutu: %s\n", args[0])
	}
}

func (c *CLI) cmdAdminOrders(ctx context.Context, cursor string) {
	page, err := c.orders.AdminOrders(ctx, c.cfg.Admin.PageLimit, cursor)
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	if len(page.Items) == 0 {
		fmt.Fprintln(c.out, "sipariş yok")
		return
	}
	for _, order := range page.Items {
		fmt.Fprintf(c.out, "  %s  %-18s %8.2f  %s\n",
			order.ID, order.Status, order.TotalAmount, order.CustomerName)
	}
	if page.NextCursor != "" {
		fmt.Fprintf(c.out, "devamı için: admin orders %s\n", page.NextCursor)
	}
}

func (c *CLI) cmdAdminStatus(ctx context.Context, orderID, status string) {
	if !models.ValidStatus(status) {
		fmt.Fprintf(c.out, "geçersiz durum: %s (order_received | preparing | out_for_delivery | delivered)\n", status)
		return
	}

	order, err := c.orders.UpdateStatus(ctx, orderID, models.OrderStatus(status))
	if err != nil {
		c.renderError(ctx, err)
		return
	}
	fmt.Fprintf(c.out, "güncellendi: %s → %s\n", order.ID, order.Status)
}

// cmdAdminWatch, global admin feed'ini canlı takip eder.
// Görüntüleme bağlamı: admin listesinin ilk sayfası.
func (c *CLI) cmdAdminWatch(ctx context.Context) {
	c.runWatch(ctx, ws.Scope{Admin: true}, func(watchCtx context.Context) {
		page, err := c.orders.AdminOrders(watchCtx, c.cfg.Admin.PageLimit, "")
		if watchCtx.Err() != nil {
			return
		}
		if err != nil {
			fmt.Fprintf(c.out, "  liste okunamadı: %v\n", err)
			return
		}
		for _, order := range page.Items {
			fmt.Fprintf(c.out, "  %s  %-18s %s\n", order.ID, order.Status, order.CustomerName)
		}
	})
}
