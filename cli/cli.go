// Package cli, interaktif terminal arayüzüdür — web client'taki sayfaların
// komut karşılığı. Handler katmanı gibi düşünülebilir: kullanıcı girdisini
// parse eder, service'leri çağırır, sonucu render eder.
//
// Hiçbir hata process'i öldürmez: okuma hataları "tekrar dene" mesajına,
// yetki hataları login akışına düşer (bkz. renderError).
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/akinalp/lezzet/config"
	"github.com/akinalp/lezzet/models"
	"github.com/akinalp/lezzet/pkg"
	"github.com/akinalp/lezzet/services"
)

// CLI, komut döngüsünün bağımlılıklarını taşır.
type CLI struct {
	cfg      *config.Config
	cart     services.CartService
	history  services.OrderHistoryService
	session  services.SessionService
	orders   services.OrderService
	checkout services.CheckoutService

	in  *bufio.Scanner
	out io.Writer
}

// New, constructor.
func New(
	cfg *config.Config,
	cart services.CartService,
	history services.OrderHistoryService,
	session services.SessionService,
	orders services.OrderService,
	checkout services.CheckoutService,
	in io.Reader,
	out io.Writer,
) *CLI {
	return &CLI{
		cfg:      cfg,
		cart:     cart,
		history:  history,
		session:  session,
		orders:   orders,
		checkout: checkout,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run, komut döngüsünü çalıştırır. ctx iptal edilince veya kullanıcı
// quit yazınca döner.
func (c *CLI) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "lezzet — sipariş client'ı. Komutlar için: help")

	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprint(c.out, "> ")
		line, ok := c.readLine()
		if !ok {
			return nil
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			c.printHelp()
		case "menu":
			c.cmdMenu(ctx)
		case "add":
			c.cmdAdd(ctx, args[1:])
		case "qty":
			c.cmdQty(ctx, args[1:])
		case "rm":
			c.cmdRemove(ctx, args[1:])
		case "clear":
			c.cmdClear(ctx)
		case "cart":
			c.cmdCart(ctx)
		case "checkout":
			c.cmdCheckout(ctx)
		case "orders":
			c.cmdOrders(ctx)
		case "watch":
			c.cmdWatch(ctx, args[1:])
		case "login":
			c.cmdLogin(ctx, args[1:])
		case "logout":
			c.cmdLogout(ctx)
		case "whoami":
			c.cmdWhoami()
		case "admin":
			c.cmdAdmin(ctx, args[1:])
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(c.out, "bilinmeyen komut: %s (help yazın)\n", args[0])
		}
	}
}

func (c *CLI) printHelp() {
	fmt.Fprint(c.out, `komutlar:
  menu                         menüyü listele
  add <item-id>                sepete ekle (varsa adet +1)
  qty <item-id> <n>            adedi ayarla (n < 1 satırı siler)
  rm <item-id>                 satırı sil
  clear                        sepeti boşalt
  cart                         sepeti ve tutarı göster
  checkout                     siparişi gönder
  orders                       bu client'ın siparişlerini listele
  watch <order-id>             siparişi canlı takip et (Enter ile çık)
  login <BUYER|SELLER> <email> [token]
  logout / whoami
  admin orders [cursor]        admin sipariş sayfası (SELLER)
  admin status <id> <status>   sipariş durumunu güncelle (SELLER)
  admin watch                  admin feed'ini canlı takip et (SELLER)
  quit
`)
}

func (c *CLI) cmdMenu(ctx context.Context) {
	items, err := c.orders.Menu(ctx)
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	if len(items) == 0 {
		fmt.Fprintln(c.out, "menü boş")
		return
	}
	for _, item := range items {
		fmt.Fprintf(c.out, "  %-24s %8.2f  %s\n", item.ID, item.Price, item.Name)
	}
}

func (c *CLI) cmdAdd(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "kullanım: add <item-id>")
		return
	}
	if err := c.cart.AddItem(ctx, args[0]); err != nil {
		c.renderError(ctx, err)
		return
	}
	fmt.Fprintf(c.out, "sepette %d ürün\n", c.cart.TotalItems())
}

func (c *CLI) cmdQty(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "kullanım: qty <item-id> <n>")
		return
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintln(c.out, "kullanım: qty <item-id> <n>")
		return
	}
	if err := c.cart.UpdateQuantity(ctx, args[0], quantity); err != nil {
		c.renderError(ctx, err)
	}
}

func (c *CLI) cmdRemove(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "kullanım: rm <item-id>")
		return
	}
	if err := c.cart.RemoveItem(ctx, args[0]); err != nil {
		c.renderError(ctx, err)
	}
}

func (c *CLI) cmdClear(ctx context.Context) {
	if err := c.cart.Clear(ctx); err != nil {
		c.renderError(ctx, err)
		return
	}
	fmt.Fprintln(c.out, "sepet boşaltıldı")
}

func (c *CLI) cmdCart(ctx context.Context) {
	lines := c.cart.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(c.out, "sepet boş")
		return
	}

	// Tutar için katalog gerekir; menü çekilemezse sepet yine gösterilir,
	// sadece tutar hesaplanamaz.
	var catalog models.PriceLookup
	if items, err := c.orders.Menu(ctx); err == nil {
		catalog = models.NewCatalog(items)
	}

	for _, line := range lines {
		fmt.Fprintf(c.out, "  %-24s x%d\n", line.MenuItemID, line.Quantity)
	}
	fmt.Fprintf(c.out, "toplam %d ürün", c.cart.TotalItems())
	if catalog != nil {
		fmt.Fprintf(c.out, ", tutar %.2f", c.cart.TotalAmount(catalog))
	}
	fmt.Fprintln(c.out)
}

func (c *CLI) cmdCheckout(ctx context.Context) {
	if c.cart.TotalItems() == 0 {
		fmt.Fprintln(c.out, "sepet boş — önce ürün ekleyin")
		return
	}

	customer := services.CustomerInfo{
		Name:    c.prompt("isim: "),
		Address: c.prompt("adres: "),
		Phone:   c.prompt("telefon: "),
	}
	if session := c.session.Current(); session != nil {
		customer.Email = session.Email
	} else {
		customer.Email = c.prompt("email (opsiyonel): ")
	}

	order, err := c.checkout.Submit(ctx, customer)
	if err != nil {
		// Sepet korunur — kullanıcı düzeltip tekrar deneyebilir.
		c.renderError(ctx, err)
		return
	}

	fmt.Fprintf(c.out, "sipariş alındı: %s (durum: %s, tutar: %.2f)\n",
		order.ID, order.Status, order.TotalAmount)
}

func (c *CLI) cmdOrders(ctx context.Context) {
	// Login'li kullanıcı için sunucudan email'e göre listele;
	// anonim kullanıcı için local geçmişteki ID'ler tek tek çekilir.
	if session := c.session.Current(); session != nil {
		orders, err := c.orders.MyOrders(ctx, session.Email)
		if err != nil {
			c.renderError(ctx, err)
			return
		}
		if len(orders) == 0 {
			fmt.Fprintln(c.out, "sipariş yok")
			return
		}
		for _, order := range orders {
			fmt.Fprintf(c.out, "  %s  %-18s %8.2f\n", order.ID, order.Status, order.TotalAmount)
		}
		return
	}

	ids := c.history.ListOrderIDs()
	if len(ids) == 0 {
		fmt.Fprintln(c.out, "bu client'tan verilmiş sipariş yok")
		return
	}
	for _, id := range ids {
		order, err := c.orders.Order(ctx, id)
		if err != nil {
			fmt.Fprintf(c.out, "  %s  (okunamadı: %v)\n", id, err)
			continue
		}
		fmt.Fprintf(c.out, "  %s  %-18s %8.2f\n", order.ID, order.Status, order.TotalAmount)
	}
}

// readLine, bir satır okur. Input kapandıysa (EOF) ok=false döner.
func (c *CLI) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// prompt, etiket basıp bir satır okur.
func (c *CLI) prompt(label string) string {
	fmt.Fprint(c.out, label)
	line, _ := c.readLine()
	return line
}

// renderError, hatayı kullanıcıya uygun mesaja çevirir.
// 401: oturum artık geçersiz — local oturumu temizle, login'e yönlendir.
// Ağ hataları: tekrar denenebilir mesaj. Hiçbir hata fatal değildir.
func (c *CLI) renderError(ctx context.Context, err error) {
	switch {
	case errors.Is(err, pkg.ErrUnauthorized):
		if logoutErr := c.session.Logout(ctx); logoutErr != nil {
			fmt.Fprintf(c.out, "oturum temizlenemedi: %v\n", logoutErr)
		}
		fmt.Fprintln(c.out, "oturum geçersiz — lütfen tekrar login olun")
	case errors.Is(err, pkg.ErrUnavailable):
		fmt.Fprintf(c.out, "sunucuya ulaşılamadı, tekrar deneyin: %v\n", err)
	case errors.Is(err, pkg.ErrNotFound):
		fmt.Fprintf(c.out, "bulunamadı: %v\n", err)
	default:
		fmt.Fprintf(c.out, "hata: %v\n", err)
	}
}
