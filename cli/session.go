package cli

import (
	"context"
	"fmt"

	"github.com/akinalp/lezzet/models"
)

// cmdLogin, oturum başlatır: login <BUYER|SELLER> <email> [token].
// Token, backend'in verdiği opak bearer token'dır; bazı kurulumlarda
// yoktur (anonim BUYER akışı) — o yüzden opsiyonel.
func (c *CLI) cmdLogin(ctx context.Context, args []string) {
	if len(args) < 2 || len(args) > 3 {
		fmt.Fprintln(c.out, "kullanım: login <BUYER|SELLER> <email> [token]")
		return
	}

	token := ""
	if len(args) == 3 {
		token = args[2]
	}

	if err := c.session.Login(ctx, models.Role(args[0]), args[1], token); err != nil {
		c.renderError(ctx, err)
		return
	}
	fmt.Fprintf(c.out, "giriş yapıldı: %s (%s)\n", args[1], args[0])
}

func (c *CLI) cmdLogout(ctx context.Context) {
	if err := c.session.Logout(ctx); err != nil {
		c.renderError(ctx, err)
		return
	}
	fmt.Fprintln(c.out, "çıkış yapıldı")
}

func (c *CLI) cmdWhoami() {
	session := c.session.Current()
	if session == nil {
		fmt.Fprintln(c.out, "oturum yok")
		return
	}
	fmt.Fprintf(c.out, "%s (%s)\n", session.Email, session.Role)
}
