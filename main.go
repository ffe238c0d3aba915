// Package main, lezzet terminal client'ının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Local store'u (SQLite) başlat
//  3. Repository'leri oluştur
//  4. Service'leri oluştur (hydration dahil)
//  5. CLI'ı kur ve çalıştır
//  6. Graceful shutdown
//
// Global değişken YOK — her şey burada oluşturulup birbirine bağlanıyor.
// Canlı takip stream'leri burada açılmaz: her stream bir görüntüleme
// bağlamına aittir ve cli/watch.go o bağlamın ömrüyle birlikte yönetir.
package main

import (
	"context"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/akinalp/lezzet/cli"
	"github.com/akinalp/lezzet/config"
	"github.com/akinalp/lezzet/database"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}

	// ─── 2. Local Store ───
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to load embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		log.Fatalf("[main] failed to initialize local store: %v", err)
	}
	defer db.Close()

	// ─── 6. Graceful Shutdown (ctx burada kurulur, aşağıda kullanılır) ───
	// SIGINT/SIGTERM ctx'i iptal eder: CLI döngüsü, açık watch stream'leri
	// ve havadaki istekler aynı ctx'ten türediği için hepsi birlikte kapanır.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ─── 3 & 4. Repository + Service Katmanları ───
	repos := initRepositories(db.Conn)

	svcs, err := initServices(ctx, cfg, repos)
	if err != nil {
		log.Fatalf("[main] failed to initialize services: %v", err)
	}
	defer svcs.Orders.Close()

	// ─── 5. CLI ───
	app := cli.New(cfg, svcs.Cart, svcs.History, svcs.Session, svcs.Orders, svcs.Checkout, os.Stdin, os.Stdout)

	if err := app.Run(ctx); err != nil {
		log.Fatalf("[main] cli error: %v", err)
	}
}
