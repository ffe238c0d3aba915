// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// main.go'daki wire-up'ı modülerleştirmek için bu dosyaya taşındı.
package main

import (
	"database/sql"

	"github.com/akinalp/lezzet/repository"
)

// Repositories, repository instance'larını tutan container struct.
// Ayrı değişkenler yerine tek struct: fonksiyon imzaları temiz kalır,
// yeni repository eklendiğinde sadece burası güncellenir.
type Repositories struct {
	Cart    repository.CartRepository
	History repository.OrderHistoryRepository
	Session repository.SessionRepository
}

// initRepositories, local store bağlantısından repository'leri oluşturur.
// Hepsi aynı *sql.DB'yi paylaşır — sql.DB thread-safe connection pool'dur.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		Cart:    repository.NewSQLiteCartRepo(conn),
		History: repository.NewSQLiteHistoryRepo(conn),
		Session: repository.NewSQLiteSessionRepo(conn),
	}
}
