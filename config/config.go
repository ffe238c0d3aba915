// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — her struct tek bir concern'ü temsil eder.
type Config struct {
	API      APIConfig
	Stream   StreamConfig
	Database DatabaseConfig
	Admin    AdminConfig
}

// APIConfig, harici Order API ayarları.
type APIConfig struct {
	BaseURL string        // Backend base URL (ör: http://localhost:3000)
	Timeout time.Duration // Tek bir HTTP isteğinin max süresi
}

// StreamConfig, gerçek zamanlı sipariş stream'i (WebSocket) ayarları.
type StreamConfig struct {
	URL string // WebSocket endpoint (ör: ws://localhost:3000/ws) — boşsa API URL'den türetilir
}

// DatabaseConfig, local SQLite store ayarları.
// Tarayıcıdaki localStorage'ın karşılığı — sepet, sipariş geçmişi ve
// oturum bu dosyada yaşar, uygulama yeniden başlatılınca korunur.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/lezzet.db)
}

// AdminConfig, admin (SELLER) görünümü ayarları.
type AdminConfig struct {
	PageLimit int // Admin sipariş listesinde sayfa başına kayıt sayısı
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler — dosya yoksa sessizce devam eder.
func Load() (*Config, error) {
	_ = godotenv.Load()

	baseURL := getEnv("API_BASE_URL", "http://localhost:3000")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid API_BASE_URL: %w", err)
	}

	timeoutSec, err := strconv.Atoi(getEnv("API_TIMEOUT_SECONDS", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_TIMEOUT_SECONDS: %w", err)
	}

	pageLimit, err := strconv.Atoi(getEnv("ADMIN_PAGE_LIMIT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_PAGE_LIMIT: %w", err)
	}

	streamURL := getEnv("STREAM_URL", "")
	if streamURL == "" {
		streamURL, err = deriveStreamURL(baseURL)
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: baseURL,
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		Stream: StreamConfig{
			URL: streamURL,
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/lezzet.db"),
		},
		Admin: AdminConfig{
			PageLimit: pageLimit,
		},
	}

	return cfg, nil
}

// deriveStreamURL, API base URL'den WebSocket URL türetir:
// http → ws, https → wss, path /ws.
func deriveStreamURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid API_BASE_URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("cannot derive STREAM_URL from scheme %q", u.Scheme)
	}
	u.Path = "/ws"

	return u.String(), nil
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
