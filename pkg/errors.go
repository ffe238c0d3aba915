// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// errors.New() ile sabit error değişkenleri tanımlarız; karşılaştırma
// string yerine errors.Is() ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
package pkg

import "errors"

// Domain-level error'lar.
// api katmanı HTTP status code'larını bu error'lara map'ler,
// service ve cli katmanları errors.Is() ile yakalar.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrUnavailable  = errors.New("service unavailable") // Ağ hatası veya 5xx — tekrar denenebilir
	ErrInternal     = errors.New("internal error")
)
