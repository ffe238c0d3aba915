package repository

import (
	"context"

	"github.com/akinalp/lezzet/models"
)

// SessionRepository, local oturum bilgisinin persistence interface'i.
// Load, oturum yoksa veya kayıt bozuksa (nil, nil) döner — hata değil;
// client oturumsuz başlar.
type SessionRepository interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Clear(ctx context.Context) error
}
