package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/akinalp/lezzet/models"
	"github.com/akinalp/lezzet/pkg"
	"github.com/akinalp/lezzet/repository"
)

// SessionService, local oturum durumunu yönetir.
//
// Role ve email birlikte set edilir, birlikte temizlenir — yarım oturum
// olmaz. Oturum local storage'a persist edilir; uygulama yeniden
// başlatıldığında login durumu korunur.
//
// AccessToken() metodu api.TokenSource interface'ini karşılar — API
// client her isteğinde mevcut token'ı buradan okur.
type SessionService interface {
	// Login, oturumu başlatır ve persist eder.
	// accessToken boş olabilir — backend'in token vermediği anonim akış.
	Login(ctx context.Context, role models.Role, email, accessToken string) error

	// Logout, oturumu bellekten ve storage'dan temizler.
	Logout(ctx context.Context) error

	// Current, mevcut oturumun kopyasını döner; oturum yoksa nil.
	Current() *models.Session

	// AccessToken, mevcut bearer token'ı döner; oturum yoksa boş string.
	AccessToken() string
}

type sessionService struct {
	mu      sync.RWMutex
	session *models.Session
	repo    repository.SessionRepository
}

// NewSessionService, persist edilmiş oturumu hydrate ederek oluşturur.
// Storage'da oturum yoksa (veya bozuksa) oturumsuz başlar.
func NewSessionService(ctx context.Context, repo repository.SessionRepository) (SessionService, error) {
	session, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &sessionService{session: session, repo: repo}, nil
}

func (s *sessionService) Login(ctx context.Context, role models.Role, email, accessToken string) error {
	if role != models.RoleBuyer && role != models.RoleSeller {
		return fmt.Errorf("%w: unknown role %q", pkg.ErrBadRequest, role)
	}
	if email == "" {
		return fmt.Errorf("%w: email is required", pkg.ErrBadRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session := &models.Session{Role: role, Email: email, AccessToken: accessToken}
	if err := s.repo.Save(ctx, session); err != nil {
		return err
	}

	s.session = session
	return nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	return s.repo.Clear(ctx)
}

func (s *sessionService) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}
	copied := *s.session
	return &copied
}

func (s *sessionService) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return ""
	}
	return s.session.AccessToken
}
