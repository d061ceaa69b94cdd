package users

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tracklet/tracklet/internal/auth"
)

var titleCaser = cases.Title(language.English)

// Service wraps account registration rules.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register hashes the password and stores a new account. A duplicate email
// surfaces as shared.ErrDuplicate from the repository.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = defaultDisplayName(req.Email)
	}
	user, err := s.repo.Create(ctx, req.Email, name, hash)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID fetches an account by its primary key.
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// defaultDisplayName derives a presentable name from the email local part.
func defaultDisplayName(email string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		local = email[:at]
	}
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
	return titleCaser.String(local)
}
