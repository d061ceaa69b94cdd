package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklet/tracklet/internal/auth"
	"github.com/tracklet/tracklet/internal/shared"
)

type stubRepo struct {
	emails    map[string]bool
	lastName  string
	lastHash  string
	lastEmail string
}

func (s *stubRepo) Create(ctx context.Context, email, name, passwordHash string) (*User, error) {
	if s.emails[email] {
		return nil, shared.ErrDuplicate
	}
	s.lastEmail = email
	s.lastName = name
	s.lastHash = passwordHash
	now := time.Now()
	return &User{ID: 1, Email: email, Name: name, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *stubRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	return nil, shared.ErrNotFound
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "ada@example.com",
		Name:     "Ada Lovelace",
		Password: "super-secret",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotEqual(t, "super-secret", repo.lastHash)
	assert.True(t, auth.VerifyPassword("super-secret", repo.lastHash))
	assert.Equal(t, "Ada Lovelace", repo.lastName)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &stubRepo{emails: map[string]bool{"taken@example.com": true}}
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "super-secret",
	})
	require.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestRegisterDerivesDisplayName(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "grace.hopper@example.com",
		Password: "super-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", repo.lastName)
}
