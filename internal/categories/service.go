package categories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tracklet/tracklet/internal/shared"
	"github.com/tracklet/tracklet/internal/viewcache"
)

// Invalidator signals that cached representations of a view path are stale.
// Emission is fire-and-forget: failures are logged and never escalate into
// a mutation failure, the write is already committed by then.
type Invalidator interface {
	Invalidate(ctx context.Context, path string) error
}

// ServiceConfig tunes optional behavior of the mutation service.
type ServiceConfig struct {
	// EnforceOwnership re-checks that the acting user owns the target row
	// before update/delete. Off by default, in which case mutations resolve
	// rows by primary key only.
	EnforceOwnership bool
}

// Service exposes session-scoped category mutations.
type Service struct {
	repo        Repository
	invalidator Invalidator
	logger      *slog.Logger
	cfg         ServiceConfig
}

// NewService constructs a Service.
func NewService(repo Repository, invalidator Invalidator, logger *slog.Logger, cfg ServiceConfig) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, invalidator: invalidator, logger: logger, cfg: cfg}
}

// Create persists a new category owned by ownerID. A nil ownerID means no
// authenticated session: the call short-circuits before any write and
// returns (nil, nil), so an owner-less row can never exist.
func (s *Service) Create(ctx context.Context, ownerID *int64, req CreateCategoryRequest) (*Category, error) {
	if ownerID == nil {
		s.logger.Info("category create skipped, no session identity")
		return nil, nil
	}
	category, err := s.repo.Create(ctx, *ownerID, req.Label, req.Color)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.invalidateProfile(ctx)
	return category, nil
}

// Update changes label and color of the category with the given id. The
// owner is never touched. Ownership against actorID is only checked when
// EnforceOwnership is set.
func (s *Service) Update(ctx context.Context, actorID *int64, id int64, req UpdateCategoryRequest) (*Category, error) {
	if s.cfg.EnforceOwnership {
		if err := s.checkOwnership(ctx, actorID, id); err != nil {
			return nil, err
		}
	}
	category, err := s.repo.Update(ctx, id, req.Label, req.Color)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	s.invalidateProfile(ctx)
	return category, nil
}

// Delete permanently removes the category with the given id.
func (s *Service) Delete(ctx context.Context, actorID *int64, id int64) error {
	if s.cfg.EnforceOwnership {
		if err := s.checkOwnership(ctx, actorID, id); err != nil {
			return err
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}
	s.invalidateProfile(ctx)
	return nil
}

// ListByOwner returns the owner's categories for the profile view.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]Category, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) checkOwnership(ctx context.Context, actorID *int64, id int64) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotFound
		}
		return fmt.Errorf("get category: %w", err)
	}
	if actorID == nil || *actorID != existing.OwnerID {
		return shared.ErrForbidden
	}
	return nil
}

func (s *Service) invalidateProfile(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx, viewcache.ProfilePath); err != nil {
		s.logger.Warn("invalidate profile view", slog.Any("error", err))
	}
}
