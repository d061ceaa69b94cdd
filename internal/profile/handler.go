// Package profile renders the authenticated user's profile page, the sole
// consumer of the cached "/profile" view.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/tracklet/tracklet/internal/categories"
	"github.com/tracklet/tracklet/internal/shared"
	"github.com/tracklet/tracklet/internal/users"
	"github.com/tracklet/tracklet/internal/view"
	"github.com/tracklet/tracklet/internal/viewcache"
)

// PageData is the cached fragment for the profile view.
type PageData struct {
	User       *users.User           `json:"user"`
	Categories []categories.Category `json:"categories"`
}

// Handler renders the profile page.
type Handler struct {
	logger      *slog.Logger
	users       *users.Service
	categories  *categories.Service
	cache       *viewcache.Cache
	templates   *view.Engine
	csrfManager *shared.CSRFManager
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, usersSvc *users.Service, categoriesSvc *categories.Service, cache *viewcache.Cache, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:      logger,
		users:       usersSvc,
		categories:  categoriesSvc,
		cache:       cache,
		templates:   templates,
		csrfManager: csrf,
	}
}

// Show handles GET /profile.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	userID := shared.CurrentUserID(r.Context())
	if userID == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	var page PageData
	cacheKey := fmt.Sprintf("user:%d", *userID)
	err := h.cache.Fetch(r.Context(), viewcache.ProfilePath, cacheKey, &page, func(ctx context.Context) (interface{}, error) {
		return h.loadPage(ctx, *userID)
	})
	if err != nil {
		h.logger.Error("load profile page", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrfManager.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       "Profile",
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        page,
	}
	if err := h.templates.Render(w, "pages/profile.html", viewData); err != nil {
		h.logger.Error("render profile", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) loadPage(ctx context.Context, userID int64) (*PageData, error) {
	var page PageData
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		user, err := h.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		page.User = user
		return nil
	})
	g.Go(func() error {
		list, err := h.categories.ListByOwner(ctx, userID)
		if err != nil {
			return err
		}
		page.Categories = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}
