package categories

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tracklet/tracklet/internal/platform/httpx"
	"github.com/tracklet/tracklet/internal/shared"
)

// Handler wires the form endpoints used by the profile page.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers category routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Post("/{id}", h.handleUpdate)
	r.Post("/{id}/delete", h.handleDelete)
}

// MountAPIRoutes registers the JSON endpoints used by client-side widgets.
func (h *Handler) MountAPIRoutes(r chi.Router) {
	r.Get("/", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ownerID := shared.CurrentUserID(r.Context())
	if ownerID == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}
	list, err := h.service.ListByOwner(r.Context(), *ownerID)
	if err != nil {
		h.logger.Error("list categories", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Category{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	req := CreateCategoryRequest{
		Label: r.PostFormValue("label"),
		Color: r.PostFormValue("color"),
	}
	if err := h.validator.Struct(req); err != nil {
		h.redirectWithFlash(w, r, "error", "Category label and color are required")
		return
	}

	// The owner id comes from the request boundary, never from inside the
	// service. No session short-circuits the write entirely.
	ownerID := shared.CurrentUserID(r.Context())
	category, err := h.service.Create(r.Context(), ownerID, req)
	if err != nil {
		h.logger.Error("create category", slog.Any("error", err))
		h.redirectWithFlash(w, r, "error", shared.UserSafeMessage(err))
		return
	}
	if category == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	h.redirectWithFlash(w, r, "success", "Category created")
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	req := UpdateCategoryRequest{
		Label: r.PostFormValue("label"),
		Color: r.PostFormValue("color"),
	}
	if err := h.validator.Struct(req); err != nil {
		h.redirectWithFlash(w, r, "error", "Category label and color are required")
		return
	}

	actorID := shared.CurrentUserID(r.Context())
	if _, err := h.service.Update(r.Context(), actorID, id, req); err != nil {
		h.respondMutationError(w, r, err, "update category", id)
		return
	}
	h.redirectWithFlash(w, r, "success", "Category updated")
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	actorID := shared.CurrentUserID(r.Context())
	if err := h.service.Delete(r.Context(), actorID, id); err != nil {
		h.respondMutationError(w, r, err, "delete category", id)
		return
	}
	h.redirectWithFlash(w, r, "success", "Category deleted")
}

func (h *Handler) respondMutationError(w http.ResponseWriter, r *http.Request, err error, op string, id int64) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		h.redirectWithFlash(w, r, "error", shared.UserSafeMessage(shared.ErrNotFound))
	case errors.Is(err, shared.ErrForbidden):
		h.redirectWithFlash(w, r, "error", shared.UserSafeMessage(shared.ErrForbidden))
	default:
		h.logger.Error(op, slog.Any("error", err), slog.Int64("id", id))
		h.redirectWithFlash(w, r, "error", shared.UserSafeMessage(err))
	}
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
