package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tracklet/tracklet/internal/shared"
	"github.com/tracklet/tracklet/internal/view"
)

// Handler wires the signup endpoints.
type Handler struct {
	logger      *slog.Logger
	service     *Service
	templates   *view.Engine
	csrfManager *shared.CSRFManager
	validator   *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:      logger,
		service:     service,
		templates:   templates,
		csrfManager: csrf,
		validator:   validator.New(),
	}
}

// MountRoutes registers signup routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showSignup)
	r.Post("/", h.handleSignup)
}

type signupPageData struct {
	Form   RegisterRequest
	Errors map[string]string
}

func (h *Handler) showSignup(w http.ResponseWriter, r *http.Request) {
	h.renderSignup(w, r, signupPageData{}, http.StatusOK)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := RegisterRequest{
		Email:    r.PostFormValue("email"),
		Name:     r.PostFormValue("name"),
		Password: r.PostFormValue("password"),
	}

	formErrors := map[string]string{}
	if err := h.validator.Struct(form); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			for _, fieldErr := range invalid {
				switch fieldErr.Field() {
				case "Email":
					formErrors["email"] = "A valid email address is required"
				case "Password":
					formErrors["password"] = "Password must be at least 8 characters"
				default:
					formErrors["general"] = "Please check the form and try again"
				}
			}
		} else {
			formErrors["general"] = "Please check the form and try again"
		}
	}

	if len(formErrors) == 0 {
		if _, err := h.service.Register(r.Context(), form); err != nil {
			if errors.Is(err, shared.ErrDuplicate) {
				formErrors["email"] = "An account with that email already exists"
			} else {
				h.logger.Error("register user", slog.Any("error", err))
				formErrors["general"] = shared.UserSafeMessage(err)
			}
		} else {
			if sess := shared.SessionFromContext(r.Context()); sess != nil {
				sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Account created, please log in"})
			}
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return
		}
	}

	form.Password = ""
	h.renderSignup(w, r, signupPageData{Form: form, Errors: formErrors}, http.StatusBadRequest)
}

func (h *Handler) renderSignup(w http.ResponseWriter, r *http.Request, data signupPageData, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrfManager.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       "Sign up",
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := h.templates.Render(w, "pages/signup.html", viewData); err != nil {
		h.logger.Error("render signup", slog.Any("error", err))
		if status == http.StatusOK {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}
