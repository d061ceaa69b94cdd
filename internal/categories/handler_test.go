package categories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tracklet/tracklet/internal/shared"
	_ "github.com/tracklet/tracklet/testing"
)

func newTestRouter(h *Handler, sess *shared.Session) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()
			if sess != nil {
				ctx = shared.ContextWithSession(ctx, sess)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Route("/categories", h.MountRoutes)
	r.Route("/api/categories", h.MountAPIRoutes)
	return r
}

func postForm(t *testing.T, router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func authedSession(id int64) *shared.Session {
	sess := &shared.Session{}
	sess.SetUserID(id)
	return sess
}

func TestHandleCreateWithoutSessionRedirectsToLogin(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingInvalidator{}, ServiceConfig{})
	router := newTestRouter(NewHandler(nil, svc), &shared.Session{})

	form := url.Values{"label": {"Work"}, "color": {"#ff0000"}}
	res := postForm(t, router, "/categories", form)

	if res.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", res.Code)
	}
	if loc := res.Header().Get("Location"); loc != "/auth/login" {
		t.Fatalf("expected redirect to login, got %q", loc)
	}
	if repo.creates != 0 {
		t.Fatalf("no row may be created without a session, got %d", repo.creates)
	}
}

func TestHandleCreateWithSession(t *testing.T) {
	repo := newFakeRepo()
	inv := &recordingInvalidator{}
	svc := newTestService(repo, inv, ServiceConfig{})
	router := newTestRouter(NewHandler(nil, svc), authedSession(42))

	form := url.Values{"label": {"Work"}, "color": {"#ff0000"}}
	res := postForm(t, router, "/categories", form)

	if res.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", res.Code)
	}
	if loc := res.Header().Get("Location"); loc != "/profile" {
		t.Fatalf("expected redirect to profile, got %q", loc)
	}
	if repo.creates != 1 {
		t.Fatalf("expected one created row, got %d", repo.creates)
	}
	if len(inv.paths) != 1 {
		t.Fatalf("expected one invalidation, got %v", inv.paths)
	}
}

func TestHandleCreateRejectsInvalidColor(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingInvalidator{}, ServiceConfig{})
	router := newTestRouter(NewHandler(nil, svc), authedSession(42))

	form := url.Values{"label": {"Work"}, "color": {"red"}}
	res := postForm(t, router, "/categories", form)

	if res.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", res.Code)
	}
	if repo.creates != 0 {
		t.Fatalf("invalid form must not reach the repository, got %d creates", repo.creates)
	}
}

func TestHandleUpdateMissingRow(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingInvalidator{}, ServiceConfig{})
	sess := authedSession(42)
	router := newTestRouter(NewHandler(nil, svc), sess)

	form := url.Values{"label": {"Work"}, "color": {"#ff0000"}}
	res := postForm(t, router, "/categories/999", form)

	if res.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect with flash, got %d", res.Code)
	}
	flash := sess.PopFlash()
	if flash == nil || flash.Kind != "error" {
		t.Fatalf("expected error flash, got %v", flash)
	}
}

func TestHandleDeleteRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingInvalidator{}, ServiceConfig{})
	sess := authedSession(42)
	router := newTestRouter(NewHandler(nil, svc), sess)

	created, err := svc.Create(context.Background(), int64ptr(42), CreateCategoryRequest{Label: "Work", Color: "#ff0000"})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}

	res := postForm(t, router, "/categories/1/delete", url.Values{})
	if res.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", res.Code)
	}
	if _, err := repo.Get(context.Background(), created.ID); err == nil {
		t.Fatalf("expected row removed")
	}
}

func TestAPIListRequiresSession(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingInvalidator{}, ServiceConfig{})
	router := newTestRouter(NewHandler(nil, svc), &shared.Session{})

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", res.Code)
	}
}

func TestAPIListReturnsOwnerRows(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingInvalidator{}, ServiceConfig{})
	router := newTestRouter(NewHandler(nil, svc), authedSession(42))

	if _, err := svc.Create(context.Background(), int64ptr(42), CreateCategoryRequest{Label: "Work", Color: "#ff0000"}); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	if _, err := svc.Create(context.Background(), int64ptr(7), CreateCategoryRequest{Label: "Other", Color: "#00ff00"}); err != nil {
		t.Fatalf("seed category: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var list []Category
	if err := json.Unmarshal(res.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(list) != 1 || list[0].Label != "Work" {
		t.Fatalf("expected only the owner's rows, got %+v", list)
	}
}
