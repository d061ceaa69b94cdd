package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionManager(client, "test_session", "secret", time.Hour, false)
}

func TestSessionRoundTrip(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := sess.UserID(); ok {
		t.Fatalf("fresh session must be anonymous")
	}

	sess.SetUserID(42)
	res := httptest.NewRecorder()
	if err := sm.Commit(ctx, res, req, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(&http.Cookie{Name: sm.CookieName(), Value: sess.ID})
	reloaded, err := sm.Load(ctx, next)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	id, ok := reloaded.UserID()
	if !ok || id != 42 {
		t.Fatalf("expected user id 42 after reload, got %d (%v)", id, ok)
	}
}

func TestSessionDestroy(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.SetUserID(1)
	res := httptest.NewRecorder()
	if err := sm.Commit(ctx, res, req, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}

	sm.Destroy(sess)
	res = httptest.NewRecorder()
	if err := sm.Commit(ctx, res, req, sess); err != nil {
		t.Fatalf("commit destroy: %v", err)
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(&http.Cookie{Name: sm.CookieName(), Value: sess.ID})
	reloaded, err := sm.Load(ctx, next)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, ok := reloaded.UserID(); ok {
		t.Fatalf("destroyed session must not retain a user id")
	}
}

func TestSessionFlashDrainsOnce(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.AddFlash(FlashMessage{Kind: "success", Message: "hello"})

	flash := sess.PopFlash()
	if flash == nil || flash.Message != "hello" {
		t.Fatalf("expected queued flash, got %v", flash)
	}
	if sess.PopFlash() != nil {
		t.Fatalf("flash must drain after one pop")
	}
}

func TestCurrentUserID(t *testing.T) {
	if got := CurrentUserID(context.Background()); got != nil {
		t.Fatalf("no session in context: want nil, got %v", got)
	}

	sess := &Session{}
	ctx := ContextWithSession(context.Background(), sess)
	if got := CurrentUserID(ctx); got != nil {
		t.Fatalf("anonymous session: want nil, got %v", got)
	}

	sess.SetUserID(9)
	got := CurrentUserID(ctx)
	if got == nil || *got != 9 {
		t.Fatalf("want 9, got %v", got)
	}
}
