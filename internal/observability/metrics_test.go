package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMetricsMiddlewareRecordsRequests(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusTeapot {
		t.Fatalf("middleware must not alter status, got %d", res.Code)
	}

	scrape := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := scrape.Body.String()
	if !strings.Contains(body, "tracklet_http_requests_total") {
		t.Fatalf("expected request counter in scrape output")
	}
	if !strings.Contains(body, `code="418"`) {
		t.Fatalf("expected status label in scrape output, got %s", body)
	}
}

func TestNilMetricsHandler(t *testing.T) {
	var metrics *Metrics
	res := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 from nil metrics, got %d", res.Code)
	}
}
