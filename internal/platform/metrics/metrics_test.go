package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ferdiebergado/hireloop/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegistry_Handler(t *testing.T) {
	t.Parallel()

	reg := metrics.NewRegistry()
	reg.ObserveRequest(http.MethodGet, http.StatusOK, 12*time.Millisecond)
	reg.ObserveRequest(http.MethodGet, http.StatusOK, 8*time.Millisecond)
	reg.ObserveDelivery("delivered")
	reg.ObserveInbound("linkedin", "duplicate")
	reg.ObserveSearch(40 * time.Millisecond)
	reg.ObserveRateLimited()

	srv := httptest.NewServer(reg.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		`hireloop_http_requests_total{code="200",method="GET"} 2`,
		`hireloop_webhook_deliveries_total{outcome="delivered"} 1`,
		`hireloop_inbound_webhooks_total{outcome="duplicate",source="linkedin"} 1`,
		`hireloop_candidate_search_duration_seconds_count 1`,
		`hireloop_api_key_rate_limited_total 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestRegistry_Isolated(t *testing.T) {
	t.Parallel()

	a, b := metrics.NewRegistry(), metrics.NewRegistry()
	a.ObserveDelivery("failed")

	count, err := testutil.GatherAndCount(b.Gatherer(), "hireloop_webhook_deliveries_total")
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("second registry has %d delivery series, want: 0", count)
	}
}
