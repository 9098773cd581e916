package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ferdiebergado/hireloop/internal/middleware"
)

func TestSafeResponseWriter(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	w := middleware.NewSafeResponseWriter(context.Background(), rec)

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)
	n, err := w.Write([]byte("created"))
	if err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusCreated || w.Status() != http.StatusCreated {
		t.Errorf("status = %d/%d, want: %d", rec.Code, w.Status(), http.StatusCreated)
	}

	if n != 7 || w.BytesWritten() != 7 {
		t.Errorf("bytes = %d/%d, want: 7", n, w.BytesWritten())
	}
}

func TestSafeResponseWriter_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := httptest.NewRecorder()
	w := middleware.NewSafeResponseWriter(ctx, rec)

	if _, err := w.Write([]byte("late")); err == nil {
		t.Error("w.Write() after cancel = nil error, want: context error")
	}

	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}

type observation struct {
	method string
	status int
}

type recordingObserver struct {
	got []observation
}

func (o *recordingObserver) ObserveRequest(method string, status int, _ time.Duration) {
	o.got = append(o.got, observation{method, status})
}

func TestInstrument(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	chain := middleware.InjectWriter(middleware.Instrument(obs)(middleware.LogRequest(handler)))
	chain.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/jobs", http.NoBody))

	if len(obs.got) != 1 || obs.got[0] != (observation{http.MethodPost, http.StatusTeapot}) {
		t.Errorf("observations = %+v, want one POST 418", obs.got)
	}
}
