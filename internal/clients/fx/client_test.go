package fx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUSDINRPrimary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"rates":{"INR":83.25,"EUR":0.92}}`)
	}))
	defer srv.Close()

	client := NewClient(WithURLs(srv.URL, "http://127.0.0.1:1/unreachable"))

	assert.Equal(t, 83.25, client.GetUSDINR(context.Background()))
}

func TestGetUSDINRSecondaryFallback(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer primary.Close()

	secondary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"rates":{"INR":84.10}}`)
	}))
	defer secondary.Close()

	client := NewClient(WithURLs(primary.URL, secondary.URL))

	assert.Equal(t, 84.10, client.GetUSDINR(context.Background()))
}

func TestGetUSDINRStaticFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(WithURLs(srv.URL, srv.URL), WithFallbackRate(87.80))

	assert.Equal(t, 87.80, client.GetUSDINR(context.Background()))
}

func TestGetUSDINRCachesResult(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"rates":{"INR":83.0}}`)
	}))
	defer srv.Close()

	client := NewClient(WithURLs(srv.URL, srv.URL))

	client.GetUSDINR(context.Background())
	client.GetUSDINR(context.Background())

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
