package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newLimitedRouter(rl *rateLimiter, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(rl.middleware())
	r.GET("/ping", handler)
	return r
}

func doGet(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterCapsRequests(t *testing.T) {
	rl := newRateLimiter(3, time.Minute)
	r := newLimitedRouter(rl, func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		if w := doGet(r); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, w.Code)
		}
	}

	w := doGet(r)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("over-limit status = %d, want 429", w.Code)
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := newRateLimiter(1, time.Millisecond)
	r := newLimitedRouter(rl, func(c *gin.Context) { c.Status(http.StatusOK) })

	if w := doGet(r); w.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", w.Code)
	}

	time.Sleep(5 * time.Millisecond)

	if w := doGet(r); w.Code != http.StatusOK {
		t.Errorf("post-window status = %d, want 200", w.Code)
	}
}

// Two requests park inside the handler at the same time. If the limiter held
// its lock across the handler chain the second request could never arrive and
// the barrier would time out.
func TestRateLimiterAllowsConcurrentHandlers(t *testing.T) {
	rl := newRateLimiter(10, time.Minute)

	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	r := newLimitedRouter(rl, func(c *gin.Context) {
		entered <- struct{}{}
		<-release
		c.Status(http.StatusOK)
	})

	done := make(chan struct{}, 2)
	for i := 0; i < 2; i++ {
		go func() {
			doGet(r)
			done <- struct{}{}
		}()
	}

	for i := 0; i < 2; i++ {
		select {
		case <-entered:
		case <-time.After(2 * time.Second):
			t.Fatal("handlers did not run concurrently; limiter lock held across the chain")
		}
	}

	close(release)
	for i := 0; i < 2; i++ {
		<-done
	}
}
