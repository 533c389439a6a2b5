package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"mlb-splits-service/internal/config"
	"mlb-splits-service/internal/domain"
	"mlb-splits-service/internal/providers"
)

type stubProvider struct {
	people map[string][]domain.Person
	splits map[int]providers.SplitSet
}

func (s *stubProvider) SearchPeople(ctx context.Context, name string) ([]domain.Person, error) {
	return s.people[name], nil
}

func (s *stubProvider) Person(ctx context.Context, personID int) (domain.Person, error) {
	return domain.Person{ID: personID, DebutYear: time.Now().Year()}, nil
}

func (s *stubProvider) Roster(ctx context.Context, teamID int) ([]domain.Person, error) {
	return nil, nil
}

func (s *stubProvider) SituationalSplits(ctx context.Context, personID, season int) (providers.SplitSet, error) {
	return s.splits[season], nil
}

type stubHTTPServer struct {
	addr          string
	handler       http.Handler
	listenCalls   int
	shutdownCalls int
	listenErr     error
	shutdownErr   error
}

func (s *stubHTTPServer) ListenAndServe() error {
	s.listenCalls++
	return s.listenErr
}

func (s *stubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.shutdownCalls++
	return s.shutdownErr
}

func (s *stubHTTPServer) Addr() string {
	return s.addr
}

func (s *stubHTTPServer) Handler() http.Handler {
	return s.handler
}

type blockingHTTPServer struct {
	shutdownCalls int
	unblock       chan struct{}
}

func (s *blockingHTTPServer) ListenAndServe() error {
	return nil
}

func (s *blockingHTTPServer) Shutdown(ctx context.Context) error {
	s.shutdownCalls++
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.unblock:
		return nil
	}
}

func (s *blockingHTTPServer) Addr() string {
	return ":0"
}

func (s *blockingHTTPServer) Handler() http.Handler {
	return http.NewServeMux()
}

func testConfig() config.Config {
	return config.Config{
		Port: "0",
		Cache: config.CacheConfig{
			Backend: config.CacheBackendMemory,
			TTL:     time.Hour,
		},
		Metrics: config.MetricsConfig{Enabled: false},
	}
}

func TestServerServesHealthAndMessages(t *testing.T) {
	year := time.Now().Year()
	provider := &stubProvider{
		people: map[string][]domain.Person{
			"Mike Trout": {{ID: 545361, FullName: "Mike Trout", Active: true}},
		},
		splits: map[int]providers.SplitSet{
			year: {VsLeft: &domain.StatLine{PlateAppearances: 10, AtBats: 9, Hits: 3}},
		},
	}

	srv := newServerWithProvider(testConfig(), nil, provider)
	router := srv.Handler()

	healthReq := httptest.NewRequest(http.MethodGet, "/health", nil)
	healthRec := httptest.NewRecorder()
	router.ServeHTTP(healthRec, healthReq)

	if healthRec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", healthRec.Code)
	}

	body := `{"type":"fetchSplits","payload":{"fullName":"Mike Trout"}}`
	msgReq := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(body))
	msgRec := httptest.NewRecorder()
	router.ServeHTTP(msgRec, msgReq)

	if msgRec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /v1/messages, got %d", msgRec.Code)
	}

	var resp struct {
		OK   bool `json:"ok"`
		Data struct {
			InternalID int `json:"internalId"`
		} `json:"data"`
	}
	if err := json.NewDecoder(msgRec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode messages response: %v", err)
	}
	if !resp.OK {
		t.Fatalf("expected ok response, got %+v", resp)
	}
	if resp.Data.InternalID != 545361 {
		t.Fatalf("unexpected internal id %d", resp.Data.InternalID)
	}
}

func TestNewConstructsServer(t *testing.T) {
	srv := New(testConfig(), nil)
	if srv == nil || srv.Handler() == nil {
		t.Fatalf("expected server with handler")
	}
}

func TestBuildStoreBackends(t *testing.T) {
	memStore, closer := buildStore(config.CacheConfig{Backend: config.CacheBackendMemory}, nil)
	if memStore == nil || closer != nil {
		t.Fatalf("expected memory store with no closer")
	}

	fileStore, closer := buildStore(config.CacheConfig{Backend: config.CacheBackendFile, Path: t.TempDir() + "/cache.json"}, nil)
	if fileStore == nil || closer != nil {
		t.Fatalf("expected file store with no closer")
	}

	redisStore, closer := buildStore(config.CacheConfig{Backend: config.CacheBackendRedis, RedisAddr: "localhost:0"}, nil)
	if redisStore == nil || closer == nil {
		t.Fatalf("expected redis store with closer")
	}
	if err := closer(); err != nil {
		t.Fatalf("closing unused redis client: %v", err)
	}

	fallback, closer := buildStore(config.CacheConfig{Backend: "bogus"}, nil)
	if fallback == nil || closer != nil {
		t.Fatalf("expected memory fallback on unknown backend")
	}
}

func TestGracefulShutdownCallsShutdown(t *testing.T) {
	httpSrv := &stubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv)
	srv.gracefulShutdown()

	if httpSrv.shutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.shutdownCalls)
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	blocking := &blockingHTTPServer{unblock: make(chan struct{})}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, blocking)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.shutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.shutdownCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

type errHTTPServer struct {
	shutdownCalls int
}

func (e *errHTTPServer) ListenAndServe() error {
	return errors.New("listen failure")
}

func (e *errHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	e.shutdownCalls++
	return nil
}

func (e *errHTTPServer) Addr() string {
	return ":0"
}

func (e *errHTTPServer) Handler() http.Handler {
	return http.NewServeMux()
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	httpSrv := &errHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv)

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

type closeableHTTPServer struct {
	shutdownCalls int
}

func (c *closeableHTTPServer) ListenAndServe() error {
	return http.ErrServerClosed
}

func (c *closeableHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	c.shutdownCalls++
	return nil
}

func (c *closeableHTTPServer) Addr() string {
	return ":0"
}

func (c *closeableHTTPServer) Handler() http.Handler {
	return http.NewServeMux()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpSrv := &closeableHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	// Let the server goroutine spin up.
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if httpSrv.shutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.shutdownCalls)
	}
}
