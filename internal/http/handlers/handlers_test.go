package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mlb-splits-service/internal/app/resolver"
	"mlb-splits-service/internal/app/splits"
	"mlb-splits-service/internal/cache"
	"mlb-splits-service/internal/domain"
	"mlb-splits-service/internal/providers"
)

type fakeProvider struct {
	searches map[string][]domain.Person
	person   domain.Person
	splits   map[int]providers.SplitSet
}

func (f *fakeProvider) SearchPeople(ctx context.Context, name string) ([]domain.Person, error) {
	return f.searches[name], nil
}

func (f *fakeProvider) Person(ctx context.Context, personID int) (domain.Person, error) {
	return f.person, nil
}

func (f *fakeProvider) Roster(ctx context.Context, teamID int) ([]domain.Person, error) {
	return nil, nil
}

func (f *fakeProvider) SituationalSplits(ctx context.Context, personID, season int) (providers.SplitSet, error) {
	return f.splits[season], nil
}

func fixedNow() time.Time {
	return time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
}

func newTestHandler(t *testing.T, fp *fakeProvider) (*Handler, cache.Store) {
	t.Helper()
	store := cache.NewMemoryStore()
	res := resolver.New(resolver.Config{
		Provider: fp,
		Store:    store,
		TeamID:   func(string) (int, bool) { return 0, false },
	})
	svc := splits.New(splits.Config{
		Provider: fp,
		Store:    store,
		Now:      fixedNow,
	})
	h := NewHandler(res, svc, store, nil)
	h.now = fixedNow
	return h, store
}

func postMessage(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Messages(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestFetchSplitsHappyPath(t *testing.T) {
	fp := &fakeProvider{
		searches: map[string][]domain.Person{
			"Mike Trout": {{ID: 545361, FullName: "Mike Trout", Active: true}},
		},
		person: domain.Person{ID: 545361, FullName: "Mike Trout", DebutYear: 2024},
		splits: map[int]providers.SplitSet{
			2024: {VsLeft: &domain.StatLine{PlateAppearances: 100, AtBats: 90, Hits: 27}},
			2025: {VsLeft: &domain.StatLine{PlateAppearances: 100, AtBats: 90, Hits: 30}},
		},
	}
	h, _ := newTestHandler(t, fp)

	rec := postMessage(t, h, `{"type":"fetchSplits","payload":{"fullName":"Mike Trout","season":2025}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	if resp["ok"] != true {
		t.Fatalf("ok = %v, want true (resp %v)", resp["ok"], resp)
	}
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("data missing from response: %v", resp)
	}
	if data["internalId"] != float64(545361) {
		t.Errorf("internalId = %v, want 545361", data["internalId"])
	}
	season, _ := data["seasonSplits"].(map[string]any)
	if season["season"] != float64(2025) {
		t.Errorf("seasonSplits.season = %v, want 2025", season["season"])
	}
	career, _ := data["careerSplits"].(map[string]any)
	if career["vsLeft"] == nil || career["vsRight"] == nil {
		t.Errorf("career lines must be present: %v", career)
	}
}

func TestFetchSplitsSeasonDefaultsToCurrentYear(t *testing.T) {
	fp := &fakeProvider{
		searches: map[string][]domain.Person{
			"Mike Trout": {{ID: 545361, FullName: "Mike Trout", Active: true}},
		},
		person: domain.Person{ID: 545361, DebutYear: 2025},
		splits: map[int]providers.SplitSet{
			2025: {VsRight: &domain.StatLine{PlateAppearances: 10, AtBats: 9, Hits: 3}},
		},
	}
	h, _ := newTestHandler(t, fp)

	rec := postMessage(t, h, `{"type":"fetchSplits","payload":{"fullName":"Mike Trout"}}`)
	resp := decodeEnvelope(t, rec)
	if resp["ok"] != true {
		t.Fatalf("ok = %v, want true", resp["ok"])
	}
	data := resp["data"].(map[string]any)
	season := data["seasonSplits"].(map[string]any)
	if season["season"] != float64(2025) {
		t.Errorf("season = %v, want current year 2025", season["season"])
	}
}

func TestFetchSplitsNotFound(t *testing.T) {
	h, _ := newTestHandler(t, &fakeProvider{})

	rec := postMessage(t, h, `{"type":"fetchSplits","payload":{"fullName":"Nobody Nowhere"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (error travels in the envelope)", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp["ok"] != false || resp["error"] != ErrCodeNotFound {
		t.Errorf("resp = %v, want ok=false error=%q", resp, ErrCodeNotFound)
	}
}

func TestFetchSplitsMissingName(t *testing.T) {
	h, _ := newTestHandler(t, &fakeProvider{})

	rec := postMessage(t, h, `{"type":"fetchSplits","payload":{"teamAbbr":"LAA"}}`)
	resp := decodeEnvelope(t, rec)
	if resp["ok"] != false || resp["error"] != ErrCodeMissingName {
		t.Errorf("resp = %v, want ok=false error=%q", resp, ErrCodeMissingName)
	}
}

func TestUnknownMessageType(t *testing.T) {
	h, _ := newTestHandler(t, &fakeProvider{})

	rec := postMessage(t, h, `{"type":"somethingElse"}`)
	resp := decodeEnvelope(t, rec)
	if resp["ok"] != false || resp["error"] != ErrCodeUnknownType {
		t.Errorf("resp = %v, want ok=false error=%q", resp, ErrCodeUnknownType)
	}
}

func TestMalformedBodyIsBadRequest(t *testing.T) {
	h, _ := newTestHandler(t, &fakeProvider{})

	rec := postMessage(t, h, `{"type": nope`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestMessagesRejectsGet(t *testing.T) {
	h, _ := newTestHandler(t, &fakeProvider{})

	req := httptest.NewRequest(http.MethodGet, "/v1/messages", nil)
	rec := httptest.NewRecorder()
	h.Messages(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestClearPlayerCacheDeletesIdentityKeys(t *testing.T) {
	h, store := newTestHandler(t, &fakeProvider{})
	ctx := context.Background()

	idRaw, _ := json.Marshal(545361)
	if err := store.Set(ctx, cache.ExternalIDKey("30836"), idRaw, cache.DefaultTTL); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := store.Set(ctx, cache.NameTeamKey("Mike Trout", "LAA"), idRaw, cache.DefaultTTL); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := postMessage(t, h, `{"type":"clearPlayerCache","payload":{"externalId":"30836","fullName":"Mike Trout","teamAbbr":"LAA"}}`)
	resp := decodeEnvelope(t, rec)
	if resp["ok"] != true {
		t.Fatalf("ok = %v, want true", resp["ok"])
	}

	if _, found, _ := store.Get(ctx, cache.ExternalIDKey("30836")); found {
		t.Error("external id key should have been deleted")
	}
	if _, found, _ := store.Get(ctx, cache.NameTeamKey("Mike Trout", "LAA")); found {
		t.Error("name+team key should have been deleted")
	}
}

func TestClearAllCacheWipesStore(t *testing.T) {
	h, store := newTestHandler(t, &fakeProvider{})
	ctx := context.Background()

	if err := store.Set(ctx, "some-key", json.RawMessage(`1`), cache.DefaultTTL); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := postMessage(t, h, `{"type":"clearAllCache"}`)
	resp := decodeEnvelope(t, rec)
	if resp["ok"] != true || resp["message"] == "" {
		t.Errorf("resp = %v, want ok=true with message", resp)
	}
	if _, found, _ := store.Get(ctx, "some-key"); found {
		t.Error("store should be empty after clearAllCache")
	}
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t, &fakeProvider{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"ok"`)) {
		t.Errorf("body = %s, want status ok", rec.Body.String())
	}
}

func TestReadyRejectsPost(t *testing.T) {
	h, _ := newTestHandler(t, &fakeProvider{})

	req := httptest.NewRequest(http.MethodPost, "/ready", nil)
	rec := httptest.NewRecorder()
	h.Ready(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
