package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"scalar/internal/catalog"
	"scalar/internal/config"
	"scalar/internal/session"
	"scalar/internal/share"
	"scalar/internal/store"
)

type memStore struct {
	slots   map[string]store.SlotRecord
	meta    map[string]store.DailyMeta
	results []store.ResultRecord
}

func newMemStore() *memStore {
	return &memStore{
		slots: make(map[string]store.SlotRecord),
		meta:  make(map[string]store.DailyMeta),
	}
}

func (s *memStore) Close(ctx context.Context) error        { return nil }
func (s *memStore) EnsureSchema(ctx context.Context) error { return nil }

func (s *memStore) GetSlot(ctx context.Context, mode, category string) (*store.SlotRecord, error) {
	record, ok := s.slots[mode+"/"+category]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *memStore) SaveSlot(ctx context.Context, slot store.SlotRecord) error {
	s.slots[slot.Mode+"/"+slot.Category] = slot
	return nil
}

func (s *memStore) DeleteSlot(ctx context.Context, mode, category string) error {
	delete(s.slots, mode+"/"+category)
	return nil
}

func (s *memStore) GetDailyMeta(ctx context.Context, category string) (*store.DailyMeta, error) {
	meta, ok := s.meta[category]
	if !ok {
		return nil, nil
	}
	return &meta, nil
}

func (s *memStore) SaveDailyMeta(ctx context.Context, meta store.DailyMeta) error {
	s.meta[meta.Category] = meta
	return nil
}

func (s *memStore) RecordResult(ctx context.Context, result store.ResultRecord) error {
	s.results = append(s.results, result)
	return nil
}

func (s *memStore) ListResults(ctx context.Context, category string, limit int) ([]store.ResultRecord, error) {
	return s.results, nil
}

func (s *memStore) Stats(ctx context.Context, category string) (*store.Stats, error) {
	return &store.Stats{Played: len(s.results)}, nil
}

const testSchemaYAML = `version: 1
categories:
  - name: countries
    icon: "🌍"
    entities: countries.json
    par: 4
    fields:
      - key: name
        label: Country
        data_type: STRING
        logic_type: TARGET
        display_format: HIDDEN
      - key: continent
        label: Continent
        data_type: STRING
        logic_type: CATEGORY_MATCH
        display_format: TEXT
      - key: population
        label: Population
        data_type: INT
        logic_type: HIGHER_LOWER
        display_format: PERCENTAGE_DIFF
`

const testEntitiesJSON = `[
	{"id": "swe", "name": "Sweden", "continent": "Europe", "population": 10500000},
	{"id": "nor", "name": "Norway", "continent": "Europe", "population": 5500000},
	{"id": "jpn", "name": "Japan", "continent": "Asia", "population": 125000000}
]`

type harness struct {
	server  *Server
	manager *session.Manager
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.yaml")
	if err := os.WriteFile(schemaPath, []byte(testSchemaYAML), 0o644); err != nil {
		t.Fatalf("writing schema: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "countries.json"), []byte(testEntitiesJSON), 0o644); err != nil {
		t.Fatalf("writing entities: %v", err)
	}

	schema, err := config.LoadGameSchema(schemaPath)
	if err != nil {
		t.Fatalf("loading schema: %v", err)
	}
	cat, err := catalog.Load(schema, dir)
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	cfg := &config.ProjectConfig{
		Server: config.ServerConfig{Addr: ":0", BaseURL: "https://scalar.example"},
		Game:   config.GameConfig{Credits: 3, HintMoveCost: 3},
	}
	manager := session.New(cat, newMemStore(), cfg)
	return &harness{
		server:  New(manager, cat, cfg, zerolog.Nop()),
		manager: manager,
	}
}

func (h *harness) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec, req)

	var parsed map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("parsing response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, parsed
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	rec, body := h.do(t, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("got %d %v", rec.Code, body)
	}
}

func TestListCategories(t *testing.T) {
	h := newHarness(t)
	rec, body := h.do(t, http.MethodGet, "/api/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}
	categories := body["categories"].([]any)
	if len(categories) != 1 {
		t.Fatalf("expected one category, got %v", categories)
	}
	first := categories[0].(map[string]any)
	if first["name"] != "countries" || first["par"] != float64(4) {
		t.Fatalf("unexpected category: %v", first)
	}
}

func TestCategorySchema(t *testing.T) {
	h := newHarness(t)

	t.Run("known category", func(t *testing.T) {
		rec, body := h.do(t, http.MethodGet, "/api/categories/countries/schema", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d", rec.Code)
		}
		fields := body["fields"].([]any)
		// The HIDDEN name field is not a display column.
		if len(fields) != 2 {
			t.Fatalf("expected 2 display fields, got %v", fields)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		rec, _ := h.do(t, http.MethodGet, "/api/categories/planets/schema", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("got %d", rec.Code)
		}
	})
}

func TestSuggest(t *testing.T) {
	h := newHarness(t)
	rec, body := h.do(t, http.MethodGet, "/api/categories/countries/suggest?q=nor", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}
	suggestions := body["suggestions"].([]any)
	if len(suggestions) != 1 {
		t.Fatalf("expected one suggestion, got %v", suggestions)
	}
	if suggestions[0].(map[string]any)["id"] != "nor" {
		t.Fatalf("unexpected suggestion: %v", suggestions[0])
	}
}

func TestDailyPuzzleHidesTarget(t *testing.T) {
	h := newHarness(t)
	rec, body := h.do(t, http.MethodGet, "/api/daily/countries", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d: %v", rec.Code, body)
	}
	slot := body["slot"].(map[string]any)
	if slot["status"] != "PLAYING" {
		t.Fatalf("unexpected status: %v", slot["status"])
	}
	if _, exposed := slot["target"]; exposed {
		t.Fatalf("target must stay hidden while playing: %v", slot)
	}
	if body["puzzleNumber"] == nil {
		t.Fatalf("missing puzzle number: %v", body)
	}
}

func TestGuessFlow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	slot, err := h.manager.DailySlot(ctx, "countries")
	if err != nil {
		t.Fatalf("daily slot: %v", err)
	}

	t.Run("solving guess reveals the target", func(t *testing.T) {
		rec, body := h.do(t, http.MethodPost, "/api/game/daily/countries/guess",
			`{"guess": "`+slot.Target.ID+`"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d: %v", rec.Code, body)
		}
		view := body["slot"].(map[string]any)
		if view["status"] != "SOLVED" {
			t.Fatalf("unexpected status: %v", view["status"])
		}
		target := view["target"].(map[string]any)
		if target["id"] != slot.Target.ID {
			t.Fatalf("unexpected target: %v", target)
		}
	})

	t.Run("second guess conflicts", func(t *testing.T) {
		rec, _ := h.do(t, http.MethodPost, "/api/game/daily/countries/guess", `{"guess": "nor"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("got %d", rec.Code)
		}
	})

	t.Run("share text is available once finished", func(t *testing.T) {
		rec, body := h.do(t, http.MethodGet, "/api/game/daily/countries/share", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d: %v", rec.Code, body)
		}
		text := body["text"].(string)
		if !strings.Contains(text, "SCALAR Daily") || !strings.Contains(text, "🟩") {
			t.Fatalf("unexpected share text: %q", text)
		}
	})
}

func TestGuessValidation(t *testing.T) {
	h := newHarness(t)

	t.Run("bad mode", func(t *testing.T) {
		rec, _ := h.do(t, http.MethodPost, "/api/game/weekly/countries/guess", `{"guess": "swe"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("got %d", rec.Code)
		}
	})

	t.Run("missing body", func(t *testing.T) {
		rec, _ := h.do(t, http.MethodPost, "/api/game/daily/countries/guess", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("got %d", rec.Code)
		}
	})

	t.Run("unknown entity", func(t *testing.T) {
		rec, _ := h.do(t, http.MethodPost, "/api/game/daily/countries/guess", `{"guess": "atlantis"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("got %d", rec.Code)
		}
	})
}

func TestHintAndReveal(t *testing.T) {
	h := newHarness(t)

	t.Run("hint spends a credit and exposes the value", func(t *testing.T) {
		rec, body := h.do(t, http.MethodPost, "/api/game/freeplay/countries/hint", `{"keys": ["continent"]}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d: %v", rec.Code, body)
		}
		slot := body["slot"].(map[string]any)
		if slot["credits"] != float64(2) {
			t.Fatalf("unexpected credits: %v", slot["credits"])
		}
		hints := slot["hints"].(map[string]any)
		if hints["continent"] == "" {
			t.Fatalf("missing hint value: %v", hints)
		}
	})

	t.Run("reveal forfeits", func(t *testing.T) {
		rec, body := h.do(t, http.MethodPost, "/api/game/freeplay/countries/reveal", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d: %v", rec.Code, body)
		}
		slot := body["slot"].(map[string]any)
		if slot["status"] != "REVEALED" {
			t.Fatalf("unexpected status: %v", slot["status"])
		}
	})

	t.Run("daily reset is rejected", func(t *testing.T) {
		rec, _ := h.do(t, http.MethodPost, "/api/game/daily/countries/reset", "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("got %d", rec.Code)
		}
	})

	t.Run("freeplay reset deals again", func(t *testing.T) {
		rec, body := h.do(t, http.MethodPost, "/api/game/freeplay/countries/reset", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d: %v", rec.Code, body)
		}
		slot := body["slot"].(map[string]any)
		if slot["status"] != "PLAYING" || slot["credits"] != float64(3) {
			t.Fatalf("unexpected slot: %v", slot)
		}
	})
}

func TestChallenge(t *testing.T) {
	h := newHarness(t)
	token := url.QueryEscape(share.EncodeChallenge("countries", "jpn", 5))

	t.Run("decode", func(t *testing.T) {
		rec, body := h.do(t, http.MethodGet, "/api/challenge?token="+token, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d: %v", rec.Code, body)
		}
		if body["challengerMoves"] != float64(5) {
			t.Fatalf("unexpected moves: %v", body)
		}
		entity := body["entity"].(map[string]any)
		if entity["id"] != "jpn" {
			t.Fatalf("unexpected entity: %v", entity)
		}
	})

	t.Run("start", func(t *testing.T) {
		rec, body := h.do(t, http.MethodPost, "/api/challenge/start?token="+token, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d: %v", rec.Code, body)
		}
		slot := body["slot"].(map[string]any)
		if slot["mode"] != "freeplay" || slot["status"] != "PLAYING" {
			t.Fatalf("unexpected slot: %v", slot)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		rec, _ := h.do(t, http.MethodGet, "/api/challenge?token=not-a-token", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("got %d", rec.Code)
		}
	})
}
