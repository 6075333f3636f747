// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/polycanvas/models"
	"github.com/danielhkuo/polycanvas/service"
	"github.com/danielhkuo/polycanvas/store"
	"github.com/danielhkuo/polycanvas/testutil"
)

// repositories returns one of each store the server can run on.
func repositories(t *testing.T) map[string]store.Repository {
	t.Helper()
	file := store.NewFileStore(filepath.Join(t.TempDir(), "polygons.json"))
	return map[string]store.Repository{
		"sql":           store.NewSQLStore(testutil.SetupTestDB(t)),
		"file":          file,
		"file fallback": store.NewFallbackStore(nil, store.NewFileStore(filepath.Join(t.TempDir(), "fallback.json"))),
	}
}

// TestConcurrentCreates verifies that simultaneous creates all land exactly
// once with distinct ids.
func TestConcurrentCreates(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			h := NewPolygonHandler(service.NewPolygonService(repo, 0), testutil.GetTestConfig(t), nil)

			const creators = 20
			var successCount atomic.Int32
			var wg sync.WaitGroup
			ids := make([]string, creators)

			for i := 0; i < creators; i++ {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()

					req := testutil.MakeRequest("POST", "/api/polygons", models.CreatePolygonRequest{
						Name:   fmt.Sprintf("Concurrent %d", idx),
						Points: testutil.Square(float64(idx*10), 0, 5),
					}, nil)
					w := httptest.NewRecorder()
					h.CreatePolygon(w, req)

					if w.Code == http.StatusCreated {
						var p models.Polygon
						if json.Unmarshal(w.Body.Bytes(), &p) == nil {
							ids[idx] = p.ID
							successCount.Add(1)
						}
					}
				}(i)
			}
			wg.Wait()

			if int(successCount.Load()) != creators {
				t.Fatalf("Expected %d successful creates, got %d", creators, successCount.Load())
			}

			seen := make(map[string]bool)
			for _, id := range ids {
				if seen[id] {
					t.Errorf("Duplicate id %s", id)
				}
				seen[id] = true
			}

			w := httptest.NewRecorder()
			h.ListPolygons(w, testutil.MakeRequest("GET", "/api/polygons", nil, nil))
			var polygons []models.Polygon
			testutil.AssertJSON(t, w, &polygons)
			if len(polygons) != creators {
				t.Errorf("Expected %d stored polygons, got %d", creators, len(polygons))
			}
		})
	}
}

// TestConcurrentDeletesOfSamePolygon verifies that exactly one of several
// racing deletes succeeds and the rest see 404.
func TestConcurrentDeletesOfSamePolygon(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			h := NewPolygonHandler(service.NewPolygonService(repo, 0), testutil.GetTestConfig(t), nil)
			target := testutil.CreateTestPolygon(t, repo, "Target", testutil.Square(0, 0, 10))

			const deleters = 10
			var okCount, notFoundCount atomic.Int32
			var wg sync.WaitGroup

			for i := 0; i < deleters; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()

					req := testutil.MakeRequest("DELETE", "/api/polygons/"+target.ID, nil, nil)
					req.SetPathValue("id", target.ID)
					w := httptest.NewRecorder()
					h.DeletePolygon(w, req)

					switch w.Code {
					case http.StatusOK:
						okCount.Add(1)
					case http.StatusNotFound:
						notFoundCount.Add(1)
					}
				}()
			}
			wg.Wait()

			if okCount.Load() != 1 {
				t.Errorf("Expected exactly 1 successful delete, got %d", okCount.Load())
			}
			if notFoundCount.Load() != deleters-1 {
				t.Errorf("Expected %d not-found responses, got %d", deleters-1, notFoundCount.Load())
			}
		})
	}
}

// TestConcurrentMixedTraffic runs reads alongside writes.
func TestConcurrentMixedTraffic(t *testing.T) {
	repo := store.NewSQLStore(testutil.SetupTestDB(t))
	h := NewPolygonHandler(service.NewPolygonService(repo, 0), testutil.GetTestConfig(t), nil)

	var wg sync.WaitGroup
	var failures atomic.Int32

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(idx int) {
			defer wg.Done()
			req := testutil.MakeRequest("POST", "/api/polygons", models.CreatePolygonRequest{
				Name:   fmt.Sprintf("Mixed %d", idx),
				Points: testutil.Square(0, 0, 5),
			}, nil)
			w := httptest.NewRecorder()
			h.CreatePolygon(w, req)
			if w.Code != http.StatusCreated {
				failures.Add(1)
			}
		}(i)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			h.ListPolygons(w, testutil.MakeRequest("GET", "/api/polygons", nil, nil))
			if w.Code != http.StatusOK {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	if failures.Load() != 0 {
		t.Errorf("Expected no failed requests, got %d", failures.Load())
	}
}
