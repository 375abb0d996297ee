package unsplash

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danilomoraisgustavo/myworlds/internal/models"
	"github.com/stretchr/testify/assert"
)

type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		category models.Category
		topic    string
		want     string
	}{
		{models.CategoryNews, "Eventos", "pokemon news Eventos"},
		{models.CategoryGuides, "Tipos", "pokemon guide tips Tipos"},
		{models.CategoryWalkthroughs, "Elite Four", "pokemon game walkthrough Elite Four"},
		{models.CategoryTournaments, "Regional", "pokemon tournament stadium"},
		{models.CategoryTrivia, "Lendas", "pokemon creatures artwork Lendas"},
		{models.CategoryStrategies, "Hazards", "pokemon battle strategy Hazards"},
		{models.Category("outra"), "Algo", "pokemon game Algo"},
		{models.CategoryNews, "   ", "pokemon news pokemon"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category)+"/"+tt.topic, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildQuery(tt.topic, tt.category, models.GenerationAll))
		})
	}
}

func TestResolvePicksFromSearchResults(t *testing.T) {
	var gotQuery, gotAuth, gotPerPage, gotOrientation string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/photos", r.URL.Path)
		gotQuery = r.URL.Query().Get("query")
		gotPerPage = r.URL.Query().Get("per_page")
		gotOrientation = r.URL.Query().Get("orientation")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total": 3, "results": [
			{"id": "a", "urls": {"regular": "https://img/a-regular.jpg", "small": "https://img/a-small.jpg"}},
			{"id": "b", "urls": {"small": "https://img/b-small.jpg"}},
			{"id": "c", "urls": {}}
		]}`))
	}))
	defer srv.Close()

	r := NewResolver(NewClient("key123", srv.URL), fixedRand(1))
	got := r.Resolve(context.Background(), "Hazards", models.CategoryStrategies, models.GenerationAll)

	assert.Equal(t, "https://img/b-small.jpg", got)
	assert.Equal(t, "pokemon battle strategy Hazards", gotQuery)
	assert.Equal(t, "10", gotPerPage)
	assert.Equal(t, "landscape", gotOrientation)
	assert.Equal(t, "Client-ID key123", gotAuth)

	got = NewResolver(NewClient("key123", srv.URL), fixedRand(0)).
		Resolve(context.Background(), "Hazards", models.CategoryStrategies, models.GenerationAll)
	assert.Equal(t, "https://img/a-regular.jpg", got)
}

func TestResolveFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"errors": ["boom"]}`},
		{"empty results", http.StatusOK, `{"total": 0, "results": []}`},
		{"malformed body", http.StatusOK, `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			r := NewResolver(NewClient("key", srv.URL), fixedRand(2))
			got := r.Resolve(context.Background(), "Tipos", models.CategoryGuides, models.GenerationAll)
			assert.Equal(t, FallbackImages[2], got)
		})
	}
}

func TestResolveWithoutKeyUsesFallback(t *testing.T) {
	r := NewResolver(NewClient("", "http://127.0.0.1:1"), fixedRand(0))
	assert.Equal(t, FallbackImages[0], r.Resolve(context.Background(), "x", models.CategoryNews, models.GenerationAll))

	r = NewResolver(nil, nil)
	assert.Contains(t, FallbackImages, r.Resolve(context.Background(), "x", models.CategoryNews, models.GenerationAll))
}
