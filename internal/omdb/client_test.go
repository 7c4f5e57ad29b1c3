package omdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient(srv.Client(), "test-key")
	c.SetBaseURL(srv.URL)
	return c, srv
}

func TestGetByTitle(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("apikey"); got != "test-key" {
			t.Errorf("apikey = %q, want test-key", got)
		}
		if got := r.URL.Query().Get("t"); got != "Dune: Part Two" {
			t.Errorf("t = %q, want Dune: Part Two", got)
		}
		w.Write([]byte(`{"Title":"Dune: Part Two","imdbID":"tt15239678","Response":"True"}`))
	})
	defer srv.Close()

	m, err := c.GetByTitle(context.Background(), "Dune: Part Two")
	if err != nil {
		t.Fatalf("GetByTitle: %v", err)
	}
	if m == nil || m.ImdbID != "tt15239678" {
		t.Fatalf("unexpected movie: %+v", m)
	}
}

func TestGetByTitleNoMatch(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	})
	defer srv.Close()

	m, err := c.GetByTitle(context.Background(), "No Such Film")
	if err != nil {
		t.Fatalf("GetByTitle: %v", err)
	}
	if m != nil {
		t.Fatalf("expected nil movie, got %+v", m)
	}
}

func TestSearch(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "movie" {
			t.Errorf("type = %q, want movie", got)
		}
		w.Write([]byte(`{"Response":"True","Search":[{"Title":"Alien","imdbID":"tt0078748"},{"Title":"Aliens","imdbID":"tt0090605"}]}`))
	})
	defer srv.Close()

	movies, err := c.Search(context.Background(), "alien")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("got %d movies, want 2", len(movies))
	}
	if movies[1].ImdbID != "tt0090605" {
		t.Errorf("movies[1].ImdbID = %q", movies[1].ImdbID)
	}
}

func TestSearchNoMatchReturnsEmptySlice(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	})
	defer srv.Close()

	movies, err := c.Search(context.Background(), "zzzz")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if movies == nil || len(movies) != 0 {
		t.Fatalf("expected empty slice, got %#v", movies)
	}
}

func TestGetByIDRequestsFullPlot(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("plot"); got != "full" {
			t.Errorf("plot = %q, want full", got)
		}
		w.Write([]byte(`{"Title":"Civil War","imdbID":"tt17279496","Plot":"long plot here","Response":"True"}`))
	})
	defer srv.Close()

	m, err := c.GetByID(context.Background(), "tt17279496")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if m == nil || m.Plot != "long plot here" {
		t.Fatalf("unexpected movie: %+v", m)
	}
}

func TestServerErrorSurfaces(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})
	defer srv.Close()

	if _, err := c.GetByTitle(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for 502 response")
	}
}

func TestMalformedJSONSurfaces(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":`))
	})
	defer srv.Close()

	if _, err := c.Search(context.Background(), "alien"); err == nil {
		t.Fatal("expected decode error")
	}
}
