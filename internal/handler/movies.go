package handler

import (
	"net/http"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cix-storefront/internal/catalog"
	"github.com/iliyamo/cix-storefront/internal/model"
	"github.com/iliyamo/cix-storefront/internal/omdb"
)

// MovieHandler serves the browse surface: curated now-showing and
// coming-soon rails, free-text search and movie detail.  Metadata
// comes from OMDB; provider failures are absorbed into empty results
// so browsing never 500s because a third party is down.
type MovieHandler struct {
	OMDB       *omdb.Client
	NowShowing []string
	ComingSoon []string
}

func NewMovieHandler(client *omdb.Client, nowShowing, comingSoon []string) *MovieHandler {
	return &MovieHandler{OMDB: client, NowShowing: nowShowing, ComingSoon: comingSoon}
}

// lookupTitles resolves a curated title list in parallel.  Titles the
// provider cannot resolve are simply dropped from the rail.
func (h *MovieHandler) lookupTitles(c echo.Context, titles []string) []model.Movie {
	ctx := c.Request().Context()
	results := make([]*model.Movie, len(titles))
	var wg sync.WaitGroup
	for i, title := range titles {
		wg.Add(1)
		go func(i int, title string) {
			defer wg.Done()
			m, err := h.OMDB.GetByTitle(ctx, title)
			if err != nil {
				c.Logger().Warnf("omdb lookup %q failed: %v", title, err)
				return
			}
			results[i] = m
		}(i, title)
	}
	wg.Wait()

	out := make([]model.Movie, 0, len(titles))
	for _, m := range results {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out
}

// NowShowingMovies returns the now-showing rail.
func (h *MovieHandler) NowShowingMovies(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"movies": h.lookupTitles(c, h.NowShowing)})
}

// ComingSoonMovies returns the coming-soon rail.
func (h *MovieHandler) ComingSoonMovies(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"movies": h.lookupTitles(c, h.ComingSoon)})
}

// Search proxies a free-text movie search.  Empty query and provider
// failures both come back as an empty list.
func (h *MovieHandler) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusOK, echo.Map{"movies": []model.Movie{}})
	}
	movies, err := h.OMDB.Search(c.Request().Context(), q)
	if err != nil {
		c.Logger().Warnf("omdb search %q failed: %v", q, err)
		movies = []model.Movie{}
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": movies})
}

// Detail returns a single movie with its full plot.
func (h *MovieHandler) Detail(c echo.Context) error {
	id := c.Param("id")
	m, err := h.OMDB.GetByID(c.Request().Context(), id)
	if err != nil {
		c.Logger().Warnf("omdb detail %q failed: %v", id, err)
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}
	if m == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}
	return c.JSON(http.StatusOK, m)
}

// Cities lists the cities with cinemas.
func (h *MovieHandler) Cities(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"cities": catalog.Cities})
}

// Cinemas lists cinemas, optionally filtered by ?city=.
func (h *MovieHandler) Cinemas(c echo.Context) error {
	city := strings.TrimSpace(c.QueryParam("city"))
	if city == "" {
		return c.JSON(http.StatusOK, echo.Map{"cinemas": catalog.Cinemas})
	}
	return c.JSON(http.StatusOK, echo.Map{"cinemas": catalog.CinemasByCity(city)})
}

// Showtimes lists the daily screening slots.
func (h *MovieHandler) Showtimes(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"showtimes": catalog.Showtimes})
}
