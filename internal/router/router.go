package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cix-storefront/internal/handler"
	"github.com/iliyamo/cix-storefront/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication or
// dependencies. Currently that is only the health check used by load
// balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterBrowse registers the unauthenticated browse surface: movie
// rails, search, detail and the static cinema catalog. The cache and
// ratelimit middleware front the OMDB-backed routes; pass identity
// middleware funcs to disable either.
func RegisterBrowse(e *echo.Echo, m *handler.MovieHandler, cache, ratelimit echo.MiddlewareFunc) {
	g := e.Group("/v1", ratelimit, cache)
	g.GET("/movies/now-showing", m.NowShowingMovies)
	g.GET("/movies/coming-soon", m.ComingSoonMovies)
	g.GET("/movies/search", m.Search)
	g.GET("/movies/:id", m.Detail)

	// Catalog routes are static and cheap; no cache layer needed.
	e.GET("/v1/cities", m.Cities)
	e.GET("/v1/cinemas", m.Cinemas)
	e.GET("/v1/showtimes", m.Showtimes)
}

// RegisterAuth registers the authentication endpoints. Register,
// login, refresh and logout live under /v1/auth and need no session;
// /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterBooking registers the checkout flow and the ticket wallet.
// Everything here is per-user state, so the whole group sits behind
// JWT authentication.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, t *handler.TicketHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	g.POST("/booking/start", b.Start)
	g.GET("/booking", b.State)
	g.POST("/booking/seats/:id", b.ToggleSeat)
	g.POST("/booking/advance", b.Advance)
	g.POST("/booking/cancel", b.Cancel)
	g.POST("/booking/pay", b.Pay)
	g.POST("/booking/retry", b.Retry)
	g.DELETE("/booking", b.Abandon)

	g.GET("/bookings", t.List)
	g.GET("/bookings/:id", t.Get)
}

// RegisterAdmin registers the sales summary behind JWT plus the admin
// flag. Only wired when the MySQL ledger is active.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin", middleware.JWTAuth(jwtSecret), middleware.RequireAdmin())
	g.GET("/summary", a.Summary)
}
