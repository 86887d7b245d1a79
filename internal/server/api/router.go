package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/config"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - служебные middleware (request id, real ip, recoverer, таймаут, логирование);
//   - загрузку сессии из cookie для всех страниц;
//   - страницы сайта, формы входа и регистрации;
//   - /admin/books (закрыт сессией только при admin.require_session);
//   - JSON API под /api с CORS и swagger UI.
func NewRouter(h *Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))
	r.Use(chimw.Recoverer)
	if cfg.Server.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.Server.RequestTimeout))
	}

	r.NotFound(h.NotFound)
	r.Get("/health", h.Health)
	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/articles", h.ListArticlesJSON)
		r.Get("/books", h.ListBooksJSON)
	})

	// страницы
	r.Group(func(r chi.Router) {
		r.Use(h.Sessions.Load)

		r.Get("/", h.Home)
		r.Get("/home", h.Home)
		r.Get("/about", h.About)
		r.Get("/archive", h.Archive)

		r.Get("/articles", h.ArticlesPage)
		r.Get("/articles/feed.xml", h.Feed)
		r.Get("/write", h.WritePage)
		r.Post("/write", h.SubmitArticle)

		r.Get("/books", h.BooksPage)

		r.Get("/signin", h.SignInPage)
		r.Post("/signin", h.SignIn)
		r.Get("/signup", h.SignUpPage)
		r.Post("/signup", h.SignUp)
		r.Post("/logout", h.Logout)

		r.Route("/admin/books", func(r chi.Router) {
			if cfg.Admin.RequireSession {
				r.Use(h.Sessions.Require)
			}
			r.Get("/", h.AdminBooksPage)
			r.Post("/", h.CreateBook)
			r.Post("/{id}/edit", h.UpdateBook)
			r.Post("/{id}/delete", h.DeleteBook)
		})
	})

	return r
}
