package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzhttp"

	"github.com/pribylovaa/icebreaker-frame/internal/assets"
	"github.com/pribylovaa/icebreaker-frame/internal/frame"
	"github.com/pribylovaa/icebreaker-frame/internal/http/handlers"
	"github.com/pribylovaa/icebreaker-frame/internal/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
	// Title — заголовок HTML-страницы фрейма.
	Title string
}

// NewRouter собирает http.Handler фрейма: chi, middleware и маршруты всех режимов.
func NewRouter(svc *frame.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),
		middleware.RequestID(), // до логирования
		middleware.Logging(opts.Logger),
		middleware.NoCache(),
		gzip,
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}

	h := handlers.New(svc, opts.Title)

	// Ассеты живут на корне: их адреса строятся от FrameURL без BasePath.
	static := assets.Handler()
	for _, name := range assets.Names() {
		root.Get("/"+name, static.ServeHTTP)
	}

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// gzip сжимает HTML и SVG для клиентов с Accept-Encoding: gzip.
func gzip(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}

// registerRoutes — единая точка регистрации маршрутов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	for _, mode := range frame.Modes() {
		fh := h.Frame(mode)
		if mode != frame.ModeCastAction {
			r.Get(mode.Pattern(), fh)
		}
		r.Post(mode.Pattern(), fh)
	}

	r.Get("/image", h.Image)

	r.Get("/add", h.CastActionMetadata)
	r.Post("/add", h.CastAction)

	r.Get("/composer", h.ComposerActionMetadata)
	r.Post("/composer", h.ComposerAction)
}
