package dalendar

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dalendar/dalendar/internal/wheel"
	"github.com/gorilla/handlers"
)

var pageTemplate = mustParseTemplate("page.html", "document.html")

const staticAssetsCacheDuration = 24 * time.Hour

type application struct {
	Version   string
	CreatedAt time.Time
	Config    config

	clock   wheel.Clock
	palette *wheel.Palette
	metrics *metrics
	limiter *visitorLimiter

	metricsPasswordHash []byte
}

func newApplication(c *config) (*application, error) {
	app := &application{
		Version:   buildVersion,
		CreatedAt: time.Now(),
		Config:    *c,
		clock:     wheel.SystemClock,
		metrics:   newMetrics(),
	}
	config := &app.Config

	config.Server.BaseURL = strings.TrimRight(config.Server.BaseURL, "/")
	app.palette = config.Theme.palette()
	app.limiter = newVisitorLimiter(
		config.Server.RateLimit,
		config.Server.RateBurst,
		config.trustedProxies(),
		app.metrics.rateLimited.Inc,
	)

	if config.Metrics.PasswordHash != "" {
		app.metricsPasswordHash = []byte(config.Metrics.PasswordHash)
	}

	// a render at startup surfaces font or palette problems before serving
	if _, err := app.render(wheel.FormatSVG); err != nil {
		return nil, fmt.Errorf("rendering calendar: %v", err)
	}

	return app, nil
}

func (a *application) today() time.Time {
	return wheel.Today(a.clock, a.Config.Calendar.Timezone.Location)
}

func (a *application) render(format wheel.Format) (wheel.Figure, error) {
	today := a.today()

	return wheel.Render(wheel.Options{
		Year:    today.Year(),
		Today:   today,
		Size:    a.Config.Calendar.Size,
		DPI:     a.Config.Calendar.DPI,
		Format:  format,
		Palette: a.palette,
	})
}

func (a *application) StaticAssetPath(asset string) string {
	return a.Config.Server.BaseURL + "/static/" + staticFSHash + "/" + asset
}

// CalendarImagePath links the image for the page's date. The image handler
// ignores the query and reads the clock itself, so a page loaded just before
// midnight can still show the next day's wheel. The date only keeps browsers
// from reusing yesterday's image.
func (a *application) CalendarImagePath(today time.Time) string {
	format := wheel.Format(a.Config.Calendar.Format)
	return a.Config.Server.BaseURL + "/calendar." + string(format) + "?d=" + today.Format(time.DateOnly)
}

type pageTemplateData struct {
	App     *application
	Title   string
	Today   time.Time
	Layout  *wheel.Layout
	Palette *wheel.Palette
}

func (a *application) handlePageRequest(w http.ResponseWriter, r *http.Request) {
	today := a.today()

	layout, err := wheel.NewLayout(today.Year(), time.Time{}, today)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
		return
	}

	data := pageTemplateData{
		App:     a,
		Title:   ternary(a.Config.Page.Title != "", a.Config.Page.Title, "The Dalendar for "+strconv.Itoa(today.Year())),
		Today:   today,
		Layout:  layout,
		Palette: a.palette,
	}

	responseBytes, err := executeTemplateToBytes(pageTemplate, data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(responseBytes)
}

func (a *application) handleCalendarRequest(format wheel.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()

		var body bytes.Buffer
		figure, err := a.render(format)
		if err == nil {
			err = figure.Encode(&body)
		}

		a.metrics.observeRender(string(format), started, err)

		if err != nil {
			log.Printf("Failed to render %s calendar: %v", format, err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(err.Error()))
			return
		}

		w.Header().Set("Content-Type", figure.ContentType())
		// the image changes at midnight in the configured timezone
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(body.Bytes())
	}
}

func (a *application) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("Page not found"))
}

func (a *application) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", a.handlePageRequest)
	mux.Handle("GET /calendar.png", a.limiter.middleware(a.handleCalendarRequest(wheel.FormatPNG)))
	mux.Handle("GET /calendar.svg", a.limiter.middleware(a.handleCalendarRequest(wheel.FormatSVG)))
	mux.HandleFunc("GET /api/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if a.Config.Metrics.Enabled {
		var metricsHandler http.Handler = a.metrics.handler()
		if a.metricsPasswordHash != nil {
			metricsHandler = basicAuthMiddleware(a.Config.Metrics.Username, a.metricsPasswordHash, metricsHandler)
		}
		mux.Handle("GET /metrics", metricsHandler)
	}

	mux.Handle(
		fmt.Sprintf("GET /static/%s/{path...}", staticFSHash),
		http.StripPrefix(
			"/static/"+staticFSHash,
			fileServerWithCache(http.FS(staticFS), staticAssetsCacheDuration),
		),
	)

	mux.HandleFunc("/", a.handleNotFound)

	var handler http.Handler = a.metrics.middleware(mux)
	handler = requestIDMiddleware(handler)
	handler = handlers.CompressHandler(handler)
	handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(handler)
	handler = handlers.CombinedLoggingHandler(os.Stdout, handler)

	return handler
}

func (a *application) server() (func() error, func() error) {
	server := http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port),
		Handler:           a.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	start := func() error {
		log.Printf("Starting server on %s:%d (base-url: \"%s\", timezone: %s)\n",
			a.Config.Server.Host,
			a.Config.Server.Port,
			a.Config.Server.BaseURL,
			a.Config.Calendar.Timezone,
		)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}

		return nil
	}

	stop := func() error {
		return server.Close()
	}

	return start, stop
}
