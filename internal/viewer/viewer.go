// Package viewer shows a figure interactively: it serves the figure as a
// go-echarts page over HTTP and blocks until the viewer is dismissed.
package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/banshee-data/magplot/internal/monitoring"
	"github.com/banshee-data/magplot/internal/plotting"
)

var logf = monitoring.Component("viewer")

// DefaultAddress binds an ephemeral loopback port.
const DefaultAddress = "localhost:0"

// Config contains configuration options for the viewer.
type Config struct {
	// Address is the listen address (default DefaultAddress).
	Address string
	// OpenBrowser launches the system browser once the page is served.
	OpenBrowser bool
	// ShutdownTimeout bounds the graceful HTTP shutdown (default 1s).
	ShutdownTimeout time.Duration
	// Ready, if set, is called with the page URL once the listener is bound.
	Ready func(url string)
}

// Viewer displays figures in a browser.
type Viewer struct {
	cfg  Config
	open func(url string) error
}

// New creates a viewer with the provided configuration.
func New(cfg Config) *Viewer {
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = time.Second
	}
	return &Viewer{cfg: cfg, open: openBrowser}
}

// Show serves fig and blocks until the page's close control is used or ctx
// is cancelled. Binding, serving or browser launch failures are reported as
// *plotting.RenderError.
func (v *Viewer) Show(ctx context.Context, fig *plotting.Figure) error {
	page, err := RenderPage(fig)
	if err != nil {
		return err
	}
	img, err := plotting.PNGBytes(fig)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", v.cfg.Address)
	if err != nil {
		return &plotting.RenderError{Op: "listen", Err: err}
	}

	dismissed := make(chan struct{})
	var once sync.Once
	dismiss := func() { once.Do(func() { close(dismissed) }) }

	server := &http.Server{
		Handler:           v.routes(page, img, dismiss),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	url := "http://" + ln.Addr().String() + "/"
	logf("serving %q on %s", fig.Name, url)
	if v.cfg.Ready != nil {
		v.cfg.Ready(url)
	}
	var result error
	if v.cfg.OpenBrowser {
		if err := v.open(url); err != nil {
			// Nobody can reach the page, so waiting would hang.
			result = &plotting.RenderError{Op: "open browser", Err: err}
		}
	}

	if result == nil {
		select {
		case <-dismissed:
			logf("viewer dismissed")
		case <-ctx.Done():
			logf("viewer interrupted: %v", ctx.Err())
		case err := <-serveErr:
			result = &plotting.RenderError{Op: "serve", Err: err}
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), v.cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logf("HTTP server shutdown error: %v", err)
		if err := server.Close(); err != nil {
			logf("HTTP server force close error: %v", err)
		}
	}
	return result
}

// routes configures the HTTP routes for one figure.
func (v *Viewer) routes(page, img []byte, dismiss func()) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/figure.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", fmt.Sprint(len(img)))
		_, _ = w.Write(img)
	})

	mux.HandleFunc("/close", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, http.StatusMethodNotAllowed, "use POST to close the viewer")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<p>Viewer closed. You can close this tab.</p>"))
		dismiss()
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			writeJSONError(w, http.StatusNotFound, "not found")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})

	return mux
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
