// Package callback runs a short-lived loopback HTTP listener that receives the
// redirect at the end of the Google sign-in flow.
package callback

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pohonku/pohonku/internal/logging"
)

// Path is the route the backend redirects the browser to after sign-in.
const Path = "/auth/google/callback"

const shutdownTimeout = 2 * time.Second

// Handler consumes the query parameters of the callback.
type Handler func(ctx context.Context, params url.Values) error

// Listener accepts exactly one callback. Later requests get 410 Gone.
type Listener struct {
	ln     net.Listener
	srv    *http.Server
	handle Handler
	log    logging.Logger

	taken  atomic.Bool
	result chan error
	served chan struct{}
}

// Listen binds addr and starts serving in the background. Use "127.0.0.1:0"
// to pick a free port.
func Listen(addr string, h Handler, log logging.Logger) (*Listener, error) {
	if h == nil {
		return nil, errors.New("callback: nil handler")
	}
	if log == nil {
		log = logging.Nop()
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("callback: listen %s: %w", addr, err)
	}

	l := &Listener{
		ln:     ln,
		handle: h,
		log:    log.With("component", "callback"),
		result: make(chan error, 1),
		served: make(chan struct{}),
	}
	l.srv = &http.Server{
		Handler:           l.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		defer close(l.served)
		if err := l.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.log.Error(context.Background(), "callback server stopped", "error", err)
		}
	}()

	return l, nil
}

// URL is the callback address the browser must be redirected to.
func (l *Listener) URL() string {
	return "http://" + l.ln.Addr().String() + Path
}

// Routes returns the router of the listener.
func (l *Listener) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get(Path, l.handleCallback)
	return r
}

func (l *Listener) handleCallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	if !l.taken.CompareAndSwap(false, true) {
		http.Error(w, "login already handled, return to the terminal", http.StatusGone)
		return
	}

	err := l.handle(r.Context(), r.URL.Query())
	l.result <- err

	if err != nil {
		l.log.Warn(r.Context(), "login callback rejected", "error", err)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprintf(w, "Login failed: %v\nReturn to the terminal to try again.\n", err)
		return
	}
	l.log.Info(r.Context(), "login callback accepted")
	fmt.Fprintln(w, "Login successful. You can close this window and return to the terminal.")
}

// Wait blocks until one callback has been handled or ctx ends, then shuts the
// listener down. It returns the handler's error, or ctx.Err().
func (l *Listener) Wait(ctx context.Context) error {
	var err error
	select {
	case err = <-l.result:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if cerr := l.Close(); cerr != nil {
		l.log.Warn(ctx, "callback shutdown", "error", cerr)
	}
	return err
}

// Close stops the listener. Safe to call more than once.
func (l *Listener) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := l.srv.Shutdown(ctx)
	<-l.served
	return err
}
