package cli

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pohonku/pohonku/internal/client/callback"
)

// Login signs in with Google. The browser is sent to the backend's OAuth
// entry point, which redirects back to a loopback listener. When the
// listener cannot be started, or the browser cannot reach it, the user
// pastes the final address instead.
func (a *App) Login(ctx context.Context) error {
	loginURL, err := a.authService.LoginURL(ctx, "")
	if err != nil {
		return err
	}

	var redirect string
	handle := func(ctx context.Context, params url.Values) error {
		r, err := a.authService.HandleCallback(ctx, params)
		redirect = r
		return err
	}

	a.printf("Open this address in your browser to sign in with Google:\n  %s\n", loginURL)

	ln, err := a.listen(a.config.CallbackAddr, handle, a.log)
	if err != nil {
		a.log.Warn(ctx, "callback listener unavailable", "addr", a.config.CallbackAddr, "error", err)
		if err := a.pasteCallback(ctx, handle); err != nil {
			return err
		}
	} else {
		a.printf("Waiting for the sign-in to complete at %s ...\n", ln.URL())
		a.println("If the browser cannot reach it, paste the address of the page you were sent to.")
		if err := a.awaitCallback(ctx, ln, handle); err != nil {
			return err
		}
	}

	a.println("Signed in.")
	if id, ok := strings.CutPrefix(redirect, "/adopt/"); ok && id != "" {
		a.printf("Continue with: adopt %s\n", id)
	}
	return nil
}

// awaitCallback waits for the browser to reach ln or for the user to paste
// the callback address, whichever comes first.
func (a *App) awaitCallback(ctx context.Context, ln *callback.Listener, handle callback.Handler) error {
	wctx, cancel := context.WithTimeout(ctx, a.loginTimeout)
	defer cancel()

	result := make(chan error, 1)
	done := make(chan struct{})
	go func() {
		result <- ln.Wait(wctx)
		close(done)
	}()

	for {
		raw, entered := a.reader.awaitLine(done)
		if !entered {
			return <-result
		}
		if raw == "" {
			continue
		}
		cancel()
		<-done
		if err := <-result; err == nil {
			// the browser got there first
			return nil
		}
		return handlePasted(ctx, raw, handle)
	}
}

func (a *App) pasteCallback(ctx context.Context, handle callback.Handler) error {
	raw, err := getSimpleText(a.reader, "After signing in, paste the address of the page you were sent to", a.out)
	if err != nil {
		return err
	}
	return handlePasted(ctx, raw, handle)
}

func handlePasted(ctx context.Context, raw string, handle callback.Handler) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("not a valid address: %w", err)
	}
	return handle(ctx, u.Query())
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.authService.Me(ctx)
	if err != nil {
		return err
	}
	a.printf("%s <%s>\n", u.FullName, u.Email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.println("Signed out.")
	return nil
}
