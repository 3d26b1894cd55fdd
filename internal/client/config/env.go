package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// loadDotEnv loads each existing file into the process environment.
// Variables that are already set are never overridden, so the first file
// listed wins over later ones.
func loadDotEnv(files ...string) {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		_ = godotenv.Load(f)
	}
}

// lookup returns the first non-empty value among keys.
func lookup(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// parseEnv overlays cfg with environment variables. Durations accept Go
// duration strings; bare integers are read as milliseconds for the search
// debounce and as seconds elsewhere. Unparseable values are ignored.
func parseEnv(cfg *Config) {
	if v, ok := lookup("POHONKU_API_URL", "NEXT_PUBLIC_API_URL"); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := lookup("MIDTRANS_CLIENT_KEY", "NEXT_PUBLIC_MIDTRANS_CLIENT_KEY"); ok {
		cfg.MidtransClientKey = v
	}
	if v, ok := lookup("MIDTRANS_SNAP_URL"); ok {
		cfg.SnapBaseURL = v
	}
	if v, ok := lookup("SEARCH_MODE"); ok {
		cfg.SearchMode = v
	}
	if v, ok := lookup("POHONKU_SESSION_DB"); ok {
		cfg.SessionDB = v
	}
	if v, ok := lookup("POHONKU_CALLBACK_ADDR"); ok {
		cfg.CallbackAddr = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}

	envDuration("SEARCH_DEBOUNCE", time.Millisecond, &cfg.SearchDebounce)
	envDuration("REQUEST_TIMEOUT", time.Second, &cfg.RequestTimeout)
	envDuration("PAYMENT_POLL_INTERVAL", time.Second, &cfg.PaymentPollInterval)
	envDuration("PAYMENT_TIMEOUT", time.Second, &cfg.PaymentTimeout)
}

func envDuration(key string, unit time.Duration, dst *time.Duration) {
	raw, ok := lookup(key)
	if !ok {
		return
	}
	if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
		*dst = time.Duration(n) * unit
		return
	}
	if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
		*dst = d
	}
}
