package config

import (
	"path/filepath"
	"time"

	"github.com/pohonku/pohonku/internal/client/payment"
	"github.com/pohonku/pohonku/internal/filex"
)

// DefaultAPIBaseURL is the backend used when nothing else is configured.
const DefaultAPIBaseURL = "https://be-production-1e0b.up.railway.app"

const appName = "pohonku"

// Config holds runtime settings for the PohonKu terminal client.
//
// APIBaseURL may be empty; every backend call then fails with a
// configuration error instead of reaching the network.
type Config struct {
	APIBaseURL        string
	MidtransClientKey string
	SnapBaseURL       string

	SearchDebounce time.Duration
	SearchMode     string

	RequestTimeout      time.Duration
	PaymentPollInterval time.Duration
	// PaymentTimeout bounds how long adopt waits for a final payment status.
	// Zero waits until the user stops it.
	PaymentTimeout time.Duration

	SessionDB    string
	CallbackAddr string

	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with built-in defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.MidtransClientKey = ""
	c.SnapBaseURL = payment.SnapSandboxURL
	c.SearchDebounce = 500 * time.Millisecond
	c.SearchMode = "server"
	c.RequestTimeout = 15 * time.Second
	c.PaymentPollInterval = 3 * time.Second
	c.PaymentTimeout = 15 * time.Minute
	c.SessionDB = defaultSessionDB()
	c.CallbackAddr = "127.0.0.1:7788"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

func defaultSessionDB() string {
	dir, err := filex.DataDir(appName)
	if err != nil {
		return "session.db"
	}
	return filepath.Join(dir, "session.db")
}

// Load builds a Config from defaults, dotenv files and the environment, a
// config file, and finally the command-line arguments args (without the
// program name). Later sources take precedence.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv(".env.local", ".env")
	parseEnv(cfg)
	parseFile(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
