package config

import (
	"flag"
	"io"
	"time"

	"github.com/pohonku/pohonku/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   backend base URL
//	-k string   Midtrans client key
//	-d int      search debounce (milliseconds)
//	-m string   search mode: client or server
//	-t int      request timeout (seconds)
//	-s string   session database path
//	-l string   address of the login callback listener
//
// Only the flags above are picked out of args, so other flags such as -c do
// not interfere. Bad values panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-k", "-d", "-m", "-t", "-s", "-l"})

	fs := flag.NewFlagSet("pohonku", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend base URL")
	fs.StringVar(&cfg.MidtransClientKey, "k", cfg.MidtransClientKey, "Midtrans client key")
	debounce := fs.Int("d", int(cfg.SearchDebounce.Milliseconds()), "search debounce (in milliseconds)")
	fs.StringVar(&cfg.SearchMode, "m", cfg.SearchMode, "search mode (client or server)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.SessionDB, "s", cfg.SessionDB, "session database path")
	fs.StringVar(&cfg.CallbackAddr, "l", cfg.CallbackAddr, "login callback listen address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// durations from env or file keep their precision unless overridden
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "d":
			cfg.SearchDebounce = time.Duration(*debounce) * time.Millisecond
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
