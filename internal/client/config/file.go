package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pohonku/pohonku/internal/flagx"
	"github.com/pohonku/pohonku/internal/timex"
)

// FileConfig is the on-disk shape of the config file. Pointer fields tell an
// absent key from an explicit empty value.
type FileConfig struct {
	APIBaseURL          *string         `json:"api_base_url" yaml:"api_base_url"`
	MidtransClientKey   *string         `json:"midtrans_client_key" yaml:"midtrans_client_key"`
	SnapBaseURL         *string         `json:"snap_base_url" yaml:"snap_base_url"`
	SearchDebounce      *timex.Duration `json:"search_debounce" yaml:"search_debounce"`
	SearchMode          *string         `json:"search_mode" yaml:"search_mode"`
	RequestTimeout      *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	PaymentPollInterval *timex.Duration `json:"payment_poll_interval" yaml:"payment_poll_interval"`
	PaymentTimeout      *timex.Duration `json:"payment_timeout" yaml:"payment_timeout"`
	SessionDB           *string         `json:"session_db" yaml:"session_db"`
	CallbackAddr        *string         `json:"callback_addr" yaml:"callback_addr"`
	LogLevel            *string         `json:"log_level" yaml:"log_level"`
	LogFormat           *string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the file named by -c / -config in args. Files
// ending in .yaml or .yml are read as YAML, everything else as JSON. It
// panics when the file cannot be read or decoded.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(fmt.Errorf("config file %s: %w", path, err))
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	setString(&cfg.MidtransClientKey, fc.MidtransClientKey)
	setString(&cfg.SnapBaseURL, fc.SnapBaseURL)
	setString(&cfg.SearchMode, fc.SearchMode)
	setString(&cfg.SessionDB, fc.SessionDB)
	setString(&cfg.CallbackAddr, fc.CallbackAddr)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)

	if fc.SearchDebounce != nil {
		cfg.SearchDebounce = fc.SearchDebounce.Duration
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.PaymentPollInterval != nil {
		cfg.PaymentPollInterval = fc.PaymentPollInterval.Duration
	}
	if fc.PaymentTimeout != nil {
		cfg.PaymentTimeout = fc.PaymentTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
