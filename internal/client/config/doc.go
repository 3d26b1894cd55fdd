// Package config loads runtime configuration for the PohonKu terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. .env.local and .env in the working directory, loaded into the
//     environment without overriding variables that are already set.
//  3. Environment variables.
//  4. Optional config file selected with -c or -config, JSON or YAML by
//     extension.
//  5. Command-line flags.
//
// # Environment
//
//	POHONKU_API_URL, NEXT_PUBLIC_API_URL       backend base URL
//	MIDTRANS_CLIENT_KEY, NEXT_PUBLIC_MIDTRANS_CLIENT_KEY
//	MIDTRANS_SNAP_URL                          Snap host
//	SEARCH_DEBOUNCE                            "300ms" or milliseconds
//	SEARCH_MODE                                client | server
//	REQUEST_TIMEOUT                            "10s" or seconds
//	PAYMENT_POLL_INTERVAL                      "3s" or seconds
//	PAYMENT_TIMEOUT                            "15m" or seconds, 0 = no limit
//	POHONKU_SESSION_DB                         session database path
//	POHONKU_CALLBACK_ADDR                      login callback listen address
//	LOG_LEVEL, LOG_FORMAT                      debug|info|warn|error, text|json
//
// # File schema
//
// Durations use timex.Duration, so they are strings like "3s" or integer
// nanoseconds:
//
//	api_base_url: https://api.pohonku.id
//	search_mode: client
//	search_debounce: 300ms
package config
