// Package client talks to the PohonKu backend over HTTP.
//
// # Overview
//
//  1. APIClient.Fetch is the single request path. It joins the configured
//     base URL with an endpoint, attaches the bearer token of the session
//     carried by the context (see WithSession), disables caching, and turns
//     every failure into one of the typed errors below.
//  2. SpeciesClient, DashboardClient, OrdersClient and AuthClient are thin
//     typed wrappers, one method per backend route. They never retry.
//  3. InitDatabase opens the local SQLite store and applies the embedded
//     goose migrations used by the session store.
//
// # Error Handling
//
//   - *ConfigurationError: no base URL; returned before any network I/O.
//     Matches ErrNotConfigured.
//   - *HTTPError: non-2xx response. Status 401 matches ErrUnauthorized.
//   - *NetworkError: the request never produced a response.
//   - *DecodeError: a 2xx body that is not the expected JSON.
//
// # Contexts
//
// Every call takes a context.Context and honours cancellation. The session is
// an explicit per-call value: a context without one produces an anonymous
// request.
package client
