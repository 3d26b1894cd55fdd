// Package cli provides the interactive PohonKu terminal client.
//
// It wires configuration, the local session store, the API services, and a
// REPL. Browsing the species catalog works without an account; adopting a
// tree and the dashboard require signing in with Google, which completes
// through a loopback callback listener.
//
// Key features:
//   - Catalog: list, detail, category, server search, local filter
//   - Live search with debounced backend queries
//   - Adoption checkout and payment through the hosted Snap page
//   - Dashboard and adoption details
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
