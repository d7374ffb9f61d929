// Package ptero provides the shared request/response core for the typed
// Pterodactyl panel API clients in this module.
//
// The panel exposes two parallel REST surfaces: the user-scoped Client API
// (package client) and the admin-scoped Application API (package application).
// Both are thin typed facades over the same dispatch layer defined here:
//
//   - Transport builds authenticated HTTP requests against a base URL,
//     serializes JSON bodies and executes them with no retries or caching.
//   - Envelope helpers (UnwrapObject, UnwrapList) decode the panel's generic
//     {object, attributes} wrappers and paginated list envelopes into typed
//     structs, rejecting responses whose object tag does not match.
//   - The error mapper converts non-2xx responses into a closed taxonomy
//     (*Error with a Kind) so callers can branch on the failure class.
//
// # Usage
//
//	cl, err := client.New("https://panel.example.com", apiKey, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	servers, page, err := cl.ListServers(ctx, client.ListServersOptions{})
//	var perr *ptero.Error
//	if errors.As(err, &perr) && perr.Kind == ptero.KindRateLimited {
//	    // back off and retry; the library never retries on its own
//	}
//
// Clients are immutable after construction and safe for concurrent use.
// Multiple clients with different credentials can coexist; there is no
// global state.
package ptero
