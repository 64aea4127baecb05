// Package discord is the boundary to Discord's HTTP APIs: the OAuth code
// exchange and token refresh, the identity fetch, and the user guild list.
// Raw permission bitmasks are decoded into named capabilities here, so the
// rest of the dashboard never sees an integer mask.
package discord
