// Package twitch integrates with the Twitch Helix API.
//
// HelixClient batches stream lookups for subscribed streamer logins using an
// app access token. Poller drives the lookups on a fixed interval and writes
// each streamer's live status back through the application service.
package twitch
