// Package crypto provides encryption for data at rest.
//
// Implements AES-256-GCM for the OAuth credentials embedded in persisted
// user snapshots. Two implementations: TokenCipher (production) and
// NoopService (dev/test plaintext passthrough).
package crypto
