package domain

import "time"

type User struct {
	ID        string `json:"id"`
	DiscordID string `json:"discord_id"`
	Username  string `json:"username"`
	// Tokens live on the User record for simplicity: user and tokens share a
	// lifecycle, and there is no use case for loading one without the other.
	// Encryption at rest happens in the persistence layer, not here.
	Discriminator string    `json:"discriminator"`
	Avatar        string    `json:"avatar"`
	AccessToken   string    `json:"access_token"`
	RefreshToken  string    `json:"refresh_token"`
	TokenExpiry   time.Time `json:"token_expiry"`
	CreatedAt     time.Time `json:"created_at"`
}

func (u User) RecordID() string { return u.ID }

// UserPartial carries the fields a caller supplies on create or update.
// A nil field means "not supplied": defaults apply on create, the prior
// value is kept on update.
type UserPartial struct {
	DiscordID     *string    `json:"discord_id,omitempty"`
	Username      *string    `json:"username,omitempty"`
	Discriminator *string    `json:"discriminator,omitempty"`
	Avatar        *string    `json:"avatar,omitempty"`
	AccessToken   *string    `json:"access_token,omitempty"`
	RefreshToken  *string    `json:"refresh_token,omitempty"`
	TokenExpiry   *time.Time `json:"token_expiry,omitempty"`
}
