package domain

// RosterEntry is one guild from the caller's externally reported guild list.
// The raw permission bitmask is decoded into named capabilities at the
// Discord boundary so nothing downstream handles integers.
type RosterEntry struct {
	GuildID     string `json:"guild_id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Owner       bool   `json:"owner"`
	Admin       bool   `json:"admin"`
	ManageGuild bool   `json:"manage_guild"`
	MemberCount int    `json:"member_count"`
}

// Administers reports whether the caller holds administrative rights over
// the guild: either as owner or through the administrator permission bit.
func (e RosterEntry) Administers() bool {
	return e.Owner || e.Admin
}
