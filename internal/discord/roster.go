package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/BubbleXIV/dashboard-new/internal/domain"
)

// Discord caps the guild list at 200 entries per page; the dashboard reads
// a single page, which covers any realistic administrator.
const maxGuildPage = 200

// RosterClient fetches the authenticated caller's guild list.
type RosterClient interface {
	FetchRoster(ctx context.Context, accessToken string) ([]domain.RosterEntry, error)
}

type rosterHTTPClient struct{}

func NewRosterClient() RosterClient {
	return rosterHTTPClient{}
}

// FetchRoster lists the caller's guilds with approximate member counts and
// decodes each permission bitmask into named capabilities.
func (rosterHTTPClient) FetchRoster(ctx context.Context, accessToken string) ([]domain.RosterEntry, error) {
	session, err := discordgo.New("Bearer " + accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	guilds, err := session.UserGuilds(maxGuildPage, "", "", true, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user guilds: %w", err)
	}

	entries := make([]domain.RosterEntry, 0, len(guilds))
	for _, guild := range guilds {
		entries = append(entries, domain.RosterEntry{
			GuildID:     guild.ID,
			Name:        guild.Name,
			Icon:        guild.Icon,
			Owner:       guild.Owner,
			Admin:       guild.Permissions&discordgo.PermissionAdministrator != 0,
			ManageGuild: guild.Permissions&discordgo.PermissionManageServer != 0,
			MemberCount: guild.ApproximateMemberCount,
		})
	}
	return entries, nil
}
