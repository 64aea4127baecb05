package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BubbleXIV/dashboard-new/internal/domain"
	"github.com/BubbleXIV/dashboard-new/internal/filestore"
)

// Snapshot document names, one per entity kind.
const (
	docUsers     = "users"
	docGuilds    = "guilds"
	docEvents    = "attendance_events"
	docForms     = "forms"
	docGiveaways = "giveaways"
	docStreams   = "stream_subscriptions"
)

// recordsKey is the single key under which each document stores its records.
const recordsKey = "records"

// persistRecords serializes a full collection into its named document. The
// codec surfaces a failed write exactly once; no retry happens here.
func persistRecords[T any](files *filestore.Store, name string, records []T) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("serialize %s snapshot: %w", name, err)
	}
	return files.Write(name, filestore.Document{recordsKey: raw})
}

// loadRecords reads a collection back from its named document. A missing
// document yields an empty collection.
func loadRecords[T any](files *filestore.Store, name string) ([]T, error) {
	doc, err := files.Read(name)
	if err != nil {
		return nil, err
	}
	raw, ok := doc[recordsKey]
	if !ok {
		return nil, nil
	}
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse %s snapshot: %w", name, err)
	}
	return records, nil
}

// Load restores all six collections from their snapshot documents. Called
// once at startup, before the server accepts requests.
func (s *Service) Load(ctx context.Context) error {
	users, err := loadRecords[domain.User](s.files, docUsers)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].AccessToken != "" {
			if users[i].AccessToken, err = s.crypto.Decrypt(users[i].AccessToken); err != nil {
				return fmt.Errorf("decrypt access token for user %s: %w", users[i].ID, err)
			}
		}
		if users[i].RefreshToken != "" {
			if users[i].RefreshToken, err = s.crypto.Decrypt(users[i].RefreshToken); err != nil {
				return fmt.Errorf("decrypt refresh token for user %s: %w", users[i].ID, err)
			}
		}
	}
	s.stores.Users.Restore(ctx, users)

	guilds, err := loadRecords[domain.Guild](s.files, docGuilds)
	if err != nil {
		return err
	}
	s.stores.Guilds.Restore(ctx, guilds)

	events, err := loadRecords[domain.AttendanceEvent](s.files, docEvents)
	if err != nil {
		return err
	}
	s.stores.Events.Restore(ctx, events)

	forms, err := loadRecords[domain.Form](s.files, docForms)
	if err != nil {
		return err
	}
	s.stores.Forms.Restore(ctx, forms)

	giveaways, err := loadRecords[domain.Giveaway](s.files, docGiveaways)
	if err != nil {
		return err
	}
	s.stores.Giveaways.Restore(ctx, giveaways)

	streams, err := loadRecords[domain.StreamSubscription](s.files, docStreams)
	if err != nil {
		return err
	}
	s.stores.Streams.Restore(ctx, streams)

	return nil
}

// persistUsers writes the user collection with credentials encrypted at
// rest. Empty credential fields stay empty rather than becoming ciphertext.
func (s *Service) persistUsers(ctx context.Context) error {
	users := s.stores.Users.All(ctx)
	for i := range users {
		var err error
		if users[i].AccessToken != "" {
			if users[i].AccessToken, err = s.crypto.Encrypt(users[i].AccessToken); err != nil {
				return fmt.Errorf("encrypt access token for user %s: %w", users[i].ID, err)
			}
		}
		if users[i].RefreshToken != "" {
			if users[i].RefreshToken, err = s.crypto.Encrypt(users[i].RefreshToken); err != nil {
				return fmt.Errorf("encrypt refresh token for user %s: %w", users[i].ID, err)
			}
		}
	}
	return persistRecords(s.files, docUsers, users)
}

func (s *Service) persistGuilds(ctx context.Context) error {
	return persistRecords(s.files, docGuilds, s.stores.Guilds.All(ctx))
}

func (s *Service) persistEvents(ctx context.Context) error {
	return persistRecords(s.files, docEvents, s.stores.Events.All(ctx))
}

func (s *Service) persistForms(ctx context.Context) error {
	return persistRecords(s.files, docForms, s.stores.Forms.All(ctx))
}

func (s *Service) persistGiveaways(ctx context.Context) error {
	return persistRecords(s.files, docGiveaways, s.stores.Giveaways.All(ctx))
}

func (s *Service) persistStreams(ctx context.Context) error {
	return persistRecords(s.files, docStreams, s.stores.Streams.All(ctx))
}
