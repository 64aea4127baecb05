package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BubbleXIV/dashboard-new/internal/domain"
	apperrors "github.com/BubbleXIV/dashboard-new/internal/errors"
)

func TestHandleCreateEvent_AssignsGuildFromPath(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t)
	guild := ts.seedGuild(t, "g1", "Alpha")

	body := `{"guild_id":"spoofed","name":"Raid Night","event_date":"2025-07-01T20:00:00Z","roles":[{"name":"Tank","required":2}]}`
	c, rec := ts.authedContext(user.ID, http.MethodPost, "/api/guilds/"+guild.ID+"/events", body)
	c.SetParamNames("id")
	c.SetParamValues(guild.ID)

	require.NoError(t, ts.srv.handleCreateEvent(c))
	assert.Equal(t, 201, rec.Code)

	var event domain.AttendanceEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &event))
	assert.Equal(t, guild.ID, event.GuildID, "guild comes from the path, not the payload")
	assert.Equal(t, "Raid Night", event.Name)
	require.Len(t, event.Roles, 1)
	assert.Equal(t, 2, event.Roles[0].Required)
	assert.NotNil(t, event.Attendees, "absent list fields default to empty, not null")
}

func TestHandleCreateEvent_RequiresName(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t)
	guild := ts.seedGuild(t, "g1", "Alpha")

	c, _ := ts.authedContext(user.ID, http.MethodPost, "/api/guilds/"+guild.ID+"/events", `{"name":"  "}`)
	c.SetParamNames("id")
	c.SetParamValues(guild.ID)

	err := ts.srv.handleCreateEvent(c)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.TypeValidation, appErr.Type)
}

func TestHandleListEvents_NewestEventDateFirst(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t)
	guild := ts.seedGuild(t, "g1", "Alpha")

	for _, e := range []struct{ name, date string }{
		{"January", "2025-01-01T00:00:00Z"},
		{"February", "2025-02-01T00:00:00Z"},
	} {
		c, _ := ts.authedContext(user.ID, http.MethodPost, "/api/guilds/"+guild.ID+"/events",
			`{"name":"`+e.name+`","event_date":"`+e.date+`"}`)
		c.SetParamNames("id")
		c.SetParamValues(guild.ID)
		require.NoError(t, ts.srv.handleCreateEvent(c))
	}

	c, rec := ts.authedContext(user.ID, http.MethodGet, "/api/guilds/"+guild.ID+"/events", "")
	c.SetParamNames("id")
	c.SetParamValues(guild.ID)
	require.NoError(t, ts.srv.handleListEvents(c))

	var events []domain.AttendanceEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, "February", events[0].Name)
	assert.Equal(t, "January", events[1].Name)
}

func TestHandleUpdateEvent_NotFound(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t)

	c, _ := ts.authedContext(user.ID, http.MethodPatch, "/api/events/missing", `{"name":"x"}`)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := ts.srv.handleUpdateEvent(c)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.TypeNotFound, appErr.Type)
}

func TestHandleCreateForm_RejectsUnknownQuestionType(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t)
	guild := ts.seedGuild(t, "g1", "Alpha")

	body := `{"name":"Application","questions":[{"id":"q1","type":"essay","prompt":"Why?"}]}`
	c, _ := ts.authedContext(user.ID, http.MethodPost, "/api/guilds/"+guild.ID+"/forms", body)
	c.SetParamNames("id")
	c.SetParamValues(guild.ID)

	err := ts.srv.handleCreateForm(c)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.TypeValidation, appErr.Type)
}

func TestHandleCreateForm_AndFetch(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t)
	guild := ts.seedGuild(t, "g1", "Alpha")

	body := `{"name":"Application","questions":[{"id":"q1","type":"short_text","prompt":"Character name","required":true}]}`
	c, rec := ts.authedContext(user.ID, http.MethodPost, "/api/guilds/"+guild.ID+"/forms", body)
	c.SetParamNames("id")
	c.SetParamValues(guild.ID)
	require.NoError(t, ts.srv.handleCreateForm(c))

	var form domain.Form
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &form))
	assert.False(t, form.Active, "forms start inactive")

	c, rec = ts.authedContext(user.ID, http.MethodGet, "/api/forms/"+form.ID, "")
	c.SetParamNames("id")
	c.SetParamValues(form.ID)
	require.NoError(t, ts.srv.handleGetForm(c))
	assert.Equal(t, 200, rec.Code)
}

func TestHandleCreateGiveaway_RejectsZeroWinners(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t)
	guild := ts.seedGuild(t, "g1", "Alpha")

	body := `{"title":"Mount Giveaway","winner_count":0}`
	c, _ := ts.authedContext(user.ID, http.MethodPost, "/api/guilds/"+guild.ID+"/giveaways", body)
	c.SetParamNames("id")
	c.SetParamValues(guild.ID)

	err := ts.srv.handleCreateGiveaway(c)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.TypeValidation, appErr.Type)
}

func TestHandleCreateStream_IgnoresLiveStatusFields(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t)
	guild := ts.seedGuild(t, "g1", "Alpha")

	body := `{"streamer":"alice","notify_channel":"c1","live":true,"viewer_count":9000}`
	c, rec := ts.authedContext(user.ID, http.MethodPost, "/api/guilds/"+guild.ID+"/streams", body)
	c.SetParamNames("id")
	c.SetParamValues(guild.ID)

	require.NoError(t, ts.srv.handleCreateStream(c))
	assert.Equal(t, 201, rec.Code)

	var sub domain.StreamSubscription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))
	assert.Equal(t, "alice", sub.Streamer)
	assert.False(t, sub.Live, "live status belongs to the poller")
	assert.Zero(t, sub.ViewerCount)
}

func TestHandleDeleteStream_ThenGone(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t)
	guild := ts.seedGuild(t, "g1", "Alpha")

	c, rec := ts.authedContext(user.ID, http.MethodPost, "/api/guilds/"+guild.ID+"/streams", `{"streamer":"alice"}`)
	c.SetParamNames("id")
	c.SetParamValues(guild.ID)
	require.NoError(t, ts.srv.handleCreateStream(c))

	var sub domain.StreamSubscription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))

	c, rec = ts.authedContext(user.ID, http.MethodDelete, "/api/streams/"+sub.ID, "")
	c.SetParamNames("id")
	c.SetParamValues(sub.ID)
	require.NoError(t, ts.srv.handleDeleteStream(c))
	assert.Equal(t, 204, rec.Code)

	c, _ = ts.authedContext(user.ID, http.MethodDelete, "/api/streams/"+sub.ID, "")
	c.SetParamNames("id")
	c.SetParamValues(sub.ID)
	err := ts.srv.handleDeleteStream(c)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.TypeNotFound, appErr.Type)
}
