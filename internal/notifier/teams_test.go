package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNotice() Notice {
	return Notice{
		RoomName:  "Room A",
		Title:     "Design Review",
		TimeRange: "01/02 10:00 ~ 01/02 11:00",
		UserName:  "Alice",
		Attendees: "Bob, Carol",
	}
}

func TestSendReservationCard_PostsAdaptiveCard(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewTeamsNotifier(srv.URL)
	require.NoError(t, n.SendReservationCard(context.Background(), sampleNotice()))

	assert.Equal(t, "message", received["type"])
	attachments, ok := received["attachments"].([]any)
	require.True(t, ok)
	require.Len(t, attachments, 1)

	attachment := attachments[0].(map[string]any)
	assert.Equal(t, "application/vnd.microsoft.card.adaptive", attachment["contentType"])

	card := attachment["content"].(map[string]any)
	assert.Equal(t, "AdaptiveCard", card["type"])
	assert.Equal(t, "1.4", card["version"])

	body := card["body"].([]any)
	require.Len(t, body, 6)
	texts := make([]string, len(body))
	for i, block := range body {
		texts[i] = block.(map[string]any)["text"].(string)
	}
	assert.Equal(t, "Meeting Room Reservation", texts[0])
	assert.Equal(t, "Room: Room A", texts[1])
	assert.Equal(t, "Title: Design Review", texts[2])
	assert.Equal(t, "Time: 01/02 10:00 ~ 01/02 11:00", texts[3])
	assert.Equal(t, "Booked by: Alice", texts[4])
	assert.Equal(t, "Attendees: Bob, Carol", texts[5])
}

func TestSendReservationCard_OmitsEmptyAttendees(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	notice := sampleNotice()
	notice.Attendees = ""
	n := NewTeamsNotifier(srv.URL)
	require.NoError(t, n.SendReservationCard(context.Background(), notice))

	card := received["attachments"].([]any)[0].(map[string]any)["content"].(map[string]any)
	assert.Len(t, card["body"].([]any), 5)
}

func TestSendReservationCard_DisabledWithoutURL(t *testing.T) {
	n := NewTeamsNotifier("")
	assert.NoError(t, n.SendReservationCard(context.Background(), sampleNotice()))
}

func TestSendReservationCard_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewTeamsNotifier(srv.URL)
	err := n.SendReservationCard(context.Background(), sampleNotice())
	assert.ErrorContains(t, err, "502")
}

func TestSendReservationCard_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	n := NewTeamsNotifier(url)
	assert.Error(t, n.SendReservationCard(context.Background(), sampleNotice()))
}
