package streamEvents

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventTicketing/internal/http-server/handlers/event/streamEvents/mocks"
	"eventTicketing/internal/lib/logger/handlers/slogdiscard"
	"eventTicketing/internal/models"
	"eventTicketing/internal/storage/memory"
	"eventTicketing/internal/store/events"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func readFrame(t *testing.T, r *bufio.Reader) []models.Event {
	t.Helper()

	var eventLine, dataLine string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)

		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event: "):
			eventLine = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataLine = strings.TrimPrefix(line, "data: ")
		case line == "" && dataLine != "":
			assert.Equal(t, "snapshot", eventLine)

			var list []models.Event
			require.NoError(t, json.Unmarshal([]byte(dataLine), &list))

			return list
		}
	}
}

func TestStreamEvents_ReplaysAndFollowsMutations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	store, err := events.New(ctx, memory.New(), events.WithSeed([]models.Event{
		{ID: "1", Title: "Seeded", Price: decimal.NewFromInt(100), MaxTickets: 10, Status: models.StatusActive},
	}))
	require.NoError(t, err)

	srv := httptest.NewServer(New(slogdiscard.NewDiscardLogger(), store))
	defer srv.Close()

	reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))

	reader := bufio.NewReader(resp.Body)

	initial := readFrame(t, reader)
	require.Len(t, initial, 1)
	assert.Equal(t, "Seeded", initial[0].Title)

	require.NoError(t, store.Add(ctx, models.Event{ID: "2", Title: "Added", MaxTickets: 5}))

	next := readFrame(t, reader)
	require.Len(t, next, 2)
	assert.Equal(t, "Added", next[1].Title)

	require.NoError(t, store.Remove(ctx, "1"))

	last := readFrame(t, reader)
	require.Len(t, last, 1)
	assert.Equal(t, "2", last[0].ID)
}

func TestStreamEvents_UnsubscribesOnDisconnect(t *testing.T) {
	t.Parallel()

	unsubscribed := make(chan struct{})

	subscriber := mocks.NewEventsSubscriber(t)
	subscriber.On("Subscribe", mock.Anything).
		Run(func(args mock.Arguments) {
			fn := args.Get(0).(events.Subscriber)
			fn([]models.Event{{ID: "1"}})
		}).
		Return(func() { close(unsubscribed) }).
		Once()

	srv := httptest.NewServer(New(slogdiscard.NewDiscardLogger(), subscriber))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)

	list := readFrame(t, bufio.NewReader(resp.Body))
	require.Len(t, list, 1)

	require.NoError(t, resp.Body.Close())

	select {
	case <-unsubscribed:
	case <-time.After(5 * time.Second):
		t.Fatal("handler did not unsubscribe after client disconnect")
	}
}
