package hub

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"fabricfwd/internal/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func readLine(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	return strings.TrimRight(line, "\n")
}

func TestHubStreamsEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := New(zaptest.NewLogger(t))
	bus := service.NewEventBus()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.Run(ctx)
	}()
	forwarded := h.Forward(ctx, bus)

	srv := httptest.NewServer(h)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	r := bufio.NewReader(resp.Body)
	assert.Equal(t, ": connected", readLine(t, r))
	assert.Equal(t, "", readLine(t, r))

	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	bus.Publish(service.Event{Type: service.EventSessionsReset, Payload: map[string]int{"dropped": 2}})
	assert.Equal(t, `data: {"type":"sessions_reset","payload":{"dropped":2}}`, readLine(t, r))

	resp.Body.Close()
	require.Eventually(t, func() bool { return h.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	srv.Close()
	cancel()
	<-done
	<-forwarded
}

func TestHubStopDisconnectsClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := New(nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.Run(ctx)
	}()

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	r := bufio.NewReader(resp.Body)
	readLine(t, r)
	readLine(t, r)

	cancel()
	<-done

	// The stream ends once the hub stops.
	_, err = r.ReadString('\n')
	assert.Error(t, err)

	// New clients are turned away.
	resp2, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp2.StatusCode)
}
