package ledger

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fabricfwd/internal/domain"
)

var (
	h1 = domain.HostIDFromMAC(domain.MAC{0, 0, 0, 0, 0, 1})
	h2 = domain.HostIDFromMAC(domain.MAC{0, 0, 0, 0, 0, 2})
	h3 = domain.HostIDFromMAC(domain.MAC{0, 0, 0, 0, 0, 3})
)

func TestRecordIfAbsent(t *testing.T) {
	t.Run("first record inserts", func(t *testing.T) {
		l := New()
		assert.Equal(t, Inserted, l.RecordIfAbsent(h1, h2))
		assert.True(t, l.Contains(h1, h2))
		assert.Equal(t, 1, l.Len())
	})

	t.Run("second record is a no-op", func(t *testing.T) {
		l := New()
		first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return first }
		require.Equal(t, Inserted, l.RecordIfAbsent(h1, h2))

		l.now = func() time.Time { return first.Add(time.Hour) }
		assert.Equal(t, AlreadyPresent, l.RecordIfAbsent(h1, h2))

		sessions := l.Sessions()
		require.Len(t, sessions, 1)
		assert.Equal(t, first, sessions[0].CreatedAt, "existing record must not be updated")
	})

	t.Run("reverse pair is tracked separately", func(t *testing.T) {
		l := New()
		assert.Equal(t, Inserted, l.RecordIfAbsent(h1, h2))
		assert.Equal(t, Inserted, l.RecordIfAbsent(h2, h1))
		assert.Equal(t, 2, l.Len())
	})
}

func TestRecordIfAbsentConcurrent(t *testing.T) {
	l := New()
	const workers = 64

	results := make(chan Result, workers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results <- l.RecordIfAbsent(h1, h2)
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	inserted := 0
	for r := range results {
		if r == Inserted {
			inserted++
		}
	}
	assert.Equal(t, 1, inserted)
	assert.Equal(t, 1, l.Len())
}

func TestReset(t *testing.T) {
	l := New()
	l.RecordIfAbsent(h1, h2)
	l.RecordIfAbsent(h1, h3)

	assert.Equal(t, 2, l.Reset())
	assert.Equal(t, 0, l.Len())
	assert.False(t, l.Contains(h1, h2))

	// idempotent
	assert.Zero(t, l.Reset())
	assert.Equal(t, 0, l.Len())

	assert.Equal(t, Inserted, l.RecordIfAbsent(h1, h2), "reset must allow re-recording")
}

func TestResetDuringRecording(t *testing.T) {
	const writers, perWriter = 8, 200
	l := New()

	var wg sync.WaitGroup
	stop := make(chan struct{})
	var dropped int
	resetDone := make(chan struct{})
	go func() {
		defer close(resetDone)
		for {
			select {
			case <-stop:
				return
			default:
				dropped += l.Reset()
			}
		}
	}()

	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				src := domain.HostIDFromMAC(domain.MAC{0, 0, 0, 1, byte(w), 0})
				dst := domain.HostIDFromMAC(domain.MAC{0, 0, 0, 2, byte(i >> 8), byte(i)})
				assert.Equal(t, Inserted, l.RecordIfAbsent(src, dst))
			}
		}(w)
	}
	wg.Wait()
	close(stop)
	<-resetDone

	// every insert is either counted by some reset or still present
	assert.Equal(t, writers*perWriter, dropped+l.Len())
}

func TestDump(t *testing.T) {
	l := New()
	assert.Empty(t, l.Dump())

	base := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return base }
	l.RecordIfAbsent(h1, h2)
	l.now = func() time.Time { return base.Add(time.Second) }
	l.RecordIfAbsent(h2, h1)

	lines := strings.Split(strings.TrimSpace(l.Dump()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "--- Sat, 17 Oct 2026 12:00:00 UTC from 00:00:00:00:00:01 to 00:00:00:00:00:02", lines[0])
	assert.Contains(t, lines[1], "from 00:00:00:00:00:02 to 00:00:00:00:00:01")
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "inserted", Inserted.String())
	assert.Equal(t, "already_present", AlreadyPresent.String())
	assert.Equal(t, "unknown", Result(7).String())
}
