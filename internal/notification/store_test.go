package notification

import (
	"fmt"
	"testing"
	"time"

	"PortfolioSentinel/internal/model"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func note(id string, ts time.Time) model.Notification {
	return model.Notification{ID: id, AlertID: "a-" + id, Symbol: "AAPL", Kind: model.AlertUpper, Timestamp: ts}
}

func ids(list []model.Notification) []string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.ID
	}
	return out
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := NewStore()
	s.Append(note("t2", t0.Add(2*time.Second)))
	s.Append(note("t1", t0.Add(1*time.Second)))
	s.Append(note("t3", t0.Add(3*time.Second)))

	assert.Equal(t, []string{"t3", "t2", "t1"}, ids(s.List()))
}

func TestStore_ListTiesKeepInsertionOrder(t *testing.T) {
	s := NewStore()
	s.Append(note("a", t0))
	s.Append(note("b", t0))
	s.Append(note("c", t0.Add(time.Second)))
	s.Append(note("d", t0))

	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(s.List()))
}

func TestStore_MarkAllReadThenAppend(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 0, s.MarkAllRead())

	s.Append(note("1", t0))
	s.Append(note("2", t0))
	_, err := s.MarkRead("1")
	require.NoError(t, err)
	assert.Equal(t, 1, s.UnreadCount())

	assert.Equal(t, 1, s.MarkAllRead())
	assert.Equal(t, 0, s.UnreadCount())

	s.Append(note("3", t0.Add(time.Minute)))
	assert.Equal(t, 1, s.UnreadCount())
}

func TestStore_MarkReadAndRemove(t *testing.T) {
	s := NewStore()
	s.Append(note("1", t0))

	n, err := s.MarkRead("1")
	require.NoError(t, err)
	assert.True(t, n.Read)

	_, err = s.MarkRead("missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	assert.ErrorIs(t, s.Remove("missing"), model.ErrNotFound)
	require.NoError(t, s.Remove("1"))
	assert.Equal(t, 0, s.Len())
	_, err = s.Get("1")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestProperty_ListOrderedByTimestampDescending(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("list is sorted newest first and stable on ties", prop.ForAll(
		func(offsets []int) bool {
			s := NewStore()
			for i, off := range offsets {
				s.Append(note(fmt.Sprintf("%03d", i), t0.Add(time.Duration(off)*time.Second)))
			}
			list := s.List()
			if len(list) != len(offsets) {
				return false
			}
			for i := 1; i < len(list); i++ {
				prev, cur := list[i-1], list[i]
				if prev.Timestamp.Before(cur.Timestamp) {
					return false
				}
				if prev.Timestamp.Equal(cur.Timestamp) && prev.ID > cur.ID {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 5)),
	))

	properties.TestingRun(t)
}
