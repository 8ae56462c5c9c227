package wishlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddIsIdempotent(t *testing.T) {
	l := NewLedger(nil)

	assert.True(t, l.Add("p1"))
	assert.False(t, l.Add("p1"), "duplicate add must be a no-op")

	require.Equal(t, 1, l.Count())
	assert.True(t, l.Contains("p1"))
}

func TestAddRecordsTimestamp(t *testing.T) {
	l := NewLedger(nil)
	stamp := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	l.now = func() time.Time { return stamp }

	l.Add("p1")

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, stamp, items[0].AddedAt)
	assert.NotEmpty(t, items[0].ID)
	assert.Equal(t, "p1", items[0].ProductID)
}

func TestRemoveIsIdempotent(t *testing.T) {
	l := NewLedger(nil)
	l.Add("p1")

	assert.True(t, l.Remove("p1"))
	assert.False(t, l.Remove("p1"))
	assert.False(t, l.Remove("never-added"))
	assert.Zero(t, l.Count())
}

func TestToggle(t *testing.T) {
	l := NewLedger(nil)

	assert.True(t, l.Toggle("p1"), "toggle on an absent product adds it")
	assert.True(t, l.Contains("p1"))

	assert.False(t, l.Toggle("p1"), "toggle on a present product removes it")
	assert.False(t, l.Contains("p1"))
	assert.Zero(t, l.Count())
}

func TestClear(t *testing.T) {
	l := NewLedger(nil)
	l.Add("p1")
	l.Add("p2")
	l.Add("p3")

	l.Clear()

	assert.Zero(t, l.Count())
	assert.Empty(t, l.Items())

	// clearing twice is fine
	l.Clear()
	assert.Zero(t, l.Count())
}

func TestItemsReturnsCopy(t *testing.T) {
	l := NewLedger(nil)
	l.Add("p1")

	items := l.Items()
	items[0].ProductID = "tampered"

	assert.True(t, l.Contains("p1"))
	assert.False(t, l.Contains("tampered"))
}
