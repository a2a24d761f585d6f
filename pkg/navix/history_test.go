package navix

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryTouchDeduplicates(t *testing.T) {
	h := NewHistory(10)
	h.Touch("asset.browser")
	h.Touch("asset.detail")
	h.Touch("asset.browser")

	assert.Equal(t, []string{"asset.detail", "asset.browser"}, h.Entries())
	assert.Equal(t, 2, h.Len())
}

func TestHistoryEvictsOldestBeyondBound(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 5; i++ {
		h.Touch(fmt.Sprintf("module.route_%d", i))
	}

	assert.Equal(t, []string{"module.route_2", "module.route_3", "module.route_4"}, h.Entries())
}

func TestHistoryPopAndPeek(t *testing.T) {
	h := NewHistory(10)

	_, ok := h.Pop()
	assert.False(t, ok)
	_, ok = h.Peek()
	assert.False(t, ok)

	h.Touch("a.b")
	h.Touch("c.d")

	top, ok := h.Peek()
	require.True(t, ok)
	assert.Equal(t, "c.d", top)
	assert.Equal(t, 2, h.Len())

	popped, ok := h.Pop()
	require.True(t, ok)
	assert.Equal(t, "c.d", popped)
	assert.Equal(t, 1, h.Len())
}

func TestHistoryRemove(t *testing.T) {
	h := NewHistory(10)
	h.Touch("a.b")
	h.Touch("c.d")
	h.Touch("e.f")

	h.Remove("c.d")
	assert.Equal(t, []string{"a.b", "e.f"}, h.Entries())

	h.Remove("never.there")
	assert.Equal(t, 2, h.Len())
}

func TestHistoryRemoveFunc(t *testing.T) {
	h := NewHistory(10)
	h.Touch("asset.browser")
	h.Touch("asset.detail#one")
	h.Touch("report.summary")

	h.RemoveFunc(func(key string) bool {
		r, _, _ := parseFleetKey(key)
		return r == "asset.detail"
	})
	assert.Equal(t, []string{"asset.browser", "report.summary"}, h.Entries())
}

func TestHistoryDefaultBound(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < defaultMaxHistory+10; i++ {
		h.Touch(fmt.Sprintf("module.route_%d", i))
	}
	assert.Equal(t, defaultMaxHistory, h.Len())
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(10)
	h.Touch("a.b")
	h.Clear()
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Entries())
}

func TestFleetKeyRoundtrip(t *testing.T) {
	tests := []struct {
		route, instance, endpoint string
		want                      string
	}{
		{"asset.browser", "", "", "asset.browser"},
		{"asset.browser", "one", "", "asset.browser#one"},
		{"asset.browser", "", "prod", "asset.browser@prod"},
		{"asset.browser", "one", "prod", "asset.browser@prod#one"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			key := makeFleetKey(tt.route, tt.instance, tt.endpoint)
			assert.Equal(t, tt.want, key)

			r, inst, ep := parseFleetKey(key)
			assert.Equal(t, tt.route, r)
			assert.Equal(t, tt.instance, inst)
			assert.Equal(t, tt.endpoint, ep)
		})
	}
}
