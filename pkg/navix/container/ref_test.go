package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/routing"
)

func TestRefSetGet(t *testing.T) {
	m := NewManager()
	title := NewRef[string](m, routing.Key("asset.browser"), "title")

	_, ok := title.Get()
	assert.False(t, ok)

	title.Set("Asset Browser")
	got, ok := title.Get()
	require.True(t, ok)
	assert.Equal(t, "Asset Browser", got)

	// visible through the untyped container API as well
	assert.Equal(t, "Asset Browser",
		m.Container(routing.Key("asset.browser")).Get("title", nil))
}

func TestRefGetOr(t *testing.T) {
	m := NewManager()
	count := NewRef[int](m, routing.Key("asset.browser"), "count")

	assert.Equal(t, 10, count.GetOr(10))
	count.Set(3)
	assert.Equal(t, 3, count.GetOr(10))
}

func TestRefTypeMismatch(t *testing.T) {
	m := NewManager()
	m.Container(routing.Key("asset.browser")).Set("count", "not an int")

	count := NewRef[int](m, routing.Key("asset.browser"), "count")
	_, ok := count.Get()
	assert.False(t, ok)
	assert.Equal(t, 0, count.GetOr(0))
	assert.Equal(t, "count", count.Key())
}
