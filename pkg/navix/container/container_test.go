package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/routing"
)

func TestStatusLifecycle(t *testing.T) {
	c := NewRouteContainer("asset.browser")
	assert.Equal(t, StatusEmpty, c.Status())

	c.Set("selected", 42)
	assert.Equal(t, StatusPrepared, c.Status())

	c.SetUIInstance("window")
	assert.Equal(t, StatusActive, c.Status())

	c.SetUIInstance(nil)
	assert.Equal(t, StatusOrphaned, c.Status())

	// clearing a detached container drops the orphaned memory
	c.Clear()
	assert.Equal(t, StatusEmpty, c.Status())
	c.Set("selected", 43)
	assert.Equal(t, StatusPrepared, c.Status())
}

func TestStatusUIWithoutDataIsEmpty(t *testing.T) {
	c := NewRouteContainer("asset.browser")
	c.SetUIInstance("window")
	assert.Equal(t, StatusEmpty, c.Status())

	// writing data while a UI is attached goes straight to active
	c.Set("k", "v")
	assert.Equal(t, StatusActive, c.Status())

	c.SetUIInstance(nil)
	assert.Equal(t, StatusOrphaned, c.Status())
}

func TestGetSetAndDefaults(t *testing.T) {
	c := NewRouteContainer("asset.browser")

	assert.Equal(t, "fallback", c.Get("missing", "fallback"))
	assert.Nil(t, c.Get("missing", nil))

	c.Set("count", 3)
	assert.Equal(t, 3, c.Get("count", 0))
	assert.True(t, c.Contains("count"))
	assert.False(t, c.Contains("missing"))
}

func TestMetadataTracksAccess(t *testing.T) {
	c := NewRouteContainer("asset.browser")
	c.Set("count", 1)

	meta := c.Metadata("count")
	require.NotNil(t, meta)
	assert.Equal(t, 1, meta.Value())
	assert.False(t, meta.CreatedAt().IsZero())
	created := meta.AccessCount()

	c.Get("count", nil)
	c.Set("count", 2)
	assert.Equal(t, created+2, meta.AccessCount())
	assert.False(t, meta.UpdatedAt().Before(meta.CreatedAt()))

	assert.Nil(t, c.Metadata("missing"))
}

func TestUpdateDeleteKeysItems(t *testing.T) {
	c := NewRouteContainer("asset.browser")
	c.Update(map[string]any{"a": 1, "b": 2, "c": 3})
	assert.Equal(t, 3, c.Len())
	assert.ElementsMatch(t, []string{"a", "b", "c"}, c.Keys())

	c.Delete("b")
	assert.Equal(t, map[string]any{"a": 1, "c": 3}, c.Items())
}

func TestManagerRegisterRouteInfersModule(t *testing.T) {
	m := NewManager()
	m.RegisterRoute(routing.Key("asset.browser"), "")
	m.RegisterRoute(routing.Key("asset.detail"), "")
	m.RegisterRoute(routing.Key("report.summary"), "reporting")

	assert.ElementsMatch(t, []string{"asset", "reporting"}, m.Modules())
	assert.ElementsMatch(t,
		[]string{"asset.browser", "asset.detail", "report.summary"}, m.Routes())
	assert.ElementsMatch(t, []string{"asset.browser", "asset.detail"},
		m.Module("asset").Routes())
}

func TestManagerContainerIdentity(t *testing.T) {
	m := NewManager()
	first := m.Container(routing.Key("asset.browser"))
	second := m.Container(routing.Key("asset.browser"))
	assert.Same(t, first, second)

	// unregistered routes still get a container under the inferred module
	assert.Same(t, first, m.Module("asset").RouteContainer("asset.browser"))
}

func TestManagerUIInstanceLifecycle(t *testing.T) {
	m := NewManager()
	key := routing.Key("asset.browser")
	m.RegisterRoute(key, "")
	m.Container(key).Set("selected", 1)

	m.SetUIInstance(key, "window")
	assert.Equal(t, StatusActive, m.Container(key).Status())
	assert.Equal(t, "window", m.Container(key).UIInstance())

	m.RemoveUIInstance(key)
	assert.Equal(t, StatusOrphaned, m.Container(key).Status())
}

func TestManagerStatusReport(t *testing.T) {
	m := NewManager()
	m.RegisterRoute(routing.Key("asset.browser"), "")
	m.RegisterRoute(routing.Key("asset.detail"), "")
	m.Container(routing.Key("asset.detail")).Set("id", 7)

	report := m.StatusReport()
	require.Contains(t, report, "asset")
	assert.Equal(t, StatusEmpty, report["asset"]["asset.browser"])
	assert.Equal(t, StatusPrepared, report["asset"]["asset.detail"])
}

func TestManagerCleanupOrphaned(t *testing.T) {
	m := NewManager()
	orphan := routing.Key("asset.browser")
	kept := routing.Key("asset.detail")

	m.Container(orphan).Set("stale", true)
	m.SetUIInstance(orphan, "window")
	m.RemoveUIInstance(orphan)
	m.Container(kept).Set("fresh", true)

	require.Equal(t, StatusOrphaned, m.Container(orphan).Status())

	m.CleanupOrphaned()
	assert.Equal(t, StatusEmpty, m.Container(orphan).Status())
	assert.Equal(t, StatusPrepared, m.Container(kept).Status())
	assert.True(t, m.Container(kept).Contains("fresh"))
}

func TestManagerReset(t *testing.T) {
	m := NewManager()
	m.RegisterRoute(routing.Key("asset.browser"), "")
	m.Container(routing.Key("asset.browser")).Set("k", "v")

	m.Reset()
	assert.Empty(t, m.Routes())
	assert.Empty(t, m.Modules())
	assert.False(t, m.Container(routing.Key("asset.browser")).Contains("k"))
}
