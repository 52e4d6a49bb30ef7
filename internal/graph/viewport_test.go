package graph

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func TestGraph_Viewport_scrollClamps(t *testing.T) {
	t.Parallel()

	v := NewViewport(clockwork.NewFakeClock())
	require.True(t, v.Live())
	require.Empty(t, v.NotLiveLabel())

	v.ScrollBy(5)
	require.Equal(t, 5, v.Scroll())
	require.False(t, v.Live())
	require.Equal(t, "NOT LIVE -5: ", v.NotLiveLabel())

	v.ScrollBy(-20)
	require.Equal(t, 0, v.Scroll())
	require.True(t, v.Live())

	v.SetScroll(-1)
	require.Equal(t, 0, v.Scroll())
}

func TestGraph_Viewport_justWentLive(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	v := NewViewport(clock)
	require.False(t, v.JustWentLive(), "starting live is not a transition")

	v.SetScroll(10)
	require.False(t, v.JustWentLive())

	v.SetScroll(0)
	require.True(t, v.JustWentLive())

	clock.Advance(900 * time.Millisecond)
	require.True(t, v.JustWentLive())

	clock.Advance(200 * time.Millisecond)
	require.False(t, v.JustWentLive())

	// Setting zero again while already live does not restart the banner.
	v.SetScroll(0)
	require.False(t, v.JustWentLive())

	v.ScrollBy(1)
	v.ScrollBy(-1)
	require.True(t, v.JustWentLive())
	v.ScrollBy(3)
	require.False(t, v.JustWentLive())
}
