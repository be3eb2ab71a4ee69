package assets

import (
	"encoding/base64"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/icebreaker-frame/internal/profile"
	"github.com/pribylovaa/icebreaker-frame/internal/render"
)

func TestNames_CoverComposerAssets(t *testing.T) {
	t.Parallel()

	names := Names()
	want := []string{"image.png", "location.png", "verified.png", "warning.png", strings.TrimPrefix(profile.PlaceholderAvatar, "/")}
	for _, ch := range append(render.KnownChannelIcons, "not-a-channel") {
		want = append(want, strings.TrimPrefix(render.ChannelIcon(ch), "/"))
	}

	for _, name := range want {
		require.Contains(t, names, name)
	}
}

func TestDataURI(t *testing.T) {
	t.Parallel()

	uri, ok := DataURI("/github.png")
	require.True(t, ok)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)

	want, err := fs.ReadFile(Static, "github.png")
	require.NoError(t, err)
	require.Equal(t, want, raw)

	same, ok := DataURI("github.png")
	require.True(t, ok)
	require.Equal(t, uri, same)

	_, ok = DataURI("/missing.png")
	require.False(t, ok)
}
