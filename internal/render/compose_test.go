package render

import (
	"strings"
	"testing"

	"github.com/pribylovaa/icebreaker-frame/internal/models"
	"github.com/stretchr/testify/require"
)

const assets = "https://frame.example.com"

func sample() *models.RenderedProfile {
	return &models.RenderedProfile{
		AvatarURL:              "/avatar_black.png",
		DisplayName:            "alice.eth",
		Bio:                    "building things",
		JobTitle:               "Engineer",
		Location:               "Lisbon",
		NetworkingStatus:       "open_to_work",
		PrimarySkill:           "go",
		CredentialsCount:       7,
		VerifiedChannels:       []string{"github", "discord"},
		VerifiedCompanies:      []string{"acme.com"},
		HighlightedCredentials: []string{"qBuilder", "Feather Ice"},
	}
}

func collect(root *Node) (images, texts []string) {
	root.Walk(func(n *Node) {
		switch n.Kind {
		case KindImage:
			images = append(images, n.Src)
		case KindText:
			texts = append(texts, n.Text)
		case KindBadge:
			texts = append(texts, n.Text)
			if n.Icon != "" {
				images = append(images, n.Icon)
			}
		}
	})
	return images, texts
}

func TestCompose_Placeholder(t *testing.T) {
	t.Parallel()

	root := NewComposer(assets + "/").Compose(nil)
	require.Equal(t, Width, root.Width)
	require.Equal(t, Height, root.Height)
	require.Equal(t, ColorBackground, root.Fill)

	images, texts := collect(root)
	require.Equal(t, []string{assets + "/image.png"}, images)
	require.Empty(t, texts)
}

func TestCompose_InlinesLocalAssets(t *testing.T) {
	t.Parallel()

	c := NewComposer(assets)
	c.Inline = func(path string) (string, bool) {
		if path == "/github.png" || path == "/avatar_black.png" {
			return "data:image/png;base64," + strings.TrimPrefix(path, "/"), true
		}
		return "", false
	}

	images, _ := collect(c.Compose(sample()))
	require.Contains(t, images, "data:image/png;base64,avatar_black.png")
	require.Contains(t, images, "data:image/png;base64,github.png")
	require.Contains(t, images, assets+"/unknown.png")
}

func TestCompose_FullProfile(t *testing.T) {
	t.Parallel()

	images, texts := collect(NewComposer(assets).Compose(sample()))

	require.Equal(t, []string{
		assets + "/avatar_black.png",
		assets + "/location.png",
		assets + "/verified.png",
		assets + "/verified.png",
		assets + "/warning.png",
		assets + "/github.png",
		assets + "/unknown.png",
	}, images)

	require.Equal(t, []string{
		"alice.eth",
		"Engineer",
		"building things",
		"Lisbon",
		"acme.com",
		"qBuilder",
		"Feather Ice",
		"OPEN_TO_WORK",
		"GO",
		"7 credentials",
	}, texts)
}

func TestCompose_MinimalProfileSkipsOptionalBlocks(t *testing.T) {
	t.Parallel()

	p := &models.RenderedProfile{AvatarURL: "https://cdn.example.com/a.png", DisplayName: "0x1111...1111"}
	images, texts := collect(NewComposer(assets).Compose(p))

	require.Equal(t, []string{"https://cdn.example.com/a.png"}, images)
	require.Equal(t, []string{"0x1111...1111", "0 credentials"}, texts)
}

func TestCompose_AvatarIsCircular(t *testing.T) {
	t.Parallel()

	var avatar *Node
	NewComposer(assets).Compose(sample()).Walk(func(n *Node) {
		if avatar == nil && n.Kind == KindImage {
			avatar = n
		}
	})

	require.NotNil(t, avatar)
	require.Equal(t, 96, avatar.Size)
	require.Equal(t, 48, avatar.Radius)
}

func TestChannelIcon(t *testing.T) {
	t.Parallel()

	for _, known := range KnownChannelIcons {
		require.Equal(t, "/"+known+".png", ChannelIcon(known))
	}
	require.Equal(t, "/unknown.png", ChannelIcon("discord"))
	require.Equal(t, "/unknown.png", ChannelIcon(""))
}

func TestWrap(t *testing.T) {
	t.Parallel()

	require.Nil(t, wrap("   ", 20, 500, 3))
	require.Equal(t, []string{"short"}, wrap("short", 20, 500, 3))

	long := strings.Repeat("word ", 200)
	lines := wrap(long, 20, 300, 2)
	require.Len(t, lines, 2)
	require.True(t, strings.HasSuffix(lines[1], "…"))
	for _, l := range lines {
		require.LessOrEqual(t, textWidth(l, 20), 300)
	}

	// Одно слово шире строки обрезается.
	one := wrap(strings.Repeat("x", 100), 20, 200, 0)
	require.Len(t, one, 1)
	require.True(t, strings.HasSuffix(one[0], "…"))
}
