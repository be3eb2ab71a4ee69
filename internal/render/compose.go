// render — картинка фрейма: дерево раскладки профиля и его отрисовка в SVG.
package render

import (
	"slices"
	"strconv"
	"strings"

	"github.com/pribylovaa/icebreaker-frame/internal/models"
)

// Размер картинки (соотношение сторон 1.91:1).
const (
	Width  = 1146
	Height = 600
)

// Палитра.
const (
	ColorText       = "#EDEEF0"
	ColorBackground = "#111113"
	ColorMuted      = "#B0B4BA"
	ColorEmphasized = "#2E3135"
	ColorWhite      = "#FFFFFF"
)

const featherIce = "Feather Ice"

// KnownChannelIcons — каналы, для которых есть своя иконка; остальные — unknown.
var KnownChannelIcons = []string{
	"calendar", "ens", "email", "farcaster", "github",
	"linkedin", "telegram", "twitter", "wallet",
}

// Composer строит дерево раскладки. AssetsURL — корень, против которого
// разрешаются относительные пути картинок ("/location.png").
type Composer struct {
	AssetsURL string
	// Inline, если задан, подменяет локальный ассет data:-ссылкой:
	// SVG, открытый как <img>, внешние href не загружает.
	Inline func(path string) (string, bool)
}

func NewComposer(assetsURL string) *Composer {
	return &Composer{AssetsURL: strings.TrimRight(assetsURL, "/")}
}

// Compose возвращает корень дерева. nil — заглушка (фон и логотип).
func (c *Composer) Compose(p *models.RenderedProfile) *Node {
	root := &Node{
		Kind:   KindColumn,
		Width:  Width,
		Height: Height,
		Fill:   ColorBackground,
		PadX:   72,
		PadY:   72,
	}

	if p == nil {
		root.PadX, root.PadY = 0, 0
		logo := Image(c.asset("/image.png"), 0, 0)
		logo.Width, logo.Height = Width, Height
		root.Children = []*Node{logo}
		return root
	}

	details := Column(12,
		Text(p.DisplayName, 32, 500, ColorText),
		optionalText(p.JobTitle, 20, 600, ColorMuted, 1),
		optionalText(p.Bio, 20, 500, ColorText, 3),
		c.location(p.Location),
		c.companies(p.VerifiedCompanies),
		c.credentials(p.HighlightedCredentials),
		statusBadges(p.NetworkingStatus, p.PrimarySkill),
		Text(strconv.Itoa(p.CredentialsCount)+" credentials", 20, 600, ColorMuted),
		c.channels(p.VerifiedChannels),
	)

	root.Children = []*Node{
		Row(24, Image(c.resolve(p.AvatarURL), 96, 48), details),
	}

	return root
}

func optionalText(s string, size, weight int, color string, lines int) *Node {
	if s == "" {
		return nil
	}

	n := Text(s, size, weight, color)
	n.MaxLines = lines

	return n
}

func (c *Composer) location(loc string) *Node {
	if loc == "" {
		return nil
	}

	return Row(6, Image(c.asset("/location.png"), 20, 0), Text(loc, 18, 600, ColorText))
}

func (c *Composer) companies(domains []string) *Node {
	if len(domains) == 0 {
		return nil
	}

	badges := make([]*Node, 0, len(domains))
	for _, d := range domains {
		badges = append(badges, badge(d, c.asset("/verified.png"), false))
	}

	return Row(8, badges...)
}

func (c *Composer) credentials(names []string) *Node {
	if len(names) == 0 {
		return nil
	}

	badges := make([]*Node, 0, len(names))
	for _, name := range names {
		icon := c.asset("/verified.png")
		if name == featherIce {
			icon = c.asset("/warning.png")
		}
		badges = append(badges, badge(name, icon, false))
	}

	return Row(8, badges...)
}

func statusBadges(status, skill string) *Node {
	if status == "" && skill == "" {
		return nil
	}

	var badges []*Node
	for _, s := range []string{status, skill} {
		if s != "" {
			badges = append(badges, badge(s, "", true))
		}
	}

	return Row(8, badges...)
}

func badge(text, icon string, upper bool) *Node {
	weight := 600
	if upper {
		text = strings.ToUpper(text)
		weight = 900
	}

	n := &Node{
		Kind:       KindBadge,
		Text:       text,
		Size:       14,
		Weight:     weight,
		Color:      ColorWhite,
		Background: ColorEmphasized,
		Radius:     48,
		PadX:       12,
		PadY:       4,
	}

	if icon != "" {
		n.Icon = icon
		n.IconSize = 12
	}

	return n
}

func (c *Composer) channels(types []string) *Node {
	if len(types) == 0 {
		return nil
	}

	icons := make([]*Node, 0, len(types))
	for _, t := range types {
		icons = append(icons, Image(c.asset(ChannelIcon(t)), 20, 0))
	}

	return Row(8, icons...)
}

// ChannelIcon — путь иконки канала; неизвестные типы — /unknown.png.
func ChannelIcon(channelType string) string {
	if slices.Contains(KnownChannelIcons, channelType) {
		return "/" + channelType + ".png"
	}

	return "/unknown.png"
}

func (c *Composer) asset(path string) string {
	if c.Inline != nil {
		if uri, ok := c.Inline(path); ok {
			return uri
		}
	}

	return c.AssetsURL + path
}

// resolve разрешает относительный путь (аватар-заглушка) против ассетов.
func (c *Composer) resolve(src string) string {
	if strings.HasPrefix(src, "/") && !strings.HasPrefix(src, "//") {
		return c.asset(src)
	}

	return src
}
