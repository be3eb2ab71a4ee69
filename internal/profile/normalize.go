// profile приводит «сырой» профиль каталога к виду, пригодному для отрисовки,
// и извлекает из него идентичности для ссылок (fid, адрес кошелька).
package profile

import (
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pribylovaa/icebreaker-frame/internal/models"
)

// PlaceholderAvatar — аватар по умолчанию (путь относительно ассетов фрейма).
const PlaceholderAvatar = "/avatar_black.png"

// cloudinaryAvatarURL — прокси изображений Warpcast, который отдаёт битые картинки.
const cloudinaryAvatarURL = "https://res.cloudinary.com/merkle-manufactory"

var (
	// Префикс прокси: .../image/fetch/<опции>/ — всё после него URL-encoded оригинал.
	cloudinaryFetchPrefix = regexp.MustCompile(`^https://res\.cloudinary\.com/merkle-manufactory/image/fetch/.*?/`)
	protocolPrefix        = regexp.MustCompile(`^(\w+:|)//`)

	// Расширения, которые рендер не умеет показывать.
	brokenImageExtensions = []string{".webp"}

	// Удостоверения, которые выводятся отдельными бейджами.
	highlightedCredentials = []string{"qBuilder", "Feather Ice"}
)

// Normalize строит RenderedProfile. nil на входе — nil на выходе.
// Списки в результате никогда не nil.
func Normalize(p *models.Profile) *models.RenderedProfile {
	if p == nil {
		return nil
	}

	displayName := p.DisplayName
	if displayName == "" {
		displayName = TruncateAddress(p.WalletAddress)
	}

	return &models.RenderedProfile{
		AvatarURL:              avatarURL(p.AvatarURL),
		DisplayName:            displayName,
		Bio:                    p.Bio,
		JobTitle:               p.JobTitle,
		Location:               p.Location,
		NetworkingStatus:       p.NetworkingStatus,
		PrimarySkill:           p.PrimarySkill,
		CredentialsCount:       len(p.Credentials),
		VerifiedChannels:       verifiedChannels(p.Channels),
		VerifiedCompanies:      verifiedCompanies(p.WorkExperience),
		HighlightedCredentials: highlighted(p.Credentials),
	}
}

// TruncateAddress сокращает адрес до 0xABCD...7890 (6 первых и 4 последних символа).
// Для адресов короче 10 символов возвращает пустую строку.
// Символы считаются по рунам, чтобы результат оставался валидным UTF-8.
func TruncateAddress(address string) string {
	r := []rune(address)
	if len(r) < 10 {
		return ""
	}

	return string(r[:6]) + "..." + string(r[len(r)-4:])
}

// SanitizeAvatarURL разворачивает ссылки прокси Cloudinary в исходный URL.
func SanitizeAvatarURL(raw string) string {
	if !strings.HasPrefix(raw, cloudinaryAvatarURL) {
		return raw
	}

	rest := cloudinaryFetchPrefix.ReplaceAllString(raw, "")
	decoded, err := url.QueryUnescape(rest)
	if err != nil {
		// Битая percent-последовательность: отдаём без декодирования.
		return rest
	}
	if !utf8.ValidString(decoded) {
		// %FF и подобные дают байты вне UTF-8, которые не переживут JSON состояния.
		return rest
	}

	return decoded
}

func avatarURL(raw string) string {
	if raw == "" {
		return PlaceholderAvatar
	}

	lower := strings.ToLower(raw)
	for _, ext := range brokenImageExtensions {
		if strings.HasSuffix(lower, ext) {
			return PlaceholderAvatar
		}
	}

	if s := SanitizeAvatarURL(raw); s != "" {
		return s
	}

	return PlaceholderAvatar
}

func verifiedChannels(channels []models.Channel) []string {
	out := make([]string, 0, len(channels))
	for _, ch := range channels {
		if ch.IsVerified {
			out = append(out, ch.Type)
		}
	}

	return out
}

func verifiedCompanies(jobs []models.WorkExperience) []string {
	out := make([]string, 0, len(jobs))
	for _, job := range jobs {
		if !job.IsVerified || job.OrgWebsite == "" {
			continue
		}

		domain := protocolPrefix.ReplaceAllString(job.OrgWebsite, "")
		out = append(out, strings.TrimSuffix(domain, "/"))
	}

	return out
}

func highlighted(creds []models.Credential) []string {
	out := make([]string, 0)
	for _, c := range creds {
		if slices.Contains(highlightedCredentials, c.Name) {
			out = append(out, c.Name)
		}
	}

	return out
}

// FIDFromChannels достаёт Farcaster ID из метаданных первого farcaster-канала.
// 0 — fid не найден или не число.
func FIDFromChannels(channels []models.Channel) uint64 {
	for _, ch := range channels {
		if ch.Type != "farcaster" {
			continue
		}

		for _, m := range ch.Metadata {
			if m.Name != "fid" {
				continue
			}

			fid, ok := m.Value.Uint64()
			if !ok {
				return 0
			}

			return fid
		}

		return 0
	}

	return 0
}

// ProfileLink — каноническая ссылка на полный профиль в приложении Icebreaker.
//
// Порядок разрешения: fid из farcaster-канала, затем адрес кошелька,
// иначе корень приложения.
func ProfileLink(appURL string, p *models.Profile) string {
	if p == nil {
		return appURL
	}

	if fid := FIDFromChannels(p.Channels); fid != 0 {
		return appURL + "/fid/" + strconv.FormatUint(fid, 10)
	}

	if p.WalletAddress != "" {
		return appURL + "/eth/" + url.PathEscape(p.WalletAddress)
	}

	return appURL
}
