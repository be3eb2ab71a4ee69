package frame

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pribylovaa/icebreaker-frame/internal/analytics"
	apierrors "github.com/pribylovaa/icebreaker-frame/internal/errors"
)

// ErrFIDRequired — composer action вызван без корректного fid.
var ErrFIDRequired = apierrors.InvalidArgument("FID is required")

// CastActionMetadata — ответ на GET /add (описание устанавливаемого cast action).
type CastActionMetadata struct {
	Name        string       `json:"name"`
	Icon        string       `json:"icon"`
	Description string       `json:"description"`
	AboutURL    string       `json:"aboutUrl"`
	Action      ActionMethod `json:"action"`
}

type ActionMethod struct {
	Type string `json:"type"`
}

// CastActionResponse — ответ на POST /add: открыть фрейм поиска по автору каста.
type CastActionResponse struct {
	Type     string `json:"type"`
	FrameURL string `json:"frameUrl"`
}

// ComposerActionMetadata — ответ на GET /composer.
type ComposerActionMetadata struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	AboutURL    string `json:"aboutUrl"`
	ImageURL    string `json:"imageUrl"`
}

// ComposerActionResponse — ответ на POST /composer: форма с профилем.
type ComposerActionResponse struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (s *Service) CastActionMetadata() CastActionMetadata {
	return CastActionMetadata{
		Name:        "Icebreaker Lookup",
		Icon:        "search",
		Description: "Look up the cast author's Icebreaker profile",
		AboutURL:    s.opts.AppURL,
		Action:      ActionMethod{Type: "post"},
	}
}

func (s *Service) ComposerActionMetadata() ComposerActionMetadata {
	return ComposerActionMetadata{
		Type:        "composer",
		Name:        "Icebreaker",
		Icon:        "search",
		Description: "View Icebreaker",
		AboutURL:    s.opts.AppURL,
		ImageURL:    s.opts.AppURL + "/icon-256x256.png",
	}
}

// CastAction — зритель нажал установленный cast action на чужом касте.
// Дальше клиент открывает фрейм /cast-action, привязанный к автору каста.
func (s *Service) CastAction(ctx context.Context, viewerFID, castAuthorFID uint64) CastActionResponse {
	if castAuthorFID != 0 {
		s.track(ctx, viewerFID, analytics.Event{
			Name:       analytics.EventIdentify,
			Properties: map[string]any{"fid": castAuthorFID, "source": "cast_action"},
		})
	}

	return CastActionResponse{
		Type:     "frame",
		FrameURL: s.url(Route{Mode: ModeCastAction}.Path()),
	}
}

// ComposerAction открывает форму с профилем по fid из query.
func (s *Service) ComposerAction(ctx context.Context, viewerFID uint64, fidParam string) (ComposerActionResponse, error) {
	const op = "frame.ComposerAction"

	fid, err := strconv.ParseUint(strings.TrimSpace(fidParam), 10, 64)
	if err != nil || fid == 0 {
		return ComposerActionResponse{}, fmt.Errorf("%s: %w", op, ErrFIDRequired)
	}

	s.track(ctx, viewerFID, analytics.Event{
		Name:       analytics.EventIdentify,
		Properties: map[string]any{"fid": fid, "source": "composer"},
	})

	return ComposerActionResponse{
		Type:  "form",
		Title: "View Icebreaker",
		URL:   s.opts.AppURL + FIDRoute(fid).Path(),
	}, nil
}
