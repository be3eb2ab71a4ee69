// frame — обработка действий фрейма: выбор намерения, поиск профиля,
// кодирование state и сборка следующего набора кнопок.
package frame

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/pribylovaa/icebreaker-frame/internal/analytics"
	"github.com/pribylovaa/icebreaker-frame/internal/metrics"
	"github.com/pribylovaa/icebreaker-frame/internal/models"
	"github.com/pribylovaa/icebreaker-frame/internal/profile"
	"github.com/pribylovaa/icebreaker-frame/internal/state"
	"github.com/pribylovaa/icebreaker-frame/pkg/log"
)

// Directory — каталог профилей. nil — профиль не найден (или каталог недоступен).
type Directory interface {
	ByUsername(ctx context.Context, name string) *models.Profile
	ByFID(ctx context.Context, fid uint64) *models.Profile
	ByAddress(ctx context.Context, address string) *models.Profile
	ByENS(ctx context.Context, name string) *models.Profile
}

// Tracker — приёмник аналитики.
type Tracker interface {
	Capture(ctx context.Context, e analytics.Event) error
}

// Options — публичные адреса, из которых собираются ссылки и URL кнопок.
type Options struct {
	// FrameURL — внешний адрес сервиса без завершающего '/'.
	FrameURL string
	// BasePath — префикс маршрутов фрейма ("/api").
	BasePath    string
	AppURL      string
	WarpcastURL string
	// DetachedAnalytics — не ждать доставки события перед ответом.
	DetachedAnalytics bool
}

type Service struct {
	dir     Directory
	tracker Tracker
	opts    Options

	wg sync.WaitGroup
}

// New создаёт сервис. tracker == nil — аналитика выключена.
func New(dir Directory, tracker Tracker, opts Options) *Service {
	if tracker == nil {
		tracker = analytics.Noop{}
	}

	opts.FrameURL = strings.TrimRight(opts.FrameURL, "/")
	opts.AppURL = strings.TrimRight(opts.AppURL, "/")
	opts.WarpcastURL = strings.TrimRight(opts.WarpcastURL, "/")
	opts.BasePath = strings.TrimRight(opts.BasePath, "/")

	return &Service{dir: dir, tracker: tracker, opts: opts}
}

// Handle обрабатывает одно действие. Никогда не возвращает ошибку: любые сбои
// поиска, кодирования и аналитики деградируют до «профиль отсутствует».
func (s *Service) Handle(ctx context.Context, e Event) Response {
	const op = "frame.Handle"

	d := Decide(e)
	metrics.Interactions.WithLabelValues(string(d.Intent)).Inc()

	lg := log.From(ctx).With(slog.String("op", op), slog.String("intent", string(d.Intent)))

	if ev, ok := interactionEvent(d, e); ok {
		s.track(ctx, e.ViewerFID, ev)
	}

	inspectState(lg, e.State)

	raw := s.lookup(ctx, d)
	rendered := profile.Normalize(raw)

	token, err := state.Encode(rendered)
	if err != nil {
		// Профиль не помещается в state: картинка покажет заглушку.
		lg.Warn("state_encode_failed", slog.String("err", err.Error()))
		token = ""
	}

	resp := Response{
		Image:       s.ImageURL(token),
		AspectRatio: AspectRatio,
		State:       token,
		PostURL:     s.url(e.Route.Path()),
		Intent:      d.Intent,
	}

	if raw != nil {
		s.found(&resp, e.Route, raw)
	} else {
		s.prompt(&resp, e)
	}

	lg.Debug("frame_handled", slog.Bool("found", resp.Found), slog.Int("state_len", len(token)))

	return resp
}

// inspectState разбирает пришедший от клиента токен только для логов и метрик:
// решение принимается по маршруту и кнопке, профиль всегда берётся из каталога.
func inspectState(lg *slog.Logger, token string) {
	prev, err := state.DecodeErr(token)
	switch {
	case err != nil:
		metrics.StateDecodeFailures.Inc()
		lg.Warn("incoming_state_invalid", slog.String("err", err.Error()))
	case prev != nil:
		lg.Debug("incoming_state", slog.String("shown", prev.DisplayName))
	}
}

func (s *Service) lookup(ctx context.Context, d Decision) *models.Profile {
	if s.dir == nil {
		return nil
	}

	switch d.Lookup {
	case LookupUsername:
		return s.dir.ByUsername(ctx, d.Value)
	case LookupFID:
		return s.dir.ByFID(ctx, d.FID)
	case LookupAddress:
		return s.dir.ByAddress(ctx, d.Value)
	case LookupENS:
		return s.dir.ByENS(ctx, d.Value)
	default:
		return nil
	}
}

// found — профиль найден: ссылки на профиль и «Назад».
func (s *Service) found(resp *Response, route Route, raw *models.Profile) {
	link := profile.ProfileLink(s.opts.AppURL, raw)

	resp.Found = true
	resp.BrowserLocation = link

	if fid := profile.FIDFromChannels(raw.Channels); fid != 0 {
		resp.Buttons = append(resp.Buttons, Button{
			Label:  "View",
			Kind:   ButtonLink,
			Target: s.ComposerDeepLink(fid),
		})
	}

	resp.Buttons = append(resp.Buttons,
		Button{Label: "Icebreaker", Kind: ButtonLink, Target: link},
		Button{Label: "Back", Kind: ButtonPost, Target: s.buttonTarget(route, ValueReset)},
	)
}

// prompt — профиля нет: поле ввода, поиск, «мой профиль» и (на первом показе) установка action.
func (s *Service) prompt(resp *Response, e Event) {
	resp.BrowserLocation = s.opts.AppURL
	resp.Input = InputPlaceholder
	resp.Buttons = []Button{
		{Label: "Search", Kind: ButtonPost, Target: s.buttonTarget(e.Route, ValueSearch)},
		{Label: "View mine", Kind: ButtonPost, Target: s.buttonTarget(e.Route, ValueMine)},
	}

	if e.ButtonValue == "" || e.ButtonValue == ValueReset {
		resp.Buttons = append(resp.Buttons, Button{
			Label:  "Install action",
			Kind:   ButtonLink,
			Target: s.AddActionDeepLink(),
		})
	}
}

// track отправляет событие; без известного зрителя событие не отправляется.
func (s *Service) track(ctx context.Context, viewerFID uint64, ev analytics.Event) {
	if viewerFID == 0 {
		return
	}

	ev.DistinctID = strconv.FormatUint(viewerFID, 10)

	if !s.opts.DetachedAnalytics {
		s.deliver(ctx, ev)
		return
	}

	dctx := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.deliver(dctx, ev)
	}()
}

func (s *Service) deliver(ctx context.Context, ev analytics.Event) {
	if err := s.tracker.Capture(ctx, ev); err != nil {
		metrics.AnalyticsFailures.Inc()
		log.From(ctx).Warn("analytics_capture_failed",
			slog.String("op", "frame.track"),
			slog.String("event", ev.Name),
			slog.String("err", err.Error()),
		)
	}
}

// Close дожидается отложенных событий аналитики или отмены ctx.
func (s *Service) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// interactionEvent — событие аналитики по сработавшему сигналу.
func interactionEvent(d Decision, e Event) (analytics.Event, bool) {
	switch d.Intent {
	case IntentSearch:
		return analytics.Event{Name: analytics.EventSearch, Properties: map[string]any{"username": d.Value}}, true
	case IntentMine:
		return analytics.Event{Name: analytics.EventViewMine}, true
	case IntentBound:
		props := map[string]any{}
		switch d.Lookup {
		case LookupUsername:
			props["username"] = d.Value
		case LookupAddress:
			props["address"] = d.Value
		case LookupENS:
			props["ens"] = d.Value
		case LookupFID:
			props["fid"] = d.FID
		}
		if e.Route.Mode == ModeCastAction {
			props["source"] = "cast_action"
		}
		return analytics.Event{Name: analytics.EventView, Properties: props}, true
	default:
		return analytics.Event{}, false
	}
}

func (s *Service) url(path string) string {
	return s.opts.FrameURL + s.opts.BasePath + path
}

func (s *Service) buttonTarget(route Route, value string) string {
	return s.url(route.Path()) + "?" + url.Values{"value": {value}}.Encode()
}

// ImageURL — адрес картинки для токена; пустой токен — заглушка.
func (s *Service) ImageURL(token string) string {
	if token == "" {
		return s.url("/image")
	}

	return s.url("/image") + "?" + url.Values{"state": {token}}.Encode()
}

// AssetsURL — корень статических ассетов (аватар-заглушка, иконки).
func (s *Service) AssetsURL() string { return s.opts.FrameURL }

// ComposerDeepLink — ссылка клиента, открывающая composer action для fid.
func (s *Service) ComposerDeepLink(fid uint64) string {
	target := s.url("/composer") + "?fid=" + strconv.FormatUint(fid, 10)
	return s.opts.WarpcastURL + "/~/composer-action?url=" + url.QueryEscape(target)
}

// AddActionDeepLink — ссылка установки cast action.
func (s *Service) AddActionDeepLink() string {
	return s.opts.WarpcastURL + "/~/add-cast-action?url=" + url.QueryEscape(s.url("/add"))
}
