// icebreaker — HTTP-клиент каталога профилей Icebreaker.
//
// Любой неуспех (транспорт, не-2xx, битое тело) логируется и схлопывается
// в «профиль не найден»: вызывающему коду возвращается nil без ошибки.
package icebreaker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pribylovaa/icebreaker-frame/internal/metrics"
	"github.com/pribylovaa/icebreaker-frame/internal/models"
	"github.com/pribylovaa/icebreaker-frame/pkg/log"
)

// DefaultBaseURL — публичный API каталога.
const DefaultBaseURL = "https://app.icebreaker.xyz/api/v1"

// maxBody ограничивает тело ответа каталога.
const maxBody = 1 << 20

// Виды lookup'ов; совпадают с сегментом пути API.
const (
	ByFname   = "fname"
	ByFID     = "fid"
	ByAddress = "eth"
	ByENS     = "ens"
)

// Client — клиент каталога. Безопасен для конкурентного использования.
type Client struct {
	baseURL string
	http    *http.Client
}

// New создаёт клиент. HTTP-клиент настраивается извне (транспортная цепочка,
// таймауты); nil — клиент с таймаутом 10s.
func New(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{baseURL: baseURL, http: client}
}

// ByUsername ищет профиль по имени Farcaster.
func (c *Client) ByUsername(ctx context.Context, name string) *models.Profile {
	return c.lookup(ctx, ByFname, strings.TrimSpace(name))
}

// ByFID ищет профиль по Farcaster ID.
func (c *Client) ByFID(ctx context.Context, fid uint64) *models.Profile {
	if fid == 0 {
		return nil
	}

	return c.lookup(ctx, ByFID, strconv.FormatUint(fid, 10))
}

// ByAddress ищет профиль по адресу кошелька.
func (c *Client) ByAddress(ctx context.Context, address string) *models.Profile {
	return c.lookup(ctx, ByAddress, strings.TrimSpace(address))
}

// ByENS ищет профиль по ENS-имени.
func (c *Client) ByENS(ctx context.Context, name string) *models.Profile {
	return c.lookup(ctx, ByENS, strings.TrimSpace(name))
}

func (c *Client) lookup(ctx context.Context, by, value string) *models.Profile {
	if value == "" {
		return nil
	}

	start := time.Now()
	p, err := c.fetch(ctx, by, value)
	metrics.LookupDuration.WithLabelValues(by).Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		metrics.Lookups.WithLabelValues(by, metrics.ResultError).Inc()
		log.From(ctx).Warn("directory_lookup_failed",
			slog.String("op", "icebreaker.lookup"),
			slog.String("by", by),
			slog.String("value", value),
			slog.String("err", err.Error()),
		)
		return nil
	case p == nil:
		metrics.Lookups.WithLabelValues(by, metrics.ResultNotFound).Inc()
		return nil
	default:
		metrics.Lookups.WithLabelValues(by, metrics.ResultFound).Inc()
		return p
	}
}

// fetch выполняет GET {base}/{by}/{value}. (nil, nil) — каталог ничего не нашёл.
func (c *Client) fetch(ctx context.Context, by, value string) (*models.Profile, error) {
	const op = "icebreaker.fetch"

	endpoint := c.baseURL + "/" + by + "/" + url.PathEscape(value)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new_request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: status=%d", op, resp.StatusCode)
	}

	var body models.ProfilesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	if len(body.Profiles) == 0 {
		return nil, nil
	}

	return &body.Profiles[0], nil
}
