package transport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/icebreaker-frame/pkg/log"
	"github.com/stretchr/testify/require"
)

type capHandler struct {
	mu      sync.Mutex
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string]any, len(h.base)+8)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out
	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.base = append(h.base, attrs...)
	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func okTripper(seen *http.Request) RoundTripperFunc {
	return func(r *http.Request) (*http.Response, error) {
		*seen = *r
		rec := httptest.NewRecorder()
		rec.WriteHeader(http.StatusOK)
		return rec.Result(), nil
	}
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var order []string
	mk := func(name string) Wrapper {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}

	var seen http.Request
	rt := Chain(okTripper(&seen), mk("a"), mk("b"))
	req := httptest.NewRequest(http.MethodGet, "http://dir.local/x", nil)
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, []string{"a", "b"}, order)
}

func TestWithMetadata_PropagatesRequestIDAndUA(t *testing.T) {
	t.Parallel()

	var seen http.Request
	rt := Chain(okTripper(&seen), WithMetadata("icebreaker-frame"))

	ctx := context.WithValue(context.Background(), CtxRequestID, "rid-123")
	req := httptest.NewRequest(http.MethodGet, "http://dir.local/fid/1", nil).WithContext(ctx)

	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Equal(t, "rid-123", seen.Header.Get(HeaderRequestID))
	require.Equal(t, "icebreaker-frame", seen.Header.Get("User-Agent"))
	// исходный запрос не тронут
	require.Empty(t, req.Header.Get(HeaderRequestID))
}

func TestWithMetadata_GeneratesUUID(t *testing.T) {
	t.Parallel()

	var seen http.Request
	rt := Chain(okTripper(&seen), WithMetadata(""))

	resp, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://dir.local/", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	_, err = uuid.Parse(seen.Header.Get(HeaderRequestID))
	require.NoError(t, err)
}

func TestWithTimeout_SetsDeadline(t *testing.T) {
	t.Parallel()

	const d = 40 * time.Millisecond
	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		<-r.Context().Done()
		return nil, r.Context().Err()
	}), WithTimeout(d))

	start := time.Now()
	_, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://dir.local/slow", nil))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.GreaterOrEqual(t, time.Since(start), d)
}

func TestWithTimeout_DoesNotOverrideExistingDeadline(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()
	parentDL, _ := parent.Deadline()

	var childDL time.Time
	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		childDL, _ = r.Context().Deadline()
		rec := httptest.NewRecorder()
		return rec.Result(), nil
	}), WithTimeout(time.Second))

	resp, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://dir.local/", nil).WithContext(parent))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.WithinDuration(t, parentDL, childDL, time.Millisecond)
}

func TestWithTimeout_CancelsOnBodyClose(t *testing.T) {
	t.Parallel()

	var reqCtx context.Context
	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		reqCtx = r.Context()
		return httptest.NewRecorder().Result(), nil
	}), WithTimeout(time.Minute))

	resp, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://dir.local/", nil))
	require.NoError(t, err)
	require.NoError(t, reqCtx.Err())

	require.NoError(t, resp.Body.Close())
	require.ErrorIs(t, reqCtx.Err(), context.Canceled)
}

func TestWithLogging_WritesUpstreamRecord(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	var seen http.Request
	rt := Chain(okTripper(&seen), WithMetadata(""), WithLogging(slog.New(h)))

	resp, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://dir.local/fname/alice", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Equal(t, "upstream", h.lastMsg)
	require.Equal(t, slog.LevelInfo, h.lastLvl)
	require.Equal(t, "dir.local", h.attrs["host"])
	require.Equal(t, "/fname/alice", h.attrs["path"])
	require.EqualValues(t, http.StatusOK, h.attrs["status"])
	require.NotEmpty(t, h.attrs["request_id"])
}

func TestWithLogging_UsesContextLoggerAndWarnsOnError(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	ctx := log.Into(context.Background(), slog.New(h))

	boom := errors.New("dial failed")
	rt := Chain(RoundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	}), WithLogging(nil))

	_, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://dir.local/", nil).WithContext(ctx))
	require.ErrorIs(t, err, boom)
	require.Equal(t, "upstream", h.lastMsg)
	require.Equal(t, slog.LevelWarn, h.lastLvl)
	require.Equal(t, "dial failed", h.attrs["err"])
}
