package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	apierrors "github.com/pribylovaa/icebreaker-frame/internal/errors"
	"github.com/pribylovaa/icebreaker-frame/internal/metrics"
	"github.com/pribylovaa/icebreaker-frame/internal/render"
	"github.com/pribylovaa/icebreaker-frame/internal/state"
	logctx "github.com/pribylovaa/icebreaker-frame/pkg/log"
)

// Image — GET /image?state=: картинка профиля из токена. Битый или пустой
// токен даёт заглушку, а не ошибку.
func (h *Handlers) Image(w http.ResponseWriter, r *http.Request) {
	p, err := state.DecodeErr(r.URL.Query().Get("state"))
	if err != nil {
		metrics.StateDecodeFailures.Inc()
		logctx.From(r.Context()).Warn("state_decode_failed", slog.String("err", err.Error()))
	}

	var buf bytes.Buffer
	if err := render.SVG(&buf, h.Composer.Compose(p)); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
