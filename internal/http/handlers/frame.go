package handlers

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	apierrors "github.com/pribylovaa/icebreaker-frame/internal/errors"
	"github.com/pribylovaa/icebreaker-frame/internal/frame"
	logctx "github.com/pribylovaa/icebreaker-frame/pkg/log"
)

var frameTmpl = template.Must(template.New("frame").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta property="og:title" content="{{.Title}}">
<meta property="og:image" content="{{.R.Image}}">
<meta property="fc:frame" content="vNext">
<meta property="fc:frame:image" content="{{.R.Image}}">
<meta property="fc:frame:image:aspect_ratio" content="{{.R.AspectRatio}}">
<meta property="fc:frame:post_url" content="{{.R.PostURL}}">
<meta property="fc:frame:state" content="{{.R.State}}">
{{- with .R.Input}}
<meta property="fc:frame:input:text" content="{{.}}">
{{- end}}
{{- range $i, $b := .R.Buttons}}
<meta property="fc:frame:button:{{inc $i}}" content="{{$b.Label}}">
<meta property="fc:frame:button:{{inc $i}}:action" content="{{$b.Kind}}">
<meta property="fc:frame:button:{{inc $i}}:target" content="{{$b.Target}}">
{{- end}}
</head>
<body>
<a href="{{.R.BrowserLocation}}">{{.Title}}</a>
</body>
</html>
`))

type framePage struct {
	Title string
	R     frame.Response
}

// Frame — обработчик маршрута фрейма режима mode (GET — первый показ, POST — действие).
func (h *Handlers) Frame(mode frame.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ev := frame.Event{Route: frame.Route{Mode: mode, Target: pathParam(r, mode.Param())}}

		ctx := r.Context()
		if r.Method == http.MethodPost {
			a, err := decodeAction(w, r, false)
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			ev.ViewerFID = a.UntrustedData.FID
			ev.InputText = a.UntrustedData.InputText
			ev.State = a.UntrustedData.State
			ev.CastAuthorFID = a.UntrustedData.CastID.FID
			ev.ButtonValue = r.URL.Query().Get("value")

			ctx = logctx.With(ctx, slog.Uint64("viewer_fid", ev.ViewerFID))
		}

		resp := h.Service.Handle(ctx, ev)

		var buf bytes.Buffer
		if err := frameTmpl.Execute(&buf, framePage{Title: h.Title, R: resp}); err != nil {
			logctx.From(ctx).Error("frame_template_failed", slog.String("err", err.Error()))
			apierrors.WriteError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

// pathParam — параметр пути chi без percent-экранирования.
func pathParam(r *http.Request, name string) string {
	if name == "" {
		return ""
	}

	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}

	return raw
}
