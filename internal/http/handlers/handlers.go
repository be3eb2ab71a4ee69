package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/pribylovaa/icebreaker-frame/internal/assets"
	apierrors "github.com/pribylovaa/icebreaker-frame/internal/errors"
	"github.com/pribylovaa/icebreaker-frame/internal/frame"
	"github.com/pribylovaa/icebreaker-frame/internal/models"
	"github.com/pribylovaa/icebreaker-frame/internal/render"
)

// maxActionBody — предел тела POST от клиента (signature packet ~ 1 КБ).
const maxActionBody = 64 << 10

// errMalformedAction — тело действия не разобрано.
var errMalformedAction = apierrors.InvalidArgument("malformed frame action")

// Handlers агрегирует зависимости обработчиков.
type Handlers struct {
	Service  *frame.Service
	Composer *render.Composer
	// Title — заголовок HTML-страницы фрейма.
	Title string
}

func New(svc *frame.Service, title string) *Handlers {
	composer := render.NewComposer(svc.AssetsURL())
	composer.Inline = assets.DataURI

	return &Handlers{
		Service:  svc,
		Composer: composer,
		Title:    title,
	}
}

// writeJSON — ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeAction читает тело действия. Неизвестные поля допустимы: клиенты
// присылают расширенные пакеты. optional — пустое тело не ошибка.
func decodeAction(w http.ResponseWriter, r *http.Request, optional bool) (models.FrameAction, error) {
	var a models.FrameAction

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxActionBody))
	if err := dec.Decode(&a); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return a, nil
		}
		return a, errMalformedAction
	}

	if dec.More() {
		return a, errMalformedAction
	}

	return a, nil
}
