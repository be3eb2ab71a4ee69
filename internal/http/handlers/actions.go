package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/icebreaker-frame/internal/errors"
)

// CastActionMetadata — GET /add: описание cast action для установки.
func (h *Handlers) CastActionMetadata(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.CastActionMetadata())
}

// CastAction — POST /add: открыть фрейм с профилем автора каста.
func (h *Handlers) CastAction(w http.ResponseWriter, r *http.Request) {
	a, err := decodeAction(w, r, false)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.Service.CastAction(r.Context(), a.UntrustedData.FID, a.UntrustedData.CastID.FID))
}

// ComposerActionMetadata — GET /composer.
func (h *Handlers) ComposerActionMetadata(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.ComposerActionMetadata())
}

// ComposerAction — POST /composer?fid=N: форма с профилем; без fid — 400.
func (h *Handlers) ComposerAction(w http.ResponseWriter, r *http.Request) {
	a, err := decodeAction(w, r, true)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp, err := h.Service.ComposerAction(r.Context(), a.UntrustedData.FID, r.URL.Query().Get("fid"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
