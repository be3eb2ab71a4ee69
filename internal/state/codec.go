// state — кодек state-токена фрейма: RenderedProfile ↔ непрозрачная ASCII-строка.
//
// Формат: JSON (короткие ключи) → zlib → base64 (URL-алфавит, без паддинга).
// Токен хранится на стороне клиента, поэтому Decode тотален: любой мусор — nil.
package state

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"
	"github.com/pribylovaa/icebreaker-frame/internal/models"
)

// MaxTokenLen — предел поля state во фрейм-протоколе.
const MaxTokenLen = 4096

// maxInflated ограничивает распакованный размер (защита от zip-бомб).
const maxInflated = 64 << 10

// ErrTokenTooLarge — закодированный профиль не помещается в state.
var ErrTokenTooLarge = errors.New("state token too large")

// Encode кодирует профиль в токен. nil → "".
// Результат детерминирован: одинаковый профиль даёт одинаковый токен.
func Encode(p *models.RenderedProfile) (string, error) {
	const op = "state.Encode"

	if p == nil {
		return "", nil
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("%s: marshal: %w", op, err)
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", fmt.Errorf("%s: zlib writer: %w", op, err)
	}

	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("%s: compress: %w", op, err)
	}

	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("%s: compress: %w", op, err)
	}

	token := base64.RawURLEncoding.EncodeToString(buf.Bytes())
	if len(token) > MaxTokenLen {
		return "", fmt.Errorf("%s: %d bytes: %w", op, len(token), ErrTokenTooLarge)
	}

	return token, nil
}

// Decode восстанавливает профиль из токена. Пустой или битый токен — nil.
func Decode(token string) *models.RenderedProfile {
	p, err := decode(token)
	if err != nil {
		return nil
	}

	return p
}

// DecodeErr — то же, что Decode, но с причиной отказа (для логов и метрик).
// Пустой токен — (nil, nil).
func DecodeErr(token string) (*models.RenderedProfile, error) {
	return decode(token)
}

func decode(token string) (p *models.RenderedProfile, err error) {
	const op = "state.Decode"

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}

	// Токен приходит от клиента: паника где-либо ниже не должна уронить рендер.
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("%s: panic: %v", op, r)
		}
	}()

	if len(token) > 2*MaxTokenLen {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenTooLarge)
	}

	compressed, err := decodeBase64(token)
	if err != nil {
		return nil, fmt.Errorf("%s: base64: %w", op, err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%s: zlib: %w", op, err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(io.LimitReader(zr, maxInflated+1))
	if err != nil {
		return nil, fmt.Errorf("%s: inflate: %w", op, err)
	}

	if len(raw) > maxInflated {
		return nil, fmt.Errorf("%s: inflated payload exceeds %d bytes", op, maxInflated)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var out models.RenderedProfile
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: json: %w", op, err)
	}

	if dec.More() {
		return nil, fmt.Errorf("%s: trailing data after profile", op)
	}

	if err := validate(&out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	normalizeSlices(&out)

	return &out, nil
}

// decodeBase64 принимает оба алфавита, с паддингом и без.
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimRight(s, "=")
	if strings.ContainsAny(s, "+/") {
		return base64.RawStdEncoding.DecodeString(s)
	}

	return base64.RawURLEncoding.DecodeString(s)
}

func validate(p *models.RenderedProfile) error {
	if p.AvatarURL == "" {
		return errors.New("empty avatar url")
	}

	if p.CredentialsCount < 0 {
		return errors.New("negative credentials count")
	}

	return nil
}

func normalizeSlices(p *models.RenderedProfile) {
	if p.VerifiedChannels == nil {
		p.VerifiedChannels = []string{}
	}

	if p.VerifiedCompanies == nil {
		p.VerifiedCompanies = []string{}
	}

	if p.HighlightedCredentials == nil {
		p.HighlightedCredentials = []string{}
	}
}
