package frame

import (
	"strconv"
	"strings"
)

// Значения кнопок (приходят в ?value= целевого URL кнопки).
const (
	ValueSearch = "search"
	ValueMine   = "mine"
	ValueReset  = "reset-search"
)

// Intent — что именно вызвало (или не вызвало) поиск профиля.
type Intent string

const (
	IntentReset  Intent = "reset"
	IntentMine   Intent = "mine"
	IntentSearch Intent = "search"
	IntentBound  Intent = "bound"
	IntentNone   Intent = "none"
)

// Вид lookup'а в каталоге.
const (
	LookupNone     = ""
	LookupUsername = "fname"
	LookupFID      = "fid"
	LookupAddress  = "eth"
	LookupENS      = "ens"
)

// Event — одно действие зрителя, собранное HTTP-слоем.
type Event struct {
	// ViewerFID — fid зрителя; 0 — неизвестен (первый GET).
	ViewerFID   uint64
	ButtonValue string
	InputText   string
	State       string
	Route       Route
	// CastAuthorFID — автор каста, на котором вызвано cast action.
	CastAuthorFID uint64
}

// Decision — результат выбора: намерение и ключ поиска.
type Decision struct {
	Intent Intent
	Lookup string
	Value  string
	FID    uint64
}

// Decide выбирает намерение по приоритету:
//  1. reset-search — без поиска;
//  2. mine — поиск по fid зрителя;
//  3. непустой текст — поиск по username;
//  4. маршрут с идентичностью и первый показ (кнопка не нажата) — поиск по ней;
//  5. иначе — без поиска.
func Decide(e Event) Decision {
	switch e.ButtonValue {
	case ValueReset:
		return Decision{Intent: IntentReset}
	case ValueMine:
		return Decision{Intent: IntentMine, Lookup: LookupFID, FID: e.ViewerFID}
	}

	if text := strings.TrimSpace(e.InputText); text != "" {
		return Decision{Intent: IntentSearch, Lookup: LookupUsername, Value: text}
	}

	if e.ButtonValue != "" {
		return Decision{Intent: IntentNone}
	}

	target := strings.TrimSpace(e.Route.Target)

	switch e.Route.Mode {
	case ModeUsername:
		if target != "" {
			return Decision{Intent: IntentBound, Lookup: LookupUsername, Value: target}
		}
	case ModeAddress:
		if target != "" {
			return Decision{Intent: IntentBound, Lookup: LookupAddress, Value: target}
		}
	case ModeENS:
		if target != "" {
			return Decision{Intent: IntentBound, Lookup: LookupENS, Value: target}
		}
	case ModeFID:
		if fid, err := strconv.ParseUint(target, 10, 64); err == nil && fid != 0 {
			return Decision{Intent: IntentBound, Lookup: LookupFID, FID: fid}
		}
	case ModeCastAction:
		if e.CastAuthorFID != 0 {
			return Decision{Intent: IntentBound, Lookup: LookupFID, FID: e.CastAuthorFID}
		}
	}

	return Decision{Intent: IntentNone}
}
