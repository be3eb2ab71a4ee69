package frame

import (
	"net/url"
	"strconv"
)

// Mode — вид маршрута фрейма. Все маршруты обслуживает один диспетчер,
// различие только в том, к какой идентичности привязан путь.
type Mode string

const (
	ModeHome       Mode = "home"
	ModeUsername   Mode = "fname"
	ModeFID        Mode = "fid"
	ModeAddress    Mode = "eth"
	ModeENS        Mode = "ens"
	ModeCastAction Mode = "cast-action"
)

type modeSpec struct {
	// prefix — путь без параметра; param — имя параметра chi ("" — без параметра).
	prefix string
	param  string
}

var modeTable = map[Mode]modeSpec{
	ModeHome:       {prefix: "/"},
	ModeUsername:   {prefix: "/fname/", param: "fname"},
	ModeFID:        {prefix: "/fid/", param: "fid"},
	ModeAddress:    {prefix: "/eth/", param: "address"},
	ModeENS:        {prefix: "/ens/", param: "name"},
	ModeCastAction: {prefix: "/cast-action"},
}

// Modes — порядок регистрации маршрутов.
func Modes() []Mode {
	return []Mode{ModeHome, ModeUsername, ModeFID, ModeAddress, ModeENS, ModeCastAction}
}

// Pattern — шаблон маршрута для chi ("/fname/{fname}").
func (m Mode) Pattern() string {
	s := modeTable[m]
	if s.param == "" {
		return s.prefix
	}

	return s.prefix + "{" + s.param + "}"
}

// Param — имя параметра пути ("" для маршрутов без идентичности).
func (m Mode) Param() string { return modeTable[m].param }

// Route — конкретный маршрут: режим плюс привязанная идентичность из пути.
type Route struct {
	Mode   Mode
	Target string
}

// Path — путь маршрута относительно base path, с экранированной идентичностью.
func (r Route) Path() string {
	s, ok := modeTable[r.Mode]
	if !ok {
		return "/"
	}

	if s.param == "" {
		return s.prefix
	}

	return s.prefix + url.PathEscape(r.Target)
}

// FIDRoute — маршрут профиля по fid.
func FIDRoute(fid uint64) Route {
	return Route{Mode: ModeFID, Target: strconv.FormatUint(fid, 10)}
}
