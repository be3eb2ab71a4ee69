// assets — статические картинки фрейма (фон, аватар-заглушка, иконки),
// вшитые в бинарь.
package assets

import (
	"embed"
	"encoding/base64"
	"io/fs"
	"net/http"
	"path"
	"slices"
	"strings"
)

//go:embed static/*.png
var files embed.FS

// Static — ассеты с корнем в static/ ("image.png", "github.png", ...).
var Static = mustSub(files, "static")

var dataURIs = mustDataURIs(Static)

// Names — имена всех ассетов в лексикографическом порядке.
func Names() []string {
	names := make([]string, 0, len(dataURIs))
	for name := range dataURIs {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// DataURI возвращает ассет как data:-ссылку. Путь может начинаться с '/'.
// false — такого ассета нет.
func DataURI(p string) (string, bool) {
	uri, ok := dataURIs[strings.TrimPrefix(p, "/")]
	return uri, ok
}

// Handler отдаёт ассеты по пути "/<имя>".
func Handler() http.Handler {
	return http.FileServer(http.FS(Static))
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}

	return sub
}

func mustDataURIs(fsys fs.FS) map[string]string {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		panic(err)
	}

	out := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".png" {
			continue
		}
		b, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			panic(err)
		}
		out[e.Name()] = "data:image/png;base64," + base64.StdEncoding.EncodeToString(b)
	}

	return out
}
