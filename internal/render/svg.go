package render

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	svg "github.com/ajstarks/svgo"
)

const fontFamily = "Inter, Helvetica, Arial, sans-serif"

// SVG отрисовывает дерево в SVG-документ размера корня (по умолчанию Width×Height).
func SVG(w io.Writer, root *Node) error {
	const op = "render.SVG"

	if root == nil {
		return fmt.Errorf("%s: nil root", op)
	}

	ew := &errWriter{w: w}
	r := &svgRenderer{canvas: svg.New(ew)}

	width, height := root.Width, root.Height
	if width <= 0 || height <= 0 {
		width, height = Width, Height
	}

	r.canvas.Start(width, height, fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height))
	if root.Fill != "" {
		r.canvas.Rect(0, 0, width, height, attr("fill", root.Fill))
	}
	r.draw(root, 0, 0, width)
	r.canvas.End()

	if ew.err != nil {
		return fmt.Errorf("%s: write: %w", op, ew.err)
	}

	return nil
}

// errWriter запоминает первую ошибку записи: svgo их не возвращает.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}

	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}

	return n, err
}

type svgRenderer struct {
	canvas *svg.SVG
	clips  int
}

func (r *svgRenderer) draw(n *Node, x, y, maxW int) {
	switch n.Kind {
	case KindColumn:
		inner := maxW - 2*n.PadX
		cy := y + n.PadY
		for _, c := range n.Children {
			_, h := measure(c, inner)
			r.draw(c, x+n.PadX, cy, inner)
			cy += h + n.Gap
		}

	case KindRow:
		inner := maxW - 2*n.PadX
		_, rowH := measure(n, maxW)
		rowH -= 2 * n.PadY
		cx := x + n.PadX
		for _, c := range n.Children {
			avail := inner - (cx - x - n.PadX)
			w, h := measure(c, avail)
			r.draw(c, cx, y+n.PadY+(rowH-h)/2, avail)
			cx += w + n.Gap
		}

	case KindText:
		lh := lineHeight(n.Size)
		for i, line := range wrap(n.Text, n.Size, maxW, n.MaxLines) {
			r.canvas.Text(x, y+i*lh+n.Size, line, textAttrs(n)...)
		}

	case KindImage:
		w, h := measure(n, maxW)
		r.image(n.Src, x, y, w, h, n.Radius)

	case KindBadge:
		w, h := measure(n, maxW)
		r.canvas.Roundrect(x, y, w, h, min(n.Radius, h/2), min(n.Radius, h/2), attr("fill", n.Background))

		cx := x + n.PadX
		if n.Icon != "" {
			r.image(n.Icon, cx, y+(h-n.IconSize)/2, n.IconSize, n.IconSize, 0)
			cx += n.IconSize + badgeIconGap
		}
		r.canvas.Text(cx, y+n.PadY+n.Size, n.Text, textAttrs(n)...)
	}
}

// image рисует картинку; radius > 0 — обрезка по скруглённой рамке.
func (r *svgRenderer) image(src string, x, y, w, h, radius int) {
	link := html.EscapeString(src)
	if radius <= 0 {
		r.canvas.Image(x, y, w, h, link)
		return
	}

	r.clips++
	id := "clip" + strconv.Itoa(r.clips)

	r.canvas.Def()
	r.canvas.ClipPath(attr("id", id))
	if w == h && radius*2 >= w {
		r.canvas.Circle(x+w/2, y+h/2, w/2)
	} else {
		r.canvas.Roundrect(x, y, w, h, radius, radius)
	}
	r.canvas.ClipEnd()
	r.canvas.DefEnd()

	r.canvas.Image(x, y, w, h, link, attr("clip-path", "url(#"+id+")"), `preserveAspectRatio="xMidYMid slice"`)
}

const badgeIconGap = 6

// measure — размер узла при доступной ширине maxW.
func measure(n *Node, maxW int) (int, int) {
	switch n.Kind {
	case KindColumn:
		inner := maxW - 2*n.PadX
		w, h := 0, 0
		for i, c := range n.Children {
			cw, ch := measure(c, inner)
			w = max(w, cw)
			h += ch
			if i > 0 {
				h += n.Gap
			}
		}
		return w + 2*n.PadX, h + 2*n.PadY

	case KindRow:
		inner := maxW - 2*n.PadX
		w, h := 0, 0
		for i, c := range n.Children {
			if i > 0 {
				w += n.Gap
			}
			cw, ch := measure(c, inner-w)
			w += cw
			h = max(h, ch)
		}
		return w + 2*n.PadX, h + 2*n.PadY

	case KindText:
		lines := wrap(n.Text, n.Size, maxW, n.MaxLines)
		w := 0
		for _, l := range lines {
			w = max(w, textWidth(l, n.Size))
		}
		return w, len(lines) * lineHeight(n.Size)

	case KindImage:
		if n.Width > 0 && n.Height > 0 {
			return n.Width, n.Height
		}
		return n.Size, n.Size

	case KindBadge:
		w := 2*n.PadX + textWidth(n.Text, n.Size)
		if n.Icon != "" {
			w += n.IconSize + badgeIconGap
		}
		return w, 2*n.PadY + lineHeight(n.Size)
	}

	return 0, 0
}

func lineHeight(size int) int { return size * 5 / 4 }

// textWidth — оценка ширины строки: шрифт не загружается, берём средний глиф.
func textWidth(s string, size int) int {
	return utf8.RuneCountInString(s) * size * 11 / 20
}

// wrap разбивает текст на строки по словам. Не более maxLines строк
// (0 — одна); обрезанный хвост помечается многоточием.
func wrap(s string, size, maxW, maxLines int) []string {
	if maxLines <= 0 {
		maxLines = 1
	}

	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var (
		lines []string
		cur   string
	)
	for _, word := range words {
		next := word
		if cur != "" {
			next = cur + " " + word
		}

		if cur == "" || textWidth(next, size) <= maxW {
			cur = next
			continue
		}

		lines = append(lines, cur)
		cur = word
	}
	lines = append(lines, cur)

	truncated := len(lines) > maxLines
	if truncated {
		lines = lines[:maxLines]
	}

	last := len(lines) - 1
	if truncated || textWidth(lines[last], size) > maxW {
		lines[last] = ellipsize(lines[last], size, maxW)
	}

	return lines
}

func ellipsize(s string, size, maxW int) string {
	const dots = "…"
	r := []rune(s)
	for len(r) > 0 && textWidth(string(r)+dots, size) > maxW {
		r = r[:len(r)-1]
	}

	return strings.TrimRight(string(r), " ") + dots
}

func textAttrs(n *Node) []string {
	return []string{
		attr("font-family", fontFamily),
		attr("font-size", strconv.Itoa(n.Size)),
		attr("font-weight", strconv.Itoa(n.Weight)),
		attr("fill", n.Color),
	}
}

// attr — сырой атрибут для svgo (аргументы с '=' выводятся как есть).
func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}
