package render

// Kind — тип узла дерева раскладки.
type Kind int

const (
	// KindColumn — дочерние узлы сверху вниз.
	KindColumn Kind = iota
	// KindRow — дочерние узлы слева направо, выровнены по центру строки.
	KindRow
	KindText
	KindImage
	// KindBadge — «пилюля»: подложка, опциональная иконка и текст.
	KindBadge
)

// Node — узел дерева раскладки. Дерево не зависит от бэкенда отрисовки:
// Composer строит его, SVG превращает в документ.
type Node struct {
	Kind     Kind
	Children []*Node
	Gap      int

	// Отступы контейнера и бейджа.
	PadX, PadY int

	// Text, Badge.
	Text   string
	Size   int
	Color  string
	Weight int
	// MaxLines — предел строк при переносе (0 — одна строка).
	MaxLines int

	// Image: Src — абсолютный URL; Size — сторона квадрата
	// (или Width×Height, если заданы).
	Src    string
	Radius int

	// Badge.
	Icon       string
	IconSize   int
	Background string

	// Корень и полноразмерные картинки.
	Width, Height int
	Fill          string
}

// Column — вертикальный контейнер.
func Column(gap int, children ...*Node) *Node {
	return &Node{Kind: KindColumn, Gap: gap, Children: compact(children)}
}

// Row — горизонтальный контейнер.
func Row(gap int, children ...*Node) *Node {
	return &Node{Kind: KindRow, Gap: gap, Children: compact(children)}
}

func Text(s string, size, weight int, color string) *Node {
	return &Node{Kind: KindText, Text: s, Size: size, Weight: weight, Color: color}
}

func Image(src string, size, radius int) *Node {
	return &Node{Kind: KindImage, Src: src, Size: size, Radius: radius}
}

// Walk обходит дерево в глубину, сначала родитель.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}

	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// compact выбрасывает nil-узлы.
func compact(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}

	return out
}
