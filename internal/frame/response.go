package frame

// AspectRatio — соотношение сторон картинки фрейма.
const AspectRatio = "1.91:1"

// InputPlaceholder — подсказка поля ввода в состоянии поиска.
const InputPlaceholder = "Enter farcaster username..."

// ButtonKind — тип действия кнопки.
type ButtonKind string

const (
	// ButtonPost — POST на Target (Target несёт ?value=).
	ButtonPost ButtonKind = "post"
	// ButtonLink — внешняя ссылка.
	ButtonLink ButtonKind = "link"
)

type Button struct {
	Label  string
	Kind   ButtonKind
	Target string
}

// Response — ответ на действие фрейма: картинка, state и следующий набор кнопок.
type Response struct {
	Image       string
	AspectRatio string
	// State — токен профиля; "" — профиля нет.
	State   string
	PostURL string
	// Input — placeholder поля ввода; "" — поля нет.
	Input           string
	Buttons         []Button
	BrowserLocation string
	Found           bool
	Intent          Intent
}
