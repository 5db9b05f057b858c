package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play      string
	Pause     string
	Buffering string
	Ended     string
	Book      string
	Timer     string
	Error     string
}

var (
	nerdIcons = Icons{
		Play:      "\uf04b",      // nf-fa-play
		Pause:     "\uf04c",      // nf-fa-pause
		Buffering: "\U000f0996",  // nf-md-progress_clock
		Ended:     "\uf04d",      // nf-fa-stop
		Book:      "\U000f02cb ", // nf-md-headphones
		Timer:     "\U000f051f ", // nf-md-timer_sand
		Error:     "\uf071 ",     // nf-fa-warning
	}

	unicodeIcons = Icons{
		Play:      "▶",
		Pause:     "⏸",
		Buffering: "…",
		Ended:     "■",
		Book:      "🎧 ",
		Timer:     "⏾ ",
		Error:     "⚠ ",
	}

	noneIcons = Icons{
		Play:      ">",
		Pause:     "||",
		Buffering: "..",
		Ended:     "[]",
		Book:      "",
		Timer:     "",
		Error:     "! ",
	}

	// current holds the active icon set
	current = unicodeIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleNone:
		current = noneIcons
	default:
		current = unicodeIcons
	}
}

func Play() string      { return current.Play }
func Pause() string     { return current.Pause }
func Buffering() string { return current.Buffering }
func Ended() string     { return current.Ended }
func Timer() string     { return current.Timer }
func Error() string     { return current.Error }

// FormatBook prefixes a book title with the book icon.
func FormatBook(title string) string {
	return current.Book + title
}
