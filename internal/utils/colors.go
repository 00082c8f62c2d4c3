package utils

const (
	ColorEnd     = "\033[0m"
	ColorBlue    = "\033[34m"
	ColorGreen   = "\033[32m"
	ColorRed     = "\033[31m"
	ColorYellow  = "\033[33m"
	ColorCyan    = "\033[36m"
	ColorWarning = "\033[1;33m"
	ColorBold    = "\033[1m"
)

func Colorize(text string, color string) string {
	return color + text + ColorEnd
}
