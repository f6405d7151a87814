package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/pkg/errors"
)

// DefaultWidth is the wrap width used when none is given
const DefaultWidth = 100

// Terminal renders Markdown for a terminal. style is a glamour style name
// ("dark", "light", "notty", ...); empty picks one from the terminal background.
func Terminal(text string, width int, style string) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", errors.Wrap(err, "create terminal renderer")
	}
	out, err := r.Render(text)
	if err != nil {
		return "", errors.Wrap(err, "render markdown")
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}
