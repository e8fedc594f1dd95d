package main

import (
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"reelist/internal/config"
)

// colorEnabled resolves the ui.color mode against the actual output stream.
func colorEnabled(cfg *config.Config, out io.Writer) bool {
	mode := "auto"
	if cfg != nil && cfg.UI.Color != "" {
		mode = cfg.UI.Color
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal(out)
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ansiPalette holds reference RGB values for the base terminal colors used
// for nearest-color matching of tag hex colors. Black is left out so dark
// tags stay legible on dark backgrounds.
var ansiPalette = []struct {
	color   text.Color
	r, g, b int
}{
	{text.FgRed, 205, 49, 49},
	{text.FgGreen, 13, 188, 121},
	{text.FgYellow, 229, 229, 16},
	{text.FgBlue, 36, 114, 200},
	{text.FgMagenta, 188, 63, 188},
	{text.FgCyan, 17, 168, 205},
	{text.FgWhite, 229, 229, 229},
}

// nearestANSIColor maps a "#RRGGBB" tag color to the closest base terminal
// color. The bool is false when the value does not parse.
func nearestANSIColor(hex string) (text.Color, bool) {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return 0, false
	}
	best := ansiPalette[0].color
	bestDistance := 1 << 30
	for _, candidate := range ansiPalette {
		dr := r - candidate.r
		dg := g - candidate.g
		db := b - candidate.b
		distance := dr*dr + dg*dg + db*db
		if distance < bestDistance {
			bestDistance = distance
			best = candidate.color
		}
	}
	return best, true
}

func parseHexColor(value string) (r, g, b int, ok bool) {
	if len(value) != 7 || value[0] != '#' {
		return 0, 0, 0, false
	}
	parsed, err := strconv.ParseUint(value[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(parsed >> 16 & 0xff), int(parsed >> 8 & 0xff), int(parsed & 0xff), true
}
