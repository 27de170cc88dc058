// Package render converts the CHIP-8 framebuffer to text output.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"golang.org/x/term"
)

// Style defines the characters used for pixels.
type Style struct {
	On  string
	Off string
}

// Predefined pixel styles.
var (
	ASCII  = Style{On: "#", Off: "."}
	Blocks = Style{On: "█", Off: " "}
)

// StyleFor returns block characters when the file descriptor is a terminal
// that is wide enough for a full row, ASCII otherwise.
func StyleFor(fd int) Style {
	if !term.IsTerminal(fd) {
		return ASCII
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width < chip8.ScreenWidth {
		return ASCII
	}
	return Blocks
}

// Text writes the framebuffer as one line per pixel row, framed by a border.
func Text(w io.Writer, fb *chip8.Framebuffer, style Style) error {
	buf := bufio.NewWriter(w)
	border := "+" + strings.Repeat("-", chip8.ScreenWidth) + "+\n"

	if _, err := buf.WriteString(border); err != nil {
		return fmt.Errorf("writing border: %w", err)
	}
	for y := range chip8.ScreenHeight {
		if _, err := buf.WriteString(Line(fb, y, style)); err != nil {
			return fmt.Errorf("writing row %d: %w", y, err)
		}
	}
	if _, err := buf.WriteString(border); err != nil {
		return fmt.Errorf("writing border: %w", err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

// Line renders a single framebuffer row including border and newline.
func Line(fb *chip8.Framebuffer, y int, style Style) string {
	var sb strings.Builder
	sb.WriteByte('|')
	for x := range chip8.ScreenWidth {
		if fb.Pixel(x, y) {
			sb.WriteString(style.On)
		} else {
			sb.WriteString(style.Off)
		}
	}
	sb.WriteString("|\n")
	return sb.String()
}
