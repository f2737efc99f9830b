// Package render draws boards for a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"checkers/game"

	"github.com/muesli/termenv"
)

const (
	player1Color   = "#E03C31"
	player2Color   = "#4A90E2"
	highlightColor = "#F5C542"
)

type Renderer struct {
	w   io.Writer
	out *termenv.Output
}

// New detects the color support of w.
func New(w io.Writer) *Renderer {
	return &Renderer{w: w, out: termenv.NewOutput(w)}
}

func NewWithProfile(w io.Writer, profile termenv.Profile) *Renderer {
	return &Renderer{w: w, out: termenv.NewOutput(w, termenv.WithProfile(profile))}
}

// Board formats b with row and column labels. Highlighted empty squares are
// drawn as '*'.
func (r *Renderer) Board(b *game.Board, highlight []game.Square) string {
	marked := make(map[game.Square]bool, len(highlight))
	for _, sq := range highlight {
		marked[sq] = true
	}

	var sb strings.Builder
	sb.WriteString("  ")
	for col := 0; col < b.Size(); col++ {
		fmt.Fprintf(&sb, " %d", col)
	}
	sb.WriteByte('\n')
	for row := 0; row < b.Size(); row++ {
		fmt.Fprintf(&sb, "%d ", row)
		for col := 0; col < b.Size(); col++ {
			sb.WriteByte(' ')
			sb.WriteString(r.cell(b, row, col, marked[game.Square{Row: row, Col: col}]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (r *Renderer) cell(b *game.Board, row, col int, marked bool) string {
	if !b.Dark(row, col) {
		return " "
	}
	piece := b.At(row, col)
	if piece == game.Empty {
		if marked {
			return r.out.String("*").Foreground(r.out.Profile.Color(highlightColor)).String()
		}
		return "."
	}

	glyph := "x"
	color := player1Color
	if piece.Owner() == game.Player2 {
		glyph, color = "o", player2Color
	}
	style := r.out.String(glyph).Foreground(r.out.Profile.Color(color))
	if piece.IsKing() {
		style = r.out.String(strings.ToUpper(glyph)).Foreground(r.out.Profile.Color(color)).Bold()
	}
	if marked {
		style = style.Reverse()
	}
	return style.String()
}

// Render writes the board followed by a status line.
func (r *Renderer) Render(b *game.Board, highlight []game.Square, status string) error {
	_, err := fmt.Fprint(r.w, r.Board(b, highlight))
	if err != nil {
		return err
	}
	if status != "" {
		_, err = fmt.Fprintln(r.w, status)
	}
	return err
}
