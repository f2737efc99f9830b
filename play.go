package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"checkers/engine"
	"checkers/game"
	"checkers/render"
)

const consoleHelp = `commands:
  r1 c1 r2 c2      move the piece at (r1,c1) to (r2,c2), one jump at a time
  moves            list valid moves
  from r c         show where the piece at (r,c) can go
  undo             take back your last turn
  history          list the moves played
  difficulty NAME  restart on another level
  reset            start a new game
  quit`

// console plays a session between a human on stdin and a computer mover.
type console struct {
	in       *bufio.Scanner
	out      io.Writer
	session  *engine.Session
	computer engine.Mover
	human    game.Player
	renderer *render.Renderer
}

func newConsole(in io.Reader, out io.Writer, session *engine.Session, computer engine.Mover, human game.Player, renderer *render.Renderer) *console {
	return &console{
		in:       bufio.NewScanner(in),
		out:      out,
		session:  session,
		computer: computer,
		human:    human,
		renderer: renderer,
	}
}

func (c *console) run() error {
	fmt.Fprintln(c.out, consoleHelp)
	var highlight []game.Square
	for {
		if c.session.State() != engine.GameOver && c.session.ActivePlayer() != c.human {
			if err := c.computerTurn(); err != nil {
				return err
			}
			continue
		}

		if err := c.renderer.Render(c.session.Board(), highlight, c.status()); err != nil {
			return err
		}
		highlight = nil

		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			return c.in.Err()
		}
		fields := strings.Fields(c.in.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "q":
			return nil
		case "help":
			fmt.Fprintln(c.out, consoleHelp)
		case "moves":
			for _, m := range c.session.ValidMoves() {
				fmt.Fprintln(c.out, m)
			}
		case "from":
			row, col, err := parseSquare(fields[1:])
			if err != nil {
				fmt.Fprintln(c.out, err)
				continue
			}
			highlight = c.session.Destinations(row, col)
			if len(highlight) == 0 {
				fmt.Fprintf(c.out, "no moves from (%d,%d)\n", row, col)
			}
		case "undo":
			c.undoTurn()
		case "history":
			for i, r := range c.session.History() {
				fmt.Fprintf(c.out, "%d. %s %s\n", i+1, r.Player, r.Move)
			}
		case "difficulty":
			if len(fields) != 2 {
				fmt.Fprintln(c.out, "usage: difficulty NAME")
				continue
			}
			if err := c.session.SetDifficulty(fields[1]); err != nil {
				fmt.Fprintln(c.out, err)
			}
		case "reset":
			c.session.Reset()
		default:
			c.submit(fields)
		}
	}
}

func (c *console) status() string {
	switch c.session.State() {
	case engine.GameOver:
		return fmt.Sprintf("game over: %s", c.session.Result())
	case engine.CapturePending:
		return fmt.Sprintf("%s must keep capturing", c.session.ActivePlayer())
	default:
		return fmt.Sprintf("%s to move", c.session.ActivePlayer())
	}
}

func (c *console) submit(fields []string) {
	move, err := parseMove(fields)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	_, err = c.session.Submit(move)
	if err != nil {
		fmt.Fprintln(c.out, err)
	}
}

func (c *console) computerTurn() error {
	tr, ok, err := c.session.PlayTurn(c.computer, nil)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("computer has no move in an unfinished game")
	}
	for _, m := range tr.Trajectory {
		fmt.Fprintf(c.out, "%s plays %s\n", tr.Player, m)
	}
	return nil
}

// undoTurn reverts legs until the human is to move at the start of a turn.
func (c *console) undoTurn() {
	if err := c.session.Undo(); err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	for c.session.ActivePlayer() != c.human || c.session.State() == engine.CapturePending {
		if err := c.session.Undo(); err != nil {
			return
		}
	}
}

func parseMove(fields []string) (game.Move, error) {
	if len(fields) != 4 {
		return game.Move{}, fmt.Errorf("expected a move as four numbers, got %q", strings.Join(fields, " "))
	}
	var n [4]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return game.Move{}, fmt.Errorf("invalid coordinate %q", f)
		}
		n[i] = v
	}
	return game.Move{FromRow: n[0], FromCol: n[1], ToRow: n[2], ToCol: n[3]}, nil
}

func parseSquare(fields []string) (int, int, error) {
	if len(fields) != 2 {
		return 0, 0, errors.New("expected a square as two numbers")
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row %q", fields[0])
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid column %q", fields[1])
	}
	return row, col, nil
}
