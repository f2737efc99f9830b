package game

// Leg is the outcome of applying a single from-to move.
type Leg struct {
	Move          Move
	Captured      *Square
	CapturedPiece Piece
	Promoted      bool
	// Continuations are the captures the same piece must choose from next.
	// Empty once the piece is crowned or the leg was not a capture.
	Continuations []Move
}

// Transition is the outcome of a complete turn.
type Transition struct {
	Player     Player
	Trajectory []Move
	Captured   []Square
	Promoted   bool
	Reward     float64
	Result     Result
}

func (t Transition) Terminal() bool {
	return t.Result.Terminal()
}

// ChainPolicy picks the next leg of a multi-jump among the available captures.
type ChainPolicy func(b *Board, options []Move) Move

// FirstCapture continues a chain with the first capture in scan order.
func FirstCapture(_ *Board, options []Move) Move {
	return options[0]
}

// Apply plays move for player and resolves every forced continuation capture
// before returning. An illegal move is rejected and leaves b untouched.
func Apply(b *Board, move Move, player Player, r Rules, chain ChainPolicy) (Transition, error) {
	if !Contains(ValidMoves(b, player, r), move) {
		return Transition{}, illegal(move, player, "not among valid moves")
	}
	if chain == nil {
		chain = FirstCapture
	}

	t := Transition{Player: player}
	next := move
	for {
		leg, err := ApplyLeg(b, next, player, r)
		if err != nil {
			return t, err
		}
		t.Trajectory = append(t.Trajectory, leg.Move)
		if leg.Captured != nil {
			t.Captured = append(t.Captured, *leg.Captured)
		}
		t.Promoted = t.Promoted || leg.Promoted
		if len(leg.Continuations) == 0 {
			break
		}
		next = chain(b, leg.Continuations)
		if !Contains(leg.Continuations, next) {
			next = leg.Continuations[0]
		}
	}

	t.Result = GameResult(b, r)
	t.Reward = r.Rewards().For(player, len(t.Captured), t.Promoted, t.Result)
	return t, nil
}

// ApplyLeg moves one piece along a diagonal, removes the piece it jumps, crowns
// it on the far rank and reports the captures available to continue the chain.
// Only geometry is checked here; use Apply or ValidMoves for full legality.
func ApplyLeg(b *Board, m Move, player Player, r Rules) (Leg, error) {
	piece := b.At(m.FromRow, m.FromCol)
	if piece.Owner() != player {
		return Leg{}, illegal(m, player, "no own piece on origin square")
	}
	if !b.InBounds(m.ToRow, m.ToCol) || b.At(m.ToRow, m.ToCol) != Empty {
		return Leg{}, illegal(m, player, "destination is not an empty square")
	}
	dr, dc := m.ToRow-m.FromRow, m.ToCol-m.FromCol
	if dr == 0 || abs(dr) != abs(dc) {
		return Leg{}, illegal(m, player, "not a diagonal move")
	}

	var jumped *Square
	stepR, stepC := sign(dr), sign(dc)
	for k := 1; k < abs(dr); k++ {
		row, col := m.FromRow+k*stepR, m.FromCol+k*stepC
		occupant := b.At(row, col)
		if occupant == Empty {
			continue
		}
		if occupant.Owner() != player.Opponent() || jumped != nil {
			return Leg{}, illegal(m, player, "path is blocked")
		}
		jumped = &Square{Row: row, Col: col}
	}
	if jumped == nil && abs(dr) > 1 {
		return Leg{}, illegal(m, player, "long move without a capture")
	}

	leg := Leg{Move: m}
	b.Set(m.FromRow, m.FromCol, Empty)
	if jumped != nil {
		leg.Captured = jumped
		leg.CapturedPiece = b.At(jumped.Row, jumped.Col)
		b.Set(jumped.Row, jumped.Col, Empty)
	}
	if piece.IsMan() && m.ToRow == promotionRow(b, player) {
		piece = piece.Crowned()
		leg.Promoted = true
	}
	b.Set(m.ToRow, m.ToCol, piece)

	if jumped != nil && !leg.Promoted {
		leg.Continuations = pieceCaptures(b, m.ToRow, m.ToCol, piece, r)
	}
	return leg, nil
}

// promotionRow is the far rank of player.
func promotionRow(b *Board, p Player) int {
	if p == Player1 {
		return 0
	}
	return b.size - 1
}
