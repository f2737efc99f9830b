package game

type direction struct {
	dr, dc int
}

// Fixed scan order keeps move lists reproducible.
var (
	allDirections  = []direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	upDirections   = []direction{{-1, -1}, {-1, 1}}
	downDirections = []direction{{1, -1}, {1, 1}}
)

func forwardDirections(p Player) []direction {
	if p == Player1 {
		return upDirections
	}
	return downDirections
}

func stepDirections(piece Piece) []direction {
	if piece.IsKing() {
		return allDirections
	}
	return forwardDirections(piece.Owner())
}

func captureDirections(piece Piece, r Rules) []direction {
	if piece.IsKing() || r.MenCaptureBackward() {
		return allDirections
	}
	return forwardDirections(piece.Owner())
}

// ValidMoves returns the legal moves of player in row-major order of the moving
// piece. If any capture is available only captures are returned.
func ValidMoves(b *Board, player Player, r Rules) []Move {
	var simple, jumps []Move
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			piece := b.At(row, col)
			if piece.Owner() != player {
				continue
			}
			jumps = append(jumps, pieceCaptures(b, row, col, piece, r)...)
			if len(jumps) == 0 {
				simple = append(simple, pieceSteps(b, row, col, piece)...)
			}
		}
	}
	if len(jumps) > 0 {
		return jumps
	}
	return simple
}

// CaptureMoves returns the captures available to the piece on (row, col).
func CaptureMoves(b *Board, row, col int, r Rules) []Move {
	piece := b.At(row, col)
	if piece == Empty {
		return nil
	}
	return pieceCaptures(b, row, col, piece, r)
}

// HasMoves reports whether player has at least one legal move.
func HasMoves(b *Board, player Player, r Rules) bool {
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			piece := b.At(row, col)
			if piece.Owner() != player {
				continue
			}
			if len(pieceSteps(b, row, col, piece)) > 0 || len(pieceCaptures(b, row, col, piece, r)) > 0 {
				return true
			}
		}
	}
	return false
}

func pieceSteps(b *Board, row, col int, piece Piece) []Move {
	var moves []Move
	for _, d := range stepDirections(piece) {
		toRow, toCol := row+d.dr, col+d.dc
		if b.InBounds(toRow, toCol) && b.At(toRow, toCol) == Empty {
			moves = append(moves, Move{FromRow: row, FromCol: col, ToRow: toRow, ToCol: toCol})
		}
	}
	return moves
}

func pieceCaptures(b *Board, row, col int, piece Piece, r Rules) []Move {
	var moves []Move
	opponent := piece.Owner().Opponent()
	for _, d := range captureDirections(piece, r) {
		if piece.IsMan() {
			midRow, midCol := row+d.dr, col+d.dc
			toRow, toCol := row+2*d.dr, col+2*d.dc
			if b.InBounds(toRow, toCol) && b.At(midRow, midCol).Owner() == opponent && b.At(toRow, toCol) == Empty {
				moves = append(moves, Move{FromRow: row, FromCol: col, ToRow: toRow, ToCol: toCol})
			}
			continue
		}

		// Kings slide over empty squares until the first piece on the diagonal
		k := 1
		for b.InBounds(row+k*d.dr, col+k*d.dc) && b.At(row+k*d.dr, col+k*d.dc) == Empty {
			k++
		}
		if !b.InBounds(row+k*d.dr, col+k*d.dc) || b.At(row+k*d.dr, col+k*d.dc).Owner() != opponent {
			continue
		}
		for j := k + 1; b.InBounds(row+j*d.dr, col+j*d.dc) && b.At(row+j*d.dr, col+j*d.dc) == Empty; j++ {
			moves = append(moves, Move{FromRow: row, FromCol: col, ToRow: row + j*d.dr, ToCol: col + j*d.dc})
			if !r.FlyingKingCaptures() {
				break
			}
		}
	}
	return moves
}
