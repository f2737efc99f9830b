package game

// GameResult evaluates a position: a side without pieces loses, a side without
// moves loses, and the game is drawn when neither side can move.
func GameResult(b *Board, r Rules) Result {
	if b.Count(Player1) == 0 {
		return Player2Wins
	}
	if b.Count(Player2) == 0 {
		return Player1Wins
	}

	canMove1 := HasMoves(b, Player1, r)
	canMove2 := HasMoves(b, Player2, r)
	switch {
	case !canMove1 && !canMove2:
		return Draw
	case !canMove1:
		return Player2Wins
	case !canMove2:
		return Player1Wins
	default:
		return Ongoing
	}
}
