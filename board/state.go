package board

type State uint8

const (
	// StateUnknown is when game state is unknown.
	StateUnknown State = iota

	// StateRunning is when game is on progress.
	StateRunning

	// StateCheckWhite is when White King is in check.
	StateCheckWhite

	// StateCheckBlack is when Black King is in check.
	StateCheckBlack

	// StateCheckmateWhite is when White King is in checkmate.
	StateCheckmateWhite

	// StateCheckmateBlack is when Black King is in checkmate.
	StateCheckmateBlack
)

// State evaluates the game from the point of view of the side to move. A side
// without moves that is not in check is still reported as running.
func (b *Board) State(turn Side) State {
	if !b.IsInCheck(turn) {
		return StateRunning
	}
	if b.IsCheckmate(turn) {
		if turn == SideWhite {
			return StateCheckmateWhite
		}
		return StateCheckmateBlack
	}
	if turn == SideWhite {
		return StateCheckWhite
	}
	return StateCheckBlack
}

func (s State) IsRunning() bool {
	switch s {
	case StateRunning, StateCheckWhite, StateCheckBlack:
		return true
	default:
		return false
	}
}

func (s State) IsCheck() bool {
	switch s {
	case StateCheckWhite, StateCheckBlack:
		return true
	default:
		return false
	}
}

func (s State) IsCheckmate() bool {
	switch s {
	case StateCheckmateWhite, StateCheckmateBlack:
		return true
	default:
		return false
	}
}

// Winner returns the side that delivered mate, or SideUnknown.
func (s State) Winner() Side {
	switch s {
	case StateCheckmateWhite:
		return SideBlack
	case StateCheckmateBlack:
		return SideWhite
	default:
		return SideUnknown
	}
}

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "StateUnknown"
	case StateRunning:
		return "StateRunning"
	case StateCheckWhite:
		return "StateCheckWhite"
	case StateCheckBlack:
		return "StateCheckBlack"
	case StateCheckmateWhite:
		return "StateCheckmateWhite"
	case StateCheckmateBlack:
		return "StateCheckmateBlack"
	default:
		return ""
	}
}
