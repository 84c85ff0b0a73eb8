// Package san implements Standard Algebraic Notation emit and parse for moves, per
// spec.md section 4.5.6. PACN (board.Move.String/board.ParseMove) round-trips a move
// against no position at all; SAN round-trips only against the position it was played
// from, so every function here takes the position the move is played from, not after.
//
// Grounded on easychessanimations-zurichess/engine/moves.go's SANToMove: generate the
// legal moves of the named piece type and destination square, then narrow by whatever
// file/rank disambiguation the string carries.
package san

import (
	"fmt"
	"strings"

	"github.com/corvidchess/corvid/pkg/board"
)

// Emit formats m, played from position p, as SAN, including a trailing "+" for check or
// "#" for checkmate.
func Emit(p *board.Position, m board.Move) string {
	var sb strings.Builder

	switch m.Type {
	case board.KingSideCastle:
		sb.WriteString("O-O")
	case board.QueenSideCastle:
		sb.WriteString("O-O-O")
	default:
		if m.Piece != board.Pawn {
			sb.WriteString(strings.ToUpper(m.Piece.String()))
			sb.WriteString(disambiguate(p, m))
		} else if m.IsCapture() {
			sb.WriteString(strings.ToLower(m.From.File().String()))
		}
		if m.IsCapture() {
			sb.WriteString("x")
		}
		sb.WriteString(strings.ToLower(m.To.File().String()))
		sb.WriteString(m.To.Rank().String())
		if m.IsPromotion() {
			sb.WriteString("=")
			sb.WriteString(strings.ToUpper(m.Promotion.String()))
		}
	}

	sb.WriteString(checkSuffix(p, m))
	return sb.String()
}

// disambiguate returns the minimal file/rank/both prefix needed to tell m apart from any
// other legal move of the same piece landing on the same square.
func disambiguate(p *board.Position, m board.Move) string {
	ambiguous, sameFile, sameRank := false, false, false

	for _, cand := range p.LegalMoves(board.All) {
		if cand.Piece != m.Piece || cand.To != m.To || cand.From == m.From {
			continue
		}
		ambiguous = true
		if cand.From.File() == m.From.File() {
			sameFile = true
		}
		if cand.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	if !ambiguous {
		return ""
	}

	switch {
	case !sameFile:
		return strings.ToLower(m.From.File().String())
	case !sameRank:
		return m.From.Rank().String()
	default:
		return strings.ToLower(m.From.File().String()) + m.From.Rank().String()
	}
}

// checkSuffix reports the "+"/"#" decoration for m played from p, if any.
func checkSuffix(p *board.Position, m board.Move) string {
	next := p.Clone()
	next.Make(m)

	if !next.IsChecked(next.Turn()) {
		return ""
	}
	if len(next.LegalMoves(board.All)) == 0 {
		return "#"
	}
	return "+"
}

// Parse interprets s as a SAN move played from position p, resolving disambiguation
// against p's legal moves. Check/mate decorations ("+", "#") and the rarely-seen "e.p."
// suffix are accepted but not required to match the actual position.
func Parse(p *board.Position, s string) (board.Move, error) {
	if s == "" {
		return board.Move{}, fmt.Errorf("san: empty move")
	}

	s = strings.TrimRight(s, "+#")
	s = strings.TrimSuffix(s, "e.p.")

	switch s {
	case "O-O", "0-0":
		return findCastle(p, board.KingSideCastle)
	case "O-O-O", "0-0-0":
		return findCastle(p, board.QueenSideCastle)
	}

	b, e := 0, len(s)
	if e == 0 {
		return board.Move{}, fmt.Errorf("san: empty move")
	}

	piece := board.Pawn
	if strings.ContainsRune("KQRBN", rune(s[0])) {
		fig, _ := board.ParsePiece(rune(s[0]))
		piece, b = fig, b+1
	}

	promotion := board.NoPiece
	if e-b >= 2 {
		if fig, ok := board.ParsePiece(rune(s[e-1])); ok && piece == board.Pawn {
			promotion = fig
			e--
			if e-b >= 1 && s[e-1] == '=' {
				e--
			}
		}
	}

	if e-b < 2 {
		return board.Move{}, fmt.Errorf("san: invalid move %q", s)
	}
	to, err := board.ParseSquareStr(s[e-2 : e])
	if err != nil {
		return board.Move{}, fmt.Errorf("san: invalid destination in %q: %v", s, err)
	}
	e -= 2

	if e-b >= 1 && (s[e-1] == 'x' || s[e-1] == '-') {
		e--
	}

	file, rank := -1, -1
	for ; b < e; b++ {
		switch {
		case 'a' <= s[b] && s[b] <= 'h':
			f, _ := board.ParseFile(rune(s[b]))
			file = int(f)
		case '1' <= s[b] && s[b] <= '8':
			r, _ := board.ParseRank(rune(s[b]))
			rank = int(r)
		default:
			return board.Move{}, fmt.Errorf("san: bad disambiguation in %q", s)
		}
	}

	match, found := board.Move{}, 0
	for _, cand := range p.LegalMoves(board.All) {
		if cand.Piece != piece || cand.To != to || cand.Promotion != promotion {
			continue
		}
		if file != -1 && int(cand.From.File()) != file {
			continue
		}
		if rank != -1 && int(cand.From.Rank()) != rank {
			continue
		}
		match, found = cand, found+1
	}

	switch found {
	case 0:
		return board.Move{}, fmt.Errorf("san: no legal move matches %q", s)
	case 1:
		return match, nil
	default:
		return board.Move{}, fmt.Errorf("san: %q is ambiguous", s)
	}
}

func findCastle(p *board.Position, t board.MoveType) (board.Move, error) {
	for _, cand := range p.LegalMoves(board.All) {
		if cand.Type == t {
			return cand, nil
		}
	}
	return board.Move{}, fmt.Errorf("san: castling not legal in this position")
}
