package board

// Stage selects which subset of legal moves a generation call returns. Splitting
// generation by stage lets search order cheap, highly-productive moves (captures,
// promotions, checks) ahead of quiet moves without generating and then re-sorting the
// full list every node. Grounded on BelikovArtem-chego/movegen.go's staged interface.
type Stage uint8

const (
	// All returns every legal move.
	All Stage = iota
	// Material returns captures, en passant and promotions (including under-promotions).
	Material
	// NonMaterial returns every legal move that Material does not.
	NonMaterial
	// Tactical returns Material moves plus quiet moves that give check.
	Tactical
	// Quiet returns NonMaterial moves that do not give check.
	Quiet
)

// checkSquares holds, for each attacking piece type, the destination squares from which
// that piece type would attack a given king. Precomputed once per generation call so
// classifying a candidate move as Tactical/Quiet is a handful of bitboard tests rather
// than a full attacker recomputation per move.
type checkSquares struct {
	rook, bishop, knight, pawn Bitboard
}

func (p *Position) computeCheckSquares(kingSq Square, defender Color) checkSquares {
	occ := p.occupied
	return checkSquares{
		rook:   RookAttackboard(occ, kingSq),
		bishop: BishopAttackboard(occ, kingSq),
		knight: KnightAttackboard(kingSq),
		pawn:   PawnCaptureboard(defender, BitMask(kingSq)),
	}
}

func (cs checkSquares) destinationChecks(piece Piece, to Square) bool {
	switch piece {
	case Queen:
		return cs.rook.IsSet(to) || cs.bishop.IsSet(to)
	case Rook:
		return cs.rook.IsSet(to)
	case Bishop:
		return cs.bishop.IsSet(to)
	case Knight:
		return cs.knight.IsSet(to)
	case Pawn:
		return cs.pawn.IsSet(to)
	default:
		return false
	}
}

func isMaterialMove(m Move) bool {
	switch m.Type {
	case Capture, EnPassant, CapturePromotion, Promotion:
		return true
	default:
		return false
	}
}

func (p *Position) stageAllows(stage Stage, m Move, cs checkSquares) bool {
	material := isMaterialMove(m)
	switch stage {
	case All:
		return true
	case Material:
		return material
	case NonMaterial:
		return !material
	case Tactical:
		return material || cs.destinationChecks(m.Piece, m.To)
	case Quiet:
		return !material && !cs.destinationChecks(m.Piece, m.To)
	default:
		return false
	}
}

// LegalMoves returns every legal move of the given stage for the side to move. The
// generator never returns a move that leaves the mover's own king in check: pinned
// pieces are constrained to their pin ray, king moves are probed against the board with
// the king itself removed (so it cannot "hide" behind its own square from a slider), and
// moves while in check are restricted to capturing the checker, interposing, or moving
// the king.
func (p *Position) LegalMoves(stage Stage) []Move {
	turn := p.turn
	kingSq := p.King(turn)

	switch p.checkers.PopCount() {
	case 0:
		return p.generateNonCheck(turn, kingSq, stage)
	case 1:
		return p.generateEvasions(turn, kingSq, stage)
	default:
		return p.generateDoubleCheckEvasions(turn, kingSq, stage)
	}
}

// PseudoLegalMoves returns the same fully legal move list as LegalMoves(All). The name
// and turn parameter are retained for callers written against the generator's earlier,
// two-phase (generate-then-filter) shape; turn must equal p.Turn().
func (p *Position) PseudoLegalMoves(turn Color) []Move {
	return p.LegalMoves(All)
}

func (p *Position) generateNonCheck(turn Color, kingSq Square, stage Stage) []Move {
	opp := turn.Opponent()
	pinned, pinRay := p.pinnedAndRays(turn)

	var cs checkSquares
	if stage == Tactical || stage == Quiet {
		cs = p.computeCheckSquares(p.King(opp), opp)
	}

	moves := make([]Move, 0, 32)
	own := p.pieces[turn][NoPiece]

	for _, piece := range []Piece{Queen, Rook, Bishop, Knight} {
		bb := p.pieces[turn][piece] &^ pinned
		for _, from := range bb.Squares() {
			targets := Attackboard(p.occupied, from, piece) &^ own
			moves = p.appendOfficerMoves(moves, from, piece, targets, stage, cs)
		}
	}

	// Pinned officers are restricted to their pin ray. A piece whose movement pattern
	// never intersects that ray (e.g. a rook pinned diagonally) simply contributes no
	// moves; a pinned knight is never legal to move and is excluded from this loop.
	for _, piece := range []Piece{Queen, Rook, Bishop} {
		bb := p.pieces[turn][piece] & pinned
		for _, from := range bb.Squares() {
			targets := Attackboard(p.occupied, from, piece) & pinRay[from] &^ own
			moves = p.appendOfficerMoves(moves, from, piece, targets, stage, cs)
		}
	}

	moves = p.generatePawnMoves(moves, turn, pinned, pinRay, stage, cs)
	moves = p.generateKingMoves(moves, turn, kingSq, stage, cs)

	return moves
}

func (p *Position) appendOfficerMoves(moves []Move, from Square, piece Piece, targets Bitboard, stage Stage, cs checkSquares) []Move {
	for _, to := range targets.Squares() {
		m := Move{From: from, To: to, Piece: piece, Type: Normal}
		if p.occupied.IsSet(to) {
			_, cap, _ := p.Square(to)
			m.Type = Capture
			m.Capture = cap
		}
		if p.stageAllows(stage, m, cs) {
			moves = append(moves, m)
		}
	}
	return moves
}

func (p *Position) generatePawnMoves(moves []Move, turn Color, pinned Bitboard, pinRay map[Square]Bitboard, stage Stage, cs checkSquares) []Move {
	opp := turn.Opponent()
	promoRank := PawnPromotionRank(turn)
	startRank := Rank2
	if turn == Black {
		startRank = Rank7
	}

	for _, from := range p.pieces[turn][Pawn].Squares() {
		restrict := FullBitboard
		if pinned.IsSet(from) {
			restrict = pinRay[from]
		}

		single := PawnMoveboard(p.occupied, turn, BitMask(from))
		push := single & restrict
		for _, to := range push.Squares() {
			moves = p.emitPawnMove(moves, from, to, Push, promoRank, stage, cs)
		}
		if single != 0 && from.Rank() == startRank {
			mid := single.LastPopSquare()
			jump := PawnMoveboard(p.occupied, turn, BitMask(mid)) & PawnJumpRank(turn) & restrict
			for _, to := range jump.Squares() {
				moves = p.emitPawnMove(moves, from, to, Jump, promoRank, stage, cs)
			}
		}

		capTargets := PawnCaptureboard(turn, BitMask(from)) & p.pieces[opp][NoPiece] & restrict
		for _, to := range capTargets.Squares() {
			_, capPiece, _ := p.Square(to)
			moves = p.emitPawnCapture(moves, from, to, capPiece, promoRank, stage, cs)
		}

		if ep, ok := p.EnPassant(); ok {
			if PawnCaptureboard(turn, BitMask(from))&BitMask(ep) != 0 && restrict.IsSet(ep) {
				if p.enPassantIsLegal(turn, from, ep) {
					m := Move{Type: EnPassant, From: from, To: ep, Piece: Pawn, Capture: Pawn}
					if p.stageAllows(stage, m, cs) {
						moves = append(moves, m)
					}
				}
			}
		}
	}
	return moves
}

func (p *Position) emitPawnMove(moves []Move, from, to Square, typ MoveType, promoRank Bitboard, stage Stage, cs checkSquares) []Move {
	if promoRank.IsSet(to) {
		for _, promo := range []Piece{Queen, Rook, Bishop, Knight} {
			m := Move{Type: Promotion, From: from, To: to, Piece: Pawn, Promotion: promo}
			if p.stageAllows(stage, m, cs) {
				moves = append(moves, m)
			}
		}
		return moves
	}
	m := Move{Type: typ, From: from, To: to, Piece: Pawn}
	if p.stageAllows(stage, m, cs) {
		moves = append(moves, m)
	}
	return moves
}

func (p *Position) emitPawnCapture(moves []Move, from, to Square, capture Piece, promoRank Bitboard, stage Stage, cs checkSquares) []Move {
	if promoRank.IsSet(to) {
		for _, promo := range []Piece{Queen, Rook, Bishop, Knight} {
			m := Move{Type: CapturePromotion, From: from, To: to, Piece: Pawn, Promotion: promo, Capture: capture}
			if p.stageAllows(stage, m, cs) {
				moves = append(moves, m)
			}
		}
		return moves
	}
	m := Move{Type: Capture, From: from, To: to, Piece: Pawn, Capture: capture}
	if p.stageAllows(stage, m, cs) {
		moves = append(moves, m)
	}
	return moves
}

// enPassantIsLegal handles the discovered-check edge case of 4.5.3: capturing en passant
// removes two pawns from the same rank as the king, which can expose a rook/queen check
// along that rank even though neither pawn was individually pinned.
func (p *Position) enPassantIsLegal(turn Color, from, ep Square) bool {
	m := Move{Type: EnPassant, From: from, To: ep}
	epc, _ := m.EnPassantCapture()

	occ := (p.occupied &^ BitMask(from) &^ BitMask(epc)) | BitMask(ep)
	kingSq := p.King(turn)
	return !p.isAttackedWithOccupancy(turn, kingSq, occ)
}

func (p *Position) generateKingMoves(moves []Move, turn Color, kingSq Square, stage Stage, cs checkSquares) []Move {
	own := p.pieces[turn][NoPiece]
	occWithoutKing := p.occupied &^ BitMask(kingSq)

	targets := KingAttackboard(kingSq) &^ own
	for _, to := range targets.Squares() {
		if p.isAttackedWithOccupancy(turn, to, occWithoutKing) {
			continue
		}
		m := Move{From: kingSq, To: to, Piece: King, Type: Normal}
		if p.occupied.IsSet(to) {
			_, cap, _ := p.Square(to)
			m.Type = Capture
			m.Capture = cap
		}
		if p.stageAllows(stage, m, cs) {
			moves = append(moves, m)
		}
	}

	if p.checkers == 0 {
		if p.castling.IsAllowed(KingSide(turn)) && p.canCastle(turn, kingSq, true) {
			m := Move{Type: KingSideCastle, From: kingSq, To: NewSquare(FileG, homeRank(turn)), Piece: King}
			if p.stageAllows(stage, m, cs) {
				moves = append(moves, m)
			}
		}
		if p.castling.IsAllowed(QueenSide(turn)) && p.canCastle(turn, kingSq, false) {
			m := Move{Type: QueenSideCastle, From: kingSq, To: NewSquare(FileC, homeRank(turn)), Piece: King}
			if p.stageAllows(stage, m, cs) {
				moves = append(moves, m)
			}
		}
	}

	return moves
}

func (p *Position) canCastle(turn Color, kingSq Square, kingSide bool) bool {
	rank := homeRank(turn)

	var transit, dest Square
	var between []File
	if kingSide {
		transit, dest = NewSquare(FileF, rank), NewSquare(FileG, rank)
		between = []File{FileF, FileG}
	} else {
		transit, dest = NewSquare(FileD, rank), NewSquare(FileC, rank)
		between = []File{FileD, FileC, FileB}
	}

	for _, f := range between {
		if p.occupied.IsSet(NewSquare(f, rank)) {
			return false
		}
	}

	occWithoutKing := p.occupied &^ BitMask(kingSq)
	if p.isAttackedWithOccupancy(turn, kingSq, occWithoutKing) {
		return false
	}
	if p.isAttackedWithOccupancy(turn, transit, occWithoutKing) {
		return false
	}
	return !p.isAttackedWithOccupancy(turn, dest, occWithoutKing)
}

func isSlider(piece Piece) bool {
	return piece == Rook || piece == Bishop || piece == Queen
}

// generateEvasions handles the single-checker case: the mover may capture the checker,
// interpose a piece on the ray between the checker and the king (sliders only), or move
// the king. Pinned pieces cannot help -- with a single checker, a piece pinned against a
// different ray than the one under attack would expose a second check by moving, so
// pinned non-king pieces are excluded entirely.
func (p *Position) generateEvasions(turn Color, kingSq Square, stage Stage) []Move {
	opp := turn.Opponent()
	checkerSq := p.checkers.LastPopSquare()
	_, checkerPiece, _ := p.Square(checkerSq)

	var cs checkSquares
	if stage == Tactical || stage == Quiet {
		cs = p.computeCheckSquares(p.King(opp), opp)
	}

	moves := make([]Move, 0, 8)
	moves = p.generateKingMoves(moves, turn, kingSq, stage, cs)

	targetSquares := p.checkers
	if isSlider(checkerPiece) {
		targetSquares |= rayBetween(kingSq, checkerSq)
	}

	pinned, _ := p.pinnedAndRays(turn)
	own := p.pieces[turn][NoPiece]

	for _, piece := range []Piece{Queen, Rook, Bishop, Knight} {
		bb := p.pieces[turn][piece] &^ pinned
		for _, from := range bb.Squares() {
			reach := Attackboard(p.occupied, from, piece) & targetSquares &^ own
			moves = p.appendOfficerMoves(moves, from, piece, reach, stage, cs)
		}
	}

	moves = p.generatePawnEvasions(moves, turn, pinned, checkerSq, targetSquares, stage, cs)

	return moves
}

func (p *Position) generatePawnEvasions(moves []Move, turn Color, pinned Bitboard, checkerSq Square, targetSquares Bitboard, stage Stage, cs checkSquares) []Move {
	promoRank := PawnPromotionRank(turn)
	startRank := Rank2
	if turn == Black {
		startRank = Rank7
	}

	for _, from := range (p.pieces[turn][Pawn] &^ pinned).Squares() {
		single := PawnMoveboard(p.occupied, turn, BitMask(from))
		push := single & targetSquares
		for _, to := range push.Squares() {
			moves = p.emitPawnMove(moves, from, to, Push, promoRank, stage, cs)
		}
		if single != 0 && from.Rank() == startRank {
			mid := single.LastPopSquare()
			jump := PawnMoveboard(p.occupied, turn, BitMask(mid)) & PawnJumpRank(turn) & targetSquares
			for _, to := range jump.Squares() {
				moves = p.emitPawnMove(moves, from, to, Jump, promoRank, stage, cs)
			}
		}

		capTargets := PawnCaptureboard(turn, BitMask(from)) & BitMask(checkerSq)
		for _, to := range capTargets.Squares() {
			_, capPiece, _ := p.Square(to)
			moves = p.emitPawnCapture(moves, from, to, capPiece, promoRank, stage, cs)
		}

		if ep, ok := p.EnPassant(); ok {
			if PawnCaptureboard(turn, BitMask(from))&BitMask(ep) != 0 {
				m := Move{Type: EnPassant, From: from, To: ep}
				epc, _ := m.EnPassantCapture()
				if epc == checkerSq && p.enPassantIsLegal(turn, from, ep) {
					full := Move{Type: EnPassant, From: from, To: ep, Piece: Pawn, Capture: Pawn}
					if p.stageAllows(stage, full, cs) {
						moves = append(moves, full)
					}
				}
			}
		}
	}
	return moves
}

func (p *Position) generateDoubleCheckEvasions(turn Color, kingSq Square, stage Stage) []Move {
	opp := turn.Opponent()
	var cs checkSquares
	if stage == Tactical || stage == Quiet {
		cs = p.computeCheckSquares(p.King(opp), opp)
	}
	return p.generateKingMoves(nil, turn, kingSq, stage, cs)
}
