package play

import (
	"fmt"

	"github.com/notnil/chess"
)

// Rules is the black-box chess engine the gameplay drives.
type Rules interface {
	LegalMoves() []*chess.Move
	FindMove(from, to chess.Square) (*chess.Move, bool)
	Apply(m *chess.Move) error
	SideToMove() chess.Color
	PieceAt(sq chess.Square) chess.Piece
	IsCapture(m *chess.Move) bool
	InCheck() bool
	Outcome() (chess.Outcome, chess.Method)
	Board() *chess.Board
	FEN() string
	Reset(fen string) error
}

// ChessRules adapts github.com/notnil/chess. Legal moves are cached and
// recomputed after every applied move.
type ChessRules struct {
	game  *chess.Game
	moves []*chess.Move
}

// NewChessRules starts from fen, or from the standard position when fen is empty.
func NewChessRules(fen string) (*ChessRules, error) {
	r := &ChessRules{}
	if err := r.Reset(fen); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ChessRules) Reset(fen string) error {
	opts := []func(*chess.Game){chess.UseNotation(chess.UCINotation{})}
	if fen != "" {
		f, err := chess.FEN(fen)
		if err != nil {
			return fmt.Errorf("parse fen %q: %w", fen, err)
		}
		opts = append(opts, f)
	}
	r.game = chess.NewGame(opts...)
	r.moves = r.game.ValidMoves()
	return nil
}

func (r *ChessRules) LegalMoves() []*chess.Move {
	return r.moves
}

// FindMove returns the legal move between two squares. Promotions always
// pick the queen.
func (r *ChessRules) FindMove(from, to chess.Square) (*chess.Move, bool) {
	var found *chess.Move
	for _, m := range r.moves {
		if m.S1() != from || m.S2() != to {
			continue
		}
		if m.Promo() == chess.NoPieceType || m.Promo() == chess.Queen {
			return m, true
		}
		if found == nil {
			found = m
		}
	}
	return found, found != nil
}

func (r *ChessRules) Apply(m *chess.Move) error {
	if err := r.game.Move(m); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIllegalMove, m, err)
	}
	r.moves = r.game.ValidMoves()
	return nil
}

func (r *ChessRules) SideToMove() chess.Color {
	return r.game.Position().Turn()
}

func (r *ChessRules) PieceAt(sq chess.Square) chess.Piece {
	return r.game.Position().Board().Piece(sq)
}

func (r *ChessRules) IsCapture(m *chess.Move) bool {
	return m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant)
}

// InCheck reports whether the side to move is in check. After a move the
// engine's Check tag answers it; a position loaded from FEN has no move yet,
// so the board is scanned for an attacker of the king.
func (r *ChessRules) InCheck() bool {
	if moves := r.game.Moves(); len(moves) > 0 {
		return moves[len(moves)-1].HasTag(chess.Check)
	}
	side := r.SideToMove()
	board := r.Board()
	king := chess.NoSquare
	for sq, p := range board.SquareMap() {
		if p.Type() == chess.King && p.Color() == side {
			king = sq
			break
		}
	}
	if king == chess.NoSquare {
		return false
	}
	for sq, p := range board.SquareMap() {
		if p.Color() == side.Other() && attacks(board, p, sq, king) {
			return true
		}
	}
	return false
}

// attacks reports whether p standing on from attacks to.
func attacks(board *chess.Board, p chess.Piece, from, to chess.Square) bool {
	df := int(to.File()) - int(from.File())
	dr := int(to.Rank()) - int(from.Rank())
	adf, adr := abs(df), abs(dr)
	switch p.Type() {
	case chess.Pawn:
		forward := 1
		if p.Color() == chess.Black {
			forward = -1
		}
		return dr == forward && adf == 1
	case chess.Knight:
		return adf*adr == 2
	case chess.King:
		return max(adf, adr) == 1
	case chess.Rook:
		return (df == 0 || dr == 0) && pathClear(board, from, df, dr)
	case chess.Bishop:
		return adf == adr && pathClear(board, from, df, dr)
	case chess.Queen:
		return (df == 0 || dr == 0 || adf == adr) && pathClear(board, from, df, dr)
	}
	return false
}

// pathClear reports whether the squares strictly between from and
// from+(df, dr) are empty. The offset must be a straight or diagonal line.
func pathClear(board *chess.Board, from chess.Square, df, dr int) bool {
	steps := max(abs(df), abs(dr))
	sf, sr := sign(df), sign(dr)
	f, rk := int(from.File()), int(from.Rank())
	for i := 1; i < steps; i++ {
		if board.Piece(squareOf(chess.File(f+i*sf), chess.Rank(rk+i*sr))) != chess.NoPiece {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func (r *ChessRules) Outcome() (chess.Outcome, chess.Method) {
	return r.game.Outcome(), r.game.Method()
}

func (r *ChessRules) Board() *chess.Board {
	return r.game.Position().Board()
}

func (r *ChessRules) FEN() string {
	return r.game.FEN()
}

// CapturedSquare is where the piece taken by m stands; it differs from the
// destination only for en passant.
func CapturedSquare(m *chess.Move) chess.Square {
	if m.HasTag(chess.EnPassant) {
		return squareOf(m.S2().File(), m.S1().Rank())
	}
	return m.S2()
}

// CastlingRook returns the rook's squares for a castling move.
func CastlingRook(m *chess.Move) (from, to chess.Square, ok bool) {
	rank := m.S1().Rank()
	switch {
	case m.HasTag(chess.KingSideCastle):
		return squareOf(chess.FileH, rank), squareOf(chess.FileF, rank), true
	case m.HasTag(chess.QueenSideCastle):
		return squareOf(chess.FileA, rank), squareOf(chess.FileD, rank), true
	default:
		return chess.NoSquare, chess.NoSquare, false
	}
}
