package play

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChessRules_StartPosition(t *testing.T) {
	r, err := NewChessRules("")
	require.NoError(t, err)

	assert.Len(t, r.LegalMoves(), 20)
	assert.Equal(t, chess.White, r.SideToMove())
	assert.Equal(t, chess.WhiteKing, r.PieceAt(chess.E1))
	assert.Equal(t, chess.NoPiece, r.PieceAt(chess.E4))
	assert.False(t, r.InCheck())

	outcome, _ := r.Outcome()
	assert.Equal(t, chess.NoOutcome, outcome)
}

func TestChessRules_FindAndApply(t *testing.T) {
	r, err := NewChessRules("")
	require.NoError(t, err)

	_, ok := r.FindMove(chess.E2, chess.E5)
	assert.False(t, ok)

	m, ok := r.FindMove(chess.E2, chess.E4)
	require.True(t, ok)
	assert.False(t, r.IsCapture(m))
	require.NoError(t, r.Apply(m))

	assert.Equal(t, chess.Black, r.SideToMove())
	assert.Equal(t, chess.WhitePawn, r.PieceAt(chess.E4))
	assert.Len(t, r.LegalMoves(), 20)
}

func TestChessRules_BadFEN(t *testing.T) {
	_, err := NewChessRules("not a position")
	assert.Error(t, err)
}

func TestChessRules_PromotionPicksQueen(t *testing.T) {
	r, err := NewChessRules("7k/4P3/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	m, ok := r.FindMove(chess.E7, chess.E8)
	require.True(t, ok)
	assert.Equal(t, chess.Queen, m.Promo())
}

func TestCapturedSquareAndCastlingRook(t *testing.T) {
	r, err := NewChessRules("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2")
	require.NoError(t, err)
	m, ok := r.FindMove(chess.E5, chess.D6)
	require.True(t, ok)
	assert.True(t, r.IsCapture(m))
	assert.Equal(t, chess.D5, CapturedSquare(m))

	r, err = NewChessRules("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	m, ok = r.FindMove(chess.E1, chess.G1)
	require.True(t, ok)
	from, to, ok := CastlingRook(m)
	require.True(t, ok)
	assert.Equal(t, chess.H1, from)
	assert.Equal(t, chess.F1, to)

	m, ok = r.FindMove(chess.E1, chess.C1)
	require.True(t, ok)
	from, to, ok = CastlingRook(m)
	require.True(t, ok)
	assert.Equal(t, chess.A1, from)
	assert.Equal(t, chess.D1, to)

	m, _ = r.FindMove(chess.E1, chess.E2)
	_, _, ok = CastlingRook(m)
	assert.False(t, ok)
}

func TestChessRules_InCheckFromFEN(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		check bool
	}{
		{"rook on the file", "4r2k/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"rook blocked", "4r2k/8/8/8/4P3/8/8/4K3 w - - 0 1", false},
		{"bishop diagonal", "7k/8/8/8/8/8/2b5/3K4 w - - 0 1", true},
		{"knight", "7k/8/8/8/8/3n4/8/4K3 w - - 0 1", true},
		{"black pawn attacks downwards", "7k/8/8/8/8/8/3p4/4K3 w - - 0 1", true},
		{"white pawn on black king", "8/8/8/8/8/6k1/5P2/K7 b - - 0 1", true},
		{"queen far away off line", "7k/8/8/8/8/1q6/8/4K3 w - - 0 1", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := NewChessRules(c.fen)
			require.NoError(t, err)
			assert.Equal(t, c.check, r.InCheck())
		})
	}
}

func TestChessRules_InCheckAfterMove(t *testing.T) {
	r, err := NewChessRules("4r2k/8/8/8/8/8/8/3K4 b - - 0 1")
	require.NoError(t, err)
	assert.False(t, r.InCheck())

	m, ok := r.FindMove(chess.E8, chess.D8)
	require.True(t, ok)
	require.NoError(t, r.Apply(m))
	assert.True(t, r.InCheck())
}
