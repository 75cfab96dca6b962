package play

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPieceTracker_Seed(t *testing.T) {
	tr := NewPieceTracker()
	require.Equal(t, 32, tr.Len())

	cases := map[chess.Square]int{
		chess.E1: 15, chess.E8: 31,
		chess.A2: 0, chess.H2: 7, chess.A7: 16, chess.H7: 23,
		chess.A1: 8, chess.H1: 9, chess.B1: 10, chess.G1: 11,
		chess.C1: 12, chess.F1: 13, chess.D1: 14,
		chess.A8: 24, chess.H8: 25, chess.D8: 30,
	}
	for sq, want := range cases {
		id, ok := tr.PieceID(sq)
		require.True(t, ok, sq.String())
		assert.Equal(t, want, id, sq.String())
	}

	_, ok := tr.PieceID(chess.E4)
	assert.False(t, ok)
}

func TestPieceTracker_MovePiece(t *testing.T) {
	tr := NewPieceTracker()
	before, _ := tr.PieceID(chess.G1)

	require.NoError(t, tr.MovePiece(chess.G1, chess.F3))
	after, ok := tr.PieceID(chess.F3)
	require.True(t, ok)
	assert.Equal(t, before, after)
	_, ok = tr.PieceID(chess.G1)
	assert.False(t, ok)

	sq, ok := tr.Square(after)
	require.True(t, ok)
	assert.Equal(t, chess.F3, sq)
}

func TestPieceTracker_MoveOntoOccupiedDropsVictim(t *testing.T) {
	tr := NewPieceTracker()
	require.NoError(t, tr.MovePiece(chess.D1, chess.D7))

	id, _ := tr.PieceID(chess.D7)
	assert.Equal(t, QueenID, id)
	assert.Equal(t, 31, tr.Len())
	_, ok := tr.Square(19)
	assert.False(t, ok)
}

func TestPieceTracker_MissingSource(t *testing.T) {
	tr := NewPieceTracker()
	err := tr.MovePiece(chess.E4, chess.E5)
	assert.ErrorIs(t, err, ErrNoPieceAt)
	assert.Equal(t, 32, tr.Len())
}

func TestPieceTracker_Remove(t *testing.T) {
	tr := NewPieceTracker()
	id, ok := tr.Remove(chess.D7)
	require.True(t, ok)
	assert.Equal(t, 19, id)
	_, ok = tr.Remove(chess.D7)
	assert.False(t, ok)
}

func TestSeedHandle(t *testing.T) {
	cases := []struct {
		id       int
		piece    chess.Piece
		instance int
	}{
		{0, chess.WhitePawn, 7},
		{7, chess.WhitePawn, 0},
		{8, chess.WhiteRook, 1},
		{9, chess.WhiteRook, 0},
		{10, chess.WhiteKnight, 1},
		{11, chess.WhiteKnight, 0},
		{12, chess.WhiteBishop, 1},
		{13, chess.WhiteBishop, 0},
		{14, chess.WhiteQueen, 0},
		{15, chess.WhiteKing, 0},
		{16, chess.BlackPawn, 7},
		{23, chess.BlackPawn, 0},
		{24, chess.BlackRook, 1},
		{31, chess.BlackKing, 0},
	}
	for _, c := range cases {
		p, inst := SeedHandle(c.id)
		assert.Equal(t, c.piece, p, "id %d", c.id)
		assert.Equal(t, c.instance, inst, "id %d", c.id)
	}
}

func TestSeedFromBoard_StandardMatchesFixedSeed(t *testing.T) {
	rules, err := NewChessRules("")
	require.NoError(t, err)

	fixed := NewPieceTracker()
	seeded := SeedFromBoard(rules.Board())
	require.Equal(t, fixed.Len(), seeded.Len())
	for sq := chess.A1; sq <= chess.H8; sq++ {
		a, okA := fixed.PieceID(sq)
		b, okB := seeded.PieceID(sq)
		assert.Equal(t, okA, okB, sq.String())
		assert.Equal(t, a, b, sq.String())
	}
}

func TestSeedFromBoard_ExtraPiecesGetFreshIDs(t *testing.T) {
	rules, err := NewChessRules("QQQ4k/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	tr := SeedFromBoard(rules.Board())
	require.Equal(t, 5, tr.Len())

	ids := map[int]bool{}
	for _, sq := range []chess.Square{chess.A8, chess.B8, chess.C8} {
		id, ok := tr.PieceID(sq)
		require.True(t, ok)
		ids[id] = true
	}
	assert.True(t, ids[QueenID])
	assert.True(t, ids[seededPieceIDs])
	assert.True(t, ids[seededPieceIDs+1])

	king, _ := tr.PieceID(chess.H8)
	assert.Equal(t, KingID+BlackIDOffset, king)
}

func TestPieceOf(t *testing.T) {
	for _, p := range allPieces {
		assert.Equal(t, p, PieceOf(p.Type(), p.Color()), p.String())
	}
	assert.Equal(t, chess.NoPiece, PieceOf(chess.NoPieceType, chess.White))
}
