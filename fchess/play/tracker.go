package play

import (
	"fmt"
	"sort"

	"github.com/notnil/chess"
)

// Piece ids of the standard seed. Black ids are the white ones plus BlackIDOffset.
const (
	PawnIDFirst    = 0
	RookIDQueen    = 8
	RookIDKing     = 9
	KnightIDQueen  = 10
	KnightIDKing   = 11
	BishopIDQueen  = 12
	BishopIDKing   = 13
	QueenID        = 14
	KingID         = 15
	BlackIDOffset  = 16
	seededPieceIDs = 32
)

// PieceTracker maps occupied squares to stable piece ids. Every id lives on
// exactly one square; a captured id is dropped from the map.
type PieceTracker struct {
	ids    map[chess.Square]int
	nextID int
}

// NewPieceTracker returns a tracker seeded for the standard starting position.
func NewPieceTracker() *PieceTracker {
	t := &PieceTracker{ids: make(map[chess.Square]int, 32), nextID: seededPieceIDs}
	back := [8]int{RookIDQueen, KnightIDQueen, BishopIDQueen, QueenID, KingID, BishopIDKing, KnightIDKing, RookIDKing}
	for f := 0; f < 8; f++ {
		file := chess.File(f)
		t.ids[squareOf(file, chess.Rank2)] = PawnIDFirst + f
		t.ids[squareOf(file, chess.Rank1)] = back[f]
		t.ids[squareOf(file, chess.Rank7)] = PawnIDFirst + f + BlackIDOffset
		t.ids[squareOf(file, chess.Rank8)] = back[f] + BlackIDOffset
	}
	return t
}

// SeedFromBoard assigns ids to an arbitrary position. A piece prefers the free
// seed id of its kind that starts on its file, then any free one of its kind;
// extras get ids from 32 up.
func SeedFromBoard(board *chess.Board) *PieceTracker {
	t := &PieceTracker{ids: make(map[chess.Square]int, 32), nextID: seededPieceIDs}

	free := make(map[chess.Piece][]int)
	for id := 0; id < seededPieceIDs; id++ {
		p, _ := SeedHandle(id)
		free[p] = append(free[p], id)
	}
	for p := range free {
		ids := free[p]
		sort.Slice(ids, func(i, j int) bool { return seedFile(ids[i]) < seedFile(ids[j]) })
	}

	squares := board.SquareMap()
	order := make([]chess.Square, 0, len(squares))
	for sq := range squares {
		order = append(order, sq)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	for _, sq := range order {
		p := squares[sq]
		ids := free[p]
		if len(ids) == 0 {
			t.ids[sq] = t.nextID
			t.nextID++
			continue
		}
		pick := 0
		for i, id := range ids {
			if seedFile(id) == int(sq.File()) {
				pick = i
				break
			}
		}
		t.ids[sq] = ids[pick]
		free[p] = append(ids[:pick:pick], ids[pick+1:]...)
	}
	return t
}

// seedFile is the starting file of a seeded id, used to hand out ids in file order.
func seedFile(id int) int {
	switch local := id % BlackIDOffset; local {
	case RookIDQueen:
		return 0
	case KnightIDQueen:
		return 1
	case BishopIDQueen:
		return 2
	case QueenID:
		return 3
	case KingID:
		return 4
	case BishopIDKing:
		return 5
	case KnightIDKing:
		return 6
	case RookIDKing:
		return 7
	default:
		return local
	}
}

func (t *PieceTracker) PieceID(sq chess.Square) (int, bool) {
	id, ok := t.ids[sq]
	return id, ok
}

// Square is the reverse lookup of PieceID.
func (t *PieceTracker) Square(id int) (chess.Square, bool) {
	for sq, v := range t.ids {
		if v == id {
			return sq, true
		}
	}
	return chess.NoSquare, false
}

// MovePiece moves the id on from to to, dropping whatever id was on to.
func (t *PieceTracker) MovePiece(from, to chess.Square) error {
	id, ok := t.ids[from]
	if !ok {
		return fmt.Errorf("move %s%s: %w", from, to, ErrNoPieceAt)
	}
	delete(t.ids, from)
	t.ids[to] = id
	return nil
}

// Remove drops the id on sq, used for en passant where the victim is not on
// the destination square.
func (t *PieceTracker) Remove(sq chess.Square) (int, bool) {
	id, ok := t.ids[sq]
	if ok {
		delete(t.ids, sq)
	}
	return id, ok
}

func (t *PieceTracker) Len() int {
	return len(t.ids)
}

// SeedHandle returns the piece and instance slot a seeded id starts in.
func SeedHandle(id int) (chess.Piece, int) {
	color := chess.White
	local := id
	if id >= BlackIDOffset {
		color = chess.Black
		local = id - BlackIDOffset
	}
	switch local {
	case RookIDQueen:
		return PieceOf(chess.Rook, color), 1
	case RookIDKing:
		return PieceOf(chess.Rook, color), 0
	case KnightIDQueen:
		return PieceOf(chess.Knight, color), 1
	case KnightIDKing:
		return PieceOf(chess.Knight, color), 0
	case BishopIDQueen:
		return PieceOf(chess.Bishop, color), 1
	case BishopIDKing:
		return PieceOf(chess.Bishop, color), 0
	case QueenID:
		return PieceOf(chess.Queen, color), 0
	case KingID:
		return PieceOf(chess.King, color), 0
	default:
		return PieceOf(chess.Pawn, color), 7 - local
	}
}

// PieceOf looks up the piece constant for a kind and colour.
func PieceOf(pt chess.PieceType, c chess.Color) chess.Piece {
	for _, p := range allPieces {
		if p.Type() == pt && p.Color() == c {
			return p
		}
	}
	return chess.NoPiece
}

var allPieces = []chess.Piece{
	chess.WhiteKing, chess.WhiteQueen, chess.WhiteRook, chess.WhiteBishop, chess.WhiteKnight, chess.WhitePawn,
	chess.BlackKing, chess.BlackQueen, chess.BlackRook, chess.BlackBishop, chess.BlackKnight, chess.BlackPawn,
}

func squareOf(f chess.File, r chess.Rank) chess.Square {
	return chess.Square(int(r)*8 + int(f))
}
