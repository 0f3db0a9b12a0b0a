// Package engine implements the rules of the falling-block puzzle: board,
// piece catalog, randomizers, scoring, timers and the session state machine.
// It has no terminal, audio or storage dependencies; collaborators are
// reached through the Listener and BestScores interfaces.
package engine

// PieceType identifies one of the seven tetrominoes.
// The zero value marks an empty board cell.
type PieceType uint8

const (
	PieceNone PieceType = iota
	PieceI
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL
)

// PieceTypes lists the playable pieces in catalog order.
var PieceTypes = [7]PieceType{PieceI, PieceO, PieceT, PieceS, PieceZ, PieceJ, PieceL}

var pieceNames = [...]string{"", "I", "O", "T", "S", "Z", "J", "L"}

func (p PieceType) String() string {
	if int(p) < len(pieceNames) {
		return pieceNames[p]
	}
	return "?"
}

// Valid reports whether p is one of the seven playable pieces.
func (p PieceType) Valid() bool {
	return p >= PieceI && p <= PieceL
}

// MarshalText encodes the piece as its letter; empty cells encode as "".
func (p PieceType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// ParsePieceType maps a letter back to a piece.
func ParsePieceType(s string) (PieceType, bool) {
	for i, name := range pieceNames {
		if name == s && i > 0 {
			return PieceType(i), true
		}
	}
	return PieceNone, false
}

// Shape is one rotation state of a piece: a rectangular matrix of occupied flags.
type Shape [][]bool

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows.
func (s Shape) Height() int {
	return len(s)
}

// Each calls fn with the offset of every occupied cell.
func (s Shape) Each(fn func(dx, dy int)) {
	for dy, row := range s {
		for dx, filled := range row {
			if filled {
				fn(dx, dy)
			}
		}
	}
}

// shape builds a Shape from rows drawn with '#' for filled cells.
func shape(rows ...string) Shape {
	out := make(Shape, len(rows))
	for y, row := range rows {
		out[y] = make([]bool, len(row))
		for x, c := range row {
			out[y][x] = c == '#'
		}
	}
	return out
}

// catalog holds the rotation states of each piece, indexed by PieceType.
// Rotation advances by one index and wraps.
var catalog = [...][]Shape{
	PieceNone: nil,
	PieceI: {
		shape("####"),
		shape("#", "#", "#", "#"),
	},
	PieceO: {
		shape("##", "##"),
	},
	PieceT: {
		shape(".#.", "###"),
		shape("#.", "##", "#."),
		shape("###", ".#."),
		shape(".#", "##", ".#"),
	},
	PieceS: {
		shape(".##", "##."),
		shape("#.", "##", ".#"),
	},
	PieceZ: {
		shape("##.", ".##"),
		shape(".#", "##", "#."),
	},
	PieceJ: {
		shape("#..", "###"),
		shape("##", "#.", "#."),
		shape("###", "..#"),
		shape(".#", ".#", "##"),
	},
	PieceL: {
		shape("..#", "###"),
		shape("#.", "#.", "##"),
		shape("###", "#.."),
		shape("##", ".#", ".#"),
	},
}

// Rotations returns the rotation states of p. Callers must not modify them.
func Rotations(p PieceType) []Shape {
	if !p.Valid() {
		return nil
	}
	return catalog[p]
}

// RotationCount returns how many distinct rotation states p has.
func RotationCount(p PieceType) int {
	return len(Rotations(p))
}

// ShapeOf returns the shape of p at the given rotation index, wrapped into range.
func ShapeOf(p PieceType, rotation int) Shape {
	rots := Rotations(p)
	if len(rots) == 0 {
		return nil
	}
	n := len(rots)
	return rots[((rotation%n)+n)%n]
}
