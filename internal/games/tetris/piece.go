package tetris

import "github.com/vovakirdan/arcade-classics/internal/core"

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	KindI Kind = iota
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
	kindCount
)

// Shape is a rectangular occupancy matrix, rows top to bottom.
type Shape [][]bool

var shapes = [kindCount][]string{
	KindI: {"XXXX"},
	KindJ: {"X..", "XXX"},
	KindL: {"..X", "XXX"},
	KindO: {"XX", "XX"},
	KindS: {".XX", "XX."},
	KindT: {".X.", "XXX"},
	KindZ: {"XX.", ".XX"},
}

var kindColors = [kindCount]core.Color{
	KindI: core.ColorCyan,
	KindJ: core.ColorBlue,
	KindL: core.ColorOrange,
	KindO: core.ColorYellow,
	KindS: core.ColorGreen,
	KindT: core.ColorMagenta,
	KindZ: core.ColorRed,
}

func (k Kind) String() string {
	return [...]string{"I", "J", "L", "O", "S", "T", "Z"}[k]
}

// Color returns the block color for the kind.
func (k Kind) Color() core.Color {
	return kindColors[k]
}

// ShapeOf returns a fresh copy of the spawn orientation.
func ShapeOf(k Kind) Shape {
	rows := shapes[k]
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, c := range row {
			s[y][x] = c == 'X'
		}
	}
	return s
}

// Width returns the column count.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the row count.
func (s Shape) Height() int {
	return len(s)
}

// Rotate returns the shape turned 90 degrees clockwise.
func (s Shape) Rotate() Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for x := 0; x < w; x++ {
		out[x] = make([]bool, h)
		for y := 0; y < h; y++ {
			out[x][y] = s[h-1-y][x]
		}
	}
	return out
}

// Piece is the falling tetromino.
type Piece struct {
	Kind  Kind
	Shape Shape
	X, Y  int
}

// cells calls fn for every occupied well coordinate.
func (p Piece) cells(fn func(x, y int)) {
	for dy, row := range p.Shape {
		for dx, filled := range row {
			if filled {
				fn(p.X+dx, p.Y+dy)
			}
		}
	}
}
