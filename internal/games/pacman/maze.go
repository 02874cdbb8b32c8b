package pacman

// Tile is one maze cell.
type Tile int

const (
	TileEmpty  Tile = 0
	TileWall   Tile = 1
	TilePellet Tile = 2
	TilePower  Tile = 3
	TileStart  Tile = 5
)

// Rows and Cols are the maze dimensions.
const (
	Rows = 15
	Cols = 15
)

var layout = [Rows][Cols]Tile{
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 2, 2, 2, 2, 2, 2, 1, 2, 2, 2, 2, 2, 2, 1},
	{1, 3, 1, 1, 2, 1, 1, 1, 1, 1, 2, 1, 1, 3, 1},
	{1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 1},
	{1, 2, 1, 1, 2, 1, 2, 1, 2, 1, 2, 1, 1, 2, 1},
	{1, 2, 2, 2, 2, 1, 2, 2, 2, 1, 2, 2, 2, 2, 1},
	{1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1},
	{0, 0, 0, 1, 2, 1, 2, 2, 2, 1, 2, 1, 0, 0, 0},
	{1, 1, 1, 1, 2, 1, 2, 1, 2, 1, 2, 1, 1, 1, 1},
	{1, 2, 2, 2, 2, 2, 2, 1, 2, 2, 2, 2, 2, 2, 1},
	{1, 2, 1, 1, 2, 1, 1, 1, 1, 1, 2, 1, 1, 2, 1},
	{1, 3, 2, 1, 2, 2, 2, 2, 2, 2, 2, 1, 2, 3, 1},
	{1, 1, 2, 1, 2, 1, 2, 1, 2, 1, 2, 1, 2, 1, 1},
	{1, 2, 2, 2, 2, 1, 2, 2, 2, 1, 2, 2, 2, 2, 1},
	{1, 5, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 1},
}

// Dir is a heading, in clockwise order.
type Dir int

const (
	DirRight Dir = iota
	DirDown
	DirLeft
	DirUp
)

// Clockwise returns the next heading turning right.
func (d Dir) Clockwise() Dir {
	return (d + 1) % 4
}

func (d Dir) delta() (dr, dc int) {
	switch d {
	case DirRight:
		return 0, 1
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	default:
		return -1, 0
	}
}

// Cell is a maze coordinate.
type Cell struct {
	Row, Col int
}

// Next returns the neighbouring cell in a direction.
func (c Cell) Next(d Dir) Cell {
	dr, dc := d.delta()
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

// Maze is a mutable copy of the layout.
type Maze struct {
	tiles   [Rows][Cols]Tile
	pellets int
}

// NewMaze returns a fresh maze with every pellet in place.
func NewMaze() *Maze {
	m := &Maze{tiles: layout}
	for _, row := range m.tiles {
		for _, t := range row {
			if t == TilePellet || t == TilePower {
				m.pellets++
			}
		}
	}
	return m
}

// Open reports whether a cell is inside the maze and not a wall.
func (m *Maze) Open(c Cell) bool {
	if c.Row < 0 || c.Row >= Rows || c.Col < 0 || c.Col >= Cols {
		return false
	}
	return m.tiles[c.Row][c.Col] != TileWall
}

// At returns the tile at a cell.
func (m *Maze) At(c Cell) Tile {
	return m.tiles[c.Row][c.Col]
}

// Eat clears a pellet and returns what was there.
func (m *Maze) Eat(c Cell) Tile {
	t := m.tiles[c.Row][c.Col]
	if t == TilePellet || t == TilePower {
		m.tiles[c.Row][c.Col] = TileEmpty
		m.pellets--
	}
	return t
}

// Pellets returns how many pellets remain.
func (m *Maze) Pellets() int {
	return m.pellets
}
