// Package world holds the grid-world tile/edge model and the edge
// resolver that turns a pair of opposing tile edges into one passability
// decision.
package world

// Direction is one of the four cardinal movement directions.
type Direction string

const (
	North Direction = "N"
	South Direction = "S"
	East  Direction = "E"
	West  Direction = "W"
)

var delta = map[Direction][2]int{
	North: {0, 1},
	South: {0, -1},
	East:  {1, 0},
	West:  {-1, 0},
}

var opposite = map[Direction]Direction{
	North: South,
	South: North,
	East:  West,
	West:  East,
}

// Offset returns the (dx, dy) step a move in dir takes.
func Offset(dir Direction) (int, int) {
	d := delta[dir]
	return d[0], d[1]
}

// ParseDirection maps a lowercase single-letter token ("n", "s", "e", "w")
// to a Direction. Unknown tokens return ("", false).
func ParseDirection(token string) (Direction, bool) {
	switch token {
	case "n":
		return North, true
	case "s":
		return South, true
	case "e":
		return East, true
	case "w":
		return West, true
	default:
		return "", false
	}
}

// BaseKind is the normalized edge kind after _normalize_base_kind.
type BaseKind string

const (
	BaseOpen     BaseKind = "open"
	BaseBoundary BaseKind = "boundary"
	BaseIce      BaseKind = "ice"
	BaseForce    BaseKind = "force"
	BaseGate     BaseKind = "gate"
)

// GateState is the normalized gate_state: 0 open, 1 closed, 2 locked.
type GateState int

const (
	GateOpen   GateState = 0
	GateClosed GateState = 1
	GateLocked GateState = 2
)

// Edge is one tile's view of a single direction, as stored in the world
// grid. Base and GateState arrive from the catalog in mixed int/string
// form in the original data model; NormalizeBaseKind/NormalizeGateState
// fold that down to the canonical values above.
type Edge struct {
	Base      string
	GateState string
	LockType  string // key_type required to unlock a BaseGate edge, "" means any key (or unlocked already)
}

// Tile is a single grid cell: the four edges that bound it.
type Tile struct {
	Edges map[Direction]Edge
}

// EdgeAt returns the stored edge for dir, or the zero Edge if unset —
// the resolver treats a zero Edge as boundary, matching the original's
// "missing/unknown ⇒ boundary" conservative default.
func (t Tile) EdgeAt(dir Direction) Edge {
	if t.Edges == nil {
		return Edge{}
	}
	return t.Edges[dir]
}

// Grid is an in-memory registry of tiles, keyed by (year, x, y).
type Grid struct {
	years map[int]map[[2]int]Tile
}

// NewGrid builds an empty Grid.
func NewGrid() *Grid {
	return &Grid{years: make(map[int]map[[2]int]Tile)}
}

// SetTile installs or replaces the tile at (year, x, y).
func (g *Grid) SetTile(year, x, y int, tile Tile) {
	yr, ok := g.years[year]
	if !ok {
		yr = make(map[[2]int]Tile)
		g.years[year] = yr
	}
	yr[[2]int{x, y}] = tile
}

// GetTile returns the tile at (year, x, y), or false if nothing was ever
// set there (the resolver treats this the same as an all-boundary tile).
func (g *Grid) GetTile(year, x, y int) (Tile, bool) {
	yr, ok := g.years[year]
	if !ok {
		return Tile{}, false
	}
	tile, ok := yr[[2]int{x, y}]
	return tile, ok
}

// SetEdge installs edge as (year,x,y)'s dir side AND mirrors it onto the
// neighbor tile's opposite side, preserving every other edge on both
// tiles — the symmetry gate/lock commands must maintain, per the
// "neighbor's opposite edge mirrored" invariant. Missing tiles are
// created as needed.
func (g *Grid) SetEdge(year, x, y int, dir Direction, edge Edge) {
	cur, _ := g.GetTile(year, x, y)
	if cur.Edges == nil {
		cur.Edges = make(map[Direction]Edge)
	}
	cur.Edges[dir] = edge
	g.SetTile(year, x, y, cur)

	dx, dy := delta[dir][0], delta[dir][1]
	opp := opposite[dir]
	nbr, _ := g.GetTile(year, x+dx, y+dy)
	if nbr.Edges == nil {
		nbr.Edges = make(map[Direction]Edge)
	}
	nbr.Edges[opp] = edge
	g.SetTile(year, x+dx, y+dy, nbr)
}

// Years returns every year with at least one tile, for catalog iteration.
func (g *Grid) Years() []int {
	out := make([]int, 0, len(g.years))
	for y := range g.years {
		out = append(out, y)
	}
	return out
}
