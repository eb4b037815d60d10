package world

import "gopkg.in/yaml.v3"

// rawEdge is one edge's on-disk shape, matching NormalizeBaseKind/
// NormalizeGateState's accepted string forms directly so a map asset can
// write "open"/"gate"/"closed" rather than the resolver's internal enums.
type rawEdge struct {
	Base      string `yaml:"base"`
	GateState string `yaml:"gate_state"`
	LockType  string `yaml:"lock_type"`
}

func (e rawEdge) toEdge() Edge {
	return Edge{Base: e.Base, GateState: e.GateState, LockType: e.LockType}
}

type rawTile struct {
	X     int                `yaml:"x"`
	Y     int                `yaml:"y"`
	Edges map[string]rawEdge `yaml:"edges"`
}

type rawYear struct {
	Tiles []rawTile `yaml:"tiles"`
}

// LoadGrid parses a YAML map document of the shape
// {years: {<year>: {tiles: [{x, y, edges: {N:..., S:..., E:..., W:...}}]}}}
// into a Grid, one tile at a time — each tile's edge block is taken as
// ground truth for its own side, so an asset already listing both
// tiles' matching edges round-trips exactly (SetTile, not SetEdge,
// which would otherwise re-mirror an edge the asset already specified
// symmetrically).
func LoadGrid(data []byte) (*Grid, error) {
	var doc struct {
		Years map[int]rawYear `yaml:"years"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	grid := NewGrid()
	for year, ry := range doc.Years {
		for _, rt := range ry.Tiles {
			tile := Tile{Edges: make(map[Direction]Edge, len(rt.Edges))}
			for dirToken, re := range rt.Edges {
				dir, ok := dirFromToken(dirToken)
				if !ok {
					continue
				}
				tile.Edges[dir] = re.toEdge()
			}
			grid.SetTile(year, rt.X, rt.Y, tile)
		}
	}
	return grid, nil
}

func dirFromToken(token string) (Direction, bool) {
	switch token {
	case "N":
		return North, true
	case "S":
		return South, true
	case "E":
		return East, true
	case "W":
		return West, true
	default:
		return "", false
	}
}
