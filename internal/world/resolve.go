package world

import "time"

// Descriptor strings a client prints for an edge, mirroring the original
// four canonical descriptions plus the two gate variants.
const (
	DescArea        = "area continues."
	DescIce         = "wall of ice."
	DescForce       = "ion force field."
	DescGateOpen    = "open gate."
	DescGateClosed  = "closed gate."
)

// Reason is the short machine-readable cause attached to a Decision,
// independent of the human-facing Descriptor.
type Reason string

const (
	ReasonOK          Reason = "ok"
	ReasonBoundary    Reason = "boundary"
	ReasonClosedGate  Reason = "closed_gate"
	ReasonIce         Reason = "ice"
	ReasonForce       Reason = "force"
)

// ReasonStep is one entry in a Decision's diagnostic chain, e.g.
// ("cur.base", "gate") or ("overlay", "barrier:hard").
type ReasonStep struct {
	Key   string
	Value string
}

// Decision is the resolver's verdict for one (tile, direction) edge.
type Decision struct {
	Passable   bool
	Descriptor string
	Reason     Reason
	Chain      []ReasonStep
	CurEdge    Edge
	NbrEdge    Edge
}

// NormalizeBaseKind maps the catalog's mixed int/string "base" values to
// one of the five canonical kinds, defaulting to boundary for anything it
// doesn't recognize — a conservative "unknown means blocked" stance.
func NormalizeBaseKind(raw string) BaseKind {
	switch raw {
	case "open", "terrain", "0":
		return BaseOpen
	case "boundary", "":
		return BaseBoundary
	case "ice", "1":
		return BaseIce
	case "force", "ion", "2":
		return BaseForce
	case "gate", "3":
		return BaseGate
	default:
		return BaseBoundary
	}
}

// NormalizeGateState maps the catalog's mixed int/string gate_state
// values to the canonical 0/1/2 enum, defaulting to locked when the
// value is present but unrecognized.
func NormalizeGateState(raw string) GateState {
	switch raw {
	case "", "open", "0":
		return GateOpen
	case "closed", "1":
		return GateClosed
	case "locked", "2":
		return GateLocked
	default:
		return GateLocked
	}
}

func gateStateLabel(gs GateState) string {
	switch gs {
	case GateOpen:
		return "open"
	case GateClosed:
		return "closed"
	default:
		return "locked"
	}
}

// Resolve computes the final passability and descriptor for the edge
// leaving tile (year, x, y) in direction dir, by composing BOTH sides:
// the current tile's dir edge and the neighbor tile's opposite edge.
// Missing tiles/edges are treated as boundary — the same conservative
// default the original takes for absent catalog data.
func Resolve(grid *Grid, dynamics *Dynamics, year, x, y int, dir Direction) Decision {
	dx, dy := delta[dir][0], delta[dir][1]
	opp := opposite[dir]

	curTile, _ := grid.GetTile(year, x, y)
	nbrTile, _ := grid.GetTile(year, x+dx, y+dy)
	curEdge := curTile.EdgeAt(dir)
	nbrEdge := nbrTile.EdgeAt(opp)

	var chain []ReasonStep

	curKind := NormalizeBaseKind(curEdge.Base)
	nbrKind := NormalizeBaseKind(nbrEdge.Base)
	curGS := NormalizeGateState(curEdge.GateState)
	nbrGS := NormalizeGateState(nbrEdge.GateState)

	chain = append(chain, ReasonStep{"cur.base", string(curKind)})
	chain = append(chain, ReasonStep{"nbr.base", string(nbrKind)})
	if curKind == BaseGate {
		chain = append(chain, ReasonStep{"cur.gate", gateStateLabel(curGS)})
	}
	if nbrKind == BaseGate {
		chain = append(chain, ReasonStep{"nbr.gate", gateStateLabel(nbrGS)})
	}

	if dynamics != nil {
		if overlay, ok := dynamics.OverlayFor(year, x, y, dir, time.Now()); ok {
			switch overlay.Kind {
			case OverlayBarrier:
				if overlay.Hard {
					chain = append(chain, ReasonStep{"overlay", "barrier:hard"})
					curKind = BaseForce
				} else {
					chain = append(chain, ReasonStep{"overlay", "barrier:blastable"})
					curKind = BaseIce
				}
			case OverlayBlasted:
				chain = append(chain, ReasonStep{"overlay", "blasted"})
				curKind = BaseOpen
			}
		}
	}

	switch {
	case curKind == BaseBoundary || nbrKind == BaseBoundary:
		return Decision{false, DescForce, ReasonBoundary, chain, curEdge, nbrEdge}
	case (curKind == BaseGate && curGS != GateOpen) || (nbrKind == BaseGate && nbrGS != GateOpen):
		return Decision{false, DescGateClosed, ReasonClosedGate, chain, curEdge, nbrEdge}
	case curKind == BaseIce || nbrKind == BaseIce:
		return Decision{false, DescIce, ReasonIce, chain, curEdge, nbrEdge}
	case curKind == BaseForce || nbrKind == BaseForce:
		return Decision{false, DescForce, ReasonForce, chain, curEdge, nbrEdge}
	case (curKind == BaseGate && curGS == GateOpen) || (nbrKind == BaseGate && nbrGS == GateOpen):
		return Decision{true, DescGateOpen, ReasonOK, chain, curEdge, nbrEdge}
	default:
		return Decision{true, DescArea, ReasonOK, chain, curEdge, nbrEdge}
	}
}
