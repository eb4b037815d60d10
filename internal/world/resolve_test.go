package world

import "testing"

func tileWith(dir Direction, base string, gs string) Tile {
	return Tile{Edges: map[Direction]Edge{dir: {Base: base, GateState: gs}}}
}

func TestResolveOpenBothSidesIsPassable(t *testing.T) {
	grid := NewGrid()
	grid.SetTile(2000, 0, 0, tileWith(North, "open", "open"))
	grid.SetTile(2000, 0, 1, tileWith(South, "open", "open"))

	dec := Resolve(grid, nil, 2000, 0, 0, North)
	if !dec.Passable {
		t.Fatalf("expected passable, got blocked: %+v", dec)
	}
	if dec.Descriptor != DescArea {
		t.Fatalf("expected %q, got %q", DescArea, dec.Descriptor)
	}
}

func TestResolveOpenGateBothSidesIsPassable(t *testing.T) {
	grid := NewGrid()
	grid.SetTile(2000, 0, 0, tileWith(North, "gate", "open"))
	grid.SetTile(2000, 0, 1, tileWith(South, "gate", "open"))

	dec := Resolve(grid, nil, 2000, 0, 0, North)
	if !dec.Passable {
		t.Fatalf("expected open gate to be passable: %+v", dec)
	}
	if dec.Descriptor != DescGateOpen {
		t.Fatalf("expected %q, got %q", DescGateOpen, dec.Descriptor)
	}
}

func TestResolveClosedGateBlocksBothSides(t *testing.T) {
	grid := NewGrid()
	grid.SetTile(2000, 0, 0, tileWith(North, "gate", "closed"))
	grid.SetTile(2000, 0, 1, tileWith(South, "gate", "closed"))

	dec := Resolve(grid, nil, 2000, 0, 0, North)
	if dec.Passable {
		t.Fatalf("expected closed gate to block")
	}
	if dec.Reason != ReasonClosedGate {
		t.Fatalf("expected reason %q, got %q", ReasonClosedGate, dec.Reason)
	}
}

func TestResolveOneSidedClosedGateBlocksConservatively(t *testing.T) {
	grid := NewGrid()
	grid.SetTile(2000, 0, 0, tileWith(North, "gate", "closed"))
	grid.SetTile(2000, 0, 1, tileWith(South, "open", "open"))

	dec := Resolve(grid, nil, 2000, 0, 0, North)
	if dec.Passable {
		t.Fatalf("expected one-sided closed gate to block")
	}
	if dec.Reason != ReasonClosedGate {
		t.Fatalf("expected reason %q, got %q", ReasonClosedGate, dec.Reason)
	}
}

func TestResolveMissingNeighborTileIsBoundary(t *testing.T) {
	grid := NewGrid()
	grid.SetTile(2000, 0, 0, tileWith(North, "open", "open"))
	// no tile at (0,1): neighbor edge defaults to boundary.

	dec := Resolve(grid, nil, 2000, 0, 0, North)
	if dec.Passable {
		t.Fatalf("expected missing neighbor tile to block")
	}
	if dec.Reason != ReasonBoundary {
		t.Fatalf("expected reason %q, got %q", ReasonBoundary, dec.Reason)
	}
}

func TestResolveIceBlocksEitherSide(t *testing.T) {
	grid := NewGrid()
	grid.SetTile(2000, 0, 0, tileWith(North, "ice", "open"))
	grid.SetTile(2000, 0, 1, tileWith(South, "open", "open"))

	dec := Resolve(grid, nil, 2000, 0, 0, North)
	if dec.Passable {
		t.Fatalf("expected ice wall to block")
	}
	if dec.Descriptor != DescIce {
		t.Fatalf("expected %q, got %q", DescIce, dec.Descriptor)
	}
}

func TestResolveHardBarrierOverlayNormalizesToForce(t *testing.T) {
	grid := NewGrid()
	grid.SetTile(2000, 0, 0, tileWith(North, "open", "open"))
	grid.SetTile(2000, 0, 1, tileWith(South, "open", "open"))

	dyn := NewDynamics()
	dyn.SetOverlay(2000, 0, 0, North, Overlay{Kind: OverlayBarrier, Hard: true})

	dec := Resolve(grid, dyn, 2000, 0, 0, North)
	if dec.Passable {
		t.Fatalf("expected hard barrier overlay to block")
	}
	if dec.Descriptor != DescForce {
		t.Fatalf("expected %q, got %q", DescForce, dec.Descriptor)
	}
}

func TestResolveSoftBarrierOverlayNormalizesToIce(t *testing.T) {
	grid := NewGrid()
	grid.SetTile(2000, 0, 0, tileWith(North, "open", "open"))
	grid.SetTile(2000, 0, 1, tileWith(South, "open", "open"))

	dyn := NewDynamics()
	dyn.SetOverlay(2000, 0, 0, North, Overlay{Kind: OverlayBarrier, Hard: false})

	dec := Resolve(grid, dyn, 2000, 0, 0, North)
	if dec.Passable {
		t.Fatalf("expected blastable barrier overlay to block")
	}
	if dec.Descriptor != DescIce {
		t.Fatalf("expected %q, got %q", DescIce, dec.Descriptor)
	}
}

func TestResolveBlastedOverlayOpensAFormerBarrier(t *testing.T) {
	grid := NewGrid()
	grid.SetTile(2000, 0, 0, tileWith(North, "ice", "open"))
	grid.SetTile(2000, 0, 1, tileWith(South, "open", "open"))

	dyn := NewDynamics()
	dyn.SetOverlay(2000, 0, 0, North, Overlay{Kind: OverlayBlasted})

	dec := Resolve(grid, dyn, 2000, 0, 0, North)
	if !dec.Passable {
		t.Fatalf("expected blasted overlay to clear the ice wall: %+v", dec)
	}
}

func TestNormalizeBaseKindUnknownStringIsBoundary(t *testing.T) {
	if got := NormalizeBaseKind("lava"); got != BaseBoundary {
		t.Fatalf("expected unknown kind to normalize to boundary, got %q", got)
	}
}

func TestNormalizeGateStateAmbiguousIsLocked(t *testing.T) {
	if got := NormalizeGateState("half-open"); got != GateLocked {
		t.Fatalf("expected ambiguous gate_state to normalize to locked, got %v", got)
	}
}
