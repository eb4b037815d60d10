package world

import "time"

// OverlayKind is the kind of a temporary edge override.
type OverlayKind string

const (
	// OverlayBarrier blocks an edge: hard barriers normalize to force
	// fields, blastable ones to ice walls.
	OverlayBarrier OverlayKind = "barrier"
	// OverlayBlasted clears a previously-barriered edge back to open.
	OverlayBlasted OverlayKind = "blasted"
)

// Overlay is one temporary modification to a single tile edge, expiring
// at ExpiresAt (zero means it never expires on its own — it is cleared
// explicitly, e.g. by a blast spell installing an OverlayBlasted entry).
type Overlay struct {
	Kind      OverlayKind
	Hard      bool // barrier only: hard ⇒ force field, else ⇒ ice wall
	ExpiresAt time.Time
}

type overlayKey struct {
	year int
	x, y int
	dir  Direction
}

// Dynamics tracks transient per-edge overlays — spell-cast barriers,
// blast-cleared rubble — layered on top of the static Grid.
type Dynamics struct {
	overlays map[overlayKey]Overlay
}

// NewDynamics builds an empty Dynamics store.
func NewDynamics() *Dynamics {
	return &Dynamics{overlays: make(map[overlayKey]Overlay)}
}

// SetOverlay installs an overlay on one tile edge.
func (d *Dynamics) SetOverlay(year, x, y int, dir Direction, overlay Overlay) {
	d.overlays[overlayKey{year, x, y, dir}] = overlay
}

// ClearOverlay removes any overlay on one tile edge.
func (d *Dynamics) ClearOverlay(year, x, y int, dir Direction) {
	delete(d.overlays, overlayKey{year, x, y, dir})
}

// OverlayFor returns the live overlay at (year, x, y, dir) as of now, or
// false if there is none or it has expired. An expired overlay is treated
// as absent but is not evicted here — callers that want eviction should
// call ClearOverlay explicitly once they observe the expiry.
func (d *Dynamics) OverlayFor(year, x, y int, dir Direction, now time.Time) (Overlay, bool) {
	ov, ok := d.overlays[overlayKey{year, x, y, dir}]
	if !ok {
		return Overlay{}, false
	}
	if !ov.ExpiresAt.IsZero() && !now.Before(ov.ExpiresAt) {
		return Overlay{}, false
	}
	return ov, true
}
