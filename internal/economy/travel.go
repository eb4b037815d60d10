package economy

import (
	"math/rand"

	"github.com/vindeiatrix/mutantsgo/internal/player"
	"github.com/vindeiatrix/mutantsgo/internal/world"
)

// FloorCentury rounds year down to its century, per travel.py's
// _floor_century.
func FloorCentury(year int) int {
	if year < 0 {
		return -(((-year + 99) / 100) * 100)
	}
	return (year / 100) * 100
}

// CostForTrip is 3000 ions per century of distance between two
// already-floored years, per travel.py's _cost_for_trip.
func CostForTrip(curYear, targetYear, perCentury int) int {
	delta := targetYear - curYear
	if delta < 0 {
		delta = -delta
	}
	return perCentury * (delta / 100)
}

// InstalledCenturies returns every century year the world grid has at
// least one tile for, sorted ascending — travel.py's _installed_years,
// ported from a filesystem directory scan to a Grid.Years() scan since
// this codebase already holds the world in one in-memory grid.
func InstalledCenturies(grid *world.Grid) []int {
	out := make([]int, 0, len(grid.Years()))
	for _, y := range grid.Years() {
		if y%100 == 0 {
			out = append(out, y)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func yearInstalled(year int, installed []int) bool {
	for _, y := range installed {
		if y == year {
			return true
		}
	}
	return false
}

// TravelReason names why a travel attempt ended the way it did.
type TravelReason string

const (
	TravelFree         TravelReason = "free"
	TravelFull          TravelReason = "full"
	TravelPartial       TravelReason = "partial"
	TravelNotInstalled  TravelReason = "not_installed"
	TravelNoPortal      TravelReason = "no_portal"
)

// TravelOutcome is what Travel did to the active profile.
type TravelOutcome struct {
	Reason     TravelReason
	FinalYear  int
	IonsSpent  int
}

// Travel implements travel.py's travel_cmd against p: same-century
// travel is free, full-funds travel spends CostForTrip and resets
// position to (year,0,0), partial funds (>= one portal's worth, <
// full cost) zero the player's ions and send them to a uniformly random
// installed century in [2000,3000], and under-a-portal's-worth of ions
// refuses the trip outright.
func Travel(p *player.Profile, rawTargetYear int, installed []int, perCentury int, rng *rand.Rand) TravelOutcome {
	target := FloorCentury(rawTargetYear)
	if !yearInstalled(target, installed) {
		return TravelOutcome{Reason: TravelNotInstalled}
	}

	curYear := p.Pos.Year
	if target == curYear {
		return TravelOutcome{Reason: TravelFree, FinalYear: curYear}
	}

	const portalMinimum = 3000
	if p.Currencies.Ions < portalMinimum {
		return TravelOutcome{Reason: TravelNoPortal}
	}

	cost := CostForTrip(curYear, target, perCentury)
	if p.Currencies.Ions >= cost {
		p.Currencies.Ions -= cost
		p.Pos = player.Position{Year: target, X: 0, Y: 0}
		return TravelOutcome{Reason: TravelFull, FinalYear: target, IonsSpent: cost}
	}

	pool := make([]int, 0, len(installed))
	for _, y := range installed {
		if y >= 2000 && y <= 3000 {
			pool = append(pool, y)
		}
	}
	if len(pool) == 0 {
		return TravelOutcome{Reason: TravelNotInstalled}
	}
	dest := pool[rng.Intn(len(pool))]
	spent := p.Currencies.Ions
	p.Currencies.Ions = 0
	p.Pos = player.Position{Year: dest, X: 0, Y: 0}
	return TravelOutcome{Reason: TravelPartial, FinalYear: dest, IonsSpent: spent}
}
