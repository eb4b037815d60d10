// Package command implements the text command surface: the
// unique-prefix dispatcher and one handler file per command family
// named in spec.md §6.3.
package command

import (
	"math/rand"

	"github.com/vindeiatrix/mutantsgo/internal/config"
	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/items"
	"github.com/vindeiatrix/mutantsgo/internal/monster"
	"github.com/vindeiatrix/mutantsgo/internal/player"
	"github.com/vindeiatrix/mutantsgo/internal/randpool"
	"github.com/vindeiatrix/mutantsgo/internal/world"
	"go.uber.org/zap"
)

// Context bundles every collaborator a command handler needs. One
// Context is built at boot and shared by every call into Dispatcher.Call
// — there is exactly one active session in this process, so unlike the
// teacher's per-connection Deps there's no per-session indirection here.
type Context struct {
	State          *player.State
	Items          *items.Registry
	ItemCatalog    *items.Catalog
	Monsters       *monster.Registry
	MonsterCatalog *monster.Catalog
	Grid           *world.Grid
	Dynamics       *world.Dynamics
	Bus            *feedback.Bus
	Cfg            *config.Config
	RNG            *rand.Rand
	Pool           *randpool.Pool
	Log            *zap.Logger
	Theme          Themer

	Quit bool
}

// Themer is the external theming collaborator theme.go's theme
// handler delegates to — theming holds no gameplay invariant, so core
// only needs a name to forward the request to.
type Themer interface {
	SetTheme(name string) error
}

// NoopThemer is the zero-value Themer: it accepts any theme name and
// does nothing, used when no external theming collaborator is wired.
type NoopThemer struct{}

func (NoopThemer) SetTheme(string) error { return nil }
