// Command mutantsgo is the engine's process entry point: a single-player,
// single-process REPL over the command dispatcher, grounded on l1jgo's
// staged boot sequence (config -> logger -> state -> data tables ->
// handlers -> game loop) with the networking and ECS machinery that
// sequence exists to serve stripped out in favor of stdin/stdout.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/vindeiatrix/mutantsgo/internal/ai"
	"github.com/vindeiatrix/mutantsgo/internal/command"
	"github.com/vindeiatrix/mutantsgo/internal/config"
	"github.com/vindeiatrix/mutantsgo/internal/economy"
	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/items"
	"github.com/vindeiatrix/mutantsgo/internal/logging"
	"github.com/vindeiatrix/mutantsgo/internal/monster"
	"github.com/vindeiatrix/mutantsgo/internal/persist"
	"github.com/vindeiatrix/mutantsgo/internal/persist/jsonstore"
	"github.com/vindeiatrix/mutantsgo/internal/persist/sqlitestore"
	"github.com/vindeiatrix/mutantsgo/internal/player"
	"github.com/vindeiatrix/mutantsgo/internal/randpool"
	"github.com/vindeiatrix/mutantsgo/internal/scripting"
	"github.com/vindeiatrix/mutantsgo/internal/status"
	"github.com/vindeiatrix/mutantsgo/internal/turn"
	"github.com/vindeiatrix/mutantsgo/internal/world"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name)

	printSection("state")
	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}
	defer store.Close()
	printOK(fmt.Sprintf("%s backend ready at %s", config.StateBackend(cfg), config.StateRoot(cfg)))

	printSection("catalogs & world")
	itemCatalog, err := loadItemCatalog("data/items.yaml")
	if err != nil {
		return fmt.Errorf("load item catalog: %w", err)
	}
	printStat("item templates", itemCatalog.Len())

	monsterCatalog, err := loadMonsterCatalog("data/monsters.yaml")
	if err != nil {
		return fmt.Errorf("load monster catalog: %w", err)
	}
	printStat("monster templates", monsterCatalog.Len())

	grid, err := loadWorldGrid("data/world.yaml")
	if err != nil {
		return fmt.Errorf("load world grid: %w", err)
	}
	printStat("installed centuries", len(economy.InstalledCenturies(grid)))
	dynamics := world.NewDynamics()

	printSection("players & scripting")
	state, err := player.Load(store)
	if err != nil {
		return fmt.Errorf("load player state: %w", err)
	}
	printOK(fmt.Sprintf("active class: %s", state.Active))

	scriptEngine, err := scripting.NewEngine("scripts", log)
	if err != nil {
		return fmt.Errorf("load scripts: %w", err)
	}
	defer scriptEngine.Close()
	printOK("mitigation/cascade scripts loaded")

	pool := randpool.New(store, cfg.Server.RNGSeed)
	commandRNG, err := pool.GetRNG("command")
	if err != nil {
		return fmt.Errorf("init command RNG: %w", err)
	}

	itemRegistry := items.NewRegistry(store, itemCatalog, cfg.Combat.GroundCap)
	monsterRegistry := monster.NewRegistry(store, monsterCatalog, nil)
	bus := feedback.New()
	observer := turn.NewObserver(bus, true)

	ctx := &command.Context{
		State:          state,
		Items:          itemRegistry,
		ItemCatalog:    itemCatalog,
		Monsters:       monsterRegistry,
		MonsterCatalog: monsterCatalog,
		Grid:           grid,
		Dynamics:       dynamics,
		Bus:            bus,
		Cfg:            cfg,
		RNG:            commandRNG,
		Pool:           pool,
		Log:            log,
		Theme:          command.NoopThemer{},
	}

	dispatcher := command.NewDispatcher()
	command.RegisterAll(dispatcher)

	printOK(fmt.Sprintf("%d commands registered", len(dispatcher.Commands())))
	printReady("the dispatcher is live — type a command, or \"quit\" to leave")

	return replLoop(ctx, dispatcher, observer, store, pool, scriptEngine, log)
}

// openStore selects the json or sqlite persistence backend per
// config.StateBackend, mirroring l1jgo's single DB-handle-at-boot
// pattern; the sqlite backend runs its embedded goose migrations inside
// sqlitestore.Open.
func openStore(cfg *config.Config) (persist.Store, error) {
	root := config.StateRoot(cfg)
	switch config.StateBackend(cfg) {
	case "sqlite":
		dsn := cfg.State.DSN
		if dsn == "" {
			dsn = filepath.Join(root, "mutants.db")
		}
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return sqlitestore.Open(ctx, dsn)
	default:
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, err
		}
		return jsonstore.Open(root)
	}
}

func loadItemCatalog(path string) (*items.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return items.LoadCatalog(data)
}

func loadMonsterCatalog(path string) (*monster.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return monster.LoadCatalog(data)
}

func loadWorldGrid(path string) (*world.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return world.LoadGrid(data)
}

// ── REPL ─────────────────────────────────────────────────────────────

// replLoop is the single-threaded game loop: read a line, run it through
// one full turn (command, turn RNG tick, status ticks, monster AI sweep,
// turn-log summary), print whatever the bus collected, repeat. l1jgo runs a
// 200ms system tick against every connected session; this process has
// exactly one session and no clock to race, so a blocking read is the
// whole loop.
func replLoop(ctx *command.Context, d *command.Dispatcher, obs *turn.Observer, store persist.Store, pool *randpool.Pool, scriptEngine *scripting.Engine, log *zap.Logger) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	fmt.Print("\n> ")
	for {
		select {
		case <-sigCh:
			log.Info("shutdown signal received")
			return saveOnExit(ctx, store, log)
		case line, ok := <-lines:
			if !ok {
				return saveOnExit(ctx, store, log)
			}
			runTurn(ctx, d, obs, pool, scriptEngine, log, line)
			drainBus(ctx)
			if ctx.Quit {
				return saveOnExit(ctx, store, log)
			}
			fmt.Print("\n> ")
		}
	}
}

// runTurn tokenizes one input line and runs it through turn.Advance, so
// every command — success or failure — still ticks monster AI, decays
// status effects, and closes out the turn-log summary.
func runTurn(ctx *command.Context, d *command.Dispatcher, obs *turn.Observer, pool *randpool.Pool, scriptEngine *scripting.Engine, log *zap.Logger, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	token, arg, _ := strings.Cut(line, " ")

	hpBefore := activeHP(ctx)
	var resolved string
	err := turn.Advance(obs, log, hpBefore, token, "",
		func() error {
			var callErr error
			resolved, callErr = d.Call(ctx, token, strings.TrimSpace(arg))
			return callErr
		},
		func() { advanceTurnTick(pool, log) },
		func() { status.TickActive(ctx.State, 1) },
		func() { monsterSweep(ctx, pool, scriptEngine, log, &resolved) },
		func() player.HP { return activeHP(ctx) },
	)
	if err != nil {
		ctx.Bus.Push(feedback.SystemWarn, err.Error(), nil)
	}
}

// advanceTurnTick advances the "turn" randpool stream once per accepted
// command — the deterministic per-turn clock spec.md's get_rng_tick("turn")
// property checks against, kept separate from "command" (ctx.RNG, fetched
// once at boot for partial-travel draws) and "ai" (advanced once per
// monster sweep).
func advanceTurnTick(pool *randpool.Pool, log *zap.Logger) {
	if _, err := pool.AdvanceTick("turn", 1); err != nil {
		log.Warn("turn RNG tick advance failed", zap.Error(err))
	}
}

func activeHP(ctx *command.Context) player.HP {
	if p := ctx.State.ActiveProfile(); p != nil {
		return p.HP
	}
	return player.HP{}
}

// monsterSweep builds the ai.Deps/ai.Input for this turn and ticks every
// monster on the active player's tile, plus any monster elsewhere still
// tracking them — spec.md's "for each monster on the active player's
// tile, or with a valid target" sweep scope. resolved is read after the
// command handler has already run (turn.Advance invokes this sweep from
// its deferred cleanup), so it reflects the dispatcher's canonical
// command name rather than the raw typed token — "n"/"north" both
// resolve to "move" and should wake monsters the same way. A fresh
// ENTRY/LOOK stimulus only ever applies to the co-located set: a
// pursuing monster already has TargetPlayerID set and skips the wake
// gate entirely regardless of which event fires this turn.
func monsterSweep(ctx *command.Context, pool *randpool.Pool, scriptEngine *scripting.Engine, log *zap.Logger, resolved *string) {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return
	}

	tick, err := pool.AdvanceTick("ai", 1)
	if err != nil {
		log.Warn("ai tick advance failed", zap.Error(err))
		return
	}
	rng, err := pool.GetRNG("ai")
	if err != nil {
		log.Warn("ai rng fetch failed", zap.Error(err))
		return
	}

	monsters, err := ctx.Monsters.ListAt(p.Pos.Year, p.Pos.X, p.Pos.Y)
	if err != nil {
		log.Warn("monster lookup failed", zap.Error(err))
		return
	}
	coLocated := make(map[string]bool, len(monsters))
	for _, m := range monsters {
		coLocated[m.InstanceID] = true
	}
	if all, err := ctx.Monsters.All(); err == nil {
		for _, m := range all {
			if m.TargetPlayerID == p.ID && !coLocated[m.InstanceID] {
				monsters = append(monsters, m)
			}
		}
	}
	if len(monsters) == 0 {
		return
	}

	deps := ai.Deps{
		Catalog:  ctx.ItemCatalog,
		Items:    ctx.Items,
		Grid:     ctx.Grid,
		Dynamics: ctx.Dynamics,
		Bus:      ctx.Bus,
		Cfg:      ctx.Cfg.Combat,
		RNG:      rng,
		Weighter: scriptEngine,
	}
	ext := &turn.MonsterExternal{
		Defender:  p,
		Items:     ctx.Items,
		Catalog:   ctx.ItemCatalog,
		Bus:       ctx.Bus,
		Mitigator: scriptEngine,
		Grid:      ctx.Grid,
		Dynamics:  ctx.Dynamics,
		RNG:       rng,
	}
	in := ai.Input{
		PlayerID:  p.ID,
		PlayerPos: p.Pos,
		Event:     wakeEventFor(*resolved),
		Tick:      tick,
	}
	turn.TickMonstersAt(monsters, ctx.MonsterCatalog, deps, in, ext, ctx.Monsters)
}

// wakeEventFor maps the dispatcher's resolved command name to the wake
// stimulus a fresh arrival at (or look around) a tile produces. Every
// other command is a steady-state tick: it only matters to a monster
// already tracking the player.
func wakeEventFor(resolved string) ai.WakeEvent {
	switch resolved {
	case "move":
		return ai.WakeEntry
	case "look":
		return ai.WakeLook
	default:
		return ""
	}
}

func drainBus(ctx *command.Context) {
	for _, line := range ctx.Bus.Drain() {
		fmt.Println(line.Text)
	}
}

func saveOnExit(ctx *command.Context, store persist.Store, log *zap.Logger) error {
	if err := player.SaveState(store, ctx.State); err != nil {
		log.Error("failed to persist state on exit", zap.Error(err))
		return err
	}
	fmt.Println("\nFarewell, mutant.")
	return nil
}

// ── Startup banner ───────────────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m┌──────────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m│\033[0m               m u t a n t s g o               \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m│\033[0m       a turn-based grid-world BBS engine      \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m└──────────────────────────────────────────────┘\033[0m")
	fmt.Printf("  world: %s\n", name)
}

func printSection(title string) {
	fmt.Printf("\n\033[33m── %s %s\033[0m\n", title, strings.Repeat("─", maxInt(3, 44-len(title))))
}

func printStat(label string, count int) {
	num := fmt.Sprintf("%d", count)
	dots := maxInt(3, 38-len(label)-len(num))
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat(".", dots), num)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("\n\033[32m▶\033[0m %s\n", msg)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
