package command

// RegisterAll installs every command handler and alias onto d, mirroring
// the per-file register(dispatch, ctx) pattern every commands/*.py module
// uses and the teacher's handler.RegisterAll wiring point.
func RegisterAll(d *Dispatcher) {
	d.Register("move", HandleMove)

	d.Register("look", HandleLook)

	d.Register("open", HandleOpen)
	d.Register("close", HandleClose)
	d.Register("lock", HandleLock)
	d.Register("unlock", HandleUnlock)

	d.Register("get", HandleGet)
	d.Alias("g", "get")
	d.Register("drop", HandleDrop)
	d.Register("throw", HandleThrow)
	d.Register("wield", HandleWield)
	d.Register("wear", HandleWear)
	d.Register("remove", HandleRemove)
	d.Register("point", HandlePoint)
	d.Register("add", HandleAdd)

	d.Register("combat", HandleCombat)
	d.Register("strike", HandleStrike)
	d.Alias("hit", "strike")
	d.Register("heal", HandleHeal)
	d.Register("convert", HandleConvert)
	d.Register("fix", HandleFix)

	d.Register("inv", HandleInv)
	d.Alias("i", "inv")
	d.Register("inventory", HandleInv)

	d.Register("stat", HandleStat)
	d.Alias("sta", "stat")
	d.Register("statistics", HandleStat)

	d.Register("travel", HandleTravel)
	for _, alias := range []string{"tra", "trav", "trave"} {
		d.Alias(alias, "travel")
	}

	d.Register("time", HandleTime)

	d.Register("menu", HandleMenu)
	d.Alias("x", "menu")
	d.Register("exitmenu", HandleMenu)

	d.Register("party", HandleParty)

	d.Register("switch", HandleSwitch)

	d.Register("quit", HandleQuit)
	d.Alias("q", "quit")

	d.Register("logs", HandleLogs)
	d.Alias("log", "logs")

	d.Register("why", HandleWhy)

	d.Register("mon", HandleMon)

	d.Register("theme", HandleTheme)

	d.Register("debug", HandleDebug)
	d.Register("debugadd", HandleDebugAdd)
}
