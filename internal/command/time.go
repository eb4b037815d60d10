package command

// HandleTime is an alias of travel restricted to no particular year —
// commands/time.py only ever offered 2000/2100, but this codebase has no
// fixed century list, so it forwards to the same installed-century travel
// path HandleTravel uses.
func HandleTime(ctx *Context, arg string) error {
	return HandleTravel(ctx, arg)
}
