package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
)

// Handler is one command's implementation: arg is everything after the
// first whitespace-separated token, already trimmed.
type Handler func(ctx *Context, arg string) error

// Dispatcher is the case-insensitive, unique-prefix command router —
// repl/dispatch.py's Dispatch ported directly: canonical names and
// aliases share one namespace, a token under 3 letters is only accepted
// as an explicit alias, and an ambiguous ≥3-letter prefix is reported
// rather than guessed.
type Dispatcher struct {
	cmds    map[string]Handler
	aliases map[string]string
}

// NewDispatcher builds an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{cmds: make(map[string]Handler), aliases: make(map[string]string)}
}

// Register installs fn under the canonical command name.
func (d *Dispatcher) Register(name string, fn Handler) {
	d.cmds[strings.ToLower(name)] = fn
}

// Alias maps alias to an already-registered canonical command name.
func (d *Dispatcher) Alias(alias, target string) {
	d.aliases[strings.ToLower(alias)] = strings.ToLower(target)
}

// Commands returns every canonical command name, sorted.
func (d *Dispatcher) Commands() []string {
	out := make([]string, 0, len(d.cmds))
	for name := range d.cmds {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (d *Dispatcher) warn(bus *feedback.Bus, msg string) {
	if bus != nil {
		bus.Push(feedback.SystemWarn, msg, nil)
	}
}

// resolvePrefix implements _resolve_prefix: exact alias first, then a
// ≥3-character unique prefix over both canonical names and aliases,
// warning (and returning "", false) on ambiguity or an unrecognized/
// too-short token.
func (d *Dispatcher) resolvePrefix(bus *feedback.Bus, token string) (string, bool) {
	t := strings.ToLower(token)
	if target, ok := d.aliases[t]; ok {
		return target, true
	}

	if len(t) >= 3 {
		candidates := map[string]bool{}
		for name := range d.cmds {
			if strings.HasPrefix(name, t) {
				candidates[name] = true
			}
		}
		for alias, target := range d.aliases {
			if strings.HasPrefix(alias, t) {
				candidates[target] = true
			}
		}
		if len(candidates) == 1 {
			for name := range candidates {
				return name, true
			}
		}
		if len(candidates) > 1 {
			names := make([]string, 0, len(candidates))
			for name := range candidates {
				names = append(names, name)
			}
			sort.Strings(names)
			d.warn(bus, fmt.Sprintf("Ambiguous command %q (did you mean: %s)", token, strings.Join(names, ", ")))
			return "", false
		}
	}

	d.warn(bus, fmt.Sprintf("Unknown command %q (commands require at least 3 letters).", token))
	return "", false
}

// Call resolves token against a direction first (so "n"/"north" hit the
// move handler even though "n" is shorter than the 3-letter floor), then
// falls back to resolvePrefix. It returns the resolved canonical name
// (empty if nothing resolved) for the caller's turn-log header.
func (d *Dispatcher) Call(ctx *Context, token, arg string) (resolved string, err error) {
	if dir, ok := resolveDirectionToken(token); ok {
		if fn, ok := d.cmds["move"]; ok {
			return "move", fn(ctx, string(dir)+" "+arg)
		}
	}

	name, ok := d.resolvePrefix(ctx.Bus, token)
	if !ok {
		return "", nil
	}
	fn, ok := d.cmds[name]
	if !ok {
		d.warn(ctx.Bus, fmt.Sprintf("Command handler missing for %q.", name))
		return "", nil
	}
	return name, fn(ctx, arg)
}
