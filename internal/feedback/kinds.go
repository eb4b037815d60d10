package feedback

// Well-known kinds referenced by name across the command/combat/ai
// packages. Handlers are free to mint other CATEGORY/SUBCATEGORY kinds
// inline — this list only names the ones more than one package needs to
// compare against.
const (
	SystemOK   Kind = "SYSTEM/OK"
	SystemWarn Kind = "SYSTEM/WARN"
	SystemErr  Kind = "SYSTEM/ERR"
	SystemInfo Kind = "SYSTEM/INFO"

	Debug Kind = "DEBUG"

	MoveBlocked Kind = "MOVE/BLOCKED"
	MoveOK      Kind = "MOVE/OK"

	CombatStrike Kind = "COMBAT/STRIKE"
	CombatInfo   Kind = "COMBAT/INFO"
	CombatDeath  Kind = "COMBAT/DEATH"
	CombatTaunt  Kind = "COMBAT/TAUNT"
	CombatReady  Kind = "COMBAT/READY"
	CombatKill   Kind = "COMBAT/KILL"

	AIError Kind = "AI/ERROR"

	UIWrapOK Kind = "UI/WRAP/OK"

	ItemOK   Kind = "ITEM/OK"
	ItemWarn Kind = "ITEM/WARN"
)
