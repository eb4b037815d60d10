package items

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/vindeiatrix/mutantsgo/internal/persist"
)

// Position is a ground location. Held instances have no Position — see
// Instance.OnGround.
type Position struct {
	Year, X, Y int
}

// Instance is the registry's in-memory view of one item instance, the
// same shape persist.ItemInstanceRow stores.
type Instance = persist.ItemInstanceRow

// mintIID builds a globally-unique instance id shaped "<templateID>#<hex8>",
// mirroring the original's `f"{item_id}#{uuid4().hex[:8]}"` minted-loot id.
func mintIID(templateID string) string {
	if templateID == "" {
		templateID = "loot"
	}
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%s#%s", templateID, hex.EncodeToString(buf))
}

// newInstance builds a freshly-minted instance at a ground position.
func newInstance(templateID string, pos Position, origin string, enchant int) Instance {
	condition := 100
	return Instance{
		IID:       mintIID(templateID),
		ItemID:    templateID,
		Year:      pos.Year,
		X:         pos.X,
		Y:         pos.Y,
		Owner:     "",
		Enchant:   enchant,
		Condition: condition,
		Origin:    origin,
		CreatedAt: time.Now(),
	}
}

// newHeldInstance builds a freshly-minted instance already owned by owner
// (native starting gear, debug_add) instead of sitting on the ground. Its
// coordinates are the same Held sentinel PickUp assigns, since a held
// instance never has a ground position.
func newHeldInstance(templateID, owner, origin string, enchant int) Instance {
	inst := newInstance(templateID, Position{Year: Held, X: Held, Y: Held}, origin, enchant)
	inst.Owner = owner
	return inst
}
