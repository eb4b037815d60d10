package monster

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// defaultMintInstanceID mints a globally-unique monster instance id,
// shaped the same way items.mintIID shapes item instance ids.
func defaultMintInstanceID() string {
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("mon#%s", hex.EncodeToString(buf))
}
