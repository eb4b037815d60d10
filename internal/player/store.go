package player

import (
	"fmt"

	"github.com/vindeiatrix/mutantsgo/internal/persist"
)

// Load reads and normalizes the player document from store.
func Load(store persist.DocStore) (*State, error) {
	data, ok, err := store.Read(persist.KindPlayerLive)
	if err != nil {
		return nil, fmt.Errorf("player: read state: %w", err)
	}
	if !ok {
		data = nil
	}
	return LoadState(data)
}

// SaveState normalizes (strips the derived active snapshot, orders
// canonically) and persists s in one atomic document write.
func SaveState(store persist.DocStore, s *State) error {
	data, err := s.Save()
	if err != nil {
		return fmt.Errorf("player: encode state: %w", err)
	}
	if err := store.Write(persist.KindPlayerLive, data); err != nil {
		return fmt.Errorf("player: write state: %w", err)
	}
	return nil
}

// Move updates the active profile's position and persists the result in
// a single document write, so a write failure can't leave the in-memory
// state ahead of the durable record.
func Move(store persist.DocStore, s *State, pos Position) error {
	prev := s.ActiveProfile()
	if prev == nil {
		return fmt.Errorf("player: no active class set")
	}
	before := prev.Pos
	if err := s.MovePosition(pos); err != nil {
		return err
	}
	if err := SaveState(store, s); err != nil {
		prev.Pos = before
		return err
	}
	return nil
}
