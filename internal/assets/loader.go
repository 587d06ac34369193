package assets

// Loader defines the contract for loading the content of one slot.
// Implementations may load from embedded resources, user files, etc.
type Loader interface {
	// Load returns the slot's content.
	// Returns ErrUnknownSlot if the slot is outside the closed set.
	Load(slot Slot) (string, error)
}
