package component

// PlayerHealthBar is the HUD view of the player's hearts. It is kept in sync
// through a health event subscription rather than polled.
type PlayerHealthBar struct {
	Current   int
	MaxHearts int
	// Immune makes the HUD hearts blink.
	Immune bool

	Unsubscribe func()
}

var PlayerHealthBarComponent = NewComponent[PlayerHealthBar]()
