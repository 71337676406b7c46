package events

// EventType defines the type of event in the system
type EventType string

const (
	// Menu Events
	MenuItemCreated EventType = "menu.item_created"
	MenuItemUpdated EventType = "menu.item_updated"
	MenuItemRemoved EventType = "menu.item_removed"

	// Basket Events
	BasketChanged EventType = "basket.changed"
	BasketCleared EventType = "basket.cleared"

	// Auth Events
	UserSignedUp  EventType = "auth.user_signed_up"
	UserLoggedIn  EventType = "auth.user_logged_in"
	UserLoggedOut EventType = "auth.user_logged_out"
	SessionsSwept EventType = "auth.sessions_swept"

	// System Events
	SystemStartup EventType = "system.startup"
)

// String returns the string representation of the event type
func (e EventType) String() string {
	return string(e)
}

// All lists every event type the services publish
var All = []EventType{
	MenuItemCreated,
	MenuItemUpdated,
	MenuItemRemoved,
	BasketChanged,
	BasketCleared,
	UserSignedUp,
	UserLoggedIn,
	UserLoggedOut,
	SessionsSwept,
	SystemStartup,
}
