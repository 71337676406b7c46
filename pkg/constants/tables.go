package constants

import "strings"

// Table names used by the MySQL store.
const (
	TablePrefix   = "menu_"
	TableMenuItem = "menu_item"
	TableUser     = "menu_user"
	TableSession  = "menu_session"
	TableBasket   = "menu_basket_line"
)

// IsMenuTable reports whether a table belongs to this service's schema.
func IsMenuTable(name string) bool {
	return strings.HasPrefix(name, TablePrefix)
}

// AllTables lists every table in creation order.
func AllTables() []string {
	return []string{TableUser, TableSession, TableMenuItem, TableBasket}
}
