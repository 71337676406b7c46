package constants

// Default values for service operations
const (
	DefaultPort            = "3001"
	DefaultSessionTTLHours = 24
	DefaultQuantity        = 1
	AnonymousUserName      = "Anonymous"
	PriceDecimals          = 2
)
