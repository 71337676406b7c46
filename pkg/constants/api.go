package constants

// HTTP and API constants
const (
	// HTTP Headers
	HeaderAuthorization = "Authorization"

	// Auth
	BearerPrefix = "Bearer "

	// Response Keys
	ResponseError   = "error"
	ResponseSuccess = "success"
	ResponseItems   = "items"
	ResponseItem    = "item"
	ResponseBasket  = "basket"
	ResponseUser    = "user"
	ResponseUsers   = "users"
)

// Query parameter constants
const (
	ParamSearch = "search"
	ParamCourse = "course"
	ParamSort   = "sort"
)

// Context Keys
const (
	ContextKeyUser  = "user"
	ContextKeyToken = "token"
)
