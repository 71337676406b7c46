package constants

// User roles
const (
	RoleOwner    = "owner"
	RoleEmployee = "employee"
	RoleCustomer = "customer"
)

// Courses, in menu order.
const (
	CourseStarters   = "Starters"
	CourseMains      = "Mains"
	CourseSideDishes = "Side Dishes"
	CourseDesserts   = "Desserts"
	CourseDrinks     = "Drinks"
	CourseAll        = "All"
)

// Sort options for menu listings
const (
	SortByName      = "name"
	SortByPriceAsc  = "priceAsc"
	SortByPriceDesc = "priceDesc"
)

// Store drivers
const (
	DriverMemory = "memory"
	DriverMySQL  = "mysql"
)
