package models

import (
	"github.com/christoffels/menu/pkg/constants"
)

// Course is a menu category used to group items and compute averages.
type Course string

const (
	CourseStarters   Course = constants.CourseStarters
	CourseMains      Course = constants.CourseMains
	CourseSideDishes Course = constants.CourseSideDishes
	CourseDesserts   Course = constants.CourseDesserts
	CourseDrinks     Course = constants.CourseDrinks
)

// Courses returns every course in menu order.
func Courses() []Course {
	return []Course{CourseStarters, CourseMains, CourseSideDishes, CourseDesserts, CourseDrinks}
}

// IsValid reports whether c is one of the known courses.
func (c Course) IsValid() bool {
	for _, known := range Courses() {
		if c == known {
			return true
		}
	}
	return false
}

// MenuItem is a named, priced, described catalog entry belonging to one course.
type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Course      Course  `json:"course"`
	Price       float64 `json:"price"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// ToMap exposes the item to validation rule expressions.
func (m MenuItem) ToMap() map[string]interface{} {
	image := ""
	if m.ImageURL != nil {
		image = *m.ImageURL
	}
	courses := make([]string, 0, len(Courses()))
	for _, c := range Courses() {
		courses = append(courses, string(c))
	}
	return map[string]interface{}{
		constants.FieldID:          m.ID,
		constants.FieldName:        m.Name,
		constants.FieldDescription: m.Description,
		constants.FieldCourse:      string(m.Course),
		constants.FieldPrice:       m.Price,
		constants.FieldImageURL:    image,
		"courses":                  courses,
	}
}

// MenuItemInput carries the fields of a new item; the id is assigned on insert.
type MenuItemInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Course      Course  `json:"course" binding:"required"`
	Price       float64 `json:"price"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// MenuItemPatch is a partial update. Nil fields are left unchanged.
type MenuItemPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Course      *Course  `json:"course,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

// ChangesPrice reports whether applying the patch would alter the price of item.
func (p MenuItemPatch) ChangesPrice(item MenuItem) bool {
	return p.Price != nil && *p.Price != item.Price
}

// Apply returns a copy of item with the patch applied.
func (p MenuItemPatch) Apply(item MenuItem) MenuItem {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Course != nil {
		item.Course = *p.Course
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.ImageURL != nil {
		if *p.ImageURL == "" {
			item.ImageURL = nil
		} else {
			img := *p.ImageURL
			item.ImageURL = &img
		}
	}
	return item
}

// MenuQuery filters and orders a menu listing.
type MenuQuery struct {
	Search string
	Course Course
	Sort   string
}

// CourseAverages maps each course to its mean price, nil when the course is empty.
type CourseAverages map[Course]*float64

// CourseCount is the number of items in a course. Course "All" counts the whole menu.
type CourseCount struct {
	Course Course `json:"course"`
	Count  int    `json:"count"`
}
