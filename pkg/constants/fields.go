package constants

// Column / JSON field names shared by persistence and REST layers.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldCourse      = "course"
	FieldPrice       = "price"
	FieldImageURL    = "image_url"
	FieldUserCode    = "user_code"
	FieldPassword    = "password_hash"
	FieldType        = "type"
	FieldQuantity    = "quantity"
	FieldPosition    = "position"
	FieldCreatedDate = "created_date"
	FieldMessage     = "message"
)
