package internal

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Todo is a single to-do item.
type Todo struct {
	ID          int64
	Description *string
	Status      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateParams defines the arguments used for creating Todo records.
type CreateParams struct {
	Description *string
	Status      bool
}

// UpdateParams defines the arguments used for updating Todo records.
type UpdateParams struct {
	Status bool
}

// SearchParams defines the arguments used for searching Todo records.
type SearchParams struct {
	Description *string
	Status      *bool
}

// IsZero determines whether the search arguments have values or not.
func (a SearchParams) IsZero() bool {
	return a.Description == nil && a.Status == nil
}

// Validate indicates whether the fields are valid or not.
func (a SearchParams) Validate() error {
	if err := validation.ValidateStruct(&a,
		validation.Field(&a.Description, validation.NilOrNotEmpty),
	); err != nil {
		return WrapErrorf(err, ErrorCodeInvalidArgument, "validation.ValidateStruct")
	}

	return nil
}

// SearchResults defines the collection of todos that were found.
type SearchResults struct {
	Todos []Todo
	Total int64
}
