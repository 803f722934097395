package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Database errors
	ErrDatabaseUnavailable = fmt.Errorf("database unavailable")
	ErrConstraintViolation = fmt.Errorf("constraint violation")
	ErrDuplicateProduct    = fmt.Errorf("%w: product name already exists", ErrConstraintViolation)
	ErrDuplicateListItem   = fmt.Errorf("%w: duplicate item on list", ErrConstraintViolation)

	// Lookup errors, used by callers that turn a missing row into a failure
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrItemNotFound    = fmt.Errorf("grocery list item not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
