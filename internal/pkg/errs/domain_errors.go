package errs

// Sentinel errors shared by the command and query sides so handlers map them once.
var (
	// Lookup errors
	ErrUserNotFound        = New("user not found")
	ErrProductNotFound     = New("product not found")
	ErrFlavorNotFound      = New("flavor not found")
	ErrCategoryNotFound    = New("category not found")
	ErrPickupPointNotFound = New("pickup point not found")

	// Write conflicts
	ErrDuplicateKey    = New("duplicate key")
	ErrVersionConflict = New("version conflict")

	// Validation errors
	ErrValidation = New("validation failed")

	// Operation errors
	ErrDatabaseOperationFailed = New("database operation failed")
)
