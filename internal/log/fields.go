package log

// Shared field names so every service logs the same keys.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldOwner     = "owner"
	FieldResource  = "resource"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
)

// Operation names for resource mutations.
const (
	OpList       = "list"
	OpGet        = "get"
	OpCreate     = "create"
	OpUpdate     = "update"
	OpDelete     = "delete"
	OpBulkDelete = "bulk_delete"
)
