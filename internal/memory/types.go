package memory

const (
	DefaultNamespace = "messages"
	DefaultTopK      = 3

	// Payload keys
	FieldUser      = "user"
	FieldContent   = "content"
	FieldNamespace = "namespace"
)

// Config tunes the usecase.
type Config struct {
	TopK int
}
