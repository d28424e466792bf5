package fieldwork

// Worker is a field technician assignable to 0..N jobs concurrently.
type Worker struct {
	ID    string
	Name  string
	Phone string
	// UserAccountID links the worker to an authentication account, when one
	// exists. Empty for workers without app access.
	UserAccountID string
}
