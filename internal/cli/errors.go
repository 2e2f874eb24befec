package cli

// UsageError reports a command line that cannot start a session
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}
