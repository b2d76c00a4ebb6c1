package unparser

// UninitializedFieldError reports that Build ran before a required field
// was set.
type UninitializedFieldError struct {
	Field string
}

func (e *UninitializedFieldError) Error() string {
	return "`" + e.Field + "` must be initialized"
}

// ValidationError reports builder state that cannot form a valid node.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }
