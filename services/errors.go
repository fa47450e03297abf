package services

// ServiceError is a typed error carrying the HTTP status the boundary should
// answer with.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}
