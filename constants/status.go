package constants

// ResponseStatus is the value of the "status" field in JSON responses.
type ResponseStatus string

const (
	StatusSuccess ResponseStatus = "success"
	StatusError   ResponseStatus = "error"
)
