package api

// ErrorResponse is the JSON body of every logical failure. The HTTP status stays 200.
type ErrorResponse struct {
	Error string `json:"error"`
}
