package dto

// Envelope is the uniform response body: {success, data|error}.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail wraps an error payload (string or field-error map) in a failure envelope.
func Fail(err interface{}) Envelope {
	return Envelope{Success: false, Error: err}
}

// Pagination describes one page of a list result.
type Pagination struct {
	Total int `json:"total"`
	Pages int `json:"pages"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}
