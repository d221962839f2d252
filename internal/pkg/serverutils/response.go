package serverutils

type ErrorBody struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func ErrorResponse(message string) ErrorBody {
	return ErrorBody{OK: false, Error: message}
}

func FieldErrorResponse(field, message string) ErrorBody {
	return ErrorBody{OK: false, Error: message, Field: field}
}
