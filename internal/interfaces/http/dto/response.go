package dto

// Response is the envelope every API endpoint answers with.
// Success responses carry Data (and Details for lists); failures carry
// Message and Code.
type Response struct {
	Error     bool              `json:"error"`
	Data      any               `json:"data,omitempty"`
	Details   *Details          `json:"details,omitempty"`
	Message   string            `json:"message,omitempty"`
	Code      string            `json:"code,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
	Fields    []ValidationError `json:"fields,omitempty"`
}

// Details describes one page of a list response
type Details struct {
	Count int64 `json:"count"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Limit int   `json:"limit"`
}

// ValidationError describes a single invalid request field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{Data: data}
}

// NewListResponse creates a success response with pagination details.
// A zero limit means the whole collection was returned on a single page.
func NewListResponse(data any, count int64, page, limit int) Response {
	pages := 1
	if limit > 0 {
		pages = int(count) / limit
		if int(count)%limit > 0 {
			pages++
		}
		if pages == 0 {
			pages = 1
		}
	}
	if page < 1 {
		page = 1
	}
	return Response{
		Data: data,
		Details: &Details{
			Count: count,
			Page:  page,
			Pages: pages,
			Limit: limit,
		},
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Error:   true,
		Code:    code,
		Message: message,
	}
}

// NewErrorResponseWithRequestID creates an error response tagged with the request id
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	resp := NewErrorResponse(code, message)
	resp.RequestID = requestID
	return resp
}

// NewValidationErrorResponse creates a validation error response listing the bad fields
func NewValidationErrorResponse(message, requestID string, fields []ValidationError) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, message, requestID)
	resp.Fields = fields
	return resp
}
