package models

// Response is the envelope every endpoint returns: a success flag, an
// optional human-readable message, a count on list responses and the
// resource payload itself.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

func OKMessage(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// OKList always carries a count, even for an empty result.
func OKList(count int, data interface{}) Response {
	return Response{Success: true, Count: &count, Data: data}
}

func Fail(message string) Response {
	return Response{Success: false, Message: message}
}
