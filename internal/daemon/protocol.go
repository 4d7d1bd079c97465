package daemon

// APIPrefix is the path every board route is mounted under
const APIPrefix = "/api/v1"

// Response is the envelope of every daemon reply
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// envelope is the client-side view of Response with Data left raw
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}
