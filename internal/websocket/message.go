package websocket

import "encoding/json"

const (
	// Inbound (presenter only)
	MessageTypeSetSlide = "set_slide"

	// Outbound
	MessageTypeSlideChanged = "slide_changed"
	MessageTypeViewerCount  = "viewer_count"
	MessageTypeError        = "error"
)

type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type SetSlidePayload struct {
	Position int `json:"position"`
}

type SlideChangedPayload struct {
	Position int `json:"position"`
}

type ViewerCountPayload struct {
	Count int `json:"count"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func mustMarshal(msgType string, payload interface{}) []byte {
	raw, _ := json.Marshal(payload)
	data, _ := json.Marshal(Message{Type: msgType, Payload: raw})
	return data
}
