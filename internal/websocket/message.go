package websocket

// Message is the envelope for every payload pushed to clients. Action
// names the event type (e.g. "task.update"); Payload carries the event.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}
