package protocol

// Response is the envelope for every message sent to a client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Context string      `json:"context,omitempty"`
}

// Response keys
const (
	KeyRoomState    = "roomState"
	KeyPlayerCount  = "playerCount"
	KeyCardRevealed = "cardRevealed"
	KeyError        = "error"
	KeyStatus       = "status"
)

// Client actions
const (
	ActionRevealCard = "revealCard"
	ActionReset      = "reset"
)

// PayloadIn is the format we expect from the JS client
type PayloadIn struct {
	Action string `json:"action"`
	CardID string `json:"cardId,omitempty"`
	// Context will be passed back on any outgoing message
	Context string `json:"context,omitempty"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   KeyStatus,
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// Error returns an error response for the client
func Error(ctx string, err error) *Response {
	return &Response{
		Key:     KeyError,
		Value:   err.Error(),
		Context: ctx,
	}
}
