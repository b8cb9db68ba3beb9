package ports

import "context"

// PushGatewayBatchLimit is the gateway's per-call message limit.
const PushGatewayBatchLimit = 100

// PushMessage is one addressed message in a gateway batch.
type PushMessage struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// SendResult is the gateway's per-message outcome.
type SendResult struct {
	Delivered bool   `json:"delivered"`
	Error     string `json:"error,omitempty"`
}

// PushGateway accepts batches of at most PushGatewayBatchLimit messages and
// reports a per-message outcome. Delivery is best-effort; the gateway owns
// its own timeout and retry behaviour.
type PushGateway interface {
	SendBatch(ctx context.Context, messages []PushMessage) ([]SendResult, error)
}
