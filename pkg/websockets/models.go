package websockets

import "github.com/chris/wallet-transfer-policy/pkg/models"

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypePolicyEvent carries a policy signal.
	MessageTypePolicyEvent MessageType = "policyEvent"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType  `json:"type"`
	Payload models.Event `json:"payload"`
}
