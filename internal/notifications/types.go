package notifications

import "time"

// DeviceRegistration is one stored device token in the UserTokens collection.
// The document ID is the owner's identifier; a device that never supplied a
// user ID gets a generated anonymous owner.
type DeviceRegistration struct {
	OwnerID   string    `firestore:"-" json:"ownerId"`
	Token     string    `firestore:"fcmToken" json:"token"`
	Active    bool      `firestore:"isActive" json:"active"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// SendRecord is one append-only audit entry in the NotificationLogs
// collection, written once per dispatch that reached the provider.
type SendRecord struct {
	ID           string    `firestore:"-" json:"id,omitempty"`
	Title        string    `firestore:"title" json:"title"`
	Body         string    `firestore:"body" json:"body"`
	SentAt       time.Time `firestore:"sentAt" json:"sentAt"`
	TotalTokens  int       `firestore:"totalTokens" json:"totalTokens"`
	SuccessCount int       `firestore:"successCount" json:"successCount"`
	FailureCount int       `firestore:"failureCount" json:"failureCount"`
}

// DispatchReport carries the provider's totals for one dispatch.
type DispatchReport struct {
	SuccessCount int `json:"successCount"`
	FailureCount int `json:"failureCount"`
}

// Message is the provider-neutral payload of one multicast send.
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// Per-token error codes reported by the push provider. Only the first two
// mark a token as permanently invalid.
const (
	CodeInvalidToken  = "invalid-registration-token"
	CodeUnregistered  = "registration-token-not-registered"
	CodeUnavailable   = "unavailable"
	CodeQuotaExceeded = "quota-exceeded"
	CodeInternal      = "internal"
	CodeUnknown       = "unknown"
)

// TokenResult is the outcome for a single token, positionally aligned with
// the token list given to SendMulticast.
type TokenResult struct {
	Success bool
	Code    string
}

// MulticastResult is the provider's response to one multicast send.
type MulticastResult struct {
	SuccessCount int
	FailureCount int
	Results      []TokenResult
}

// permanentlyInvalid reports whether a failure code means the token can
// never be delivered to again.
func permanentlyInvalid(code string) bool {
	return code == CodeInvalidToken || code == CodeUnregistered
}
