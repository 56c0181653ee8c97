package constant

const (
	// ContextKeyRequestID is the fiber locals key under which the per-request id is stored.
	ContextKeyRequestID = "requestID"

	// ContextKeyAccountID is the fiber locals key under which the authenticated
	// owner's account id is stored by the auth middleware.
	ContextKeyAccountID = "accountID"

	RequestIDHeaderKey = "X-GD-Request-ID"
)
