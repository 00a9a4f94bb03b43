package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// SlugParam is the route parameter holding a store slug.
	SlugParam = "slug"

	// ErrNilACSFatalLogMsg is used if app or cfg or stores var pointer is nil.
	ErrNilACSFatalLogMsg = "app, cfg or stores is nil"
)

// Error messages sent to clients.
const (
	MsgUnauthorized   = "Unauthorized"
	MsgMissingFields  = "Missing fields"
	MsgStoreExists    = "Store already exists"
	MsgNotFound       = "Not found"
	MsgInvalidInput   = "Invalid input"
	MsgAlreadyRated   = "Already rated"
	MsgInternalServer = "Internal server error"
)
