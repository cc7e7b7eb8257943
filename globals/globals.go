package globals

// Context keys
type ContextKey string

const ClientIDKey ContextKey = "clientId"
const SessionKey ContextKey = "session"

// NewClientKey is true when the client id was minted for this request, i.e.
// the browser sent no valid cookie.
const NewClientKey ContextKey = "newClient"

// CookieName is the signed cookie that identifies a browser.
const CookieName = "saborify_client"
