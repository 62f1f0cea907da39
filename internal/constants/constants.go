package constants

// MinPasswordLength is the minimum accepted password length for user accounts.
const MinPasswordLength = 6

// SessionCookieName is the name of the login session cookie.
const SessionCookieName = "bug_session"

// ContextKeyUserID is the gin context / session key holding the logged-in user ID.
const ContextKeyUserID = "user_id"
