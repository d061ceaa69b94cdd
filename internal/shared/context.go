package shared

import "context"

type sessionContextKey struct{}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the session from context.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// CurrentUserID resolves the authenticated user id from the request context.
// Returns nil when there is no session or the session is anonymous. Handlers
// pass the result down into services explicitly; services never reach back
// into context for identity.
func CurrentUserID(ctx context.Context) *int64 {
	sess := SessionFromContext(ctx)
	if sess == nil {
		return nil
	}
	id, ok := sess.UserID()
	if !ok {
		return nil
	}
	return &id
}
