package domain

// TokenVerifier verifies an admin bearer token and returns the subject.
// Token issuance belongs to the couple's auth service; this application only
// verifies.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}
