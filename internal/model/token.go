package model

// TokenManager issues and validates control API bearer tokens.
type TokenManager interface {
	GenerateAccessToken(subject string) (string, error)
	ParseAccessToken(token string) (string, error)
}
