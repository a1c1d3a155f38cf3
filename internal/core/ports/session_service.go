package ports

import "context"

// TokenPair is the pair of bearer artifacts handed to the client. It is the
// only session representation: nothing is stored server-side besides the
// logout denylist.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SessionService orchestrates the session lifecycle: credentials in, token
// pair out, and a refresh artifact back into a fresh pair.
type SessionService interface {
	Register(ctx context.Context, name, email, password string) (*TokenPair, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}
