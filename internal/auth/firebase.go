package auth

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/tunakleague/collabin-backend/config"
)

// NewFirebaseAuth returns the Firebase Admin auth client used to verify ID
// tokens, or nil when the service runs with header identities.
func NewFirebaseAuth(ctx context.Context, cfg *config.Config) (*auth.Client, error) {
	if cfg.Auth.Mode != config.AuthModeFirebase {
		return nil, nil
	}

	path := cfg.Firebase.CredentialsPath
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("firebase credentials %q: %w", path, err)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(path))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return client, nil
}
