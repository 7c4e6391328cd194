package pkg

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"
)

var ErrGoogleNotConfigured = errors.New("google sign-in is not configured")

type GoogleProfile struct {
	Subject string
	Email   string
	Name    string
}

// GoogleVerifier checks Google ID tokens against the app's OAuth client id.
type GoogleVerifier struct {
	audience string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{audience: clientID}
}

func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*GoogleProfile, error) {
	if v.audience == "" {
		return nil, ErrGoogleNotConfigured
	}
	payload, err := idtoken.Validate(ctx, rawToken, v.audience)
	if err != nil {
		return nil, err
	}
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	return &GoogleProfile{Subject: payload.Subject, Email: email, Name: name}, nil
}
