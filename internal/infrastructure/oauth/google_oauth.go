package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ticketflow-service/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// GoogleOAuth handles OAuth authentication for the Sheets roster backend
type GoogleOAuth struct {
	config       *oauth2.Config
	refreshToken string
	logger       logger.Logger
}

// NewGoogleOAuth creates a new Google OAuth handler
func NewGoogleOAuth(clientID, clientSecret, refreshToken string, logger logger.Logger) *GoogleOAuth {
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{sheets.SpreadsheetsScope},
	}

	return &GoogleOAuth{
		config:       config,
		refreshToken: refreshToken,
		logger:       logger,
	}
}

// GetTokenSource returns a token source that can be used with the Sheets API
func (o *GoogleOAuth) GetTokenSource(ctx context.Context) oauth2.TokenSource {
	token := &oauth2.Token{
		RefreshToken: o.refreshToken,
		Expiry:       time.Now(), // Force refresh
	}

	return o.config.TokenSource(ctx, token)
}

// GenerateAuthURL generates a URL for the user to authorize the application
func (o *GoogleOAuth) GenerateAuthURL() string {
	return o.config.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ExchangeCode exchanges an authorization code for a token
func (o *GoogleOAuth) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := o.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	// Log the refresh token (for initial setup)
	o.logger.Info("Refresh token obtained", "token", token.RefreshToken)

	return token, nil
}

// TokenToJSON converts a token to JSON
func (o *GoogleOAuth) TokenToJSON(token *oauth2.Token) (string, error) {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
