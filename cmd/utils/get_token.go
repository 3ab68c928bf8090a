// Bootstrap helper: obtains the Sheets refresh token used by the roster
// backend. Run once with SHEETS_CLIENT_ID and SHEETS_CLIENT_SECRET set,
// open the printed URL, and copy the refresh token into SHEETS_REFRESH_TOKEN.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

func main() {
	godotenv.Load()

	clientID := os.Getenv("SHEETS_CLIENT_ID")
	clientSecret := os.Getenv("SHEETS_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		log.Fatal("SHEETS_CLIENT_ID and SHEETS_CLIENT_SECRET must be set")
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  "http://localhost:8090/oauth2callback",
		Scopes:       []string{sheets.SpreadsheetsScope},
	}

	// Create a random state
	state := "random-state"

	// Start an HTTP server to handle the OAuth callback
	http.HandleFunc("/oauth2callback", func(w http.ResponseWriter, r *http.Request) {
		// Check state parameter
		if r.URL.Query().Get("state") != state {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}

		// Exchange the authorization code for a token
		code := r.URL.Query().Get("code")
		token, err := config.Exchange(context.Background(), code)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to exchange code: %v", err), http.StatusInternalServerError)
			return
		}

		// Print the refresh token
		fmt.Printf("\nSHEETS_REFRESH_TOKEN=%s\n\n", token.RefreshToken)

		// Respond to the user
		fmt.Fprintf(w, "Authentication successful! You can close this window.")
		os.Exit(0)
	})

	// Generate the authorization URL
	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Printf("Open this URL in your browser:\n%s\n", authURL)

	log.Fatal(http.ListenAndServe(":8090", nil))
}
