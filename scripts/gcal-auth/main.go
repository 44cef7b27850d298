// Command gcal-auth performs the one-time OAuth consent flow for Google
// Calendar and writes token.json next to the credentials file, which
// pkg/gcalendar picks up when the configured credentials are of the OAuth
// Desktop App type (service accounts need no token file).
//
// Usage:
//
//	go run ./scripts/gcal-auth -credentials google-credentials.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

func main() {
	credsPath := flag.String("credentials", "google-credentials.json", "path to the OAuth Desktop App credentials JSON")
	tokenPath := flag.String("token", "token.json", "where to write the resulting token")
	flag.Parse()

	data, err := os.ReadFile(*credsPath)
	if err != nil {
		log.Fatalf("read credentials file %q: %v", *credsPath, err)
	}

	config, err := google.ConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		log.Fatalf("parse credentials: %v (expected an OAuth Desktop App credentials file)", err)
	}

	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Println("Open this URL in a browser and sign in with the Google account")
	fmt.Println("whose calendar the API should write to:")
	fmt.Println()
	fmt.Println(authURL)
	fmt.Println()
	fmt.Print("Paste the authorization code here and press Enter: ")

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		log.Fatalf("read authorization code: %v", err)
	}

	tok, err := config.Exchange(context.Background(), code)
	if err != nil {
		log.Fatalf("exchange authorization code: %v", err)
	}

	f, err := os.OpenFile(*tokenPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		log.Fatalf("create %s: %v", *tokenPath, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		log.Fatalf("write %s: %v", *tokenPath, err)
	}

	fmt.Println()
	fmt.Printf("Token saved to %s.\n", *tokenPath)
	fmt.Println("Restart the API so calendar sync picks it up.")
}
