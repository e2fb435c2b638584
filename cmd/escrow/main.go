// Command escrow is a terminal client for the Emagn escrow marketplace:
// account sign-in, category and attribute schema management, and transaction
// tracking with status updates.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/emagn/escrow-client/internal/escrow"
	"github.com/emagn/escrow-client/internal/logger"
	"github.com/emagn/escrow-client/internal/tokenstore"
)

const defaultAPIURL = "https://emagne.onrender.com"

func main() {
	// A missing .env is fine; flags and real environment still apply.
	_ = godotenv.Load()

	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "login":
		runLogin(log)
	case "register":
		runRegister(log)
	case "logout":
		runLogout(log)
	case "whoami":
		runWhoami(log)
	case "profile":
		runProfile(log)
	case "categories":
		runCategories(log)
	case "attributes":
		runAttributes(log)
	case "transactions":
		runTransactions(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Emagn Escrow CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  escrow <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  login         Sign in and save the session")
	fmt.Println("  register      Create an account and save the session")
	fmt.Println("  logout        Discard the saved session")
	fmt.Println("  whoami        Show the signed-in user")
	fmt.Println("  profile       show | update")
	fmt.Println("  categories    list | get | create | update | delete")
	fmt.Println("  attributes    list | create | update | delete")
	fmt.Println("  transactions  list | get | create | status | attrs | delete | summary")
	fmt.Println("  help          Show this help message")
	fmt.Println("\nRun 'escrow <command> -h' for more information on a command.")
}

// apiClient builds the client from EMAGN_API_URL (or the default endpoint).
func apiClient(log zerolog.Logger) *escrow.Client {
	baseURL := os.Getenv("EMAGN_API_URL")
	if baseURL == "" {
		baseURL = defaultAPIURL
	}
	return escrow.NewClient(baseURL, nil, log)
}

// sessionStore opens the token store at EMAGN_SESSION_FILE or the per-user
// default location.
func sessionStore(log zerolog.Logger) *tokenstore.Store {
	path := os.Getenv("EMAGN_SESSION_FILE")
	if path == "" {
		var err error
		path, err = tokenstore.DefaultPath()
		if err != nil {
			log.Fatal().Err(err).Msg("Cannot determine session file location")
		}
	}
	return tokenstore.New(path)
}

// credentials loads the saved session and refuses to run with a token that is
// already expired: a stale token cannot become valid by retrying.
func credentials(log zerolog.Logger, store *tokenstore.Store) escrow.Credentials {
	session, err := store.Load()
	if err != nil {
		if errors.Is(err, tokenstore.ErrNoSession) {
			log.Fatal().Msg("Not signed in. Run 'escrow login' first.")
		}
		log.Fatal().Err(err).Msg("Cannot read saved session")
	}

	if tokenstore.IsExpired(session.Token) {
		_ = store.Clear()
		log.Fatal().Msg("Your session has expired. Run 'escrow login' again.")
	}
	return escrow.Credentials{Token: session.Token}
}

// fail reports an API error to the user and exits. An auth failure also
// clears the saved session, since retrying with the same token cannot help.
func fail(log zerolog.Logger, store *tokenstore.Store, err error) {
	var authErr *escrow.AuthError
	if errors.As(err, &authErr) && store != nil {
		_ = store.Clear()
	}
	log.Debug().Err(err).Msg("API call failed")
	log.Fatal().Msg(escrow.Humanize(err))
}

// printJSON renders a result on stdout.
func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot render result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Minute)
}
