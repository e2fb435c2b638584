package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/emagn/escrow-client/internal/escrow"
	"github.com/emagn/escrow-client/internal/tokenstore"
	"github.com/emagn/escrow-client/internal/validate"
)

func runLogin(log zerolog.Logger) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password")
	fs.Parse(os.Args[2:])

	if *email == "" || *password == "" {
		log.Fatal().Msg("Usage: escrow login -email ADDRESS -password SECRET")
	}

	ctx, cancel := commandContext()
	defer cancel()

	client := apiClient(log)
	session, err := client.Login(ctx, *email, *password)
	if err != nil {
		fail(log, nil, err)
	}

	store := sessionStore(log)
	if err := store.Save(*session); err != nil {
		log.Fatal().Err(err).Msg("Signed in, but saving the session failed")
	}

	fmt.Printf("Signed in as %s %s <%s>\n", session.User.FirstName, session.User.LastName, session.User.Email)
}

func runRegister(log zerolog.Logger) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	firstName := fs.String("first-name", "", "First name")
	lastName := fs.String("last-name", "", "Last name")
	email := fs.String("email", "", "Account email")
	phone := fs.String("phone", "", "Phone number in international format (optional)")
	password := fs.String("password", "", "Password")
	confirm := fs.String("confirm", "", "Password confirmation")
	userType := fs.String("user-type", "", "Individual or Business (optional)")
	fs.Parse(os.Args[2:])

	input := validate.RegisterInput{
		FirstName:       *firstName,
		LastName:        *lastName,
		Email:           *email,
		Phone:           *phone,
		Password:        *password,
		ConfirmPassword: *confirm,
		UserType:        *userType,
	}
	if err := validate.Register(input); err != nil {
		log.Fatal().Msg(escrow.Humanize(err))
	}

	ctx, cancel := commandContext()
	defer cancel()

	client := apiClient(log)
	session, err := client.Register(ctx, escrow.RegisterPayload{
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
		Phone:     *phone,
		UserType:  *userType,
	})
	if err != nil {
		fail(log, nil, err)
	}

	store := sessionStore(log)
	if err := store.Save(*session); err != nil {
		log.Fatal().Err(err).Msg("Account created, but saving the session failed")
	}

	fmt.Printf("Welcome to Emagn, %s. Your account has been created.\n", session.User.FirstName)
}

func runLogout(log zerolog.Logger) {
	store := sessionStore(log)
	if err := store.Clear(); err != nil {
		log.Fatal().Err(err).Msg("Could not discard the session")
	}
	fmt.Println("Signed out.")
}

func runWhoami(log zerolog.Logger) {
	store := sessionStore(log)
	session, err := store.Load()
	if err != nil {
		log.Fatal().Msg("Not signed in.")
	}

	if tokenstore.IsExpired(session.Token) {
		fmt.Printf("%s <%s> (session expired)\n", session.User.FirstName, session.User.Email)
		return
	}
	fmt.Printf("%s %s <%s>, role %s\n", session.User.FirstName, session.User.LastName, session.User.Email, session.User.Role)
}
