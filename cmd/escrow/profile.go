package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/emagn/escrow-client/internal/escrow"
)

func runProfile(log zerolog.Logger) {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: escrow profile <show|update> [options]")
		os.Exit(1)
	}

	store := sessionStore(log)
	creds := credentials(log, store)
	client := apiClient(log)

	ctx, cancel := commandContext()
	defer cancel()

	switch os.Args[2] {
	case "show":
		profile, err := client.GetProfile(ctx, creds)
		if err != nil {
			fail(log, store, err)
		}
		printJSON(profile)

	case "update":
		fs := flag.NewFlagSet("profile update", flag.ExitOnError)
		fullName := fs.String("full-name", "", "Full name")
		email := fs.String("email", "", "Email address")
		phone := fs.String("phone", "", "Phone number")
		country := fs.String("country", "", "Country")
		companyName := fs.String("company", "", "Company name")
		businessType := fs.String("business-type", "", "Business type")
		businessAddress := fs.String("business-address", "", "Business address")
		bankAccountName := fs.String("bank-account-name", "", "Bank account holder name")
		bankName := fs.String("bank-name", "", "Bank name")
		accountNumber := fs.String("account-number", "", "Bank account number")
		routingNumber := fs.String("routing-number", "", "Routing number")
		swiftBIC := fs.String("swift", "", "SWIFT/BIC code")
		fs.Parse(os.Args[3:])

		// Only flags the user actually set go into the partial update.
		var update escrow.ProfileUpdate
		set := func(flagValue *string, field **string) {
			if *flagValue != "" {
				*field = flagValue
			}
		}
		set(fullName, &update.FullName)
		set(email, &update.Email)
		set(phone, &update.Phone)
		set(country, &update.Country)
		set(companyName, &update.CompanyName)
		set(businessType, &update.BusinessType)
		set(businessAddress, &update.BusinessAddress)
		set(bankAccountName, &update.BankAccountName)
		set(bankName, &update.BankName)
		set(accountNumber, &update.AccountNumber)
		set(routingNumber, &update.RoutingNumber)
		set(swiftBIC, &update.SwiftBIC)

		if update == (escrow.ProfileUpdate{}) {
			log.Fatal().Msg("Error: nothing to update; pass at least one field flag")
		}

		profile, err := client.UpdateProfile(ctx, creds, update)
		if err != nil {
			fail(log, store, err)
		}
		fmt.Println("Profile updated.")
		printJSON(profile)

	default:
		fmt.Fprintf(os.Stderr, "Unknown profile subcommand: %s\n", os.Args[2])
		os.Exit(1)
	}
}
