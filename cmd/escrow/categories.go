package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/emagn/escrow-client/internal/escrow"
	"github.com/emagn/escrow-client/internal/registry"
)

func runCategories(log zerolog.Logger) {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: escrow categories <list|get|create|update|delete> [options]")
		os.Exit(1)
	}

	store := sessionStore(log)
	creds := credentials(log, store)
	client := apiClient(log)
	reg := registry.New(client, log)

	ctx, cancel := commandContext()
	defer cancel()

	switch os.Args[2] {
	case "list":
		categories, err := reg.LoadCategories(ctx, creds)
		if err != nil {
			fail(log, store, err)
		}
		printJSON(categories)

	case "get":
		fs := flag.NewFlagSet("categories get", flag.ExitOnError)
		id := fs.String("id", "", "Category id")
		fs.Parse(os.Args[3:])
		if *id == "" {
			log.Fatal().Msg("Error: -id is required")
		}

		category, err := client.GetCategory(ctx, creds, *id)
		if err != nil {
			fail(log, store, err)
		}
		printJSON(category)

	case "create":
		fs := flag.NewFlagSet("categories create", flag.ExitOnError)
		name := fs.String("name", "", "Category name")
		description := fs.String("description", "", "Category description")
		fs.Parse(os.Args[3:])
		if *name == "" {
			log.Fatal().Msg("Error: -name is required")
		}

		category, err := client.CreateCategory(ctx, creds, escrow.CategoryPayload{Name: *name, Description: *description})
		if err != nil {
			fail(log, store, err)
		}
		printJSON(category)

	case "update":
		fs := flag.NewFlagSet("categories update", flag.ExitOnError)
		id := fs.String("id", "", "Category id")
		name := fs.String("name", "", "New name")
		description := fs.String("description", "", "New description")
		fs.Parse(os.Args[3:])
		if *id == "" || *name == "" {
			log.Fatal().Msg("Error: -id and -name are required")
		}

		category, err := client.UpdateCategory(ctx, creds, *id, escrow.CategoryPayload{Name: *name, Description: *description})
		if err != nil {
			fail(log, store, err)
		}
		printJSON(category)

	case "delete":
		fs := flag.NewFlagSet("categories delete", flag.ExitOnError)
		id := fs.String("id", "", "Category id")
		fs.Parse(os.Args[3:])
		if *id == "" {
			log.Fatal().Msg("Error: -id is required")
		}

		if err := client.DeleteCategory(ctx, creds, *id); err != nil {
			fail(log, store, err)
		}
		fmt.Println("Category deleted.")

	default:
		fmt.Fprintf(os.Stderr, "Unknown categories subcommand: %s\n", os.Args[2])
		os.Exit(1)
	}
}

func runAttributes(log zerolog.Logger) {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: escrow attributes <list|create|update|delete> [options]")
		os.Exit(1)
	}

	store := sessionStore(log)
	creds := credentials(log, store)
	client := apiClient(log)
	reg := registry.New(client, log)

	ctx, cancel := commandContext()
	defer cancel()

	switch os.Args[2] {
	case "list":
		fs := flag.NewFlagSet("attributes list", flag.ExitOnError)
		categoryID := fs.String("category", "", "Category id (omit to list every category's schema)")
		fs.Parse(os.Args[3:])

		if *categoryID == "" {
			all, err := reg.AllAttributes(ctx, creds)
			if err != nil {
				fail(log, store, err)
			}
			printJSON(all)
			return
		}

		attributes, err := reg.LoadAttributes(ctx, creds, *categoryID)
		if err != nil {
			fail(log, store, err)
		}
		printJSON(attributes)

	case "create":
		fs := flag.NewFlagSet("attributes create", flag.ExitOnError)
		categoryID := fs.String("category", "", "Category id")
		name := fs.String("name", "", "Attribute name")
		dataType := fs.String("type", string(escrow.AttributeText), "Data type (text, number, boolean, date, list)")
		required := fs.Bool("required", false, "Whether the attribute is required")
		fs.Parse(os.Args[3:])
		if *categoryID == "" || *name == "" {
			log.Fatal().Msg("Error: -category and -name are required")
		}
		if !escrow.AttributeType(*dataType).Known() {
			log.Warn().Str("type", *dataType).Msg("Unrecognized data type; the server may reject it")
		}

		attribute, err := reg.CreateAttribute(ctx, creds, *categoryID, escrow.AttributePayload{
			Name:       *name,
			DataType:   escrow.AttributeType(*dataType),
			IsRequired: *required,
		})
		if err != nil {
			fail(log, store, err)
		}
		printJSON(attribute)

	case "update":
		fs := flag.NewFlagSet("attributes update", flag.ExitOnError)
		categoryID := fs.String("category", "", "Category id")
		id := fs.String("id", "", "Attribute id")
		name := fs.String("name", "", "New name (optional)")
		dataType := fs.String("type", "", "New data type (optional)")
		required := fs.String("required", "", "true or false (optional)")
		fs.Parse(os.Args[3:])
		if *categoryID == "" || *id == "" {
			log.Fatal().Msg("Error: -category and -id are required")
		}

		var update escrow.AttributeUpdate
		if *name != "" {
			update.Name = name
		}
		if *dataType != "" {
			dt := escrow.AttributeType(*dataType)
			update.DataType = &dt
		}
		switch *required {
		case "":
		case "true":
			v := true
			update.IsRequired = &v
		case "false":
			v := false
			update.IsRequired = &v
		default:
			log.Fatal().Msg("Error: -required must be true or false")
		}

		attribute, err := reg.UpdateAttribute(ctx, creds, *categoryID, *id, update)
		if err != nil {
			fail(log, store, err)
		}
		printJSON(attribute)

	case "delete":
		fs := flag.NewFlagSet("attributes delete", flag.ExitOnError)
		categoryID := fs.String("category", "", "Category id")
		id := fs.String("id", "", "Attribute id")
		fs.Parse(os.Args[3:])
		if *categoryID == "" || *id == "" {
			log.Fatal().Msg("Error: -category and -id are required")
		}

		if err := reg.DeleteAttribute(ctx, creds, *categoryID, *id); err != nil {
			fail(log, store, err)
		}
		fmt.Println("Attribute deleted.")

	default:
		fmt.Fprintf(os.Stderr, "Unknown attributes subcommand: %s\n", os.Args[2])
		os.Exit(1)
	}
}
