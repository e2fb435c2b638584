package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"

	"github.com/emagn/escrow-client/internal/escrow"
	"github.com/emagn/escrow-client/internal/registry"
	"github.com/emagn/escrow-client/internal/report"
	"github.com/emagn/escrow-client/internal/tokenstore"
	"github.com/emagn/escrow-client/internal/validate"
	"github.com/emagn/escrow-client/internal/workflow"
)

func runTransactions(log zerolog.Logger) {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: escrow transactions <list|get|create|status|attrs|delete|summary> [options]")
		os.Exit(1)
	}

	store := sessionStore(log)
	creds := credentials(log, store)
	client := apiClient(log)

	ctx, cancel := commandContext()
	defer cancel()

	switch os.Args[2] {
	case "list":
		fs := flag.NewFlagSet("transactions list", flag.ExitOnError)
		categoryID := fs.String("category", "", "Only transactions in this category")
		limit := fs.Int("limit", 0, "Page size (0 for the server default)")
		offset := fs.Int("offset", 0, "Starting offset")
		fs.Parse(os.Args[3:])

		opts := escrow.ListOptions{Limit: *limit, Offset: *offset}
		var (
			transactions []escrow.Transaction
			err          error
		)
		if *categoryID != "" {
			transactions, err = client.ListTransactionsByCategory(ctx, creds, *categoryID, opts)
		} else {
			transactions, err = client.ListTransactions(ctx, creds, opts)
		}
		if err != nil {
			fail(log, store, err)
		}
		printJSON(transactions)

	case "get":
		fs := flag.NewFlagSet("transactions get", flag.ExitOnError)
		id := fs.String("id", "", "Transaction id")
		fs.Parse(os.Args[3:])
		if *id == "" {
			log.Fatal().Msg("Error: -id is required")
		}

		txn, err := client.GetTransaction(ctx, creds, *id)
		if err != nil {
			fail(log, store, err)
		}
		printJSON(txn)
		fmt.Printf("Status: %s\n", workflow.DisplayLabel(txn.Status.Get()))

	case "create":
		runTransactionCreate(ctx, log, store, client, creds)

	case "status":
		fs := flag.NewFlagSet("transactions status", flag.ExitOnError)
		id := fs.String("id", "", "Transaction id")
		status := fs.String("set", "", "New status ("+strings.Join(workflow.Statuses(), ", ")+")")
		fs.Parse(os.Args[3:])
		if *id == "" || *status == "" {
			log.Fatal().Msg("Error: -id and -set are required")
		}

		flow := workflow.New(client, log)
		txn, err := flow.UpdateStatus(ctx, creds, *id, *status)
		if err != nil {
			fail(log, store, err)
		}
		label := workflow.DisplayLabel(txn.Status.Get())
		fmt.Printf("Status updated to %s (%s)\n", label, workflow.ColorClass(txn.Status.Get()))

	case "attrs":
		fs := flag.NewFlagSet("transactions attrs", flag.ExitOnError)
		id := fs.String("id", "", "Transaction id")
		add := fs.String("add", "", "Attach a value as attribute_id=value")
		remove := fs.String("remove", "", "Detach one attribute by id")
		clear := fs.Bool("clear", false, "Detach every attribute")
		fs.Parse(os.Args[3:])
		if *id == "" {
			log.Fatal().Msg("Error: -id is required")
		}

		switch {
		case *add != "":
			key, value, found := strings.Cut(*add, "=")
			if !found {
				log.Fatal().Msg("Error: -add expects attribute_id=value")
			}
			pairs, err := validate.CleanAttributePairs([]escrow.TransactionAttribute{{AttributeID: key, Value: value}})
			if err != nil {
				log.Fatal().Msg(escrow.Humanize(err))
			}
			if len(pairs) == 0 {
				log.Fatal().Msg("Error: -add expects attribute_id=value")
			}
			created, err := client.AddTransactionAttribute(ctx, creds, *id, pairs[0])
			if err != nil {
				fail(log, store, err)
			}
			printJSON(created)
		case *remove != "":
			if err := client.DeleteTransactionAttribute(ctx, creds, *id, *remove); err != nil {
				fail(log, store, err)
			}
			fmt.Println("Attribute detached.")
		case *clear:
			if err := client.DeleteAllTransactionAttributes(ctx, creds, *id); err != nil {
				fail(log, store, err)
			}
			fmt.Println("All attributes detached.")
		default:
			attrs, err := client.ListTransactionAttributes(ctx, creds, *id)
			if err != nil {
				fail(log, store, err)
			}
			printJSON(attrs)
		}

	case "delete":
		fs := flag.NewFlagSet("transactions delete", flag.ExitOnError)
		id := fs.String("id", "", "Transaction id")
		fs.Parse(os.Args[3:])
		if *id == "" {
			log.Fatal().Msg("Error: -id is required")
		}

		if err := client.DeleteTransaction(ctx, creds, *id); err != nil {
			fail(log, store, err)
		}
		fmt.Println("Transaction deleted.")

	case "summary":
		fs := flag.NewFlagSet("transactions summary", flag.ExitOnError)
		categoryID := fs.String("category", "", "Only transactions in this category")
		pageSize := fs.Int("page-size", 50, "Transactions fetched per request")
		fs.Parse(os.Args[3:])

		var it *escrow.TransactionIterator
		if *categoryID != "" {
			it = client.TransactionsByCategory(ctx, creds, *categoryID, *pageSize)
		} else {
			it = client.Transactions(ctx, creds, *pageSize)
		}

		var transactions []escrow.Transaction
		for {
			txn, err := it.Next()
			if errors.Is(err, iterator.Done) {
				break
			}
			if err != nil {
				fail(log, store, err)
			}
			transactions = append(transactions, *txn)
		}

		summary := report.Summarize(transactions)
		fmt.Printf("%d transactions\n", summary.Transactions)
		for _, c := range summary.ByCurrency {
			fmt.Printf("  %-4s %s\n", c.Currency, c.Total.StringFixed(2))
		}
		for _, s := range summary.ByStatus {
			fmt.Printf("  %3d  %s [%s]\n", s.Count, s.Label, s.Class)
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown transactions subcommand: %s\n", os.Args[2])
		os.Exit(1)
	}
}

// runTransactionCreate validates the payload against the loaded category
// registry before anything is sent. Attribute values are passed as repeated
// -attr attribute_id=value flags.
func runTransactionCreate(ctx context.Context, log zerolog.Logger, store *tokenstore.Store, client *escrow.Client, creds escrow.Credentials) {
	fs := flag.NewFlagSet("transactions create", flag.ExitOnError)
	title := fs.String("title", "", "Deal title")
	role := fs.String("role", "", "Your role: Buyer, Seller or Broker")
	currency := fs.String("currency", "", "Currency code, e.g. ETB or USD")
	inspection := fs.String("inspection", "", "Inspection period, e.g. '7 days'")
	categoryID := fs.String("category", "", "Item category id")
	itemName := fs.String("item", "", "Item name")
	itemDescription := fs.String("description", "", "Item description")
	price := fs.String("price", "", "Price as a decimal string")
	shipping := fs.String("shipping", "", "Shipping method")
	sellerEmail := fs.String("seller-email", "", "Seller email")
	sellerPhone := fs.String("seller-phone", "", "Seller phone")
	buyerEmail := fs.String("buyer-email", "", "Buyer email")
	buyerPhone := fs.String("buyer-phone", "", "Buyer phone")
	var attrFlags multiFlag
	fs.Var(&attrFlags, "attr", "Attribute value as attribute_id=value (repeatable)")
	fs.Parse(os.Args[3:])

	var rawPairs []escrow.TransactionAttribute
	for _, raw := range attrFlags {
		key, value, _ := strings.Cut(raw, "=")
		rawPairs = append(rawPairs, escrow.TransactionAttribute{AttributeID: key, Value: value})
	}
	pairs, err := validate.CleanAttributePairs(rawPairs)
	if err != nil {
		log.Fatal().Msg(escrow.Humanize(err))
	}

	payload := escrow.CreateTransactionPayload{
		Title:            *title,
		Role:             escrow.Role(*role),
		Currency:         *currency,
		InspectionPeriod: *inspection,
		ItemCategoryID:   *categoryID,
		ItemName:         *itemName,
		ItemDescription:  *itemDescription,
		Price:            *price,
		ShippingMethod:   *shipping,
		SellerEmail:      *sellerEmail,
		SellerPhone:      *sellerPhone,
		BuyerEmail:       *buyerEmail,
		BuyerPhone:       *buyerPhone,
		Attributes:       pairs,
	}

	// Check the category reference against the live category list; the
	// server remains authoritative.
	reg := registry.New(client, log)
	var knownCategory func(string) bool
	if _, err := reg.LoadCategories(ctx, creds); err == nil {
		knownCategory = func(id string) bool {
			_, ok := reg.Category(id)
			return ok
		}
	} else {
		log.Warn().Msg("Could not load categories; skipping the category reference check")
	}

	if err := validate.CreateTransaction(payload, knownCategory); err != nil {
		log.Fatal().Msg(escrow.Humanize(err))
	}

	txn, err := client.CreateTransaction(ctx, creds, payload)
	if err != nil {
		fail(log, store, err)
	}
	printJSON(txn)
}

// multiFlag collects repeated string flags.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(value string) error {
	*m = append(*m, value)
	return nil
}
