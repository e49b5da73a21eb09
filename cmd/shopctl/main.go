package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kartshop/internal/action"
	"kartshop/internal/auth"
	"kartshop/internal/backend"
	"kartshop/internal/config"
	"kartshop/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	email := flag.String("email", "", "account email (required unless a session is restorable)")
	password := flag.String("password", "", "account password")
	signup := flag.Bool("signup", false, "register a new account instead of signing in")
	order := flag.Bool("order", false, "add the first catalogue product to the cart and place an order")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting kartshop client")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Stop on interrupt so in-flight requests get their contexts cancelled.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
		cancel()
	}()

	// Wire the client stack
	client := backend.NewClient(cfg.Backend.BaseURL, time.Duration(cfg.Backend.Timeout)*time.Second, logger)
	provider := auth.NewProvider(cfg.Identity.BaseURL, cfg.Identity.APIKey, time.Duration(cfg.Identity.Timeout)*time.Second, logger)
	sessions := auth.NewFileSessionStore(cfg.Session.FilePath, logger)

	st := store.New(logger)
	products := action.NewProducts(client, logger)
	orders := action.NewOrders(client, logger)
	authAction := action.NewAuth(provider, sessions, auth.NewExpiryTimer(), logger)

	// Sign in: restored session first, explicit credentials otherwise.
	restored, err := authAction.Restore(st)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to restore session")
	}
	if !restored {
		if *email == "" || *password == "" {
			return fmt.Errorf("no stored session: -email and -password are required")
		}
		if *signup {
			err = authAction.SignUp(ctx, st, *email, *password)
		} else {
			err = authAction.SignIn(ctx, st, *email, *password)
		}
		if err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
	}
	logger.Info().Str("user_id", st.CurrentUserID()).Msg("signed in")

	// Load the catalogue and the order history.
	if err := products.Load(ctx, st); err != nil {
		return err
	}
	if err := orders.Load(ctx, st); err != nil {
		return err
	}

	catalog := st.Catalog()
	fmt.Printf("Catalogue: %d products (%d yours)\n", len(catalog.AllProducts), len(catalog.MyProducts))
	for _, p := range catalog.AllProducts {
		fmt.Printf("  %-24s %8.2f  (%s)\n", p.Title, p.Price, p.ID)
	}

	history := st.Orders()
	fmt.Printf("Order history: %d orders\n", len(history))
	for _, o := range history {
		fmt.Printf("  %s  %8.2f  placed %s\n", o.ID, o.TotalAmount, o.PlacedAt)
	}

	if *order {
		if len(catalog.AllProducts) == 0 {
			return fmt.Errorf("cannot place an order: the catalogue is empty")
		}
		st.Dispatch(store.AddToCart{Product: catalog.AllProducts[0]})
		if err := orders.Place(ctx, st, st.Cart()); err != nil {
			return err
		}
		placed := st.Orders()
		latest := placed[len(placed)-1]
		fmt.Printf("Placed order %s for %.2f\n", latest.ID, latest.TotalAmount)
	}

	return nil
}
