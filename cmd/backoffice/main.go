package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/stockroom/backoffice/internal/client"
	"github.com/stockroom/backoffice/internal/domain/report"
	"github.com/stockroom/backoffice/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const defaultServer = "http://localhost:8080"

func main() {
	var (
		server      string
		sessionPath string
		logLevel    string
	)

	flag.StringVar(&server, "server", envOr("SHOP_API_URL", defaultServer), "Back-office API base URL")
	flag.StringVar(&sessionPath, "session", "", "Session file (default: user config dir)")
	flag.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if sessionPath == "" {
		if sessionPath, err = client.DefaultSessionPath(); err != nil {
			log.Fatal("Cannot locate session file", zap.Error(err))
		}
	}

	c, err := client.New(server, client.WithLogger(log))
	if err != nil {
		log.Fatal("Invalid server URL", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli := &cli{
		client: c,
		store:  client.NewFileSessionStore(sessionPath),
		log:    log,
		out:    newRenderer(os.Stdout),
	}
	if err := cli.run(ctx, args[0], args[1:]); err != nil {
		if client.IsUnauthorized(err) || errors.Is(err, client.ErrNotAuthenticated) {
			fmt.Fprintln(os.Stderr, "Not logged in. Run: backoffice login -u <username>")
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

type cli struct {
	client *client.Client
	store  client.SessionStore
	log    *zap.Logger
	out    *renderer
}

func (a *cli) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami()
	case "dashboard":
		return a.dashboard(ctx, args)
	case "summary":
		return a.summary(ctx, args)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// resume loads the stored session into the client
func (a *cli) resume() (*client.Session, error) {
	sess, err := a.store.Hydrate()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, client.ErrNotAuthenticated
	}
	if sess.Expired(time.Now()) {
		a.log.Info("Stored session expired", zap.Time("expires_at", sess.ExpiresAt))
		if err := a.store.Clear(); err != nil {
			return nil, err
		}
		return nil, client.ErrNotAuthenticated
	}
	a.client.SetToken(sess.Token)
	return sess, nil
}

func (a *cli) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("u", "", "Username or email")
	password := fs.String("p", os.Getenv("SHOP_PASSWORD"), "Password (default: $SHOP_PASSWORD, else read from stdin)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return errors.New("login: -u is required")
	}
	if *password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("login: read password: %w", err)
		}
		*password = strings.TrimRight(line, "\r\n")
	}

	sess, err := a.client.Login(ctx, *username, *password)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			return errors.New(apiErr.Message)
		}
		return err
	}
	if err := a.store.Persist(sess); err != nil {
		return fmt.Errorf("login: save session: %w", err)
	}
	a.out.session(sess)
	return nil
}

func (a *cli) logout(ctx context.Context) error {
	if _, err := a.resume(); err != nil && !errors.Is(err, client.ErrNotAuthenticated) {
		return err
	}
	if err := a.client.Logout(ctx); err != nil {
		a.log.Warn("Server logout failed", zap.Error(err))
	}
	if err := a.store.Clear(); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func (a *cli) whoami() error {
	sess, err := a.resume()
	if err != nil {
		return err
	}
	a.out.session(sess)
	return nil
}

func (a *cli) dashboard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	var f report.SellFilter
	fs.StringVar(&f.CategoryID, "category", "", "Only sells of products in this category")
	fs.StringVar(&f.BrandID, "brand", "", "Only sells of this brand")
	fs.StringVar(&f.ProductID, "product", "", "Only sells of this product")
	fs.StringVar(&f.SellerID, "seller", "", "Only sells by this user")
	refresh := fs.Duration("refresh", 0, "Reload every interval until interrupted (0 = once)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := a.resume(); err != nil {
		return err
	}

	board := client.NewDashboard(a.client, a.log)
	if *refresh <= 0 {
		view, _, err := board.Load(ctx, f)
		if err != nil {
			return a.dropOnUnauthorized(err)
		}
		a.out.dashboard(view)
		return nil
	}

	// Loads run concurrently so a slow response never delays the next tick;
	// the dashboard drops any result that finishes after a newer one.
	results := make(chan *client.View)
	failures := make(chan error)
	load := func() {
		view, applied, err := board.Load(ctx, f)
		switch {
		case err != nil:
			select {
			case failures <- err:
			case <-ctx.Done():
			}
		case applied:
			select {
			case results <- view:
			case <-ctx.Done():
			}
		}
	}

	ticker := time.NewTicker(*refresh)
	defer ticker.Stop()
	go load()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			go load()
		case view := <-results:
			a.out.clear()
			a.out.dashboard(view)
		case err := <-failures:
			if client.IsUnauthorized(err) {
				return a.dropOnUnauthorized(err)
			}
			a.log.Warn("Dashboard refresh failed", zap.Error(err))
		}
	}
}

func (a *cli) summary(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: backoffice summary <category-id>")
	}
	if _, err := a.resume(); err != nil {
		return err
	}
	s, err := a.client.CategorySummary(ctx, args[0])
	if err != nil {
		return a.dropOnUnauthorized(err)
	}
	a.out.summary(args[0], s)
	return nil
}

// dropOnUnauthorized forgets a session the server no longer accepts
func (a *cli) dropOnUnauthorized(err error) error {
	if client.IsUnauthorized(err) {
		if clearErr := a.store.Clear(); clearErr != nil {
			a.log.Warn("Failed to clear session", zap.Error(clearErr))
		}
	}
	return err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printUsage() {
	fmt.Println(`Stockroom back-office client

Usage:
  backoffice [flags] <command> [arguments]

Commands:
  login -u <user> [-p <password>]   Log in and store the session
  logout                            Revoke the token and forget the session
  whoami                            Show the stored session
  dashboard [filters]               Sells rollup: totals, per product, per seller
      -category, -brand, -product, -seller <id>
      -refresh <interval>           Keep reloading (e.g. 30s)
  summary <category-id>             Server-side category summary

Flags:
  -server string      API base URL (default: $SHOP_API_URL or http://localhost:8080)
  -session string     Session file (default: <user config dir>/stockroom/session.json)
  -log-level string   Log level (default: warn)`)
}
