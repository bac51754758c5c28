package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/details"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/mmcdole/marquee/internal/omdb"
	"github.com/mmcdole/marquee/internal/recent"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/theme"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

type flags struct {
	showVersion bool
	clearCache  bool
	reset       bool
	mediaType   string
	year        string
	sort        string
	configDir   string
}

func main() {
	var f flags
	flag.BoolVar(&f.showVersion, "v", false, "print version")
	flag.BoolVar(&f.showVersion, "version", false, "print version")
	flag.BoolVar(&f.clearCache, "clear-cache", false, "remove cached movie details and exit")
	flag.BoolVar(&f.reset, "reset", false, "delete all stored favorites, recent searches and cache, then exit")
	flag.StringVar(&f.mediaType, "type", "", "restrict results to movie, series or episode")
	flag.StringVar(&f.year, "year", "", "restrict results to a four digit year")
	flag.StringVar(&f.sort, "sort", "", "relevance, year_desc, year_asc, title_asc or title_desc")
	flag.StringVar(&f.configDir, "config", "", "directory containing config.yaml")
	flag.Parse()

	if f.showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if err := run(f, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags, args []string) error {
	// Load configuration
	var (
		cfg *config.Config
		err error
	)
	if f.configDir != "" {
		cfg, err = config.Load(f.configDir)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	if f.reset {
		if err := cfg.ClearCache(); err != nil {
			return err
		}
		fmt.Println("✓ Local data removed")
		return nil
	}

	kv, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer kv.Close()

	cache := details.NewCache(kv, logger)
	if f.clearCache {
		cache.Clear()
		fmt.Println("✓ Details cache cleared")
		return nil
	}

	interactive := len(args) == 0 && term.IsTerminal(int(os.Stdout.Fd()))

	if errors.Is(cfg.RequireAPIKey(), domain.ErrMissingAPIKey) && interactive && term.IsTerminal(int(os.Stdin.Fd())) {
		if err := runSetupFlow(cfg, logger); err != nil {
			return err
		}
	}

	client, err := omdb.NewClientFromConfig(cfg, logger)
	if err != nil {
		if errors.Is(err, domain.ErrMissingAPIKey) {
			return fmt.Errorf("%w: set api.key in config.yaml or OMDB_API_KEY", err)
		}
		return fmt.Errorf("failed to create API client: %w", err)
	}

	filters := domain.SearchFilters{
		Query: strings.Join(args, " "),
		Type:  domain.ParseMediaType(f.mediaType),
		Year:  f.year,
	}
	sortMode := domain.ParseSortMode(f.sort)

	if !interactive {
		return runPrint(context.Background(), os.Stdout, client, filters, sortMode)
	}

	// Create services
	svc := tui.Services{
		Search:    search.NewOrchestrator(client, logger, search.WithErrorHandler(func(msg string) { logger.Warn("search failed", "message", msg) })),
		Client:    client,
		Details:   details.NewLoader(client, cache, logger),
		Favorites: favorites.NewManager(kv, logger),
		Recent:    recent.NewManager(kv, logger),
		Theme:     theme.NewManager(kv, cfg.UI.Theme, logger),
		Logger:    logger,
	}
	svc.Favorites.Load()
	svc.Recent.Load()
	svc.Theme.Load()

	model := tui.NewModel(svc, tui.Options{
		Debounce:    cfg.Search.Debounce,
		TypingDelay: cfg.Search.TypingDelay,
		SystemDark:  lipgloss.HasDarkBackground(),
		Sort:        sortMode,
	})

	// Run the TUI
	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// openStore opens the bbolt store, or an in-memory one when no directory is configured
func openStore(cfg *config.Config, logger *slog.Logger) (*store.Store, error) {
	if cfg.Storage.Dir == "" {
		logger.Info("storage disabled, using memory store")
		return store.NewMemory(), nil
	}
	kv, err := store.Open(cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return kv, nil
}

// runSetupFlow asks for an API key, verifies it and saves the config
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Marquee!")
	fmt.Println("An OMDb API key is required: https://www.omdbapi.com/apikey.aspx")
	fmt.Println()

	for {
		fmt.Print("Enter your API key: ")
		keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		apiKey := strings.TrimSpace(string(keyBytes))
		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		cfg.API.Key = apiKey
		client, err := omdb.NewClientFromConfig(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to create API client: %w", err)
		}

		if err := verifyKeyWithSpinner(client); err != nil {
			fmt.Printf("\n✗ %v\n", err)
			fmt.Println("Please check the key and try again.")
			fmt.Println()
			continue
		}
		break
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	return nil
}

// verifyKeyWithSpinner runs one search to confirm the key works
func verifyKeyWithSpinner(client *omdb.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	type result struct {
		page domain.SearchPage
		err  error
	}
	resultCh := make(chan result, 1)
	go func() {
		page, err := client.Search(ctx, domain.SearchFilters{Query: "matrix"}, domain.FirstPage)
		resultCh <- result{page, err}
	}()

	frame := 0
	fmt.Printf("\r%s Checking API key...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if res.err != nil {
				return res.err
			}
			// Unknown titles still prove the key works; only key errors fail
			if res.page.ErrorMessage == domain.MsgRateLimited {
				return errors.New(res.page.ErrorMessage)
			}
			fmt.Println("✓ API key accepted")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking API key...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return errors.New("verification timed out")
		}
	}
}
