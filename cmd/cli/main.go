package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dvloznov/bankview/internal/catalog"
	"github.com/dvloznov/bankview/internal/config"
	"github.com/dvloznov/bankview/internal/logger"
	"github.com/dvloznov/bankview/internal/pipeline"
	"github.com/dvloznov/bankview/internal/query"
	"github.com/dvloznov/bankview/internal/sources"
	"github.com/rs/zerolog"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log := logger.New()
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Logs go to stderr so tables on stdout stay clean.
	log := logger.NewWithOptions(logger.Options{
		Level:  cfg.LogLevel,
		Format: logger.Format(cfg.LogFormat),
		Out:    os.Stderr,
	})

	if err := run(os.Args[1], os.Args[2:], cfg, log, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if errors.Is(err, errUnknownCommand) {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
			printUsage(os.Stderr)
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("Command failed")
	}
}

var errUnknownCommand = errors.New("unknown command")

func run(command string, args []string, cfg *config.Config, log zerolog.Logger, out io.Writer) error {
	switch command {
	case "list":
		return runList(args, cfg, log, out)
	case "show":
		return runShow(args, cfg, log, out)
	case "branches":
		return runBranches(args, cfg, log, out)
	case "summary":
		return runSummary(args, cfg, log, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		return errUnknownCommand
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Bank View CLI")
	fmt.Fprintln(w, "\nUsage:")
	fmt.Fprintln(w, "  cli <command> [options]")
	fmt.Fprintln(w, "\nCommands:")
	fmt.Fprintln(w, "  list      List clients with search, filters and pagination")
	fmt.Fprintln(w, "  show      Show one client with accounts and branch")
	fmt.Fprintln(w, "  branches  List branches")
	fmt.Fprintln(w, "  summary   Show table counts")
	fmt.Fprintln(w, "  help      Show this help message")
	fmt.Fprintln(w, "\nEvery command accepts -clients, -accounts and -branches to override the source URIs.")
	fmt.Fprintln(w, "Run 'cli <command> -h' for more information on a command.")
}

// sourceFlags registers the source overrides shared by every command.
type sourceFlags struct {
	clients, accounts, branches *string
	timeout                     *time.Duration
}

func addSourceFlags(fs *flag.FlagSet, cfg *config.Config) sourceFlags {
	return sourceFlags{
		clients:  fs.String("clients", cfg.ClientsSource, "Clients table source URI"),
		accounts: fs.String("accounts", cfg.AccountsSource, "Accounts table source URI"),
		branches: fs.String("branches", cfg.BranchesSource, "Branches table source URI"),
		timeout:  fs.Duration("timeout", 0, "Overall load timeout (0 for none)"),
	}
}

// loadContext bounds a load only when a positive timeout is given.
func loadContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

// load fetches and decodes the three tables once.
func (f sourceFlags) load(cfg *config.Config, log zerolog.Logger) (*catalog.Catalog, error) {
	ctx, cancel := loadContext(*f.timeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	srcs, err := sources.OpenAll(ctx, *f.clients, *f.accounts, *f.branches, sources.Options{
		Timeout:          cfg.FetchTimeout,
		CredentialsFile:  cfg.GCPCredentialsFile,
		BigQueryLocation: cfg.BigQueryLocation,
	})
	if err != nil {
		return nil, err
	}

	var opts []pipeline.LoaderOption
	if cfg.StrictDecoding {
		opts = append(opts, pipeline.WithStrictDecoding())
	}

	cat, err := pipeline.NewLoader(srcs, opts...).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("Failed to load data. Please try again: %w", err)
	}
	return cat, nil
}

func runList(args []string, cfg *config.Config, log zerolog.Logger, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	src := addSourceFlags(fs, cfg)
	search := fs.String("search", "", "Search term (name, display name or tax ID)")
	marital := fs.String("marital", "", "Marital status filter (Solteiro, Casado, Viúvo, Divorciado)")
	document := fs.String("document", "", "Document type filter (individual|organization)")
	page := fs.Int("page", 1, "Page number")
	pageSize := fs.Int("page-size", cfg.PageSize, "Clients per page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := query.ParseMaritalStatus(*marital)
	if err != nil {
		return err
	}
	d, err := query.ParseDocumentType(*document)
	if err != nil {
		return err
	}

	cat, err := src.load(cfg, log)
	if err != nil {
		return err
	}

	snapshot := query.NewSnapshot(cat.Clients).
		WithSearch(*search).
		WithFilter(query.Filter{MaritalStatus: m, DocumentType: d}).
		WithPage(*page)

	return printClientList(out, query.Derive(snapshot, *pageSize))
}

func runShow(args []string, cfg *config.Config, log zerolog.Logger, out io.Writer) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	src := addSourceFlags(fs, cfg)
	id := fs.String("id", "", "Client ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	cat, err := src.load(cfg, log)
	if err != nil {
		return err
	}

	detail, ok := cat.Detail(*id)
	if !ok {
		return fmt.Errorf("client %q not found", *id)
	}
	return printDetail(out, detail)
}

func runBranches(args []string, cfg *config.Config, log zerolog.Logger, out io.Writer) error {
	fs := flag.NewFlagSet("branches", flag.ContinueOnError)
	src := addSourceFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cat, err := src.load(cfg, log)
	if err != nil {
		return err
	}
	return printBranches(out, cat.Branches)
}

func runSummary(args []string, cfg *config.Config, log zerolog.Logger, out io.Writer) error {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	src := addSourceFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cat, err := src.load(cfg, log)
	if err != nil {
		return err
	}
	return printSummary(out, cat.Summary())
}
