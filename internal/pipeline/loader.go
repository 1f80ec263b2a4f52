package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/dvloznov/bankview/internal/catalog"
	"github.com/dvloznov/bankview/internal/domain"
	"github.com/dvloznov/bankview/internal/logger"
	"golang.org/x/sync/errgroup"
)

// Sources names where each of the three tables comes from.
type Sources struct {
	Clients  RowSource
	Accounts RowSource
	Branches RowSource
}

// Loader fetches the three tables concurrently and decodes them into a
// catalog.
type Loader struct {
	sources Sources
	strict  bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithStrictDecoding makes Load fail on the first cell that does not
// decode instead of propagating NaN or invalid dates.
func WithStrictDecoding() LoaderOption {
	return func(l *Loader) { l.strict = true }
}

// NewLoader creates a loader over the given sources.
func NewLoader(sources Sources, opts ...LoaderOption) *Loader {
	l := &Loader{sources: sources}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads all three tables. The reads run concurrently and the load
// succeeds only if every one of them does; the first failure cancels the
// others and no partial catalog is returned.
func (l *Loader) Load(ctx context.Context) (*catalog.Catalog, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	var clientRecs, accountRecs, branchRecs []Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return l.read(gctx, TableClients, l.sources.Clients, &clientRecs)
	})
	g.Go(func() error {
		return l.read(gctx, TableAccounts, l.sources.Accounts, &accountRecs)
	})
	g.Go(func() error {
		return l.read(gctx, TableBranches, l.sources.Branches, &branchRecs)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	clients, accounts, branches, err := l.decode(clientRecs, accountRecs, branchRecs)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	log.Info().
		Int("clients", len(clients)).
		Int("accounts", len(accounts)).
		Int("branches", len(branches)).
		Dur("duration", time.Since(start)).
		Msg("Tables loaded")

	return catalog.New(clients, accounts, branches), nil
}

func (l *Loader) read(ctx context.Context, table string, src RowSource, dst *[]Record) error {
	if src == nil {
		return fmt.Errorf("%s: no source configured", table)
	}

	recs, err := src.Records(ctx)
	if err != nil {
		return fmt.Errorf("%s from %s: %w", table, src.Describe(), err)
	}

	log := logger.FromContext(ctx)
	log.Debug().
		Str("table", table).
		Str("source", src.Describe()).
		Int("rows", len(recs)).
		Msg("Table fetched")

	*dst = recs
	return nil
}

func (l *Loader) decode(clientRecs, accountRecs, branchRecs []Record) ([]domain.Client, []domain.Account, []domain.Branch, error) {
	rawClients := make([]domain.RawClient, len(clientRecs))
	for i, r := range clientRecs {
		rawClients[i] = RawClientFromRecord(r)
	}
	rawAccounts := make([]domain.RawAccount, len(accountRecs))
	for i, r := range accountRecs {
		rawAccounts[i] = RawAccountFromRecord(r)
	}
	rawBranches := make([]domain.RawBranch, len(branchRecs))
	for i, r := range branchRecs {
		rawBranches[i] = RawBranchFromRecord(r)
	}

	if !l.strict {
		return DecodeClients(rawClients), DecodeAccounts(rawAccounts), DecodeBranches(rawBranches), nil
	}

	clients, err := DecodeClientsStrict(rawClients)
	if err != nil {
		return nil, nil, nil, err
	}
	accounts, err := DecodeAccountsStrict(rawAccounts)
	if err != nil {
		return nil, nil, nil, err
	}
	branches, err := DecodeBranchesStrict(rawBranches)
	if err != nil {
		return nil, nil, nil, err
	}
	return clients, accounts, branches, nil
}
