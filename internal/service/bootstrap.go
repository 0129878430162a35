package service

import (
	"context"
	"fmt"

	"github.com/andresuchdata/craftledger/internal/config"
	"github.com/andresuchdata/craftledger/internal/ledger"
	"github.com/andresuchdata/craftledger/internal/storage"
	"github.com/andresuchdata/craftledger/internal/store"
)

// OpenLedger wires the configured blob backend, the record store and the service.
// The returned close func releases the backend.
func OpenLedger(ctx context.Context, cfg *config.Config) (*LedgerService, func() error, error) {
	policy, err := store.ParseInitPolicy(cfg.Storage.Init)
	if err != nil {
		return nil, nil, err
	}

	blobs, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	closeFn := func() error { return storage.Close(blobs) }

	st, err := store.New(ctx, blobs, cfg.Storage.Key, policy)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	return NewLedgerService(st, ledger.Options{IncludeFailBuffer: cfg.Ledger.IncludeFailBuffer}), closeFn, nil
}
