// internal/service/ledger_service.go
package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/craftledger/internal/domain"
	"github.com/andresuchdata/craftledger/internal/ledger"
	"github.com/andresuchdata/craftledger/internal/store"
)

// LedgerService exposes the record store together with the derived dashboard queries.
// Mutations are the store's own methods.
type LedgerService struct {
	*store.Store
	opts ledger.Options
}

func NewLedgerService(st *store.Store, opts ledger.Options) *LedgerService {
	return &LedgerService{Store: st, opts: opts}
}

// Dashboard is everything the dashboard screen shows, computed from one snapshot.
type Dashboard struct {
	Metrics  ledger.Metrics            `json:"metrics"`
	Insight  ledger.Insight            `json:"insight"`
	Products []ledger.ProductEconomics `json:"products"`
}

func (s *LedgerService) Options() ledger.Options {
	return s.opts
}

func (s *LedgerService) Metrics() ledger.Metrics {
	return ledger.Compute(s.Snapshot(), s.opts)
}

func (s *LedgerService) Insight() ledger.Insight {
	return ledger.Evaluate(s.Metrics())
}

func (s *LedgerService) ProductEconomics() []ledger.ProductEconomics {
	return ledger.Economics(s.Snapshot(), s.opts)
}

func (s *LedgerService) Dashboard() Dashboard {
	records := s.Snapshot()
	metrics := ledger.Compute(records, s.opts)
	return Dashboard{
		Metrics:  metrics,
		Insight:  ledger.Evaluate(metrics),
		Products: ledger.Economics(records, s.opts),
	}
}

// Order returns a single order by id.
func (s *LedgerService) Order(id string) (domain.Order, bool) {
	for _, o := range s.Orders() {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

func (s *LedgerService) ResetToDemo(ctx context.Context) error {
	if err := s.Store.ResetToDemo(ctx); err != nil {
		return err
	}
	log.Warn().Msg("ledger reset to demo data")
	return nil
}

func (s *LedgerService) ClearAll(ctx context.Context) error {
	if err := s.Store.ClearAll(ctx); err != nil {
		return err
	}
	log.Warn().Msg("ledger cleared")
	return nil
}

func (s *LedgerService) StartFresh(ctx context.Context) error {
	if err := s.Store.StartFresh(ctx); err != nil {
		return err
	}
	log.Warn().Msg("ledger restarted, products kept")
	return nil
}
