package services

import (
	"context"
	"fmt"
	"log/slog"

	"bankfolio/internal/core"
	applog "bankfolio/internal/log"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Entities and actions carried by ledger events.
const (
	EntityAccount = "account"
	EntityOutcome = "outcome"
	EntityAsset   = "asset"

	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionAdjusted = "adjusted"
	ActionDeleted  = "deleted"
)

// Store is the persistence the ledger service needs.
type Store interface {
	CreateAccount(ctx context.Context, in core.AccountInput) (core.Account, error)
	GetAccount(ctx context.Context, id int64) (core.Account, error)
	ListAccounts(ctx context.Context) ([]core.Account, error)
	UpdateAccount(ctx context.Context, id int64, in core.AccountInput) error
	AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) (core.Account, error)
	DeleteAccount(ctx context.Context, id int64) error

	CreateOutcome(ctx context.Context, in core.OutcomeInput) (core.Outcome, error)
	GetOutcome(ctx context.Context, id int64) (core.Outcome, error)
	ListOutcomes(ctx context.Context) ([]core.Outcome, error)
	UpdateOutcome(ctx context.Context, id int64, in core.OutcomeInput) error
	DeleteOutcome(ctx context.Context, id int64) error

	CreateAsset(ctx context.Context, in core.AssetInput) (core.Asset, error)
	GetAsset(ctx context.Context, id int64) (core.Asset, error)
	ListAssets(ctx context.Context) ([]core.Asset, error)
	UpdateAsset(ctx context.Context, id int64, in core.AssetInput) error
	DeleteAsset(ctx context.Context, id int64) error

	TotalMoney(ctx context.Context) (decimal.Decimal, error)
	TotalOutcome(ctx context.Context) (decimal.Decimal, error)
	TotalAssets(ctx context.Context) (decimal.Decimal, error)
	MoneyOverTime(ctx context.Context) ([]core.BalancePoint, error)
	Snapshot(ctx context.Context) (core.Snapshot, error)

	Ping(ctx context.Context) error
	Close() error
}

// EventPublisher announces ledger changes to other processes.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, entity, action string, id int64) error
	Close() error
}

// LedgerService orchestrates ledger operations across SQLite and AMQP
type LedgerService struct {
	store     Store
	publisher EventPublisher
}

// NewLedgerService wires the store and an optional publisher. A nil
// publisher disables events.
func NewLedgerService(store Store, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
	}
}

// Accounts

func (s *LedgerService) CreateAccount(ctx context.Context, in core.AccountInput) (core.Account, error) {
	a, err := s.store.CreateAccount(ctx, in)
	if err != nil {
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}
	s.publish(ctx, EntityAccount, ActionCreated, a.ID)
	return a, nil
}

func (s *LedgerService) GetAccount(ctx context.Context, id int64) (core.Account, error) {
	a, err := s.store.GetAccount(ctx, id)
	if err != nil {
		return core.Account{}, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

func (s *LedgerService) ListAccounts(ctx context.Context) ([]core.Account, error) {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

func (s *LedgerService) UpdateAccount(ctx context.Context, id int64, in core.AccountInput) error {
	if err := s.store.UpdateAccount(ctx, id, in); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	s.publish(ctx, EntityAccount, ActionUpdated, id)
	return nil
}

func (s *LedgerService) AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) (core.Account, error) {
	a, err := s.store.AdjustBalance(ctx, id, delta)
	if err != nil {
		return core.Account{}, fmt.Errorf("adjust balance: %w", err)
	}
	s.publish(ctx, EntityAccount, ActionAdjusted, id)
	return a, nil
}

func (s *LedgerService) DeleteAccount(ctx context.Context, id int64) error {
	if err := s.store.DeleteAccount(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	s.publish(ctx, EntityAccount, ActionDeleted, id)
	return nil
}

// Outcomes

func (s *LedgerService) CreateOutcome(ctx context.Context, in core.OutcomeInput) (core.Outcome, error) {
	o, err := s.store.CreateOutcome(ctx, in)
	if err != nil {
		return core.Outcome{}, fmt.Errorf("create outcome: %w", err)
	}
	s.publish(ctx, EntityOutcome, ActionCreated, o.ID)
	return o, nil
}

func (s *LedgerService) GetOutcome(ctx context.Context, id int64) (core.Outcome, error) {
	o, err := s.store.GetOutcome(ctx, id)
	if err != nil {
		return core.Outcome{}, fmt.Errorf("get outcome: %w", err)
	}
	return o, nil
}

func (s *LedgerService) ListOutcomes(ctx context.Context) ([]core.Outcome, error) {
	outcomes, err := s.store.ListOutcomes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}
	return outcomes, nil
}

func (s *LedgerService) UpdateOutcome(ctx context.Context, id int64, in core.OutcomeInput) error {
	if err := s.store.UpdateOutcome(ctx, id, in); err != nil {
		return fmt.Errorf("update outcome: %w", err)
	}
	s.publish(ctx, EntityOutcome, ActionUpdated, id)
	return nil
}

func (s *LedgerService) DeleteOutcome(ctx context.Context, id int64) error {
	if err := s.store.DeleteOutcome(ctx, id); err != nil {
		return fmt.Errorf("delete outcome: %w", err)
	}
	s.publish(ctx, EntityOutcome, ActionDeleted, id)
	return nil
}

// Assets

func (s *LedgerService) CreateAsset(ctx context.Context, in core.AssetInput) (core.Asset, error) {
	a, err := s.store.CreateAsset(ctx, in)
	if err != nil {
		return core.Asset{}, fmt.Errorf("create asset: %w", err)
	}
	s.publish(ctx, EntityAsset, ActionCreated, a.ID)
	return a, nil
}

func (s *LedgerService) GetAsset(ctx context.Context, id int64) (core.Asset, error) {
	a, err := s.store.GetAsset(ctx, id)
	if err != nil {
		return core.Asset{}, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

func (s *LedgerService) ListAssets(ctx context.Context) ([]core.Asset, error) {
	assets, err := s.store.ListAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return assets, nil
}

func (s *LedgerService) UpdateAsset(ctx context.Context, id int64, in core.AssetInput) error {
	if err := s.store.UpdateAsset(ctx, id, in); err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	s.publish(ctx, EntityAsset, ActionUpdated, id)
	return nil
}

func (s *LedgerService) DeleteAsset(ctx context.Context, id int64) error {
	if err := s.store.DeleteAsset(ctx, id); err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	s.publish(ctx, EntityAsset, ActionDeleted, id)
	return nil
}

// Reads for charts and lists

// Summary gathers the chart inputs. The four reads run concurrently.
func (s *LedgerService) Summary(ctx context.Context) (core.Summary, error) {
	var sum core.Summary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		v, err := s.store.TotalMoney(gctx)
		if err != nil {
			return fmt.Errorf("total money: %w", err)
		}
		sum.TotalMoney = v
		return nil
	})
	g.Go(func() error {
		v, err := s.store.TotalOutcome(gctx)
		if err != nil {
			return fmt.Errorf("total outcome: %w", err)
		}
		sum.TotalOutcome = v
		return nil
	})
	g.Go(func() error {
		v, err := s.store.TotalAssets(gctx)
		if err != nil {
			return fmt.Errorf("total assets: %w", err)
		}
		sum.TotalAssets = v
		return nil
	})
	g.Go(func() error {
		points, err := s.store.MoneyOverTime(gctx)
		if err != nil {
			return fmt.Errorf("money over time: %w", err)
		}
		sum.MoneyOverTime = points
		return nil
	})

	if err := g.Wait(); err != nil {
		return core.Summary{}, err
	}
	return sum, nil
}

func (s *LedgerService) MoneyOverTime(ctx context.Context) ([]core.BalancePoint, error) {
	points, err := s.store.MoneyOverTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("money over time: %w", err)
	}
	return points, nil
}

// Distribution lists every account balance and asset value.
func (s *LedgerService) Distribution(ctx context.Context) ([]core.Holding, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("distribution: %w", err)
	}
	return snap.Holdings(), nil
}

func (s *LedgerService) Snapshot(ctx context.Context) (core.Snapshot, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	return snap, nil
}

// publish records the change and sends a ledger event. The write has
// already been committed, so failures are only logged.
func (s *LedgerService) publish(ctx context.Context, entity, action string, id int64) {
	logger := applog.NewStructuredLogger(applog.FromContext(ctx))
	logger.LogLedgerChange(ctx, entity, action, id)

	if s.publisher == nil {
		slog.DebugContext(ctx, "AMQP publisher not configured, skipping ledger event",
			"entity", entity, "action", action, "id", id)
		return
	}
	if err := s.publisher.PublishLedgerEvent(ctx, entity, action, id); err != nil {
		logger.LogError(ctx, "Failed to publish ledger event", err, applog.ComponentAMQP, applog.OpPublish,
			applog.NewFields().WithLedgerChange(entity, action, id))
	}
}

// Ping reports whether the store can serve requests.
func (s *LedgerService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Close closes both storage and AMQP connections
func (s *LedgerService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
