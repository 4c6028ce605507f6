// Package live keeps a connected client's view of balances current by
// watching the user's accounts and transactions and pushing a fresh
// snapshot after every change.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/ledger-backend/internal/dto"
	"github.com/GregMSThompson/ledger-backend/internal/models"
	"github.com/GregMSThompson/ledger-backend/internal/services"
	"github.com/GregMSThompson/ledger-backend/pkg/logger"
)

type AccountWatcher interface {
	Watch(ctx context.Context, uid string, fn func([]models.Account) error) error
}

type TransactionWatcher interface {
	Watch(ctx context.Context, uid string, fn func([]models.Transaction) error) error
}

// Publisher delivers an encoded message to the client.
type Publisher func(msg []byte) error

type Session struct {
	uid     string
	publish Publisher
	now     func() time.Time

	cancel context.CancelFunc
	group  *errgroup.Group

	mu           sync.Mutex
	accounts     []models.Account
	transactions []models.Transaction
	haveAccounts bool
	haveTxs      bool
}

// Start begins watching uid's ledger. Nothing is published until both
// watches have delivered their first result.
func Start(ctx context.Context, uid string, accounts AccountWatcher, txs TransactionWatcher, publish Publisher) *Session {
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)

	s := &Session{
		uid:     uid,
		publish: publish,
		now:     time.Now,
		cancel:  cancel,
		group:   g,
	}

	g.Go(func() error {
		return accounts.Watch(gctx, uid, s.onAccounts)
	})
	g.Go(func() error {
		return txs.Watch(gctx, uid, s.onTransactions)
	})
	return s
}

func (s *Session) onAccounts(accounts []models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = accounts
	s.haveAccounts = true
	return s.pushLocked()
}

func (s *Session) onTransactions(txs []models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = txs
	s.haveTxs = true
	return s.pushLocked()
}

func (s *Session) pushLocked() error {
	if !s.haveAccounts || !s.haveTxs {
		return nil
	}
	snap := services.BuildSnapshot(s.accounts, s.transactions, s.now())
	msg, err := json.Marshal(dto.LiveMessage{Type: dto.MessageTypeLedger, Data: snap})
	if err != nil {
		return err
	}
	return s.publish(msg)
}

// Wait blocks until both watches have stopped and returns the first
// error either of them hit.
func (s *Session) Wait() error {
	return s.group.Wait()
}

// Close stops both watches and waits for them to exit.
func (s *Session) Close() error {
	s.cancel()
	if err := s.group.Wait(); err != nil && !canceled(err) {
		return err
	}
	return nil
}

func canceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// logStopped reports why a session ended on its own.
func logStopped(ctx context.Context, uid string, err error) {
	if err == nil || canceled(err) {
		return
	}
	logger.FromContext(ctx).Error("live session stopped", "uid", uid, "err", err)
}
