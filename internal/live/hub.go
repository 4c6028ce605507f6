package live

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/olahol/melody"

	"github.com/GregMSThompson/ledger-backend/pkg/logger"
)

const (
	keyUID     = "uid"
	keyCtx     = "ctx"
	keySession = "session"
)

// Hub owns every websocket connection and runs one Session per connection.
type Hub struct {
	m        *melody.Melody
	accounts AccountWatcher
	txs      TransactionWatcher
	closed   atomic.Bool
}

var ErrHubClosed = errors.New("live feed is closed")

func NewHub(accounts AccountWatcher, txs TransactionWatcher) *Hub {
	m := melody.New()
	m.Config.MaxMessageSize = 1024
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	h := &Hub{m: m, accounts: accounts, txs: txs}
	m.HandleConnect(h.connect)
	m.HandleDisconnect(h.disconnect)
	m.HandleError(func(s *melody.Session, err error) {
		logger.FromContext(sessionCtx(s)).Warn("websocket error", "err", err)
	})
	return h
}

// Serve upgrades the request and blocks until the client goes away.
// Serve upgrades the connection. Every failure has already been answered
// on w when Serve returns, by the upgrader or by the hub itself.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, uid string) error {
	if h.closed.Load() {
		http.Error(w, ErrHubClosed.Error(), http.StatusServiceUnavailable)
		return ErrHubClosed
	}
	return h.m.HandleRequestWithKeys(w, r, map[string]any{
		keyUID: uid,
		keyCtx: logger.Detached(r.Context()),
	})
}

func (h *Hub) Close() error {
	h.closed.Store(true)
	return h.m.Close()
}

func (h *Hub) connect(ms *melody.Session) {
	ctx := sessionCtx(ms)
	uid, _ := ms.Get(keyUID)
	id, _ := uid.(string)

	sess := Start(ctx, id, h.accounts, h.txs, ms.Write)
	ms.Set(keySession, sess)
	logger.FromContext(ctx).Info("live session started", "uid", id)

	go func() {
		err := sess.Wait()
		logStopped(ctx, id, err)
		if err != nil && !canceled(err) {
			_ = ms.Close()
		}
	}()
}

func (h *Hub) disconnect(ms *melody.Session) {
	v, ok := ms.Get(keySession)
	if !ok {
		return
	}
	if sess, ok := v.(*Session); ok {
		_ = sess.Close()
	}
	logger.FromContext(sessionCtx(ms)).Info("live session closed")
}

func sessionCtx(ms *melody.Session) context.Context {
	if v, ok := ms.Get(keyCtx); ok {
		if ctx, ok := v.(context.Context); ok {
			return ctx
		}
	}
	return context.Background()
}
