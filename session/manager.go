package session

import (
	"context"
	"sync"
	"time"

	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/sirupsen/logrus"
)

const (
	// accountsBuffer is the capacity of the accountsChanged channel handed to providers.
	accountsBuffer = 8
	// listenerBuffer is the capacity of each Subscribe channel.
	listenerBuffer = 8
	// chainRefreshTimeout bounds the chain id lookup after an account change.
	chainRefreshTimeout = 10 * time.Second
)

// Manager holds the single active wallet session and keeps it in sync with
// the provider's account changes.
type Manager struct {
	logger *logrus.Logger

	mu         sync.RWMutex
	session    *types.Session
	sub        types.Subscription
	stop       chan struct{}
	generation uint64

	listenersMu sync.Mutex
	listeners   map[uint64]chan *types.Session
	nextID      uint64
}

// NewManager creates a manager without a session.
func NewManager(logger *logrus.Logger) *Manager {
	return &Manager{
		logger:    logger,
		listeners: make(map[uint64]chan *types.Session),
	}
}

// Connect requests accounts and the current chain from provider and makes it
// the active session, replacing any previous one.
//
// Parameters:
// - ctx: the context for the account and chain requests.
// - provider: the wallet provider selected by the user.
//
// Returns:
// - *types.Session: a copy of the new session.
// - error: a ConnectionError if the wallet refuses or fails. The previous session is kept.
func (m *Manager) Connect(ctx context.Context, provider types.WalletProvider) (*types.Session, error) {
	info := provider.Info()

	accounts, err := provider.RequestAccounts(ctx)
	if err != nil {
		return nil, &xerrors.ConnectionError{Provider: info.Name, Err: err}
	}
	if len(accounts) == 0 {
		return nil, &xerrors.ConnectionError{Provider: info.Name, Err: xerrors.ErrNoAccounts}
	}

	chainID, err := provider.ChainID(ctx)
	if err != nil {
		return nil, &xerrors.ConnectionError{Provider: info.Name, Err: err}
	}
	chainID, err = types.NormalizeChainID(chainID)
	if err != nil {
		return nil, &xerrors.ConnectionError{Provider: info.Name, Err: err}
	}

	session := &types.Session{
		Provider: provider,
		Info:     info,
		Account:  accounts[0],
		ChainID:  chainID,
	}

	ch := make(chan []string, accountsBuffer)
	sub := provider.SubscribeAccountsChanged(ch)
	stop := make(chan struct{})

	m.mu.Lock()
	m.teardownLocked()
	m.generation++
	generation := m.generation
	m.session = session
	m.sub = sub
	m.stop = stop
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	go m.watch(generation, provider, ch, stop)

	m.logger.WithFields(logrus.Fields{
		"wallet":  info.Name,
		"account": session.Account,
		"chain":   session.ChainID,
	}).Info("Wallet connected")
	m.publish(snapshot)

	return snapshot, nil
}

// Disconnect drops the active session.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	if m.session == nil {
		m.mu.Unlock()
		return
	}
	m.teardownLocked()
	m.session = nil
	m.mu.Unlock()

	m.logger.Info("Wallet disconnected")
	m.publish(nil)
}

// Current returns a copy of the active session or nil.
func (m *Manager) Current() *types.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Subscribe returns a channel receiving a copy of the session on every change,
// nil when the session ends, and a function cancelling the subscription.
// Changes are dropped for slow subscribers.
func (m *Manager) Subscribe() (<-chan *types.Session, func()) {
	m.listenersMu.Lock()
	defer m.listenersMu.Unlock()

	id := m.nextID
	m.nextID++
	ch := make(chan *types.Session, listenerBuffer)
	m.listeners[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.listenersMu.Lock()
			defer m.listenersMu.Unlock()
			delete(m.listeners, id)
			close(ch)
		})
	}
}

func (m *Manager) watch(generation uint64, provider types.WalletProvider, ch <-chan []string, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case accounts := <-ch:
			if !m.handleAccountsChanged(generation, provider, accounts) {
				return
			}
		}
	}
}

// handleAccountsChanged applies an account list to the session it was
// subscribed for and reports whether the session is still alive.
func (m *Manager) handleAccountsChanged(generation uint64, provider types.WalletProvider, accounts []string) bool {
	if len(accounts) == 0 {
		m.mu.Lock()
		if generation != m.generation || m.session == nil {
			m.mu.Unlock()
			return false
		}
		m.teardownLocked()
		m.session = nil
		m.mu.Unlock()

		m.logger.Info("Wallet disconnected all accounts")
		m.publish(nil)
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), chainRefreshTimeout)
	chainID, err := provider.ChainID(ctx)
	cancel()
	if err == nil {
		chainID, err = types.NormalizeChainID(chainID)
	}

	m.mu.Lock()
	if generation != m.generation || m.session == nil {
		m.mu.Unlock()
		return false
	}
	m.session.Account = accounts[0]
	if err == nil {
		m.session.ChainID = chainID
	}
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	if err != nil {
		m.logger.WithError(err).Warn("Failed to refresh wallet chain id")
	}
	m.logger.WithFields(logrus.Fields{
		"account": snapshot.Account,
		"chain":   snapshot.ChainID,
	}).Info("Wallet accounts changed")
	m.publish(snapshot)
	return true
}

// teardownLocked unsubscribes the active session's watcher. m.mu must be held.
func (m *Manager) teardownLocked() {
	if m.sub != nil {
		m.sub.Unsubscribe()
		m.sub = nil
	}
	if m.stop != nil {
		close(m.stop)
		m.stop = nil
	}
	m.generation++
}

func (m *Manager) snapshotLocked() *types.Session {
	if m.session == nil {
		return nil
	}
	c := *m.session
	return &c
}

func (m *Manager) publish(session *types.Session) {
	m.listenersMu.Lock()
	defer m.listenersMu.Unlock()

	for _, ch := range m.listeners {
		var c *types.Session
		if session != nil {
			copied := *session
			c = &copied
		}
		select {
		case ch <- c:
		default:
			m.logger.Warn("Dropped session notification")
		}
	}
}
