package connectionmonitor

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// defaultHealthCheckInterval defines interval between connection health checks
	defaultHealthCheckInterval = 30 * time.Second
	// defaultReconnectTimeout defines the pause between reconnection attempts
	defaultReconnectTimeout = 5 * time.Second
	// defaultMaxReconnectAttempts defines maximum number of reconnection attempts
	defaultMaxReconnectAttempts = 3
)

// ConnectionMonitor represents connection state monitoring interface
type ConnectionMonitor interface {
	// Start starts connection monitoring
	Start(ctx context.Context) error
	// Stop stops connection monitoring
	Stop()
}

// BlockchainClient represents an RPC client whose connection can be probed and re-dialed.
type BlockchainClient interface {
	// CheckConnection checks if connection is alive
	CheckConnection(ctx context.Context) error
	// Reconnect attempts to reconnect to blockchain node
	Reconnect(ctx context.Context) error
}

// Option configures a connection monitor.
type Option func(*connectionMonitor)

// WithHealthCheckInterval sets the interval between health checks.
func WithHealthCheckInterval(d time.Duration) Option {
	return func(m *connectionMonitor) {
		m.healthCheckInterval = d
	}
}

// WithReconnectTimeout sets the pause between reconnection attempts.
func WithReconnectTimeout(d time.Duration) Option {
	return func(m *connectionMonitor) {
		m.reconnectTimeout = d
	}
}

// WithMaxReconnectAttempts sets how many times a failed connection is re-dialed per check.
func WithMaxReconnectAttempts(n int) Option {
	return func(m *connectionMonitor) {
		m.maxReconnectAttempts = n
	}
}

type connectionMonitor struct {
	client    BlockchainClient
	logger    *logrus.Logger
	chainName string

	healthCheckInterval  time.Duration
	reconnectTimeout     time.Duration
	maxReconnectAttempts int

	stopChan     chan struct{}
	isMonitoring bool
	monitorMutex sync.RWMutex
}

// NewConnectionMonitor creates a new connection monitor instance.
//
// Parameters:
// - client: the RPC client to monitor.
// - logger: the logger for logging purposes.
// - chainName: the name of the chain.
// - opts: optional interval and retry overrides.
//
// Returns:
// - ConnectionMonitor: the new connection monitor instance.
func NewConnectionMonitor(
	client BlockchainClient,
	logger *logrus.Logger,
	chainName string,
	opts ...Option,
) ConnectionMonitor {
	m := &connectionMonitor{
		client:               client,
		logger:               logger,
		chainName:            chainName,
		healthCheckInterval:  defaultHealthCheckInterval,
		reconnectTimeout:     defaultReconnectTimeout,
		maxReconnectAttempts: defaultMaxReconnectAttempts,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start starts connection monitoring. A stopped monitor can be started again.
//
// Parameters:
// - ctx: the context for managing the request.
//
// Returns:
// - error: an error if the connection monitor is already running.
func (m *connectionMonitor) Start(ctx context.Context) error {
	m.monitorMutex.Lock()
	defer m.monitorMutex.Unlock()

	if m.isMonitoring {
		return errors.Errorf("connection monitor is already running for chain %s", m.chainName)
	}
	m.isMonitoring = true
	m.stopChan = make(chan struct{})

	go m.monitorConnection(ctx, m.stopChan)
	return nil
}

// Stop stops connection monitoring.
func (m *connectionMonitor) Stop() {
	m.monitorMutex.Lock()
	defer m.monitorMutex.Unlock()

	if !m.isMonitoring {
		return
	}

	close(m.stopChan)
	m.isMonitoring = false
}

// monitorConnection runs health checks until the context is done or the monitor is stopped.
func (m *connectionMonitor) monitorConnection(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(m.healthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.WithField("chain", m.chainName).Info("Connection monitoring stopped due to context cancellation")
			return

		case <-stop:
			m.logger.WithField("chain", m.chainName).Info("Connection monitoring stopped")
			return

		case <-ticker.C:
			if err := m.checkAndReconnect(ctx); err != nil {
				m.logger.WithFields(logrus.Fields{
					"chain": m.chainName,
					"error": err,
				}).Error("Failed to check or reconnect")
			}
		}
	}
}

// checkAndReconnect checks the connection state and attempts to reconnect if needed.
//
// Parameters:
// - ctx: the context for managing the request.
//
// Returns:
// - error: an error if every reconnection attempt fails.
func (m *connectionMonitor) checkAndReconnect(ctx context.Context) error {
	err := m.client.CheckConnection(ctx)
	if err == nil {
		m.logger.WithField("chain", m.chainName).Debug("Ping successful")
		return nil
	}

	m.logger.WithFields(logrus.Fields{
		"chain": m.chainName,
		"error": err,
	}).Warn("Connection check failed, attempting to reconnect")

	for attempt := 1; attempt <= m.maxReconnectAttempts; attempt++ {
		err = m.client.Reconnect(ctx)
		if err == nil {
			m.logger.WithFields(logrus.Fields{
				"chain":   m.chainName,
				"attempt": attempt,
			}).Info("Client successfully reconnected")
			return nil
		}

		m.logger.WithFields(logrus.Fields{
			"chain":   m.chainName,
			"attempt": attempt,
			"error":   err,
		}).Error("Reconnection attempt failed")

		if attempt == m.maxReconnectAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.reconnectTimeout):
		}
	}

	return errors.Wrapf(err, "failed to reconnect to chain %s", m.chainName)
}
