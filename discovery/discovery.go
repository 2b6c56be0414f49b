package discovery

import (
	"sync"

	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Discovery collects announced wallet providers in arrival order. A provider
// is recorded once per uuid and never removed.
type Discovery struct {
	logger *logrus.Logger

	mu        sync.RWMutex
	providers []Announcement
	seen      map[string]struct{}
}

// NewDiscovery creates an empty discovery list.
func NewDiscovery(logger *logrus.Logger) *Discovery {
	return &Discovery{
		logger: logger,
		seen:   make(map[string]struct{}),
	}
}

// Start listens for announcements on bus and broadcasts a provider request.
func (d *Discovery) Start(bus *Bus) {
	bus.OnAnnounce(d.handleAnnounce)
	bus.RequestProviders()
}

func (d *Discovery) handleAnnounce(announcement Announcement) {
	id := announcement.Info.UUID
	if _, err := uuid.Parse(id); err != nil || announcement.Provider == nil {
		d.logger.WithField("uuid", id).Warn("Ignoring malformed wallet announcement")
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return
	}
	d.seen[id] = struct{}{}
	d.providers = append(d.providers, announcement)

	d.logger.WithFields(logrus.Fields{
		"uuid": id,
		"name": announcement.Info.Name,
	}).Info("Wallet provider discovered")
}

// Providers returns a snapshot of the discovered providers in arrival order.
func (d *Discovery) Providers() []Announcement {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Announcement{}, d.providers...)
}

// Find returns the provider announced with id.
func (d *Discovery) Find(id string) (Announcement, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, announcement := range d.providers {
		if announcement.Info.UUID == id {
			return announcement, nil
		}
	}
	return Announcement{}, errors.Wrapf(xerrors.ErrProviderNotFound, "uuid %s", id)
}
