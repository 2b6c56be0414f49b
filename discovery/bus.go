package discovery

import (
	"sync"

	"github.com/ClipFinance/oft-client/common/types"
)

// Announcement is a wallet provider announcing itself.
type Announcement struct {
	Info     types.ProviderInfo
	Provider types.WalletProvider
}

// Bus carries provider requests to announcers and announcements back to listeners.
// Handlers run on their own goroutine and may call back into the bus.
type Bus struct {
	mu        sync.RWMutex
	requests  []func()
	announces []func(Announcement)
	wg        sync.WaitGroup
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// OnRequest registers a handler invoked on every provider request.
func (b *Bus) OnRequest(handler func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, handler)
}

// OnAnnounce registers a handler invoked on every announcement.
func (b *Bus) OnAnnounce(handler func(Announcement)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.announces = append(b.announces, handler)
}

// RequestProviders asks every registered announcer to announce itself.
func (b *Bus) RequestProviders() {
	b.mu.RLock()
	handlers := append([]func(){}, b.requests...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.wg.Add(1)
		go func(h func()) {
			defer b.wg.Done()
			h()
		}(handler)
	}
}

// Announce delivers an announcement to every listener.
func (b *Bus) Announce(announcement Announcement) {
	b.mu.RLock()
	handlers := append([]func(Announcement){}, b.announces...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.wg.Add(1)
		go func(h func(Announcement)) {
			defer b.wg.Done()
			h(announcement)
		}(handler)
	}
}

// RegisterProvider makes provider answer provider requests and announces it
// immediately, so listeners started earlier still learn about it.
func (b *Bus) RegisterProvider(provider types.WalletProvider) {
	announce := func() {
		b.Announce(Announcement{Info: provider.Info(), Provider: provider})
	}
	b.OnRequest(announce)
	announce()
}

// Wait blocks until every handler dispatched so far has returned.
func (b *Bus) Wait() {
	b.wg.Wait()
}
