package service_test

import (
	"context"
	"sync"

	"chat-assistant/internal/model"
	"chat-assistant/internal/repository"
)

// memStore is an in-memory repository.Store with injectable failures.
type memStore struct {
	mu      sync.Mutex
	data    map[string]string
	getErr  error
	setErr  error
	delErr  error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	value, ok := m.data[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return value, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.data, key)
	return nil
}

func (m *memStore) DeleteMany(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delErr != nil {
		return m.delErr
	}
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// stubProvider replies with a fixed string.
type stubProvider struct {
	reply string
	err   error
}

func (p *stubProvider) Reply(context.Context, string, *model.User) (string, error) {
	return p.reply, p.err
}

// blockingProvider holds the reply cycle open until release is closed, so
// tests can observe the awaiting-reply state deterministically.
type blockingProvider struct {
	release chan struct{}
}

func newBlockingProvider() *blockingProvider {
	return &blockingProvider{release: make(chan struct{})}
}

func (p *blockingProvider) Reply(context.Context, string, *model.User) (string, error) {
	<-p.release
	return "done waiting", nil
}

// panickingProvider simulates an unexpected fault in reply generation.
type panickingProvider struct{}

func (panickingProvider) Reply(context.Context, string, *model.User) (string, error) {
	panic("reply generation blew up")
}
