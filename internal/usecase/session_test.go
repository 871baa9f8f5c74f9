package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type schedulerFactory struct {
	mu      sync.Mutex
	created []*fakeScheduler
}

func (f *schedulerFactory) new(string) Scheduler {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &fakeScheduler{}
	f.created = append(f.created, s)
	return s
}

func (f *schedulerFactory) get(i int) *fakeScheduler {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created[i]
}

func (f *schedulerFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func TestSessionRegistry_FeedsSnapshots(t *testing.T) {
	store := seededStore(t, true)
	factory := &schedulerFactory{}
	registry := NewSessionRegistry(NewSyncTenantUseCase(store), factory.new)
	defer registry.StopAll()

	require.NoError(t, registry.Start(tenant))
	sched := factory.get(0)

	require.Eventually(t, func() bool { return len(sched.received()) >= 1 }, time.Second, 10*time.Millisecond)
	assert.NotNil(t, sched.received()[0])

	require.NoError(t, store.Set(context.Background(), tenantPath(tenant, colLeads, "L1"), map[string]any{"name": "Raj", "mobile": "9876543210"}))

	require.Eventually(t, func() bool {
		got := sched.received()
		last := got[len(got)-1]
		return last != nil && len(last.Leads) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSessionRegistry_MissingTenantGivesNilSnapshot(t *testing.T) {
	store := seededStore(t, false)
	factory := &schedulerFactory{}
	registry := NewSessionRegistry(NewSyncTenantUseCase(store), factory.new)
	defer registry.StopAll()

	require.NoError(t, registry.Start("ghost"))
	sched := factory.get(0)

	require.Eventually(t, func() bool { return len(sched.received()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Nil(t, sched.received()[0])
}

func TestSessionRegistry_StartReplacesPreviousSession(t *testing.T) {
	store := seededStore(t, false)
	factory := &schedulerFactory{}
	registry := NewSessionRegistry(NewSyncTenantUseCase(store), factory.new)
	defer registry.StopAll()

	require.NoError(t, registry.Start(tenant))
	require.NoError(t, registry.Start(tenant))

	require.Equal(t, 2, factory.count())
	assert.True(t, factory.get(0).isStopped())
	assert.False(t, factory.get(1).isStopped())
	assert.Equal(t, 1, registry.Active())
}

func TestSessionRegistry_EnsureIsIdempotent(t *testing.T) {
	store := seededStore(t, false)
	factory := &schedulerFactory{}
	registry := NewSessionRegistry(NewSyncTenantUseCase(store), factory.new)
	defer registry.StopAll()

	registry.Ensure(tenant)
	registry.Ensure(tenant)

	assert.Equal(t, 1, factory.count())
}

func TestSessionRegistry_EndStopsScheduler(t *testing.T) {
	store := seededStore(t, false)
	factory := &schedulerFactory{}
	registry := NewSessionRegistry(NewSyncTenantUseCase(store), factory.new)

	require.NoError(t, registry.Start(tenant))
	registry.End(tenant)
	registry.End(tenant)

	assert.True(t, factory.get(0).isStopped())
	assert.Equal(t, 0, registry.Active())

	// mudanças depois do End não chegam mais
	before := len(factory.get(0).received())
	require.NoError(t, store.Set(context.Background(), tenantPath(tenant, colLeads, "L9"), map[string]any{"name": "Late"}))
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, factory.get(0).received(), before)
}

func TestSessionRegistry_StopAll(t *testing.T) {
	store := seededStore(t, false)
	factory := &schedulerFactory{}
	registry := NewSessionRegistry(NewSyncTenantUseCase(store), factory.new)

	require.NoError(t, registry.Start("a"))
	require.NoError(t, registry.Start("b"))
	registry.StopAll()

	assert.Equal(t, 0, registry.Active())
	assert.True(t, factory.get(0).isStopped())
	assert.True(t, factory.get(1).isStopped())
}
