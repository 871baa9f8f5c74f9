package usecase

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/green-crm/internal/entity"
	"github.com/xavierca1/green-crm/internal/infra/integration/greenapi"
)

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Send(ctx context.Context, cfg *entity.GreenApiConfig, mobile, message string) greenapi.SendResult {
	args := m.Called(ctx, cfg, mobile, message)
	return args.Get(0).(greenapi.SendResult)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWelcome(to, name string) error {
	args := m.Called(to, name)
	return args.Error(0)
}

// fakeScheduler guarda os snapshots recebidos.
type fakeScheduler struct {
	mu        sync.Mutex
	snapshots []*entity.Snapshot
	stopped   bool
}

func (s *fakeScheduler) Reschedule(snap *entity.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.snapshots = append(s.snapshots, snap)
}

func (s *fakeScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

func (s *fakeScheduler) received() []*entity.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.Snapshot(nil), s.snapshots...)
}

func (s *fakeScheduler) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

var testGatewayConfig = map[string]any{"instanceId": "1101000001", "apiKey": "secret-key"}

func configMatcher(instanceID string) any {
	return mock.MatchedBy(func(cfg *entity.GreenApiConfig) bool {
		return cfg != nil && cfg.InstanceID == instanceID
	})
}
