package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/green-crm/internal/entity"
	"github.com/xavierca1/green-crm/internal/infra/integration/greenapi"
)

func TestGatewayUseCase_SendTestWithoutConfig(t *testing.T) {
	store := seededStore(t, false)
	gateway := new(MockGateway)
	uc := NewGatewayUseCase(store, gateway)

	result := uc.SendTest(context.Background(), tenant, "9876543210")

	assert.False(t, result.Success)
	assert.Equal(t, "Green API is not connected.", result.Message)
	gateway.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGatewayUseCase_ConnectThenTest(t *testing.T) {
	store := seededStore(t, false)
	gateway := new(MockGateway)
	gateway.On("Send", mock.Anything, configMatcher("1101000001"), "9876543210", testMessage).
		Return(greenapi.SendResult{Success: true, Message: "Message sent successfully with ID: x1"})
	uc := NewGatewayUseCase(store, gateway)
	ctx := context.Background()

	require.NoError(t, uc.Connect(ctx, tenant, ConnectGatewayInput{InstanceID: "1101000001", APIKey: "secret-key"}))
	result := uc.SendTest(ctx, tenant, "9876543210")

	assert.True(t, result.Success)
	gateway.AssertExpectations(t)
}

func TestGatewayUseCase_DisconnectClearsConfig(t *testing.T) {
	store := seededStore(t, true)
	uc := NewGatewayUseCase(store, new(MockGateway))
	ctx := context.Background()

	require.NoError(t, uc.Disconnect(ctx, tenant))

	snap, err := NewSyncTenantUseCase(store).Load(ctx, tenant)
	require.NoError(t, err)
	assert.Nil(t, snap.GreenApiConfig)
}

func TestGatewayUseCase_ConnectValidates(t *testing.T) {
	uc := NewGatewayUseCase(seededStore(t, false), new(MockGateway))

	err := uc.Connect(context.Background(), tenant, ConnectGatewayInput{InstanceID: "1101000001"})

	assert.True(t, IsDomainError(err))
}

func TestGatewayUseCase_DispatchSwallowsFailures(t *testing.T) {
	store := seededStore(t, true)
	gateway := new(MockGateway)
	gateway.On("Send", mock.Anything, mock.Anything, "9876543210", "Reminder Raj").
		Return(greenapi.SendResult{Success: false, Message: "boom"})
	uc := NewGatewayUseCase(store, gateway)

	err := uc.Dispatch(context.Background(), entity.OutboundMessage{TenantID: tenant, Mobile: "9876543210", Message: "Reminder Raj"})

	assert.NoError(t, err)
	gateway.AssertExpectations(t)
}
