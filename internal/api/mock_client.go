package api

import (
	"context"

	"github.com/dost-cli/dost/internal/models"
)

// MockClient is a mock implementation of ClientInterface for testing
type MockClient struct {
	// Mock return values
	SendVal   string
	SendErr   error
	HealthVal Status
	StateVal  SendState

	// Call counters/recorders
	SendCalled   int
	HealthCalled int
	LastRequest  *models.CompletionRequest
	LastCtx      context.Context
}

// Ensure MockClient implements ClientInterface
var _ ClientInterface = (*MockClient)(nil)

func (m *MockClient) Send(ctx context.Context, req *models.CompletionRequest) (string, error) {
	m.SendCalled++
	m.LastRequest = req
	m.LastCtx = ctx
	return m.SendVal, m.SendErr
}

func (m *MockClient) CheckHealth(_ context.Context) Status {
	m.HealthCalled++
	if m.HealthVal == "" {
		return StatusOffline
	}
	return m.HealthVal
}

func (m *MockClient) State() SendState {
	return m.StateVal
}
