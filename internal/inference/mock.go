package inference

import (
	"context"
	"sync"

	"ocean-predict/internal/domain"
)

// MockProvider permite tests sin llamar a un modelo real.
type MockProvider struct {
	Vector domain.TraitVector
	Err    error

	mu    sync.Mutex
	Calls []string
}

func (m *MockProvider) Predict(ctx context.Context, text string) (domain.TraitVector, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, text)
	m.mu.Unlock()
	return m.Vector, m.Err
}
