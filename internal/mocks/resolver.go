package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/treekv/treekv/tree"
)

// MockResolver implements tree.Resolver for testing across packages
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(path string) (*tree.Node, error) {
	args := m.Called(path)

	// Handle function return types (for complex tests)
	if fn, ok := args.Get(0).(func(string) *tree.Node); ok {
		return fn(path), args.Error(1)
	}

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tree.Node), args.Error(1)
}
