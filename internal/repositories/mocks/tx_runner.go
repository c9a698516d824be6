package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// TxRunner runs the callback in place, so service tests exercise the same
// code path as a committed transaction. Returning an error from the callback
// stands in for a rollback.
type TxRunner struct {
	mock.Mock
}

func NewTxRunner(t interface {
	mock.TestingT
	Cleanup(func())
}) *TxRunner {
	m := &TxRunner{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *TxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)

	if err := args.Error(0); err != nil {
		return err
	}

	return fn(ctx)
}
