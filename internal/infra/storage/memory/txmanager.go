package memory

import (
	"context"
	"sync"
)

type txKey struct{}

// TxManager сериализует транзакции над хранилищем в памяти.
// Откат не поддерживается: usecases пишут только после всех проверок.
type TxManager struct {
	mu sync.Mutex
}

// NewTxManager создает менеджер транзакций для хранилища в памяти
func NewTxManager() *TxManager {
	return &TxManager{}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

// DoReadOnly не берёт эксклюзивную блокировку: чтения согласованы на уровне репозитория
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
