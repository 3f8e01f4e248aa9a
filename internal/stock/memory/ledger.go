// Package memory holds an in-process reference implementation of the stock
// ledger contract. It backs the ledger model tests and is useful for running
// the workflow without Postgres; the production path is the SQL ledger in
// the postgres package.
package memory

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/stockops/stockflow/internal/stock/domain"
)

type entry struct {
	mu        sync.Mutex
	name      string
	quantity  int
	threshold int
}

// Ledger serializes mutations per product with a per-entry mutex, mirroring
// the row-level serialization the SQL ledger gets from conditional updates.
type Ledger struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*entry
}

func NewLedger() *Ledger {
	return &Ledger{entries: make(map[uuid.UUID]*entry)}
}

func (l *Ledger) Add(productID uuid.UUID, name string, quantity, threshold int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[productID] = &entry{name: name, quantity: quantity, threshold: threshold}
}

func (l *Ledger) Quantity(productID uuid.UUID) (int, error) {
	e, err := l.lookup(productID)
	if err != nil {
		return 0, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.quantity, nil
}

func (l *Ledger) Decrement(productID uuid.UUID, qty int) (domain.Movement, error) {
	e, err := l.lookup(productID)
	if err != nil {
		return domain.Movement{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if qty > e.quantity {
		return domain.Movement{}, domain.ErrInsufficientStock
	}
	prior := e.quantity
	e.quantity -= qty
	return l.movement(productID, e, prior), nil
}

func (l *Ledger) Increment(productID uuid.UUID, qty int) (domain.Movement, error) {
	e, err := l.lookup(productID)
	if err != nil {
		return domain.Movement{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	prior := e.quantity
	e.quantity += qty
	return l.movement(productID, e, prior), nil
}

func (l *Ledger) lookup(productID uuid.UUID) (*entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[productID]
	if !ok {
		return nil, fmt.Errorf("unknown product %s", productID)
	}
	return e, nil
}

func (l *Ledger) movement(productID uuid.UUID, e *entry, prior int) domain.Movement {
	return domain.Movement{
		ProductID:         productID,
		ProductName:       e.name,
		Prior:             prior,
		Post:              e.quantity,
		LowStockThreshold: e.threshold,
	}
}
