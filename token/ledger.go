// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package token

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/danielhkuo/easel/competition"
)

// DefaultDecimals is used for tokens without explicit decimals
const DefaultDecimals = 7

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBalanceOverflow     = errors.New("balance overflow")
)

// Transfer is one completed ledger movement
type Transfer struct {
	Token  string
	From   string
	To     string
	Amount uint64
}

// Ledger is an in-memory token ledger. Failures can be injected per
// operation and per transfer recipient.
type Ledger struct {
	mu        sync.Mutex
	decimals  map[string]uint32
	balances  map[string]map[string]uint64
	transfers []Transfer

	decimalsErr error
	balanceErr  error
	failTo      map[string]error
}

func NewLedger() *Ledger {
	return &Ledger{
		decimals: make(map[string]uint32),
		balances: make(map[string]map[string]uint64),
		failTo:   make(map[string]error),
	}
}

func (l *Ledger) SetDecimals(token string, decimals uint32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decimals[token] = decimals
}

// Mint credits amount minor units to address
func (l *Ledger) Mint(token, address string, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[token] == nil {
		l.balances[token] = make(map[string]uint64)
	}
	l.balances[token][address] += amount
}

// FailDecimals makes Decimals return err. nil clears it.
func (l *Ledger) FailDecimals(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decimalsErr = err
}

// FailBalance makes Balance return err. nil clears it.
func (l *Ledger) FailBalance(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balanceErr = err
}

// FailTransfersTo makes every transfer to address return err. nil clears it.
func (l *Ledger) FailTransfersTo(address string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err == nil {
		delete(l.failTo, address)
		return
	}
	l.failTo[address] = err
}

// BalanceOf returns the minor-unit balance without failure injection
func (l *Ledger) BalanceOf(token, address string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[token][address]
}

// Transfers returns completed transfers in order
func (l *Ledger) Transfers() []Transfer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Transfer(nil), l.transfers...)
}

func (l *Ledger) Decimals(ctx context.Context, token string) (uint32, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.decimalsErr != nil {
		return 0, l.decimalsErr
	}
	if d, ok := l.decimals[token]; ok {
		return d, nil
	}
	return DefaultDecimals, nil
}

func (l *Ledger) Balance(ctx context.Context, token, address string) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balanceErr != nil {
		return 0, l.balanceErr
	}
	return l.balances[token][address], nil
}

func (l *Ledger) Transfer(ctx context.Context, token, from, to string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.failTo[to]; err != nil {
		return err
	}
	if l.balances[token][from] < amount {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientBalance, from, l.balances[token][from], amount)
	}
	if from != to && l.balances[token][to] > math.MaxUint64-amount {
		return fmt.Errorf("%w: crediting %d to %s", ErrBalanceOverflow, amount, to)
	}

	if l.balances[token] == nil {
		l.balances[token] = make(map[string]uint64)
	}
	l.balances[token][from] -= amount
	l.balances[token][to] += amount
	l.transfers = append(l.transfers, Transfer{Token: token, From: from, To: to, Amount: amount})
	return nil
}

var _ competition.TokenService = (*Ledger)(nil)
