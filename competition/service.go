// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package competition

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/danielhkuo/easel/models"
)

// Dependencies are the collaborators a Service runs against
type Dependencies struct {
	Store    Store
	Tokens   TokenService
	Auth     Authorizer
	Clock    Clock
	Notifier Notifier
	Logger   *slog.Logger

	// EscrowAddress holds funded pots and pays prizes and refunds
	EscrowAddress string

	// NewID generates vote record and report ids. Defaults to uuid.NewString.
	NewID func() string
}

// Service runs the competition lifecycle. Every mutation of a competition
// happens under that competition's lock inside one store transaction.
// Locks are always taken before a transaction is opened.
type Service struct {
	store    Store
	tokens   TokenService
	auth     Authorizer
	clock    Clock
	notifier Notifier
	logger   *slog.Logger
	escrow   string
	newID    func() string

	locks      keyedMutex
	registryMu sync.Mutex
	flight     singleflight.Group
}

func NewService(deps Dependencies) *Service {
	s := &Service{
		store:    deps.Store,
		tokens:   deps.Tokens,
		auth:     deps.Auth,
		clock:    deps.Clock,
		notifier: deps.Notifier,
		logger:   deps.Logger,
		escrow:   deps.EscrowAddress,
		newID:    deps.NewID,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Now exposes the service clock to callers that render windows
func (s *Service) Now() uint64 {
	return s.clock.Now()
}

// Version returns the service version string
func (s *Service) Version() string {
	return models.Version
}

func (s *Service) requireAdmin(ctx context.Context, from string) error {
	admins, err := s.store.GetAdmins(ctx)
	if err != nil {
		return err
	}
	if !admins.IsAdmin(from) {
		return fmt.Errorf("%w: %s is not an admin", ErrUnauthorized, from)
	}
	return s.auth.Require(ctx, from)
}

func (s *Service) publish(eventType, competitionID string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(models.LiveEvent{
		Type:          eventType,
		CompetitionID: competitionID,
		Payload:       payload,
	})
}

// keyedMutex hands out one mutex per competition id
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
