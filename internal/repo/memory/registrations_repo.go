package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/suinigeria/events-api/internal/domain/registration"
)

// RegistrationsRepo is an in-memory stand-in for the Mongo-backed store. Same
// semantics, no process durability. Used by tests and DB-less development.
type RegistrationsRepo struct {
	mu    sync.RWMutex
	items map[string]registration.Registration
}

func NewRegistrationsRepo() *RegistrationsRepo {
	return &RegistrationsRepo{
		items: make(map[string]registration.Registration),
	}
}

func (r *RegistrationsRepo) Create(ctx context.Context, req registration.CreateRegistrationRequest, prov registration.Provenance) (registration.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Email == req.Email && existing.Event == req.Event {
			return registration.Registration{}, registration.ErrAlreadyRegistered
		}
	}

	reg := registration.NewFromCreateRequest(req, prov)
	reg.ID = uuid.NewString()

	r.items[reg.ID] = reg

	return reg, nil
}

func (r *RegistrationsRepo) List(ctx context.Context) ([]registration.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := make([]registration.Registration, 0, len(r.items))

	for _, reg := range r.items {
		regs = append(regs, reg)
	}

	// newest first, id as tie-breaker for a stable order
	sort.Slice(regs, func(i, j int) bool {
		if regs[i].CreatedAt.Equal(regs[j].CreatedAt) {
			return regs[i].ID > regs[j].ID
		}
		return regs[i].CreatedAt.After(regs[j].CreatedAt)
	})

	return regs, nil
}

func (r *RegistrationsRepo) UpdateStatus(ctx context.Context, id string, status registration.Status) (registration.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.items[id]

	if !ok {
		return registration.Registration{}, registration.ErrNotFound
	}

	reg.Status = status
	reg.LastUpdated = time.Now().UTC()
	r.items[id] = reg

	return reg, nil
}
