package registry

import (
	"log/slog"
	"sync"

	"github.com/phrazzld/amora-api/internal/domain"
)

// InMemory is the process-lifetime implementation of ProfileRegistry.
// A single coarse mutex guards the whole map: at the expected scale there
// is no need for per-entry locking, and one critical section keeps the
// check-then-insert of Create trivially atomic.
type InMemory struct {
	mu       sync.Mutex
	profiles map[uint64]domain.Profile
	logger   *slog.Logger
}

// NewInMemory creates an empty registry.
func NewInMemory(logger *slog.Logger) *InMemory {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemory{
		profiles: make(map[uint64]domain.Profile),
		logger:   logger,
	}
}

// Create implements ProfileRegistry. The membership test comes first: a
// duplicate id is a conflict no matter what the rest of the profile looks
// like. Membership test, validation, and write share one lock hold.
func (r *InMemory) Create(profile domain.Profile) (domain.Profile, error) {
	// Stored profiles must not alias caller-held slices.
	stored := profile
	stored.Interests = append([]string(nil), profile.Interests...)
	stored.Preferences.PreferredGenders = append([]domain.Gender(nil), profile.Preferences.PreferredGenders...)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[stored.ID]; ok {
		return domain.Profile{}, ErrProfileExists
	}
	if err := stored.Validate(); err != nil {
		return domain.Profile{}, wrapInvalid(err)
	}
	r.profiles[stored.ID] = stored

	r.logger.Debug("profile registered",
		"profile_id", stored.ID,
		"registry_size", len(r.profiles))

	return copyProfile(stored), nil
}

// Get implements ProfileRegistry.
func (r *InMemory) Get(id uint64) (domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[id]
	if !ok {
		return domain.Profile{}, ErrProfileNotFound
	}
	return copyProfile(profile), nil
}

// Len implements ProfileRegistry.
func (r *InMemory) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.profiles)
}

// copyProfile returns a value whose slices do not alias the stored entry.
func copyProfile(p domain.Profile) domain.Profile {
	out := p
	out.Interests = append([]string(nil), p.Interests...)
	out.Preferences.PreferredGenders = append([]domain.Gender(nil), p.Preferences.PreferredGenders...)
	return out
}
