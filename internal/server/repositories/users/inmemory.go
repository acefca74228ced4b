package users

import (
	"context"
	"sync"

	"github.com/talenthub/talenthub/internal/common"
	"github.com/talenthub/talenthub/internal/server/models"
)

// InMemoryRepository is the volatile fallback tier. Records live only in
// this process: they are lost on restart and invisible to every other
// instance. That trade-off is deliberate — the tier exists so that
// authentication keeps answering while the durable backend is
// unreachable, not to provide durability.
type InMemoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*models.User
	byID    map[string]*models.User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byEmail: make(map[string]*models.User),
		byID:    make(map[string]*models.User),
	}
}

// Put inserts a record. The existence check and the insert happen under
// one lock, so concurrent Puts for the same email cannot both succeed.
func (r *InMemoryRepository) Put(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return common.ErrAlreadyExists
	}

	u := user.Clone()
	r.byEmail[u.Email] = u
	r.byID[u.ID] = u
	return nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u.Clone(), nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u.Clone(), nil
}

func (r *InMemoryRepository) Update(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	applyProfileUpdate(u, upd)
	return u.Clone(), nil
}

// Has reports whether a record for the email is present. The two-tier
// store uses it for the union uniqueness check before a durable write.
func (r *InMemoryRepository) Has(email string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[email]
	return ok
}

func applyProfileUpdate(u *models.User, upd models.ProfileUpdate) {
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.CollegeName != nil {
		u.CollegeName = *upd.CollegeName
	}
	if upd.GraduationYear != nil {
		u.GraduationYear = *upd.GraduationYear
	}
	if upd.Skills != nil {
		u.Skills = append([]string(nil), (*upd.Skills)...)
	}
	if upd.LinkedinURL != nil {
		u.LinkedinURL = *upd.LinkedinURL
	}
	if upd.GithubURL != nil {
		u.GithubURL = *upd.GithubURL
	}
}
