package store

import (
	"context"
	"strings"
	"sync"

	"civicreport-be/models"
)

// MemoryReportStore holds reports in creation order. Every write swaps in a
// new slice, so a List result is never mutated afterwards.
type MemoryReportStore struct {
	mu      sync.RWMutex
	reports []models.Report
}

func NewMemoryReportStore(seed ...models.Report) *MemoryReportStore {
	s := &MemoryReportStore{reports: make([]models.Report, 0, len(seed))}
	for _, r := range seed {
		r = r.Clone()
		if r.Version == 0 {
			r.Version = 1
		}
		s.reports = append(s.reports, r)
	}
	return s
}

func (s *MemoryReportStore) indexOf(id string) int {
	for i := range s.reports {
		if s.reports[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryReportStore) Create(_ context.Context, report models.Report) (models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(report.ID) >= 0 {
		return models.Report{}, ErrDuplicateID
	}
	if report.ReferenceNumber != "" {
		for i := range s.reports {
			if s.reports[i].ReferenceNumber == report.ReferenceNumber {
				return models.Report{}, ErrDuplicateReference
			}
		}
	}
	report = report.Clone()
	report.Version = 1

	next := make([]models.Report, len(s.reports), len(s.reports)+1)
	copy(next, s.reports)
	s.reports = append(next, report)
	return report.Clone(), nil
}

func (s *MemoryReportStore) Get(_ context.Context, id string) (models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Report{}, ErrReportNotFound
	}
	return s.reports[i].Clone(), nil
}

func (s *MemoryReportStore) List(_ context.Context) ([]models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Report, len(s.reports))
	for i, r := range s.reports {
		out[i] = r.Clone()
	}
	return out, nil
}

func (s *MemoryReportStore) Update(_ context.Context, report models.Report) (models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(report.ID)
	if i < 0 {
		return models.Report{}, ErrReportNotFound
	}
	if s.reports[i].Version != report.Version {
		return models.Report{}, ErrConflict
	}

	report = report.Clone()
	report.Version++

	next := make([]models.Report, len(s.reports))
	copy(next, s.reports)
	next[i] = report
	s.reports = next
	return report.Clone(), nil
}

func (s *MemoryReportStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrReportNotFound
	}
	next := make([]models.Report, 0, len(s.reports)-1)
	next = append(next, s.reports[:i]...)
	next = append(next, s.reports[i+1:]...)
	s.reports = next
	return nil
}

func (s *MemoryReportStore) ReferenceExists(_ context.Context, ref string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.reports {
		if r.ReferenceNumber == ref {
			return true, nil
		}
	}
	return false, nil
}

// MemoryUserStore keys users by lowercased email.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]models.User)}
}

func (s *MemoryUserStore) Create(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, ok := s.users[key]; ok {
		return ErrEmailTaken
	}
	s.users[key] = user
	return nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return u, nil
}
