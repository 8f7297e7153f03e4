package repository

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"tawsila/internal/models"
)

// In-memory stores mirror the Postgres repositories method for method. The
// services depend on interfaces, so these back the unit tests without a
// database.

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
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = user
	return nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (s *MemoryUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return models.User{}, ErrUserNotFound
}

func (s *MemoryUserStore) Update(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.users[user.ID]
	if !ok {
		return ErrUserNotFound
	}
	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = time.Now()
	s.users[user.ID] = user
	return nil
}

func (s *MemoryUserStore) UpdateTrustScore(_ context.Context, id string, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.TrustScore = score
	user.UpdatedAt = time.Now()
	s.users[id] = user
	return nil
}

type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]models.Session)}
}

func (s *MemorySessionStore) Create(_ context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	// Upsert on (user, device), matching the Postgres conflict clause.
	for id, existing := range s.sessions {
		if existing.UserID == session.UserID && existing.DeviceID == session.DeviceID {
			delete(s.sessions, id)
			session.CreatedAt = existing.CreatedAt
			break
		}
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.LastSeenAt = now
	s.sessions[session.ID] = session
	return nil
}

func (s *MemorySessionStore) GetByID(_ context.Context, id string) (models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if session, ok := s.sessions[id]; ok {
		return session, nil
	}
	return models.Session{}, ErrSessionNotFound
}

func (s *MemorySessionStore) CountByUser(_ context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, session := range s.sessions {
		if session.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s *MemorySessionStore) DeleteOldestSessions(_ context.Context, userID string, keepLatest int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var mine []models.Session
	for _, session := range s.sessions {
		if session.UserID == userID {
			mine = append(mine, session)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		return mine[i].LastSeenAt.After(mine[j].LastSeenAt)
	})
	for i := keepLatest; i < len(mine); i++ {
		delete(s.sessions, mine[i].ID)
	}
	return nil
}

func (s *MemorySessionStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *MemorySessionStore) DeleteByDevice(_ context.Context, userID string, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, session := range s.sessions {
		if session.UserID == userID && session.DeviceID == deviceID {
			delete(s.sessions, id)
		}
	}
	return nil
}

func (s *MemorySessionStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for id, session := range s.sessions {
		if session.ExpiresAt.Before(now) {
			delete(s.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemorySessionStore) FindByRefreshHash(_ context.Context, userID string, refreshHash []byte) (models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, session := range s.sessions {
		if session.UserID == userID && bytes.Equal(session.RefreshTokenHash, refreshHash) {
			return session, nil
		}
	}
	return models.Session{}, ErrSessionNotFound
}

func (s *MemorySessionStore) ListByUser(_ context.Context, userID string) ([]models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sessions []models.Session
	for _, session := range s.sessions {
		if session.UserID == userID {
			sessions = append(sessions, session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].LastSeenAt.After(sessions[j].LastSeenAt)
	})
	return sessions, nil
}

func (s *MemorySessionStore) Touch(_ context.Context, sessionID string, ip string, userAgent string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	session.LastSeenAt = time.Now()
	if ip != "" {
		session.IPAddress = ip
	}
	if userAgent != "" {
		session.UserAgent = userAgent
	}
	s.sessions[sessionID] = session
	return nil
}

type MemoryPreferenceStore struct {
	mu    sync.RWMutex
	prefs map[string]models.Preference
}

func NewMemoryPreferenceStore() *MemoryPreferenceStore {
	return &MemoryPreferenceStore{prefs: make(map[string]models.Preference)}
}

func (s *MemoryPreferenceStore) Get(_ context.Context, userID string) (models.Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if pref, ok := s.prefs[userID]; ok {
		return pref, nil
	}
	return models.Preference{}, ErrPreferenceNotFound
}

func (s *MemoryPreferenceStore) Save(_ context.Context, pref models.Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pref.UpdatedAt = time.Now()
	s.prefs[pref.UserID] = pref
	return nil
}

type MemoryRequestStore struct {
	mu       sync.RWMutex
	requests map[string]models.DeliveryRequest
}

func NewMemoryRequestStore() *MemoryRequestStore {
	return &MemoryRequestStore{requests: make(map[string]models.DeliveryRequest)}
}

func (s *MemoryRequestStore) Create(_ context.Context, req models.DeliveryRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	s.requests[req.ID] = req
	return nil
}

func (s *MemoryRequestStore) GetByID(_ context.Context, id string) (models.DeliveryRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if req, ok := s.requests[id]; ok {
		return req, nil
	}
	return models.DeliveryRequest{}, ErrRequestNotFound
}

func (s *MemoryRequestStore) Update(_ context.Context, req models.DeliveryRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.requests[req.ID]
	if !ok {
		return ErrRequestNotFound
	}
	req.CreatedAt = stored.CreatedAt
	req.UpdatedAt = time.Now()
	s.requests[req.ID] = req
	return nil
}

func (s *MemoryRequestStore) ListOpen(_ context.Context, limit int, offset int) ([]models.DeliveryRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var open []models.DeliveryRequest
	for _, req := range s.requests {
		if req.Status == models.RequestStatusOpen {
			open = append(open, req)
		}
	}
	sort.Slice(open, func(i, j int) bool {
		return open[i].CreatedAt.After(open[j].CreatedAt)
	})
	if offset >= len(open) {
		return nil, nil
	}
	open = open[offset:]
	if limit > 0 && limit < len(open) {
		open = open[:limit]
	}
	return open, nil
}

func (s *MemoryRequestStore) ListByBuyer(_ context.Context, buyerID string) ([]models.DeliveryRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var mine []models.DeliveryRequest
	for _, req := range s.requests {
		if req.BuyerID == buyerID {
			mine = append(mine, req)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})
	return mine, nil
}
