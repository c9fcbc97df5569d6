package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"taubit/internal/domain"
	"taubit/internal/redis"
	"taubit/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters for verification
	CreateCallCount      int32
	UpdateStatsCallCount int32

	// Error injection
	CreateError      error
	UpdateStatsError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.User, error) {
	return m.GetByID(ctx, id)
}

func (m *MockUserRepository) UpdateStats(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.UpdateStatsCallCount, 1)
	if m.UpdateStatsError != nil {
		return m.UpdateStatsError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Points = user.Points
	stored.WeeklyPoints = user.WeeklyPoints
	stored.Experience = user.Experience
	stored.Level = user.Level
	stored.TotalTrips = user.TotalTrips
	stored.TotalDistanceKm = user.TotalDistanceKm
	stored.TotalTimeMinutes = user.TotalTimeMinutes
	return nil
}

func (m *MockUserRepository) SetPremium(ctx context.Context, id string, premium bool, expiry time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.IsPremium = premium
	user.PremiumExpiry = expiry
	return nil
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id, name, avatar string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Name = name
	user.Avatar = avatar
	return nil
}

// GetUser returns a user for test assertions.
func (m *MockUserRepository) GetUser(id string) *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[id]
}

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
	}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) GetActiveByUserID(ctx context.Context, userID string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.trips {
		if t.UserID == userID && t.Status == domain.TripStatusActive {
			copy := *t
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockTripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[trip.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *trip
	m.trips[trip.ID] = &copy
	return nil
}

func (m *MockTripRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]*domain.Trip, 0)
	for _, t := range m.trips {
		if t.UserID == userID {
			copy := *t
			all = append(all, &copy)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].StartTime.After(all[j].StartTime)
	})
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *MockTripRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, t := range m.trips {
		if t.UserID == userID {
			count++
		}
	}
	return count, nil
}

// GetTrip returns a trip for test assertions.
func (m *MockTripRepository) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

// ──────────────────────────────────────────────
// MOCK LINE REPOSITORY
// ──────────────────────────────────────────────

// MockLineRepository is a mock implementation of LineRepository.
type MockLineRepository struct {
	mu    sync.RWMutex
	lines map[string]*domain.TransitLine

	// Counters for verification
	UpdateRatingCallCount int32

	// Error injection
	UpdateRatingError error
}

// NewMockLineRepository creates a new mock line repository.
func NewMockLineRepository() *MockLineRepository {
	return &MockLineRepository{
		lines: make(map[string]*domain.TransitLine),
	}
}

// AddLine adds a line to the mock repository.
func (m *MockLineRepository) AddLine(line *domain.TransitLine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines[line.ID] = line
}

func (m *MockLineRepository) Create(ctx context.Context, line *domain.TransitLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines[line.ID] = line
	return nil
}

func (m *MockLineRepository) GetByID(ctx context.Context, id string) (*domain.TransitLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	line, ok := m.lines[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *line
	return &copy, nil
}

func (m *MockLineRepository) List(ctx context.Context, filter repository.LineFilter) ([]*domain.TransitLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.TransitLine, 0, len(m.lines))
	for _, l := range m.lines {
		if filter.Type != "" && l.Type != filter.Type {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		copy := *l
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (m *MockLineRepository) UpdateRating(ctx context.Context, line *domain.TransitLine) error {
	atomic.AddInt32(&m.UpdateRatingCallCount, 1)
	if m.UpdateRatingError != nil {
		return m.UpdateRatingError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.lines[line.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.AverageRating = line.AverageRating
	stored.RatingCount = line.RatingCount
	stored.Reliability = line.Reliability
	stored.NoiseLevel = line.NoiseLevel
	stored.Occupancy = line.Occupancy
	return nil
}

// GetLine returns a line for test assertions.
func (m *MockLineRepository) GetLine(id string) *domain.TransitLine {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lines[id]
}

// ──────────────────────────────────────────────
// MOCK REWARD REPOSITORY
// ──────────────────────────────────────────────

// MockRewardRepository is a mock implementation of RewardRepository.
type MockRewardRepository struct {
	mu          sync.RWMutex
	rewards     map[string]*domain.Reward
	redemptions []*domain.Redemption

	// Counters for verification
	CreateRedemptionCallCount int32

	// Error injection
	CreateRedemptionError error
}

// NewMockRewardRepository creates a new mock reward repository.
func NewMockRewardRepository() *MockRewardRepository {
	return &MockRewardRepository{
		rewards: make(map[string]*domain.Reward),
	}
}

// AddReward adds a reward to the mock repository.
func (m *MockRewardRepository) AddReward(reward *domain.Reward) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rewards[reward.ID] = reward
}

func (m *MockRewardRepository) Create(ctx context.Context, reward *domain.Reward) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rewards[reward.ID] = reward
	return nil
}

func (m *MockRewardRepository) GetByID(ctx context.Context, id string) (*domain.Reward, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	reward, ok := m.rewards[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *reward
	return &copy, nil
}

func (m *MockRewardRepository) ListAvailable(ctx context.Context) ([]*domain.Reward, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Reward, 0, len(m.rewards))
	for _, r := range m.rewards {
		if !r.IsAvailable {
			continue
		}
		copy := *r
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].PointsCost < result[j].PointsCost
	})
	return result, nil
}

func (m *MockRewardRepository) CreateRedemption(ctx context.Context, redemption *domain.Redemption) error {
	atomic.AddInt32(&m.CreateRedemptionCallCount, 1)
	if m.CreateRedemptionError != nil {
		return m.CreateRedemptionError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *redemption
	m.redemptions = append(m.redemptions, &copy)
	return nil
}

func (m *MockRewardRepository) ListRedemptionsByUser(ctx context.Context, userID string) ([]*domain.Redemption, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Redemption, 0)
	for _, r := range m.redemptions {
		if r.UserID == userID {
			copy := *r
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RedeemedAt.After(result[j].RedeemedAt)
	})
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK FRIEND REPOSITORY
// ──────────────────────────────────────────────

// MockFriendRepository is a mock implementation of FriendRepository.
type MockFriendRepository struct {
	mu          sync.RWMutex
	friendships map[string]*domain.Friendship

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockFriendRepository creates a new mock friend repository.
func NewMockFriendRepository() *MockFriendRepository {
	return &MockFriendRepository{
		friendships: make(map[string]*domain.Friendship),
	}
}

// AddFriendship adds a friendship to the mock repository.
func (m *MockFriendRepository) AddFriendship(f *domain.Friendship) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.friendships[f.ID] = f
}

func (m *MockFriendRepository) Create(ctx context.Context, f *domain.Friendship) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.friendships[f.ID] = f
	return nil
}

func (m *MockFriendRepository) GetPair(ctx context.Context, userID, friendID string) (*domain.Friendship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.friendships {
		if (f.UserID == userID && f.FriendID == friendID) || (f.UserID == friendID && f.FriendID == userID) {
			copy := *f
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockFriendRepository) UpdateStatus(ctx context.Context, id string, status domain.FriendStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.friendships[id]
	if !ok {
		return repository.ErrNotFound
	}
	f.Status = status
	return nil
}

func (m *MockFriendRepository) ListByUser(ctx context.Context, userID string, status domain.FriendStatus) ([]*domain.Friendship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Friendship, 0)
	for _, f := range m.friendships {
		if f.Status != status {
			continue
		}
		if f.UserID == userID || f.FriendID == userID {
			copy := *f
			result = append(result, &copy)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK SESSION REPOSITORY
// ──────────────────────────────────────────────

// MockSessionRepository is a mock implementation of SessionRepository.
type MockSessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session

	// Counters for verification
	CreateCallCount int32
	DeleteCallCount int32

	// Error injection
	CreateError error
}

// NewMockSessionRepository creates a new mock session repository.
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		sessions: make(map[string]*domain.Session),
	}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.TokenHash] = session
	return nil
}

func (m *MockSessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[tokenHash]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *session
	return &copy, nil
}

func (m *MockSessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, tokenHash)
	return nil
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for hash, s := range m.sessions {
		if time.Now().After(s.ExpiresAt) {
			delete(m.sessions, hash)
			n++
		}
	}
	return n, nil
}

// SessionCount returns the number of live sessions for test assertions.
func (m *MockSessionRepository) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]bool),
	}
}

func (m *MockLockStore) AcquireAccountLock(ctx context.Context, userID string, ttl time.Duration) (bool, error) {
	return m.acquire("account:" + userID)
}

func (m *MockLockStore) ReleaseAccountLock(ctx context.Context, userID string) error {
	return m.release("account:" + userID)
}

func (m *MockLockStore) AcquireLineLock(ctx context.Context, lineID string, ttl time.Duration) (bool, error) {
	return m.acquire("line:" + lineID)
}

func (m *MockLockStore) ReleaseLineLock(ctx context.Context, lineID string) error {
	return m.release("line:" + lineID)
}

func (m *MockLockStore) acquire(key string) (bool, error) {
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[key] {
		return false, nil
	}
	m.locks[key] = true
	return true, nil
}

func (m *MockLockStore) release(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
	return nil
}

// HoldAccountLock marks an account lock as already held.
func (m *MockLockStore) HoldAccountLock(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks["account:"+userID] = true
}

// HoldLineLock marks a line lock as already held.
func (m *MockLockStore) HoldLineLock(lineID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks["line:"+lineID] = true
}

// ──────────────────────────────────────────────
// MOCK LEADERBOARD STORE
// ──────────────────────────────────────────────

// MockLeaderboardStore is a mock implementation of LeaderboardStoreInterface.
type MockLeaderboardStore struct {
	mu     sync.Mutex
	scores map[string]int

	// Counters for verification
	AddPointsCallCount int32
}

// NewMockLeaderboardStore creates a new mock leaderboard store.
func NewMockLeaderboardStore() *MockLeaderboardStore {
	return &MockLeaderboardStore{
		scores: make(map[string]int),
	}
}

func (m *MockLeaderboardStore) AddPoints(ctx context.Context, userID string, points int, now time.Time) error {
	atomic.AddInt32(&m.AddPointsCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[userID] += points
	return nil
}

func (m *MockLeaderboardStore) Top(ctx context.Context, n int, now time.Time) ([]redis.LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]redis.LeaderboardEntry, 0, len(m.scores))
	for userID, points := range m.scores {
		entries = append(entries, redis.LeaderboardEntry{UserID: userID, Points: points})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (m *MockLeaderboardStore) Reset(ctx context.Context, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = make(map[string]int)
	return nil
}

// Score returns a user's leaderboard score for test assertions.
func (m *MockLeaderboardStore) Score(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scores[userID]
}

// Interface checks.
var (
	_ repository.UserRepository       = (*MockUserRepository)(nil)
	_ repository.TripRepository       = (*MockTripRepository)(nil)
	_ repository.LineRepository       = (*MockLineRepository)(nil)
	_ repository.RewardRepository     = (*MockRewardRepository)(nil)
	_ repository.FriendRepository     = (*MockFriendRepository)(nil)
	_ repository.SessionRepository    = (*MockSessionRepository)(nil)
	_ redis.LockStoreInterface        = (*MockLockStore)(nil)
	_ redis.LeaderboardStoreInterface = (*MockLeaderboardStore)(nil)
)
