package testutil

import (
	"sync"
	"time"

	"slbstore/internal/models"
	"slbstore/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockCompressor is an identity compressor with optional failure injection.
type MockCompressor struct {
	FailCompress   bool
	FailDecompress bool
	Closed         bool
}

type compressorError string

func (e compressorError) Error() string { return string(e) }

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.FailCompress {
		return nil, compressorError("compress failed")
	}
	return val, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.FailDecompress {
		return nil, compressorError("decompress failed")
	}
	return val, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

// MockMetrics implements providers.MetricsProviderInterface and records calls.
type MockMetrics struct {
	mu                sync.Mutex
	Ops               map[string]int
	PersistErrors     int
	PersistDurations  []time.Duration
	SubscriptionsSeen []int
}

func (m *MockMetrics) IncOpsTotal(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Ops == nil {
		m.Ops = map[string]int{}
	}
	m.Ops[op]++
}

func (m *MockMetrics) IncPersistenceErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistErrors++
}

func (m *MockMetrics) ObservePersistenceDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistDurations = append(m.PersistDurations, d)
}

func (m *MockMetrics) SetSubscriptionsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SubscriptionsSeen = append(m.SubscriptionsSeen, count)
}

// MockPersister implements interfaces.PersisterInterface. Saved images are
// deep-copied so later store mutations do not rewrite recorded calls.
type MockPersister struct {
	mu        sync.Mutex
	LoadImage *models.Image
	LoadErr   error
	SaveErr   error
	SaveCalls []*models.Image
	Closed    bool
}

func (m *MockPersister) Save(img *models.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.SaveCalls = append(m.SaveCalls, &models.Image{
		Version:          img.Version,
		Subscriptions:    models.CloneSubscriptions(img.Subscriptions),
		NotificationSent: img.NotificationSent,
		PreviousSchedule: img.PreviousSchedule.DeepCopy(),
	})
	return nil
}

func (m *MockPersister) Load() (*models.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.LoadImage, nil
}

func (m *MockPersister) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

func (m *MockPersister) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SaveCalls)
}

func (m *MockPersister) LastSave() *models.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SaveCalls) == 0 {
		return nil
	}
	return m.SaveCalls[len(m.SaveCalls)-1]
}

// MockDataStore implements services.DataStoreInterface.
type MockDataStore struct {
	mu           sync.Mutex
	PersistCalls int
	PersistErr   error
	Count        int
}

func (m *MockDataStore) NotificationProgress() (bool, models.ScheduleSnapshot) {
	return false, models.ScheduleSnapshot{}
}

func (m *MockDataStore) SetNotificationProgress(_ bool, _ models.ScheduleSnapshot) error {
	return nil
}

func (m *MockDataStore) AddSubscription(_ int64, _ models.NotificationType, _ string) (bool, error) {
	return true, nil
}

func (m *MockDataStore) Subscriptions() map[int64]models.SubscriptionOptions {
	return map[int64]models.SubscriptionOptions{}
}

func (m *MockDataStore) RemoveSubscription(_ int64) (bool, error) { return false, nil }

func (m *MockDataStore) SubscriptionCount() int { return m.Count }

func (m *MockDataStore) Persist() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistCalls++
	return m.PersistErr
}

func (m *MockDataStore) Persists() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PersistCalls
}

// MockScheduler implements interfaces.SchedulerInterface.
type MockScheduler struct {
	InitCalled bool
	StopCalled bool
}

func (m *MockScheduler) Init() { m.InitCalled = true }
func (m *MockScheduler) Stop() { m.StopCalled = true }
