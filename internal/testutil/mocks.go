package testutil

import (
	"context"
	"sync"

	"zoodash/internal/providers"
	"zoodash/internal/zooapi"
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

// MockClient implements zooapi.ClientInterface with injectable behavior.
// Unset funcs return zero values so tests only wire what they exercise.
type MockClient struct {
	mu sync.Mutex

	MeFn              func(ctx context.Context) (*zooapi.User, error)
	LoginFn           func(ctx context.Context, username, password string) (*zooapi.User, error)
	RefreshFn         func(ctx context.Context) error
	LogoutFn          func(ctx context.Context) error
	AnimalsFn         func(ctx context.Context) ([]zooapi.Animal, error)
	AlertsFn          func(ctx context.Context, animalID string) ([]zooapi.Alert, error)
	AckAlertFn        func(ctx context.Context, id string) error
	AckAlertsFn       func(ctx context.Context, ids []string) error
	BehaviorCurrentFn func(ctx context.Context, animalID string) (*zooapi.CurrentBehavior, error)
	TimelineFn        func(ctx context.Context, animalID, date string) ([]zooapi.TimelineEntry, error)
	DayDistributionFn func(ctx context.Context, animalID, date string) (*zooapi.DayDistribution, error)
	ReportsFn         func(ctx context.Context, animalID string) ([]zooapi.Report, error)
	KPIsFn            func(ctx context.Context) (*zooapi.KPI, error)

	MeCalls       int
	RefreshCalls  int
	LogoutCalls   int
	AckedIDs      []string
	AckedBulkIDs  [][]string
	LoginAttempts []string
}

func (m *MockClient) Me(ctx context.Context) (*zooapi.User, error) {
	m.mu.Lock()
	m.MeCalls++
	m.mu.Unlock()
	if m.MeFn != nil {
		return m.MeFn(ctx)
	}
	return nil, nil
}

func (m *MockClient) Login(ctx context.Context, username, password string) (*zooapi.User, error) {
	m.mu.Lock()
	m.LoginAttempts = append(m.LoginAttempts, username)
	m.mu.Unlock()
	if m.LoginFn != nil {
		return m.LoginFn(ctx, username, password)
	}
	return nil, nil
}

func (m *MockClient) Refresh(ctx context.Context) error {
	m.mu.Lock()
	m.RefreshCalls++
	m.mu.Unlock()
	if m.RefreshFn != nil {
		return m.RefreshFn(ctx)
	}
	return nil
}

func (m *MockClient) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.LogoutCalls++
	m.mu.Unlock()
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx)
	}
	return nil
}

func (m *MockClient) Animals(ctx context.Context) ([]zooapi.Animal, error) {
	if m.AnimalsFn != nil {
		return m.AnimalsFn(ctx)
	}
	return nil, nil
}

func (m *MockClient) Alerts(ctx context.Context, animalID string) ([]zooapi.Alert, error) {
	if m.AlertsFn != nil {
		return m.AlertsFn(ctx, animalID)
	}
	return nil, nil
}

func (m *MockClient) AckAlert(ctx context.Context, id string) error {
	m.mu.Lock()
	m.AckedIDs = append(m.AckedIDs, id)
	m.mu.Unlock()
	if m.AckAlertFn != nil {
		return m.AckAlertFn(ctx, id)
	}
	return nil
}

func (m *MockClient) AckAlerts(ctx context.Context, ids []string) error {
	m.mu.Lock()
	m.AckedBulkIDs = append(m.AckedBulkIDs, ids)
	m.mu.Unlock()
	if m.AckAlertsFn != nil {
		return m.AckAlertsFn(ctx, ids)
	}
	return nil
}

func (m *MockClient) BehaviorCurrent(ctx context.Context, animalID string) (*zooapi.CurrentBehavior, error) {
	if m.BehaviorCurrentFn != nil {
		return m.BehaviorCurrentFn(ctx, animalID)
	}
	return nil, nil
}

func (m *MockClient) BehaviorTimeline(ctx context.Context, animalID, date string) ([]zooapi.TimelineEntry, error) {
	if m.TimelineFn != nil {
		return m.TimelineFn(ctx, animalID, date)
	}
	return nil, nil
}

func (m *MockClient) DayDistribution(ctx context.Context, animalID, date string) (*zooapi.DayDistribution, error) {
	if m.DayDistributionFn != nil {
		return m.DayDistributionFn(ctx, animalID, date)
	}
	return nil, nil
}

func (m *MockClient) Reports(ctx context.Context, animalID string) ([]zooapi.Report, error) {
	if m.ReportsFn != nil {
		return m.ReportsFn(ctx, animalID)
	}
	return nil, nil
}

func (m *MockClient) KPIs(ctx context.Context) (*zooapi.KPI, error) {
	if m.KPIsFn != nil {
		return m.KPIsFn(ctx)
	}
	return nil, nil
}

func (m *MockClient) ReportPDFURL(id string) string {
	return "http://backend.test/api/reports/" + id + "/pdf"
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) SetWithTTL(key string, value []byte, _ int) {
	m.Set(key, value)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}
