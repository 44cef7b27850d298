package llmprovider

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockProvider is a test implementation of the Provider interface
type mockProvider struct {
	name       string
	model      string
	shouldFail bool
	response   *Response
	callCount  int
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.callCount++
	if m.shouldFail {
		return nil, errors.New("mock provider error")
	}
	return m.response, nil
}

func (m *mockProvider) Name() string  { return m.name }
func (m *mockProvider) Model() string { return m.model }

// mockLogger is a test implementation of the Logger interface
type mockLogger struct {
	infoMessages []string
	warnMessages []string
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any) {
	if len(arg) > 0 {
		if msg, ok := arg[0].(string); ok {
			m.infoMessages = append(m.infoMessages, msg)
		}
	}
}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any) {
	if len(arg) > 0 {
		if msg, ok := arg[0].(string); ok {
			m.warnMessages = append(m.warnMessages, msg)
		}
	}
}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

func TestGenerateContent_SuccessWithPrimaryProvider(t *testing.T) {
	expectedResponse := &Response{
		Text:         "Hello from primary provider",
		ProviderName: "primary",
		ModelName:    "primary-model",
		Usage: &Usage{
			InputTokens:  100,
			OutputTokens: 50,
			TotalTokens:  150,
		},
	}

	primary := &mockProvider{
		name:     "primary",
		model:    "primary-model",
		response: expectedResponse,
	}

	logger := &mockLogger{}
	config := &Config{
		FallbackEnabled: true,
		RetryAttempts:   3,
		RetryDelay:      10 * time.Millisecond,
	}

	manager := NewManager([]Provider{primary}, config, logger)

	req := &Request{Messages: []Message{{Role: "user", Text: "Hello"}}}

	resp, err := manager.GenerateContent(context.Background(), req)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.Text != expectedResponse.Text {
		t.Errorf("Expected %q, got %q", expectedResponse.Text, resp.Text)
	}
	if primary.callCount != 1 {
		t.Errorf("Expected 1 call to primary, got %d", primary.callCount)
	}
}

func TestGenerateContent_FallbackToSecondary(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "m1", shouldFail: true}
	secondary := &mockProvider{
		name:  "secondary",
		model: "m2",
		response: &Response{
			Text:         "from secondary",
			ProviderName: "secondary",
		},
	}

	logger := &mockLogger{}
	config := &Config{
		FallbackEnabled: true,
		RetryAttempts:   2,
		RetryDelay:      time.Millisecond,
	}

	manager := NewManager([]Provider{primary, secondary}, config, logger)

	resp, err := manager.GenerateContent(context.Background(), &Request{
		Messages: []Message{{Role: "user", Text: "Hi"}},
	})
	if err != nil {
		t.Fatalf("Expected fallback success, got error: %v", err)
	}
	if resp.Text != "from secondary" {
		t.Errorf("Expected secondary response, got %q", resp.Text)
	}
	if primary.callCount != 2 {
		t.Errorf("Expected 2 retry calls to primary, got %d", primary.callCount)
	}
	if len(logger.warnMessages) == 0 {
		t.Error("Expected failure warning logged for primary provider")
	}
}

func TestGenerateContent_AllProvidersFail(t *testing.T) {
	p1 := &mockProvider{name: "p1", model: "m1", shouldFail: true}
	p2 := &mockProvider{name: "p2", model: "m2", shouldFail: true}

	manager := NewManager([]Provider{p1, p2}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   1,
		RetryDelay:      time.Millisecond,
	}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), &Request{})
	if err == nil {
		t.Fatal("Expected error when all providers fail")
	}
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Errorf("Expected ErrAllProvidersFailed, got: %v", err)
	}
}

func TestGenerateContent_FallbackDisabled(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "m1", shouldFail: true}
	secondary := &mockProvider{name: "secondary", model: "m2", response: &Response{Text: "ok"}}

	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: false,
		RetryAttempts:   1,
	}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), &Request{})
	if err == nil {
		t.Fatal("Expected error with fallback disabled")
	}
	if secondary.callCount != 0 {
		t.Errorf("Secondary should not be called, got %d calls", secondary.callCount)
	}
}

func TestGenerateContent_NoProviders(t *testing.T) {
	manager := NewManager(nil, &Config{RetryAttempts: 1}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), &Request{})
	if !errors.Is(err, ErrNoProvidersConfigured) {
		t.Errorf("Expected ErrNoProvidersConfigured, got: %v", err)
	}
}

func TestGenerateContent_GlobalTimeout(t *testing.T) {
	slow := &mockProvider{name: "slow", model: "m1", shouldFail: true}

	manager := NewManager([]Provider{slow}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   5,
		RetryDelay:      200 * time.Millisecond,
		MaxTotalTimeout: 50 * time.Millisecond,
	}, &mockLogger{})

	start := time.Now()
	_, err := manager.GenerateContent(context.Background(), &Request{})
	if err == nil {
		t.Fatal("Expected error under global timeout")
	}
	if time.Since(start) > time.Second {
		t.Error("Global timeout did not bound the fallback chain")
	}
}
