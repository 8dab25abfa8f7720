package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ndewijer/InvestBoard-Backend/internal/model"
	"github.com/ndewijer/InvestBoard-Backend/internal/openrouter"
)

// CompleteCall records the arguments of one Complete call.
type CompleteCall struct {
	SystemPrompt string
	UserPrompt   string
	Options      openrouter.Options
}

// MockCompleter is a mock implementation of service.Completer for testing.
// It returns predefined results instead of calling a completion provider.
type MockCompleter struct {
	mu sync.Mutex

	// MockResult is returned from Complete when Results is exhausted.
	MockResult model.CompletionResult
	// Results are returned in order, one per call, before falling back to MockResult.
	Results []model.CompletionResult
	// Calls records every call in order.
	Calls []CompleteCall
	// Block, when set, is waited on before returning. Used to hold calls in flight.
	Block chan struct{}
}

// NewMockCompleter creates a mock completer that answers with data on every call.
func NewMockCompleter(data string) *MockCompleter {
	return &MockCompleter{MockResult: SuccessResult(data)}
}

// Complete records the call and returns the next scripted result.
func (m *MockCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string, opts openrouter.Options) model.CompletionResult {
	m.mu.Lock()
	m.Calls = append(m.Calls, CompleteCall{SystemPrompt: systemPrompt, UserPrompt: userPrompt, Options: opts})
	result := m.MockResult
	if len(m.Results) > 0 {
		result = m.Results[0]
		m.Results = m.Results[1:]
	}
	block := m.Block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return model.CompletionResult{Error: ctx.Err().Error()}
		}
	}
	return result
}

// CallCount returns how many times Complete was called.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent call. It panics if there was none.
func (m *MockCompleter) LastCall() CompleteCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[len(m.Calls)-1]
}

// WithFailure configures the mock to fail every call with msg.
func (m *MockCompleter) WithFailure(msg string) *MockCompleter {
	m.MockResult = FailureResult(msg)
	return m
}

// WithResults queues results to return before MockResult.
func (m *MockCompleter) WithResults(results ...model.CompletionResult) *MockCompleter {
	m.Results = append(m.Results, results...)
	return m
}

// SuccessResult builds a successful completion carrying data.
func SuccessResult(data string) model.CompletionResult {
	return model.CompletionResult{OK: true, Data: json.RawMessage(data), ModelUsed: "test/primary"}
}

// FailureResult builds a failed completion.
func FailureResult(msg string) model.CompletionResult {
	return model.CompletionResult{Error: msg, ModelUsed: "test/fallback"}
}
