package ai

import (
	"context"
	"sync"
)

// FakeClient returns a canned reply or error. It backs the "fake" adapter for
// offline development and is used by tests in place of a real provider.
type FakeClient struct {
	Reply string
	Err   error

	mu    sync.Mutex
	calls []FakeCall
}

// FakeCall records the arguments of one GenerateCompletion call.
type FakeCall struct {
	Prompt  string
	Options GenerateOptions
}

// NewFakeClient returns a FakeClient that always answers with reply.
func NewFakeClient(reply string) *FakeClient {
	return &FakeClient{Reply: reply}
}

func (f *FakeClient) Name() string { return "fake" }

func (f *FakeClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...GenerateOption,
) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, FakeCall{Prompt: prompt, Options: ApplyOptions(GenerateOptions{}, opts...)})
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", NewInvocationError(f.Name(), err)
	}
	if f.Err != nil {
		return "", NewInvocationError(f.Name(), f.Err)
	}
	return f.Reply, nil
}

// Calls returns a copy of the recorded calls.
func (f *FakeClient) Calls() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FakeCall, len(f.calls))
	copy(out, f.calls)
	return out
}
