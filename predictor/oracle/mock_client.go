/* mock_client.go
 * Contains a mock implementation of the Client interface for testing the adapter's retry,
 * clarification and fallback behavior without network access.
 */

package oracle

import "context"

// MockClient implements Client with scripted responses.
type MockClient struct {
	// Responses are returned in order; the last one repeats once exhausted
	Responses []string
	// Errors are returned in order before any responses are consumed
	Errors []error
	// Calls records every conversation the client received
	Calls [][]Turn
}

// Complete returns the next scripted error or response.
func (m *MockClient) Complete(ctx context.Context, system string, turns []Turn) (string, error) {
	copied := make([]Turn, len(turns))
	copy(copied, turns)
	m.Calls = append(m.Calls, copied)

	if len(m.Errors) > 0 {
		err := m.Errors[0]
		m.Errors = m.Errors[1:]
		if err != nil {
			return "", err
		}
	}

	if len(m.Responses) == 0 {
		return "", nil
	}
	response := m.Responses[0]
	if len(m.Responses) > 1 {
		m.Responses = m.Responses[1:]
	}
	return response, nil
}

// Model returns a fixed mock model name.
func (m *MockClient) Model() string {
	return "mock-model"
}

// CallCount returns how many times Complete was invoked.
func (m *MockClient) CallCount() int {
	return len(m.Calls)
}
