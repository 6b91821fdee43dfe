/* factory.go
 * Contains provider selection for the oracle client. The provider is chosen from the
 * ORACLE_PROVIDER environment variable ("anthropic" or "gemini"), defaulting to anthropic.
 */

package oracle

import (
	"context"
	"fmt"
	"os"
)

// NewClientFromEnv builds an oracle client from environment configuration. The model
// argument overrides ORACLE_MODEL when non-empty; each provider falls back to its own
// default model when neither is set.
func NewClientFromEnv(ctx context.Context, model string) (Client, error) {
	if model == "" {
		model = os.Getenv("ORACLE_MODEL")
	}

	provider := os.Getenv("ORACLE_PROVIDER")
	switch provider {
	case "", "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("missing ANTHROPIC_API_KEY environment variable")
		}
		config := DefaultAnthropicConfig(apiKey)
		if model != "" {
			config.Model = model
		}
		return NewAnthropicClientWithConfig(config), nil
	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("missing GEMINI_API_KEY environment variable")
		}
		return NewGeminiClient(ctx, apiKey, model)
	default:
		return nil, fmt.Errorf("unknown oracle provider: %q", provider)
	}
}
