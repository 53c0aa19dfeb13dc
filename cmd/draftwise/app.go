package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/draftwise/draftwise/embed"
	"github.com/draftwise/draftwise/library"
	"github.com/draftwise/draftwise/provider"
)

// openLibrary opens the library under the configured data directory.
// Commands that never embed (list, delete) pass a nil embedder.
func openLibrary(embedder embed.Embedder) (*library.Library, error) {
	return library.New(library.Config{DataDir: viper.GetString("data_dir")}, embedder)
}

// buildProviders constructs a client for every provider whose API key is
// present in the environment.
func buildProviders() map[string]provider.Provider {
	providers := make(map[string]provider.Provider)
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		providers[provider.NameAnthropic] = provider.NewAnthropic(key)
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		providers[provider.NameOpenAI] = provider.NewOpenAI(key)
	}
	return providers
}

// keyEnvVar names the environment variable carrying a provider's API key.
func keyEnvVar(providerName string) string {
	switch providerName {
	case provider.NameAnthropic:
		return "ANTHROPIC_API_KEY"
	case provider.NameOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}

// resolveModel resolves the model (flag value, else config default) and
// verifies its provider has a key, so failures happen before any work.
func resolveModel(flagValue string, providers map[string]provider.Provider) (provider.ModelSpec, error) {
	name := flagValue
	if name == "" {
		name = viper.GetString("model")
	}
	model, err := provider.Resolve(name)
	if err != nil {
		return provider.ModelSpec{}, err
	}
	if _, ok := providers[model.Provider]; !ok {
		return provider.ModelSpec{}, fmt.Errorf(
			"model %s needs %s set in the environment or .env file",
			model.DisplayName, keyEnvVar(model.Provider))
	}
	return model, nil
}

// readBody reads content from the file named in args, or stdin when args
// is empty or the name is "-".
func readBody(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
