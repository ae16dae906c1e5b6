package config

// NewPolicyForTest creates a Policy config for testing purposes
func NewPolicyForTest(path string) *Policy {
	return &Policy{
		path: path,
	}
}

// NewLLMForTest creates an LLM config for testing purposes
func NewLLMForTest(provider, geminiProject, geminiRegion, openaiAPIKey string) *LLM {
	return &LLM{
		provider:      provider,
		geminiProject: geminiProject,
		geminiRegion:  geminiRegion,
		openaiAPIKey:  openaiAPIKey,
	}
}
