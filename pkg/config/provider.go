package config

// ConfigProvider defines the interface for scenario configuration sources.
type ConfigProvider interface {
	// LoadConfig loads the complete scenario configuration.
	LoadConfig() (*Scenario, error)

	// IsReadOnly reports whether the source can accept updates.
	IsReadOnly() bool

	// Close releases any resources held by the provider.
	Close() error
}

// StaticProvider serves a fixed in-memory scenario. It backs the server
// when no configuration file is given.
type StaticProvider struct {
	scenario Scenario
}

// NewStaticProvider creates a provider around the given scenario.
func NewStaticProvider(s Scenario) *StaticProvider {
	return &StaticProvider{scenario: s}
}

// LoadConfig returns the normalized scenario.
func (p *StaticProvider) LoadConfig() (*Scenario, error) {
	normalized := p.scenario.Normalized()
	return &normalized, nil
}

// IsReadOnly always returns true for static scenarios.
func (p *StaticProvider) IsReadOnly() bool { return true }

// Close is a no-op.
func (p *StaticProvider) Close() error { return nil }
