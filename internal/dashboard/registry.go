package dashboard

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"
)

// ErrUnknownDashboard is returned for names that are not registered.
var ErrUnknownDashboard = errors.New("unknown dashboard")

// Config is the YAML layout of a dashboard definition file.
type Config struct {
	Dashboards []Dashboard `yaml:"dashboards"`
}

// Registry holds dashboards by name.
type Registry struct {
	dashboards map[string]Dashboard
}

// NewRegistry returns a registry containing only the census dashboard.
func NewRegistry(censusSourceURL string) *Registry {
	r := &Registry{dashboards: make(map[string]Dashboard)}
	r.Add(Census(censusSourceURL))
	return r
}

// NewRegistryFromYamlConfig adds the dashboards in yamlConfig on top of the
// census dashboard. A definition named "census" replaces the built-in one.
func NewRegistryFromYamlConfig(yamlConfig string, censusSourceURL string) (*Registry, error) {
	if yamlConfig == "" {
		return nil, fmt.Errorf("yaml config is empty")
	}
	var cfg Config
	if err := yaml.Unmarshal([]byte(yamlConfig), &cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	r := NewRegistry(censusSourceURL)
	for i, d := range cfg.Dashboards {
		if d.Name == "" {
			return nil, fmt.Errorf("dashboard %d: name is required", i)
		}
		if d.SourceURL == "" {
			return nil, fmt.Errorf("dashboard %s: source_url is required", d.Name)
		}
		r.Add(d)
	}
	return r, nil
}

// NewRegistryFromYamlFile reads path and calls NewRegistryFromYamlConfig.
func NewRegistryFromYamlFile(path string, censusSourceURL string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dashboard config: %w", err)
	}
	return NewRegistryFromYamlConfig(string(data), censusSourceURL)
}

func (r *Registry) Add(d Dashboard) {
	r.dashboards[d.Name] = d
}

func (r *Registry) Get(name string) (Dashboard, error) {
	d, ok := r.dashboards[name]
	if !ok {
		return Dashboard{}, fmt.Errorf("%w: %s", ErrUnknownDashboard, name)
	}
	return d, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.dashboards))
	for name := range r.dashboards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
