package acl

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lattice-home/lattice-go/pkg/wire"
)

// yamlPolicy is the YAML structure of a policy file.
type yamlPolicy struct {
	Entries []yamlEntry `yaml:"entries"`
}

// yamlEntry is one entry in YAML form. Privilege is a name ("view",
// "operate", "manage", "admin"); omitted subjects/targets match all.
type yamlEntry struct {
	Subjects  []string     `yaml:"subjects,omitempty"`
	Privilege string       `yaml:"privilege"`
	Targets   []yamlTarget `yaml:"targets,omitempty"`
}

// yamlTarget is one target in YAML form. Omitted fields are wildcards.
type yamlTarget struct {
	Endpoint *wire.EndpointID `yaml:"endpoint,omitempty"`
	Cluster  *wire.ClusterID  `yaml:"cluster,omitempty"`
}

// ParsePolicy parses YAML policy data into an entry list.
func ParsePolicy(data []byte) ([]Entry, error) {
	var y yamlPolicy
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("policy parse error: %w", err)
	}

	entries := make([]Entry, 0, len(y.Entries))
	for i, ye := range y.Entries {
		priv, err := ParsePrivilege(ye.Privilege)
		if err != nil {
			return nil, fmt.Errorf("policy entry %d: %w", i, err)
		}

		targets := make([]Target, 0, len(ye.Targets))
		for _, yt := range ye.Targets {
			targets = append(targets, Target{Endpoint: yt.Endpoint, Cluster: yt.Cluster})
		}

		entries = append(entries, Entry{
			Subjects:  ye.Subjects,
			Privilege: priv,
			Targets:   targets,
		})
	}
	return entries, nil
}

// LoadPolicy reads an entry list from a YAML policy file.
func LoadPolicy(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return ParsePolicy(data)
}

// SavePolicy writes an entry list to a YAML policy file.
func SavePolicy(path string, entries []Entry) error {
	y := yamlPolicy{Entries: make([]yamlEntry, 0, len(entries))}
	for _, e := range entries {
		targets := make([]yamlTarget, 0, len(e.Targets))
		for _, t := range e.Targets {
			targets = append(targets, yamlTarget{Endpoint: t.Endpoint, Cluster: t.Cluster})
		}
		y.Entries = append(y.Entries, yamlEntry{
			Subjects:  e.Subjects,
			Privilege: e.Privilege.String(),
			Targets:   targets,
		})
	}

	data, err := yaml.Marshal(&y)
	if err != nil {
		return fmt.Errorf("failed to encode policy: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write policy file: %w", err)
	}
	return nil
}

// Validate checks an entry list for suspicious or invalid entries.
// Returns the first problem found, nil if the list is clean.
func Validate(entries []Entry) error {
	for i, e := range entries {
		if e.Privilege < PrivilegeView || e.Privilege > PrivilegeAdmin {
			return fmt.Errorf("entry %d: invalid privilege %d", i, e.Privilege)
		}
		if len(e.Subjects) == 0 && e.Privilege > PrivilegeView {
			return fmt.Errorf("entry %d: %s granted to all subjects", i, e.Privilege)
		}
	}
	return nil
}
