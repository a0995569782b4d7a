package override

import "maps"

// Well-known document keys.
const (
	KeyName           = "name"
	KeyTasks          = "tasks"
	KeyTaskKey        = "task_key"
	KeyJobClusters    = "job_clusters"
	KeyJobClusterKey  = "job_cluster_key"
	KeyNewCluster     = "new_cluster"
	KeySparkEnvVars   = "spark_env_vars"
	KeyDependsOn      = "depends_on"
	KeyParameters     = "parameters"
	KeyEnvironments   = "environments"
	KeyEnvironmentKey = "environment_key"
)

// Sections tells the merger how to treat lists of mappings: either align
// entries on an identifier field, or replace the list wholesale.
type Sections struct {
	identifiers map[string]string
	replace     map[string]bool
}

var defaultSections = NewSections(
	map[string]string{
		KeyTasks:        KeyTaskKey,
		KeyJobClusters:  KeyJobClusterKey,
		KeyEnvironments: KeyEnvironmentKey,
		KeyParameters:   KeyName,
		KeyDependsOn:    KeyTaskKey,
	},
	"access_control_list",
	"grants",
	"libraries",
	"init_scripts",
	"webhook_notifications",
)

// DefaultSections returns the built-in section table.
func DefaultSections() Sections {
	return defaultSections
}

// NewSections builds a section table. The arguments are copied.
func NewSections(identifiers map[string]string, replace ...string) Sections {
	s := Sections{
		identifiers: maps.Clone(identifiers),
		replace:     make(map[string]bool, len(replace)),
	}
	if s.identifiers == nil {
		s.identifiers = map[string]string{}
	}
	for _, k := range replace {
		s.replace[k] = true
	}
	return s
}

// Identifier returns the identifier field registered for a list section.
func (s Sections) Identifier(section string) (string, bool) {
	field, ok := s.identifiers[section]
	return field, ok
}

// Replaces reports whether a list of mappings is replaced wholesale.
func (s Sections) Replaces(section string) bool {
	return s.replace[section]
}

// With returns a copy of s with an additional identifier section.
func (s Sections) With(section, field string) Sections {
	out := NewSections(s.identifiers, sortedKeys(s.replace)...)
	out.identifiers[section] = field
	return out
}

// WithReplace returns a copy of s with additional wholesale-replace sections.
func (s Sections) WithReplace(sections ...string) Sections {
	out := NewSections(s.identifiers, append(sortedKeys(s.replace), sections...)...)
	return out
}
