package override

import (
	"fmt"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/bundlegen/errors"
)

// PatternPrefix marks a selector whose remainder is a regular expression.
const PatternPrefix = "re:"

// reservedPrefix cannot start a default key; config loaders treat keys with a
// leading underscore as private and drop them.
const reservedPrefix = "_"

// SelectorKind classifies an override key.
type SelectorKind int

const (
	// ExactName matches one job name or task key.
	ExactName SelectorKind = iota
	// DefaultKey applies to every job or task of its kind.
	DefaultKey
	// Pattern matches every name its regular expression fully matches.
	Pattern
)

func (k SelectorKind) String() string {
	switch k {
	case ExactName:
		return "exact"
	case DefaultKey:
		return "default"
	case Pattern:
		return "pattern"
	default:
		return fmt.Sprintf("SelectorKind(%d)", int(k))
	}
}

// ParseSelector classifies key relative to defaultKey.
func ParseSelector(key, defaultKey string) SelectorKind {
	switch {
	case key == defaultKey:
		return DefaultKey
	case strings.HasPrefix(key, PatternPrefix):
		return Pattern
	default:
		return ExactName
	}
}

// CompilePattern compiles a pattern selector (with or without its prefix)
// so that it only matches whole names.
func CompilePattern(selector string) (*regexp.Regexp, error) {
	expr := strings.TrimPrefix(selector, PatternPrefix)
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, errors.InvalidPattern(selector, err)
	}
	return re, nil
}

// CheckDefaultKey rejects default keys that cannot be used as a selector.
func CheckDefaultKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return errors.ReservedKey(key, "the default key must not be empty")
	case strings.HasPrefix(key, reservedPrefix):
		return errors.ReservedKey(key, fmt.Sprintf("the default key must not start with %q, "+
			"configuration loaders drop such keys", reservedPrefix))
	case strings.HasPrefix(key, PatternPrefix):
		return errors.ReservedKey(key, fmt.Sprintf("the default key must not start with the pattern prefix %q", PatternPrefix))
	}
	return nil
}

// Entry is one selector with its partial document.
type Entry struct {
	Selector string
	Document map[string]any
}

// Selectors is an override document in declaration order.
type Selectors struct {
	entries []Entry
	index   map[string]int
}

// NewSelectors builds an override document from entries in declaration
// order. Documents are copied; a repeated selector is an error.
func NewSelectors(entries ...Entry) (Selectors, error) {
	s := Selectors{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if _, dup := s.index[e.Selector]; dup {
			return Selectors{}, errors.InvalidInput(e.Selector, "selector is declared more than once")
		}
		s.index[e.Selector] = len(s.entries)
		s.entries = append(s.entries, Entry{Selector: e.Selector, Document: cloneMap(e.Document)})
	}
	return s, nil
}

// SelectorsFromMap builds an override document from a plain map. Go maps
// carry no declaration order, so pattern selectors are applied in
// lexicographic order.
func SelectorsFromMap(m map[string]any) (Selectors, error) {
	entries := make([]Entry, 0, len(m))
	for _, key := range sortedKeys(m) {
		doc, err := documentValue(key, clone(m[key]))
		if err != nil {
			return Selectors{}, err
		}
		entries = append(entries, Entry{Selector: key, Document: doc})
	}
	return NewSelectors(entries...)
}

// ParseSelectors decodes a YAML override document, keeping the order in
// which selectors are declared.
func ParseSelectors(data []byte) (Selectors, error) {
	var s Selectors
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Selectors{}, err
	}
	if s.index == nil {
		s.index = map[string]int{}
	}
	return s, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Selectors) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*s = Selectors{index: map[string]int{}}
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return errors.InvalidInput("", fmt.Sprintf("override document must be a mapping (line %d)", node.Line))
	}

	entries := make([]Entry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var raw any
		if err := node.Content[i+1].Decode(&raw); err != nil {
			return fmt.Errorf("override %q: %w", key, err)
		}
		doc, err := documentValue(key, clone(raw))
		if err != nil {
			return err
		}
		entries = append(entries, Entry{Selector: key, Document: doc})
	}

	parsed, err := NewSelectors(entries...)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func documentValue(key string, v any) (map[string]any, error) {
	if v == nil {
		return map[string]any{}, nil
	}
	doc, ok := asMap(v)
	if !ok {
		return nil, errors.InvalidInput(key, fmt.Sprintf("override must be a mapping, got %T", v))
	}
	return doc, nil
}

// Get returns a copy of the document registered under selector.
func (s Selectors) Get(selector string) (map[string]any, bool) {
	i, ok := s.index[selector]
	if !ok {
		return nil, false
	}
	return cloneMap(s.entries[i].Document), true
}

// Entries returns the entries in declaration order. Documents are shared;
// callers must not modify them.
func (s Selectors) Entries() []Entry {
	return s.entries
}

// Len returns the number of selectors.
func (s Selectors) Len() int {
	return len(s.entries)
}
