package override

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/kbukum/bundlegen/errors"
	"github.com/kbukum/bundlegen/logger"
)

// Merger applies override documents to baseline documents. It holds no
// mutable state and is safe for concurrent use.
type Merger struct {
	defaultKey string
	sections   Sections
	log        *logger.Logger

	// layering is set while override tiers are merged with each other:
	// pattern entries in identifier lists are then kept as ordinary entries
	// instead of being applied, so they survive until the baseline merge.
	layering bool
}

// Option configures a Merger.
type Option func(*Merger)

// WithSections replaces the section table.
func WithSections(s Sections) Option {
	return func(m *Merger) { m.sections = s }
}

// WithLogger sets the logger used for skipped pattern selectors.
func WithLogger(l *logger.Logger) Option {
	return func(m *Merger) { m.log = l }
}

// NewMerger creates a Merger for the given default key.
func NewMerger(defaultKey string, opts ...Option) (*Merger, error) {
	if err := CheckDefaultKey(defaultKey); err != nil {
		return nil, err
	}
	m := &Merger{
		defaultKey: defaultKey,
		sections:   DefaultSections(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = logger.Get("override")
	}
	return m, nil
}

// DefaultKey returns the reserved default selector.
func (m *Merger) DefaultKey() string {
	return m.defaultKey
}

// layered returns a copy of m that merges override tiers with each other.
func (m *Merger) layered() *Merger {
	c := *m
	c.layering = true
	return &c
}

// Merge returns base with overrides applied. taskDefault, when non-nil, is
// the task-level default entry used while merging the "tasks" list. Neither
// argument is modified.
func (m *Merger) Merge(base, overrides, taskDefault map[string]any) (map[string]any, error) {
	return m.merge(cloneMap(base), cloneMap(overrides), cloneOptional(taskDefault), "")
}

// merge owns base and may modify it; overrides is only read.
func (m *Merger) merge(base, overrides, taskDefault map[string]any, path string) (map[string]any, error) {
	for _, key := range sortedKeys(overrides) {
		value := overrides[key]
		keyPath := joinPath(path, key)

		old, exists := base[key]
		if old == nil {
			exists = false
		}

		switch ov := value.(type) {
		case map[string]any:
			oldMap, ok := asMap(old)
			if !exists {
				oldMap, ok = map[string]any{}, true
			}
			if !ok {
				base[key] = clone(ov)
				continue
			}
			merged, err := m.merge(oldMap, ov, nil, keyPath)
			if err != nil {
				return nil, err
			}
			base[key] = merged

		case []any:
			oldList, ok := asList(old)
			if !exists {
				oldList, ok = []any{}, true
			}
			if !ok {
				base[key] = clone(ov)
				continue
			}
			var listDefault map[string]any
			if key == KeyTasks {
				listDefault = taskDefault
			}
			merged, err := m.mergeSequence(key, keyPath, oldList, ov, listDefault)
			if err != nil {
				return nil, err
			}
			base[key] = merged

		default:
			base[key] = clone(value)
		}
	}
	return base, nil
}

func (m *Merger) mergeSequence(key, path string, old, new []any, defaultItem map[string]any) ([]any, error) {
	if len(new) > 0 && !m.sections.Replaces(key) {
		if _, isMap := asMap(new[0]); isMap {
			field, ok := m.sections.Identifier(key)
			if !ok {
				return nil, errors.UnknownSection(path)
			}
			return m.mergeList(path, old, new, field, defaultItem)
		}
	}
	if key == KeyParameters {
		out := make([]any, 0, len(old)+len(new))
		out = append(out, clone(old).([]any)...)
		return append(out, clone(new).([]any)...), nil
	}
	return clone(new).([]any), nil
}

// MergeList merges two lists of mappings aligned on field. defaultItem, when
// non-nil, seeds every entry and the new entry keyed by the default key is
// not emitted; an old entry with that key is kept. The result is sorted by
// identifier.
func (m *Merger) MergeList(old, new []any, field string, defaultItem map[string]any) ([]any, error) {
	oldCopy, _ := asList(clone(old))
	newCopy, _ := asList(clone(new))
	if oldCopy == nil {
		oldCopy = []any{}
	}
	return m.mergeList(field, oldCopy, newCopy, field, cloneOptional(defaultItem))
}

type patternEntry struct {
	selector string
	re       *regexp.Regexp
	update   map[string]any
}

type literalEntry struct {
	id     string
	update map[string]any
}

func (m *Merger) mergeList(path string, old, new []any, field string, defaultItem map[string]any) ([]any, error) {
	existing := make(map[string]map[string]any, len(old))
	targets := make(map[string]bool, len(old)+len(new))
	for i, item := range old {
		entry, id, err := identified(path, item, field, i)
		if err != nil {
			return nil, err
		}
		if _, dup := existing[id]; dup {
			return nil, errors.InvalidInput(indexPath(path, id), fmt.Sprintf("%s %q appears more than once", field, id))
		}
		existing[id] = entry
		targets[id] = true
	}

	// The task default entry is consumed through defaultItem. A baseline
	// entry with the same identifier is an ordinary entry and is kept.
	hasDefault := defaultItem != nil
	var (
		patterns []patternEntry
		literals []literalEntry
	)
	for i, item := range new {
		entry, id, err := identified(path, item, field, i)
		if err != nil {
			return nil, err
		}
		if hasDefault && id == m.defaultKey {
			continue
		}
		update := withoutKey(entry, field)
		if ParseSelector(id, m.defaultKey) == Pattern && !m.layering {
			re, err := CompilePattern(id)
			if err != nil {
				m.log.Debug("skipping invalid pattern entry", logger.Fields(
					logger.FieldSection, path, logger.FieldSelector, id, logger.FieldError, err.Error()))
				continue
			}
			patterns = append(patterns, patternEntry{selector: id, re: re, update: update})
			continue
		}
		literals = append(literals, literalEntry{id: id, update: update})
		targets[id] = true
	}

	keys := m.targetOrder(old, new, targets, field)
	updates := make(map[string]map[string]any, len(keys))
	for _, id := range keys {
		updates[id] = withoutKey(defaultItem, field)
	}

	for _, p := range patterns {
		for _, id := range keys {
			if p.re.MatchString(id) {
				overlay(updates[id], p.update)
			}
		}
	}
	for _, l := range literals {
		overlay(updates[l.id], l.update)
	}

	out := make([]any, 0, len(updates))
	for _, id := range keys {
		base, ok := existing[id]
		if !ok {
			base = map[string]any{}
		}
		merged, err := m.merge(base, updates[id], nil, indexPath(path, id))
		if err != nil {
			return nil, err
		}
		merged[field] = id
		out = append(out, merged)
	}
	return out, nil
}

// targetOrder sorts the target identifiers. While override documents are
// layered, pattern entries follow the literal ones in first-declaration
// order, old side first.
func (m *Merger) targetOrder(old, new []any, targets map[string]bool, field string) []string {
	if !m.layering {
		return sortedKeys(targets)
	}
	var (
		literals []string
		patterns []string
		seen     = make(map[string]bool)
	)
	for id := range targets {
		if ParseSelector(id, m.defaultKey) != Pattern {
			literals = append(literals, id)
		}
	}
	sort.Strings(literals)
	for _, list := range [][]any{old, new} {
		for _, item := range list {
			entry, _ := asMap(item)
			id, _ := stringValue(entry[field])
			if targets[id] && !seen[id] && ParseSelector(id, m.defaultKey) == Pattern {
				seen[id] = true
				patterns = append(patterns, id)
			}
		}
	}
	return append(literals, patterns...)
}

// identified checks that item is a mapping carrying a string identifier.
func identified(path string, item any, field string, index int) (map[string]any, string, error) {
	entry, ok := asMap(item)
	if !ok {
		return nil, "", errors.InvalidInput(fmt.Sprintf("%s[%d]", path, index), fmt.Sprintf("expected a mapping, got %T", item))
	}
	id, ok := stringValue(entry[field])
	if !ok {
		return nil, "", errors.MissingIdentifier(path, field, index)
	}
	return entry, id, nil
}

// overlay sets every field of src on dst without recursing.
func overlay(dst, src map[string]any) {
	for k, v := range src {
		dst[k] = clone(v)
	}
}

// withoutKey returns a copy of m minus key; nil yields an empty map.
func withoutKey(m map[string]any, key string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k != key {
			out[k] = clone(v)
		}
	}
	return out
}

func cloneOptional(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return cloneMap(m)
}
