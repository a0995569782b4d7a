package override

import (
	"bytes"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v3"
)

// JobKeyPriority is the canonical leading key order of a job.
var JobKeyPriority = []string{
	"name",
	"tags",
	"access_control_list",
	"email_notifications",
	"schedule",
	"max_concurrent_runs",
	"job_clusters",
	"tasks",
}

// TaskKeyPriority is the canonical leading key order of a task.
var TaskKeyPriority = []string{
	"task_key",
	"job_cluster_key",
	"new_cluster",
	"depends_on",
	"spark_python_task",
	"python_wheel_task",
}

// Ordered is a mapping that serializes its keys in a fixed order.
type Ordered struct {
	keys   []string
	values map[string]any
}

// Order returns m with the keys listed in priority first, in priority order,
// followed by the remaining keys in lexicographic order. Only the top level
// is ordered; nested values are copied as they are.
func Order(m map[string]any, priority []string) *Ordered {
	o := &Ordered{
		keys:   make([]string, 0, len(m)),
		values: make(map[string]any, len(m)),
	}
	seen := make(map[string]bool, len(priority))
	for _, k := range priority {
		if seen[k] {
			continue
		}
		seen[k] = true
		if v, ok := m[k]; ok {
			o.keys = append(o.keys, k)
			o.values[k] = clone(v)
		}
	}
	for _, k := range sortedKeys(m) {
		if seen[k] {
			continue
		}
		o.keys = append(o.keys, k)
		o.values[k] = clone(m[k])
	}
	return o
}

// OrderJob orders a job's keys and the keys of each of its tasks.
func OrderJob(job map[string]any) *Ordered {
	o := Order(job, JobKeyPriority)
	if tasks, ok := asList(o.values[KeyTasks]); ok {
		ordered := make([]any, len(tasks))
		for i, t := range tasks {
			if tm, isMap := asMap(t); isMap {
				ordered[i] = Order(tm, TaskKeyPriority)
			} else {
				ordered[i] = t
			}
		}
		o.values[KeyTasks] = ordered
	}
	return o
}

// Keys returns the keys in serialization order.
func (o *Ordered) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Get returns the value stored under key.
func (o *Ordered) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Len returns the number of keys.
func (o *Ordered) Len() int {
	return len(o.keys)
}

// AsMap converts o, and any Ordered values nested in it, back to plain maps.
func (o *Ordered) AsMap() map[string]any {
	out := make(map[string]any, len(o.values))
	for k, v := range o.values {
		out[k] = clone(v)
	}
	return out
}

// MarshalYAML implements yaml.Marshaler.
func (o *Ordered) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range o.keys {
		var key, value yaml.Node
		if err := key.Encode(k); err != nil {
			return nil, err
		}
		if err := value.Encode(o.values[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &key, &value)
	}
	return node, nil
}

// MarshalJSON implements json.Marshaler.
func (o *Ordered) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
