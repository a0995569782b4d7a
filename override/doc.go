// Package override merges user supplied partial job documents into
// generated baseline jobs.
//
// Documents are the generic YAML tree (map[string]any, []any and scalars).
// An override document maps selectors to partial job documents. A selector
// is either an exact job name, the reserved default key, or a "re:" prefixed
// regular expression that must match the whole name. Precedence is
// default < pattern < exact; several matching patterns are merged in
// declaration order.
//
// Merging recurses into mappings, aligns lists of mappings on an identifier
// field (tasks on task_key, job_clusters on job_cluster_key, ...),
// concatenates "parameters" lists of strings and replaces everything else.
// Inside a job's task list the task-level default entry (task_key equal to
// the default key) seeds every task before pattern and literal task entries
// are laid on top.
//
// Every operation copies its inputs, so a Merger can be shared by
// goroutines working on different jobs.
package override
