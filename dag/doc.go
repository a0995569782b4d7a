// Package dag loads pipeline definitions and orders their nodes.
//
// A pipeline is a YAML file listing named nodes and their depends_on edges.
// Pipelines may include other pipelines; includes are flattened by
// ResolvePipeline. BuildLevels groups nodes by dependency depth with every
// level sorted, so job documents generated from a pipeline are stable
// across runs.
package dag
