// Package jobs assembles baseline job documents from pipeline definitions.
//
// A Generator turns one resolved dag.Pipeline into a job document: a plain
// map with the job name, its tasks and their depends_on edges. Generators
// are created by name from a Registry; "node" emits one task per pipeline
// node and "pipeline" one task running the whole pipeline. Overrides are
// applied afterwards by package override; generators never see them.
package jobs
