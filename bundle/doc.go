// Package bundle turns pipelines and an override document into job resource
// files.
//
// Generator validates the override document, assembles one baseline job per
// pipeline, applies overrides to every job in parallel and returns the
// results only when all of them succeed. Writer stores each job as
// <dir>/<job>.yml wrapped in resources.jobs, and Diff compares regenerated
// jobs with what is on disk.
package bundle
