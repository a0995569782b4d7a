// Package util provides small generic helpers shared by bundlegen packages:
// slice and map utilities and name sanitization.
package util
