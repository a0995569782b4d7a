// Package errors provides the structured error type used across bundlegen.
//
// Every failure carries a machine-readable ErrorCode and names the
// offending key, selector or field in its message so a user can fix the
// input without reading source. Codes are split into fatal ones, which
// abort a generation run, and recoverable ones (see IsRecoverableCode),
// which are isolated to the entry that produced them.
package errors
