// Package parser turns a free-text quick-add query into a structured task.
//
// A query like
//
//	"Team sync 15.03.2025 14:30 ~work !high #meeting"
//
// is processed by a fixed pipeline of extraction passes over a mutable
// working string. Each pass recognizes one kind of annotation (hashtags,
// a priority marker, a project reference, a date/time expression), strips
// the matched text and records the extracted value. What remains after
// all passes is the task title.
//
// The package is pure computation: no I/O happens here. The project
// directory used to resolve ~name references is supplied as a snapshot
// via ProjectIndex and is safe for concurrent readers.
package parser
