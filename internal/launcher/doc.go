// Package launcher turns queries into result items the way a launcher
// frontend expects: a label, a human-readable description and an action
// payload to execute when the item is selected.
package launcher
