// Package output persists the augmented play list as a single JSON document.
package output
