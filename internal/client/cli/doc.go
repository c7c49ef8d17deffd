// Package cli implements the interactive terminal front end of the Pustaka
// client: a read-eval-print loop over the item lifecycle service, plus the
// background refresh loop that keeps the local store converging with the
// remote collection.
package cli
