// Package catalog serves the recommendation engine an immutable snapshot of
// the program catalog.
//
// A Cache reads every program and the ranking table from storage the first
// time they are requested and keeps serving that snapshot until Reload is
// called. Reload builds a complete new snapshot before swapping it in, so
// requests already holding the old one are unaffected.
package catalog
