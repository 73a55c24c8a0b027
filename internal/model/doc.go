// Package model provides the domain types shared by the start sequencing
// engine, the schedule store, and the event definition loaders.
//
// This package contains type definitions and small value helpers only. All
// other internal packages import model; model imports nothing internal.
//
// Key design constraints:
//   - Start times are offsets from the Event anchor (time.Duration), never wall clock
//   - A nil StartTime means the entry has not been assigned a slot
//   - Bib 0 means "no bib" and sorts as 0 wherever bibs are compared
//   - All JSON tags use snake_case
package model
