// Package eventfile loads event definitions (event, waves and participants)
// from YAML or CUE files and resolves wave membership for the seeding engine.
//
// A participant belongs to every wave that lists its category. When the
// event has an OptionID, only participants registered with that option take
// part.
package eventfile
