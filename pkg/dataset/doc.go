// Package dataset defines the data source contract and the built-in
// implementations backing catalog entries. Every dataset variant loads a
// whole dataset from one configured location into memory, saves one back
// (overwriting), reports presence, and describes its configuration.
package dataset
