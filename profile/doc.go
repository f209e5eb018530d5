// Package profile accumulates MFCC feature vectors per phoneme or speaker
// label into a bounded calibration store and exports the result as a
// single JSON document.
//
// Each label holds at most a configured number of vectors with FIFO
// eviction, so a calibration session can run indefinitely while the
// profile reflects the most recent material. Export drains the store;
// the configuration is frozen at construction and survives export.
//
// The compare-method tag and standardization flag ride through to the
// document untouched: consuming them is the downstream comparator's job.
package profile
