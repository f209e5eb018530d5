// Package resample provides sample-rate reduction for feature extraction.
//
// Only downsampling is supported; inputs already at or below the target
// rate pass through unchanged. Integer rate ratios decimate directly,
// fractional ratios use linear interpolation. Anti-aliasing is a separate
// concern: run input through dsp/lowpass first.
package resample
