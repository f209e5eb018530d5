// Package mfcc turns fixed-length mono audio frames into compact
// mel-frequency cepstral feature vectors.
//
// The pipeline is a fixed composition of the dsp packages: anti-alias
// low-pass, downsample to the target rate, pre-emphasis, Hamming window,
// peak normalization, magnitude spectrum, mel filter bank, power-to-dB and
// a type-II DCT. Coefficient 0 is dropped; the remaining [CoeffCount]
// coefficients form the feature vector.
//
// All intermediate storage lives in a caller-owned [Scratch] so that a
// long-running worker extracts features without steady-state allocation.
package mfcc
