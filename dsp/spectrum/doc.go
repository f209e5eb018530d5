// Package spectrum computes magnitude spectra for feature extraction.
//
// The forward DFT is delegated to the algo-fft backend; this package owns
// plan caching and real/complex marshalling so that repeated transforms of
// the same length are allocation-free. Transform lengths are arbitrary, a
// power-of-two size is not required.
package spectrum
