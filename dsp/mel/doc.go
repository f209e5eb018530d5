// Package mel implements the mel-frequency stages of cepstral feature
// extraction: the Hz/mel scale conversions, the triangular filter bank,
// and the type-II DCT producing cepstral coefficients.
//
// The mel scale uses the linear form m = 1127*ln(1 + f/700) throughout;
// the Slaney variant is intentionally not offered.
package mel
