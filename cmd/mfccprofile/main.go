// Command mfccprofile builds an MFCC calibration profile from synthetic
// test tones and writes it as JSON.
//
// Usage:
//
//	mfccprofile [flags] label=freqHz [label=freqHz ...]
//
// Each argument names a calibration label and the frequency of the sine
// tone synthesized for it. The resulting document is written to stdout
// or to the file given with -o.
//
// Examples:
//
//	mfccprofile low=440 high=880
//	mfccprofile -rate 16000 -channels 32 -seconds 2 hum=120
//	mfccprofile -compare cosine -standardize -o profile.json a=330 b=660
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-mfcc/profile"
)

type toneSpec struct {
	label string
	freq  float64
}

func main() {
	rate := flag.Int("rate", 16000, "target sample rate in Hz")
	channels := flag.Int("channels", 26, "number of mel filter bank channels")
	frame := flag.Int("frame", 1024, "analysis frame size in samples")
	count := flag.Int("count", 16, "stored vectors per label")
	compare := flag.String("compare", "l2", "comparison method recorded in the profile (l1, l2, cosine)")
	standardize := flag.Bool("standardize", false, "record that vectors should be standardized before comparison")
	seconds := flag.Float64("seconds", 1, "length of each synthesized tone")
	amplitude := flag.Float64("amplitude", 0.5, "amplitude of the synthesized tones")
	output := flag.String("o", "", "output file (default stdout)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mfccprofile [flags] label=freqHz [label=freqHz ...]\n\n")
		fmt.Fprintf(os.Stderr, "Builds an MFCC calibration profile from synthetic sine tones.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  mfccprofile low=440 high=880\n")
		fmt.Fprintf(os.Stderr, "  mfccprofile -compare cosine -o profile.json a=330 b=660\n")
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	specs, err := parseSpecs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	method, err := parseCompare(*compare)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	gen, err := profile.New(*rate, *channels,
		profile.WithFrameSize(*frame),
		profile.WithDataCount(*count),
		profile.WithCompareMethod(method),
		profile.WithStandardization(*standardize),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	length := int(*seconds * float64(*rate))
	for _, spec := range specs {
		tone := sineTone(spec.freq, *rate, *amplitude, length)
		if err := gen.AddSample(tone, spec.label, *rate); err != nil {
			fmt.Fprintf(os.Stderr, "error: label %q: %v\n", spec.label, err)
			os.Exit(1)
		}
	}

	doc, err := gen.Finish()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *output == "" {
		fmt.Println(string(doc))
		return
	}

	if err := os.WriteFile(*output, append(doc, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseSpecs(args []string) ([]toneSpec, error) {
	specs := make([]toneSpec, 0, len(args))
	for _, arg := range args {
		label, freqStr, ok := strings.Cut(arg, "=")
		if !ok || label == "" {
			return nil, fmt.Errorf("invalid tone spec %q (want label=freqHz)", arg)
		}
		freq, err := strconv.ParseFloat(freqStr, 64)
		if err != nil || freq <= 0 {
			return nil, fmt.Errorf("invalid frequency in %q", arg)
		}
		specs = append(specs, toneSpec{label: label, freq: freq})
	}
	return specs, nil
}

func parseCompare(name string) (profile.CompareMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "l1":
		return profile.CompareL1Norm, nil
	case "l2":
		return profile.CompareL2Norm, nil
	case "cosine":
		return profile.CompareCosineSimilarity, nil
	default:
		return 0, fmt.Errorf("unknown compare method %q (want l1, l2 or cosine)", name)
	}
}

func sineTone(freq float64, rate int, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	step := 2 * math.Pi * freq / float64(rate)
	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}
	return out
}
