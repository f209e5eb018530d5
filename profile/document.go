package profile

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-mfcc/mfcc"
)

// ErrSerialization indicates the export document could not be encoded.
var ErrSerialization = errors.New("profile: document serialization failed")

// Document field names are part of the exported profile format and must
// not change.
type document struct {
	MFCCNum               int             `json:"mfccNum"`
	MFCCDataCount         int             `json:"mfccDataCount"`
	MelFilterBankChannels int             `json:"melFilterBankChannels"`
	TargetSampleRate      int             `json:"targetSampleRate"`
	SampleCount           int             `json:"sampleCount"`
	UseStandardization    int             `json:"useStandardization"`
	CompareMethod         int             `json:"compareMethod"`
	MFCCs                 []documentEntry `json:"mfccs"`
}

type documentEntry struct {
	Name string            `json:"name"`
	List []calibrationData `json:"mfccCalibrationDataList"`
}

type calibrationData struct {
	Array []float32 `json:"array"`
}

// Finish exports the current store contents as a pretty-printed JSON
// profile document and empties the store. The configuration survives, so
// the Generator can immediately accumulate a fresh profile. Calling Finish
// on an empty store yields a document with no labels.
//
// Labels appear sorted by name so repeated exports of the same content are
// byte-identical.
func (g *Generator) Finish() ([]byte, error) {
	doc := document{
		MFCCNum:               mfcc.CoeffCount,
		MFCCDataCount:         g.cfg.dataCount,
		MelFilterBankChannels: g.channels,
		TargetSampleRate:      g.targetRate,
		SampleCount:           g.cfg.frameSize,
		CompareMethod:         int(g.cfg.compare),
		MFCCs:                 make([]documentEntry, 0, len(g.entries)),
	}

	if g.cfg.standardize {
		doc.UseStandardization = 1
	}

	for _, name := range g.Labels() {
		vectors := g.entries[name].vectors()

		entry := documentEntry{
			Name: name,
			List: make([]calibrationData, 0, len(vectors)),
		}

		for _, vec := range vectors {
			entry.List = append(entry.List, calibrationData{Array: vec})
		}

		doc.MFCCs = append(doc.MFCCs, entry)
	}

	// The store drains regardless of the encoding outcome.
	g.entries = make(map[string]*ring)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	return out, nil
}
