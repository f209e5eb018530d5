package profile

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/cwbudde/algo-mfcc/internal/testutil"
	"github.com/cwbudde/algo-mfcc/mfcc"
)

const (
	testRate     = 16000
	testChannels = 26
	testFrame    = 256
)

func newTestGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()

	opts = append([]Option{WithFrameSize(testFrame)}, opts...)

	g, err := New(testRate, testChannels, opts...)
	if err != nil {
		t.Fatal(err)
	}

	return g
}

// tone returns a single-frame test signal distinguishable by index.
func tone(i int) []float32 {
	return testutil.SineFrame32(200+float64(i)*55, testRate, 0.5, testFrame)
}

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	return doc
}

func TestNewValidation(t *testing.T) {
	if _, err := New(0, testChannels); err == nil {
		t.Error("expected error for zero target rate")
	}

	if _, err := New(testRate, 0); err == nil {
		t.Error("expected error for zero channels")
	}

	if _, err := New(testRate, testChannels, WithFrameSize(1)); err == nil {
		t.Error("expected error for single-sample frames")
	}

	if _, err := New(testRate, testChannels, WithDataCount(0)); err == nil {
		t.Error("expected error for zero data count")
	}

	if _, err := New(testRate, testChannels, WithCompareMethod(CompareMethod(7))); err == nil {
		t.Error("expected error for unknown compare method")
	}
}

func TestDefaults(t *testing.T) {
	g, err := New(testRate, testChannels)
	if err != nil {
		t.Fatal(err)
	}

	if g.FrameSize() != 1024 {
		t.Errorf("FrameSize = %d, want 1024", g.FrameSize())
	}

	if g.DataCount() != 16 {
		t.Errorf("DataCount = %d, want 16", g.DataCount())
	}

	doc := decode(t, mustFinish(t, g))

	if doc["compareMethod"] != float64(CompareL2Norm) {
		t.Errorf("compareMethod = %v, want %v", doc["compareMethod"], int(CompareL2Norm))
	}

	if doc["useStandardization"] != 0.0 {
		t.Errorf("useStandardization = %v, want 0", doc["useStandardization"])
	}
}

func TestAddSampleEmptyAudio(t *testing.T) {
	g := newTestGenerator(t)

	if err := g.AddSample(tone(0), "a", testRate); err != nil {
		t.Fatal(err)
	}

	err := g.AddSample(nil, "a", testRate)
	if !errors.Is(err, ErrEmptyAudio) {
		t.Fatalf("err = %v, want ErrEmptyAudio", err)
	}

	// The failed call must leave the store unchanged.
	if got := g.Len("a"); got != 1 {
		t.Fatalf("Len(a) = %d, want 1", got)
	}
}

func TestAddSampleInvalidRate(t *testing.T) {
	g := newTestGenerator(t)

	if err := g.AddSample(tone(0), "a", 0); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("err = %v, want ErrInvalidRate", err)
	}
}

func TestAddSampleSegmentation(t *testing.T) {
	g := newTestGenerator(t)

	// 2.5 frames: two full frames stored, the remainder discarded.
	audio := testutil.SineFrame32(330, testRate, 0.5, testFrame*2+testFrame/2)

	if err := g.AddSample(audio, "a", testRate); err != nil {
		t.Fatal(err)
	}

	if got := g.Len("a"); got != 2 {
		t.Fatalf("Len(a) = %d, want 2", got)
	}
}

func TestAddSampleShortAudio(t *testing.T) {
	g := newTestGenerator(t)

	if err := g.AddSample(tone(0)[:testFrame-1], "a", testRate); err != nil {
		t.Fatal(err)
	}

	if got := g.Len("a"); got != 0 {
		t.Fatalf("Len(a) = %d, want 0 (sub-frame audio yields no vectors)", got)
	}

	if labels := g.Labels(); len(labels) != 0 {
		t.Fatalf("labels = %v, want none", labels)
	}
}

func TestAddSampleSilentFramesSkipped(t *testing.T) {
	g := newTestGenerator(t)

	if err := g.AddSample(make([]float32, testFrame*3), "quiet", testRate); err != nil {
		t.Fatal(err)
	}

	// All frames rejected: the label never materializes.
	if labels := g.Labels(); len(labels) != 0 {
		t.Fatalf("labels = %v, want none", labels)
	}
}

func TestCapacityEviction(t *testing.T) {
	const capacity = 4

	g := newTestGenerator(t, WithDataCount(capacity))

	extractor, err := mfcc.NewExtractor(testRate, testChannels)
	if err != nil {
		t.Fatal(err)
	}

	scratch := mfcc.NewScratch()

	var want [][]float32

	for i := range capacity + 3 {
		if err := g.AddSample(tone(i), "a", testRate); err != nil {
			t.Fatal(err)
		}

		vec, err := extractor.Extract(scratch, tone(i), testRate)
		if err != nil {
			t.Fatal(err)
		}

		want = append(want, testutil.Float32(vec))
	}

	if got := g.Len("a"); got != capacity {
		t.Fatalf("Len(a) = %d, want %d", got, capacity)
	}

	// Survivors are exactly the last `capacity` vectors, in order.
	want = want[len(want)-capacity:]

	var doc struct {
		MFCCs []struct {
			Name string `json:"name"`
			List []struct {
				Array []float32 `json:"array"`
			} `json:"mfccCalibrationDataList"`
		} `json:"mfccs"`
	}

	if err := json.Unmarshal(mustFinish(t, g), &doc); err != nil {
		t.Fatal(err)
	}

	if len(doc.MFCCs) != 1 || doc.MFCCs[0].Name != "a" {
		t.Fatalf("mfccs = %+v, want single entry 'a'", doc.MFCCs)
	}

	list := doc.MFCCs[0].List
	if len(list) != capacity {
		t.Fatalf("stored vectors = %d, want %d", len(list), capacity)
	}

	for i := range list {
		if len(list[i].Array) != mfcc.CoeffCount {
			t.Fatalf("vector %d length = %d, want %d", i, len(list[i].Array), mfcc.CoeffCount)
		}

		for j := range list[i].Array {
			if list[i].Array[j] != want[i][j] {
				t.Fatalf("vector %d coeff %d = %v, want %v", i, j, list[i].Array[j], want[i][j])
			}
		}
	}
}

func TestFinishDrainsStore(t *testing.T) {
	g := newTestGenerator(t)

	if err := g.AddSample(tone(0), "a", testRate); err != nil {
		t.Fatal(err)
	}

	if err := g.AddSample(tone(1), "b", testRate); err != nil {
		t.Fatal(err)
	}

	first := decode(t, mustFinish(t, g))
	if n := len(first["mfccs"].([]any)); n != 2 {
		t.Fatalf("first export holds %d labels, want 2", n)
	}

	if labels := g.Labels(); len(labels) != 0 {
		t.Fatalf("labels after Finish = %v, want none", labels)
	}

	// The generator stays usable: a fresh session reflects only new data.
	if err := g.AddSample(tone(2), "c", testRate); err != nil {
		t.Fatal(err)
	}

	second := decode(t, mustFinish(t, g))

	entries := second["mfccs"].([]any)
	if len(entries) != 1 {
		t.Fatalf("second export holds %d labels, want 1", len(entries))
	}

	if name := entries[0].(map[string]any)["name"]; name != "c" {
		t.Fatalf("second export label = %v, want c", name)
	}
}

func TestFinishEmptyStore(t *testing.T) {
	g := newTestGenerator(t)

	doc := decode(t, mustFinish(t, g))

	if n := len(doc["mfccs"].([]any)); n != 0 {
		t.Fatalf("empty store exported %d labels, want 0", n)
	}
}

func TestFinishDocumentFields(t *testing.T) {
	g := newTestGenerator(t,
		WithDataCount(8),
		WithCompareMethod(CompareCosineSimilarity),
		WithStandardization(true),
	)

	if err := g.AddSample(tone(0), "a", testRate); err != nil {
		t.Fatal(err)
	}

	doc := decode(t, mustFinish(t, g))

	want := map[string]float64{
		"mfccNum":               float64(mfcc.CoeffCount),
		"mfccDataCount":         8,
		"melFilterBankChannels": testChannels,
		"targetSampleRate":      testRate,
		"sampleCount":           testFrame,
		"useStandardization":    1,
		"compareMethod":         float64(CompareCosineSimilarity),
	}

	for field, value := range want {
		got, ok := doc[field]
		if !ok {
			t.Errorf("document missing field %q", field)
			continue
		}

		if got != value {
			t.Errorf("%s = %v, want %v", field, got, value)
		}
	}
}

func TestFinishDeterministicOrder(t *testing.T) {
	build := func() []byte {
		g := newTestGenerator(t)

		for i, label := range []string{"o", "a", "i", "e", "u"} {
			if err := g.AddSample(tone(i), label, testRate); err != nil {
				t.Fatal(err)
			}
		}

		return mustFinish(t, g)
	}

	first := build()
	second := build()

	if string(first) != string(second) {
		t.Fatal("exports of identical content differ")
	}
}

func TestCompareMethodString(t *testing.T) {
	tests := []struct {
		m    CompareMethod
		want string
	}{
		{CompareL1Norm, "l1-norm"},
		{CompareL2Norm, "l2-norm"},
		{CompareCosineSimilarity, "cosine-similarity"},
		{CompareMethod(9), "compare-method(9)"},
	}

	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", int(tt.m), got, tt.want)
		}
	}
}

func mustFinish(t *testing.T, g *Generator) []byte {
	t.Helper()

	out, err := g.Finish()
	if err != nil {
		t.Fatal(err)
	}

	return out
}
