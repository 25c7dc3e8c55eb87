package sigpatch

import (
	"bytes"
	"testing"
)

func TestRunAllSucceed(t *testing.T) {
	buf := image()
	report := Run(buf, []Signature{firstSig, secondSig}, DefaultConfig())

	if !report.OK() {
		t.Fatalf("report not OK: %+v", report.Failed())
	}
	if len(report.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(report.Results))
	}
	if report.Results[0].Offset != 16 || report.Results[1].Offset != 31 {
		t.Errorf("offsets = %d, %d, want 16, 31", report.Results[0].Offset, report.Results[1].Offset)
	}
	if buf[16] != 0xEB || !bytes.Equal(buf[31:34], []byte{0xC2, 0x04, 0x00}) {
		t.Errorf("patches not written: % X", buf)
	}
}

// TestRunContinuesAfterFailure: a failing signature does not stop later
// ones, and the aggregate is computed after all were attempted.
func TestRunContinuesAfterFailure(t *testing.T) {
	buf := image()
	sigs := []Signature{
		{Name: "bad", Find: "ZZ", Replace: "90"},
		{Name: "absent", Find: "DE AD BE EF", Replace: "90 90 90 90"},
		firstSig,
		{Name: "mismatch", Find: "55 8B EC", Replace: "C3"},
		secondSig,
	}
	report := Run(buf, sigs, DefaultConfig())

	if report.OK() {
		t.Fatal("report OK despite failures")
	}
	wantKinds := map[string]ErrorKind{
		"bad":      ParseError,
		"absent":   NotFound,
		"mismatch": TemplateLengthMismatch,
	}
	for _, res := range report.Results {
		want, failing := wantKinds[res.Name]
		if !failing {
			if !res.OK() {
				t.Errorf("%s failed: %v", res.Name, res.Err)
			}
			continue
		}
		if kind, _ := KindOf(res.Err); kind != want {
			t.Errorf("%s: kind = %v, want %v", res.Name, kind, want)
		}
	}
	if len(report.Failed()) != 3 {
		t.Errorf("Failed() = %d results, want 3", len(report.Failed()))
	}
	if buf[16] != 0xEB || buf[31] != 0xC2 {
		t.Error("successful signatures after a failure were not applied")
	}
}

func TestRunEmpty(t *testing.T) {
	if report := Run([]byte{1, 2, 3}, nil, DefaultConfig()); !report.OK() {
		t.Error("empty run not OK")
	}
}

func TestApplyAll(t *testing.T) {
	buf := image()
	report := ApplyAll(buf, []*Patch{MustCompile(firstSig), MustCompile(firstSig)})

	// The second application no longer finds the original bytes.
	if report.OK() {
		t.Fatal("second application of the same patch succeeded")
	}
	if !report.Results[0].OK() {
		t.Errorf("first application failed: %v", report.Results[0].Err)
	}
	if kind, _ := KindOf(report.Results[1].Err); kind != NotFound {
		t.Errorf("second application: kind = %v, want NotFound", kind)
	}
}
