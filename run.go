package sigpatch

import "github.com/coregx/sigpatch/search"

// Result is the outcome of one signature.
type Result struct {
	Name   string
	Offset int
	Err    error
}

// OK reports whether the signature was applied.
func (r Result) OK() bool {
	return r.Err == nil
}

// Report collects the results of a Run in signature order.
type Report struct {
	Results []Result
}

// OK reports whether every signature was applied. An empty report is OK.
func (r Report) OK() bool {
	for _, res := range r.Results {
		if res.Err != nil {
			return false
		}
	}
	return true
}

// Failed returns the results that carry an error.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Run compiles and applies sigs to buf one after another, in order.
//
// A failing signature (malformed text, not found, template mismatch) is
// recorded and the next one is processed; Run never stops early. An invalid
// config makes every signature fail with the *search.ConfigError.
func Run(buf []byte, sigs []Signature, config search.Config) Report {
	report := Report{Results: make([]Result, 0, len(sigs))}
	for _, sig := range sigs {
		res := Result{Name: sig.Name, Offset: -1}
		p, err := CompileWithConfig(sig, config)
		if err != nil {
			res.Err = err
		} else {
			res.Offset, res.Err = p.Apply(buf)
		}
		report.Results = append(report.Results, res)
	}
	return report
}

// ApplyAll applies already compiled patches to buf in order, with the same
// failure policy as Run.
func ApplyAll(buf []byte, patches []*Patch) Report {
	report := Report{Results: make([]Result, 0, len(patches))}
	for _, p := range patches {
		off, err := p.Apply(buf)
		report.Results = append(report.Results, Result{Name: p.Name(), Offset: off, Err: err})
	}
	return report
}
