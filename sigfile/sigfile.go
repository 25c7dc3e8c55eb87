// Package sigfile reads signature sets from YAML documents.
//
// Format:
//
//	target: PlantsVsZombies.exe
//	signatures:
//	  - name: first signature
//	    find: "75 09 8B FB E8 75 F5 FF"
//	    replace: "EB ?? ?? ?? ?? ?? ?? ??"
//	  - name: disabled one
//	    find: "90 90"
//	    replace: "CC CC"
//	    disabled: true
//
// Unknown keys are rejected. Names are required and must be unique. The
// signature texts are not parsed here; malformed patterns are reported per
// signature when they are compiled.
package sigfile

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coregx/sigpatch"
)

//go:embed default.yaml
var defaultSet []byte

// Set is a named list of signatures together with the file they target.
type Set struct {
	// Target is the default file to patch. May be empty.
	Target string `yaml:"target,omitempty"`

	Signatures []Entry `yaml:"signatures"`
}

// Entry is one signature of a Set.
type Entry struct {
	Name     string `yaml:"name"`
	Find     string `yaml:"find"`
	Replace  string `yaml:"replace"`
	Disabled bool   `yaml:"disabled,omitempty"`

	// Line is the line of the entry in the source document, for messages.
	Line int `yaml:"-"`
}

// Signature converts the entry into a sigpatch descriptor.
func (e Entry) Signature() sigpatch.Signature {
	return sigpatch.Signature{Name: e.Name, Find: e.Find, Replace: e.Replace}
}

// Enabled returns the descriptors of all enabled entries in file order.
func (s *Set) Enabled() []sigpatch.Signature {
	out := make([]sigpatch.Signature, 0, len(s.Signatures))
	for _, e := range s.Signatures {
		if !e.Disabled {
			out = append(out, e.Signature())
		}
	}
	return out
}

// ErrInvalidSet indicates a structurally valid YAML document that does not
// describe a usable signature set.
var ErrInvalidSet = errors.New("invalid signature set")

// SetError reports a problem with one entry of a set.
type SetError struct {
	Line    int
	Message string
}

// Error implements the error interface
func (e *SetError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid signature set: line %d: %s", e.Line, e.Message)
	}
	return "invalid signature set: " + e.Message
}

// Unwrap returns ErrInvalidSet.
func (e *SetError) Unwrap() error {
	return ErrInvalidSet
}

// Parse decodes a signature set from r.
func Parse(r io.Reader) (*Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read signature set: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &SetError{Message: "empty document"}
	}

	var set Set
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&set); err != nil {
		return nil, fmt.Errorf("parse signature set: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err == nil {
		recordLines(&doc, &set)
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// recordLines copies the source line of each signature entry from the
// document tree.
func recordLines(doc *yaml.Node, set *Set) {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "signatures" {
			continue
		}
		seq := root.Content[i+1]
		for j, item := range seq.Content {
			if j < len(set.Signatures) {
				set.Signatures[j].Line = item.Line
			}
		}
	}
}

// Validate checks names and emptiness. It does not parse signature texts.
func (s *Set) Validate() error {
	if len(s.Signatures) == 0 {
		return &SetError{Message: "no signatures"}
	}
	seen := make(map[string]int, len(s.Signatures))
	for _, e := range s.Signatures {
		if e.Name == "" {
			return &SetError{Line: e.Line, Message: "signature without a name"}
		}
		if prev, dup := seen[e.Name]; dup {
			return &SetError{Line: e.Line, Message: fmt.Sprintf("duplicate name %q (first at line %d)", e.Name, prev)}
		}
		seen[e.Name] = e.Line
		if e.Find == "" {
			return &SetError{Line: e.Line, Message: fmt.Sprintf("signature %q has no find pattern", e.Name)}
		}
	}
	return nil
}

// Load reads a signature set from the named file.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open signature set: %w", err)
	}
	defer f.Close()

	set, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Default returns the built-in signature set.
func Default() *Set {
	set, err := Parse(bytes.NewReader(defaultSet))
	if err != nil {
		panic("sigfile: built-in set: " + err.Error())
	}
	return set
}

// Marshal encodes the set as YAML.
func (s *Set) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
