package sigpatch_test

import (
	"fmt"

	"github.com/coregx/sigpatch"
)

// ExampleCompile demonstrates compiling and applying a single signature.
func ExampleCompile() {
	p, err := sigpatch.Compile(sigpatch.Signature{
		Name:    "jnz to jmp",
		Find:    "75 09 8B FB",
		Replace: "EB ?? ?? ??",
	})
	if err != nil {
		panic(err)
	}

	buf := []byte{0x00, 0x00, 0x75, 0x09, 0x8B, 0xFB}
	off, err := p.Apply(buf)
	fmt.Printf("0x%X %v % X\n", off, err, buf)
	// Output: 0x2 <nil> 00 00 EB 09 8B FB
}

// ExampleRun demonstrates processing several signatures in order.
func ExampleRun() {
	buf := []byte{0x41, 0x99, 0x43, 0x41, 0x42, 0x43}
	report := sigpatch.Run(buf, []sigpatch.Signature{
		{Name: "first", Find: "41 ?? 43", Replace: "90 ?? ??"},
		{Name: "missing", Find: "44 45", Replace: "90 90"},
	}, sigpatch.DefaultConfig())

	for _, r := range report.Results {
		if r.OK() {
			fmt.Printf("%s: offset 0x%X\n", r.Name, r.Offset)
		} else {
			kind, _ := sigpatch.KindOf(r.Err)
			fmt.Printf("%s: %v\n", r.Name, kind)
		}
	}
	fmt.Println("all applied:", report.OK())
	// Output:
	// first: offset 0x0
	// missing: NotFound
	// all applied: false
}
