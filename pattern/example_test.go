package pattern_test

import (
	"fmt"

	"github.com/coregx/sigpatch/pattern"
)

// ExampleParseSearch demonstrates parsing a signature with wildcards.
func ExampleParseSearch() {
	s, err := pattern.ParseSearch("75 09 * fb")
	if err != nil {
		panic(err)
	}
	fmt.Println(len(s), s)
	// Output: 4 75 09 ?? FB
}

// ExampleSearch_Runs demonstrates splitting a signature into fixed runs.
func ExampleSearch_Runs() {
	s := pattern.MustParseSearch("55 8B ?? 83 E4 F8")
	for _, r := range s.Runs() {
		fmt.Printf("offset %d: % X\n", r.Offset, r.Bytes)
	}
	// Output:
	// offset 0: 55 8B
	// offset 3: 83 E4 F8
}
