// Command genhash prints gold Hash64SpanCI values for a fixed input set at
// a fixed seed; it is the generator for domain_hash_test.go's gold table.
package main

import (
	"fmt"

	"github.com/hipermap-go/hipermap/domainset"
)

func main() {
	const seed = uint64(0x1122334455667788)
	inputs := []string{
		"", "com", "google", "google.com", "images", "images.google.com",
		"a", "A", "abc", "AbC", "xn--puny", "xn--punycode", "12345", "a.b", "zz.zz",
	}
	for _, s := range inputs {
		fmt.Printf("%q: 0x%016x\n", s, domainset.Hash64SpanCI(s, seed))
	}
}
