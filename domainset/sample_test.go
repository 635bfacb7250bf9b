package domainset

import (
	_ "embed"
	"strings"
)

//go:embed testdata/sample_domains.txt
var sampleDomainsRaw string

var sampleDomains = func() []string {
	lines := strings.Split(sampleDomainsRaw, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}()
