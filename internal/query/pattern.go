package query

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Compiled glob patterns are reused across many assertions in one test
// process, so keep a small shared cache.
var patternCache, _ = lru.New[string, *regexp.Regexp](256)

// compileGlob turns a glob-style pattern, where "*" matches any run of
// characters, into an anchored regular expression.
func compileGlob(pattern string) *regexp.Regexp {
	if re, ok := patternCache.Get(pattern); ok {
		return re
	}

	var b strings.Builder
	b.WriteString("^")
	for i, part := range strings.Split(pattern, "*") {
		if i > 0 {
			b.WriteString(".*")
		}
		b.WriteString(regexp.QuoteMeta(part))
	}
	b.WriteString("$")

	re := regexp.MustCompile(b.String())
	patternCache.Add(pattern, re)
	return re
}

// globMatch reports whether s matches the glob pattern.
func globMatch(pattern, s string) bool {
	return compileGlob(pattern).MatchString(s)
}
