package meta

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// expandEnvExpr substitutes ${env.KEY} with the value of KEY, or "" when unset.
// Unterminated expressions are kept literally; expressions whose key holds
// characters other than letters, digits or '_' leave the prefix untouched and
// scanning resumes right after it.
func expandEnvExpr(value string) string {
	var b strings.Builder
	for offset := 0; ; {
		idx := strings.Index(value[offset:], envPrefix)
		if idx < 0 {
			b.WriteString(value[offset:])
			return b.String()
		}
		start := offset + idx
		b.WriteString(value[offset:start])
		keyStart := start + len(envPrefix)
		end := strings.IndexByte(value[keyStart:], '}')
		if end < 0 {
			b.WriteString(value[start:])
			return b.String()
		}
		key := value[keyStart : keyStart+end]
		if !isEnvKey(key) {
			b.WriteString(envPrefix)
			offset = keyStart
			continue
		}
		b.WriteString(os.Getenv(key))
		offset = keyStart + end + 1
	}
}

func isEnvKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
