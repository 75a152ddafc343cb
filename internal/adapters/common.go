package adapters

import (
	"path/filepath"
	"strings"
)

// safeLine garante linha 1-based (ferramentas às vezes emitem 0 ou negativo).
func safeLine(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// cleanPath normaliza caminhos vindos das ferramentas (./, ../, separadores).
func cleanPath(p string) string {
	p = filepath.ToSlash(strings.TrimSpace(p))
	for strings.HasPrefix(p, "../") {
		p = strings.TrimPrefix(p, "../")
	}
	return strings.TrimPrefix(p, "./")
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
