package parser

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Diretórios ignorados na detecção (match exato no nome da pasta).
var ignoredDirs = map[string]struct{}{
	".git":          {},
	".venv":         {},
	"venv":          {},
	"__pycache__":   {},
	"node_modules":  {},
	".mypy_cache":   {},
	".ruff_cache":   {},
	".pytest_cache": {},
	".mutmut-cache": {},
}

// DetectPythonProject varre o diretório e devolve os arquivos Python e
// marcadores de projeto, em ordem determinística.
func DetectPythonProject(root string) (PythonProject, error) {
	var proj PythonProject

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return proj, err
	}

	err = filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if _, ok := ignoredDirs[info.Name()]; ok {
				return filepath.SkipDir
			}
			return nil
		}

		name := strings.ToLower(info.Name())
		switch name {
		case "pyproject.toml":
			proj.HasPyproject = true
		case "setup.cfg":
			proj.HasSetupCfg = true
		}
		if strings.HasSuffix(name, ".py") {
			proj.Files = append(proj.Files, path)
			if strings.HasPrefix(name, "test_") || strings.HasSuffix(name, "_test.py") {
				proj.HasTests = true
			}
		}
		return nil
	})
	if err != nil {
		return proj, err
	}

	sort.Strings(proj.Files)
	return proj, nil
}

// IsPythonProject diz se há algo para analisar no alvo.
func (p PythonProject) IsPythonProject() bool {
	return len(p.Files) > 0
}
