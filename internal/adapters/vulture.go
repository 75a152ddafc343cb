package adapters

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Sena-ops/pygate/internal/model"
)

// Formato de linha do vulture:
//
//	caminho/arquivo.py:12: unused variable 'x' (60% confidence)
var vultureLine = regexp.MustCompile(`^(.+?):(\d+): (unused \S+) (.+) \((\d+)% confidence\)$`)

// ParseVultureBytes converte a saída linha-a-linha do vulture em findings de
// código morto. Linha fora do formato é erro de schema (drift de versão).
func ParseVultureBytes(b []byte) ([]model.Finding, map[string]float64, error) {
	var out []model.Finding

	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		m := vultureLine.FindStringSubmatch(line)
		if m == nil {
			return nil, nil, fmt.Errorf("linha inesperada do vulture: %q", line)
		}
		lineNo, _ := strconv.Atoi(m[2])
		confidence, _ := strconv.Atoi(m[5])

		out = append(out, model.Finding{
			ToolName:  "vulture",
			Dimension: model.DimDeadCode,
			RuleID:    strings.ReplaceAll(m[3], " ", "-"), // "unused-variable"
			Severity:  vultureSeverity(confidence),
			Message:   fmt.Sprintf("%s %s", m[3], m[4]),
			FilePath:  cleanPath(m[1]),
			StartLine: safeLine(lineNo),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	return out, nil, nil
}

func vultureSeverity(confidence int) model.Severity {
	if confidence >= 90 {
		return model.SevMedium
	}
	return model.SevLow
}
