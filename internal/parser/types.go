package parser

// PythonProject descreve o que foi detectado no diretório alvo.
type PythonProject struct {
	Files        []string // arquivos .py, caminhos absolutos ordenados
	HasPyproject bool
	HasSetupCfg  bool
	HasTests     bool // algum test_*.py ou *_test.py
}
