package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sena-ops/pygate/internal/scanner"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Lista as ferramentas registradas e suas etapas",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%-12s %-15s %-15s %s\n", "FERRAMENTA", "ETAPA", "DIMENSÃO", "TIPO")
		for _, t := range scanner.All() {
			kind := "analisador"
			if t.Fixer {
				kind = "fixer"
			}
			fmt.Printf("%-12s %-15s %-15s %s\n", t.Name, t.Stage, t.Dimension, kind)
		}
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
