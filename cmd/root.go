package cmd

import (
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "pygate",
	Short:   "pygate - Quality Gate para projetos Python",
	Version: version,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
