package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sena-ops/pygate/internal/logging"
	"github.com/Sena-ops/pygate/internal/storage"
)

var (
	historyDB     string
	historyLimit  int
	historyMetric string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Lista execuções passadas e a evolução de uma métrica",
	Run: func(cmd *cobra.Command, args []string) {
		logging.InitLogger(debugMode)
		log := logging.L()

		db, err := storage.OpenSQLite(historyDB)
		if err != nil {
			log.Errorw("Erro ao abrir histórico", "erro", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.CreateSchema(); err != nil {
			log.Errorw("Erro ao preparar schema", "erro", err)
			os.Exit(1)
		}

		if historyMetric != "" {
			points, err := db.Trend(historyMetric, historyLimit)
			if err != nil {
				log.Errorw("Erro ao consultar tendência", "erro", err)
				os.Exit(1)
			}
			fmt.Printf("Tendência de %s:\n", historyMetric)
			var prev float64
			hasPrev := false
			for _, p := range points {
				if !p.Measured {
					fmt.Printf("  %s  %s  (não medida)\n", p.StartedAt.Format("2006-01-02 15:04"), p.RunID)
					continue
				}
				delta := ""
				if hasPrev {
					delta = fmt.Sprintf("  (%+.2f)", p.Value-prev)
				}
				fmt.Printf("  %s  %s  %.2f%s\n", p.StartedAt.Format("2006-01-02 15:04"), p.RunID, p.Value, delta)
				prev, hasPrev = p.Value, true
			}
			return
		}

		runs, err := db.ListRuns(historyLimit)
		if err != nil {
			log.Errorw("Erro ao listar execuções", "erro", err)
			os.Exit(1)
		}
		if len(runs) == 0 {
			fmt.Println("Nenhuma execução registrada.")
			return
		}
		fmt.Printf("%-25s %-18s %-12s %-9s %s\n", "ID", "INÍCIO", "ESTADO", "FINDINGS", "ALVO")
		for _, r := range runs {
			fmt.Printf("%-25s %-18s %-12s %-9d %s\n",
				r.ID, r.StartedAt.Format("2006-01-02 15:04"), r.State, r.Findings, r.Target)
		}
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyDB, "db", "./pygate.db", "Banco SQLite do histórico")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Quantidade de execuções")
	historyCmd.Flags().StringVar(&historyMetric, "metric", "", "Métrica para tendência (ex: coverage.percent)")
	rootCmd.AddCommand(historyCmd)
}
