package cmd

import (
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sena-ops/pygate/internal/api"
	"github.com/Sena-ops/pygate/internal/logging"
	"github.com/Sena-ops/pygate/internal/storage"
)

var (
	serveAddr string
	serveDB   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expõe o histórico de execuções via HTTP (somente leitura)",
	Run: func(cmd *cobra.Command, args []string) {
		logging.InitLogger(debugMode)
		log := logging.L()

		db, err := storage.OpenSQLite(serveDB)
		if err != nil {
			log.Errorw("Erro ao abrir histórico", "erro", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.CreateSchema(); err != nil {
			log.Errorw("Erro ao preparar schema", "erro", err)
			os.Exit(1)
		}

		srv := &api.Server{DB: db, Log: log}
		httpServer := &http.Server{
			Addr:         serveAddr,
			Handler:      srv.Routes(),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		}

		log.Infof("API ouvindo em %s", serveAddr)
		if err := httpServer.ListenAndServe(); err != nil {
			log.Errorw("Servidor encerrado", "erro", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Endereço de escuta")
	serveCmd.Flags().StringVar(&serveDB, "db", "./pygate.db", "Banco SQLite do histórico")
	rootCmd.AddCommand(serveCmd)
}
