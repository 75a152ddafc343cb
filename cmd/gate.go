package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Sena-ops/pygate/internal/config"
	"github.com/Sena-ops/pygate/internal/logging"
	"github.com/Sena-ops/pygate/internal/orchestrator"
	"github.com/Sena-ops/pygate/internal/report"
	"github.com/Sena-ops/pygate/internal/sarif"
	"github.com/Sena-ops/pygate/internal/storage"
)

var (
	configPath     string
	outDir         string
	outputFormat   string
	debugMode      bool
	applyFixes     bool
	parallelism    int
	retryCount     int
	abortOnFailure bool
	dbPath         string
	noHistory      bool
)

var logger *zap.SugaredLogger

// Exit codes: 0 = gate passou, 2 = gate reprovou, 3 = abortado por erro de
// execução/configuração.
const (
	exitGateFailed = 2
	exitAborted    = 3
)

var gateCmd = &cobra.Command{
	Use:   "gate [caminho]",
	Short: "Executa o quality gate completo contra um projeto Python",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logging.InitLogger(debugMode)
		logger = logging.L()
		defer func() { _ = logger.Sync() }()

		target := args[0]

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			logger.Errorw("Erro ao carregar configuração", "erro", err)
			os.Exit(exitAborted)
		}
		// Precedência: flags > env > arquivo > padrão.
		if cmd.Flags().Changed("parallelism") {
			cfg.Run.Parallelism = parallelism
		}
		if cmd.Flags().Changed("retry-count") {
			cfg.Run.RetryCount = retryCount
		}
		if cmd.Flags().Changed("abort-on-failure") {
			cfg.Run.AbortOnFirstFailure = abortOnFailure
		}
		if cmd.Flags().Changed("out") {
			cfg.Reporting.OutDir = outDir
		}
		if cmd.Flags().Changed("db") {
			cfg.Database.DSN = dbPath
		}
		cfg.Run.Fix = applyFixes

		orch, err := orchestrator.New(cfg, logger)
		if err != nil {
			// Threshold malformado reprova a execução inteira antes de
			// qualquer ferramenta rodar.
			logger.Errorw("Configuração inválida", "erro", err)
			os.Exit(exitAborted)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Infof("Iniciando quality gate: %s", target)
		outcome, err := orch.Run(ctx, target, cfg.Reporting.OutDir)
		if err != nil {
			if errors.Is(err, orchestrator.ErrAborted) {
				logger.Warnw("Execução abortada, resultados parciais descartados", "erro", err)
			} else {
				logger.Errorw("Erro ao executar o gate", "erro", err)
			}
			os.Exit(exitAborted)
		}

		if err := report.Generate(cfg.Reporting.OutDir, outcome.Report, outcome.Verdict); err != nil {
			logger.Errorw("Erro ao salvar relatórios", "erro", err)
			os.Exit(exitAborted)
		}

		if !noHistory {
			saveHistory(cfg.Database.DSN, outcome)
		}

		switch strings.ToLower(outputFormat) {
		case "json":
			doc := report.Document{Report: outcome.Report, Verdict: outcome.Verdict}
			encoded, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				logger.Errorw("Erro ao gerar JSON", "erro", err)
				os.Exit(exitAborted)
			}
			fmt.Println(string(encoded))

		case "sarif":
			path, err := sarif.Export(outcome.Report.Findings, cfg.Reporting.OutDir, "pygate", version)
			if err != nil {
				logger.Errorw("Erro ao gerar SARIF", "erro", err)
				os.Exit(exitAborted)
			}
			logger.Infow("SARIF salvo", "arquivo", path)

		default:
			fmt.Println(report.RenderConsole(outcome.Report, outcome.Verdict))
		}

		if !outcome.Verdict.Passed {
			os.Exit(exitGateFailed)
		}
	},
}

// saveHistory é best-effort: falha de histórico não muda o veredito.
func saveHistory(dsn string, outcome orchestrator.Outcome) {
	db, err := storage.OpenSQLite(dsn)
	if err != nil {
		logger.Warnw("Histórico indisponível", "erro", err)
		return
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		logger.Warnw("Erro ao preparar schema do histórico", "erro", err)
		return
	}
	id := fmt.Sprintf("run-%d", time.Now().UnixNano())
	if err := db.InsertRun(id, outcome.Report, outcome.Verdict, outcome.State); err != nil {
		logger.Warnw("Erro ao registrar execução no histórico", "erro", err)
		return
	}
	logger.Infow("Execução registrada", "id", id)
}

func init() {
	gateCmd.Flags().StringVarP(&configPath, "config", "c", "", "Caminho do pygate.yaml (opcional)")
	gateCmd.Flags().StringVar(&outDir, "out", "./pygate_out", "Diretório de saída dos relatórios")
	gateCmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Formato da saída (json, sarif; padrão: console)")
	gateCmd.Flags().BoolVar(&debugMode, "debug", false, "Habilita logs em nível debug")
	gateCmd.Flags().BoolVar(&applyFixes, "fix", false, "Aplica fixers (pyupgrade) antes da análise")
	gateCmd.Flags().IntVar(&parallelism, "parallelism", 2, "Ferramentas analisadoras em paralelo")
	gateCmd.Flags().IntVar(&retryCount, "retry-count", 1, "Reexecuções para falhas transientes")
	gateCmd.Flags().BoolVar(&abortOnFailure, "abort-on-failure", false, "Para na primeira etapa reprovada")
	gateCmd.Flags().StringVar(&dbPath, "db", "./pygate.db", "Banco SQLite do histórico")
	gateCmd.Flags().BoolVar(&noHistory, "no-history", false, "Não registra a execução no histórico")
	rootCmd.AddCommand(gateCmd)
}
