package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/user/pq_analyzer_go/internal/analysis"
	"github.com/user/pq_analyzer_go/internal/config"
	"github.com/user/pq_analyzer_go/internal/notify"
	"github.com/user/pq_analyzer_go/internal/report"
)

func runCmd() *cobra.Command {
	var (
		mapName     string
		facility    string
		outDir      string
		baselineCSV string
		configPath  string

		emailTo  string
		smtpHost string
		smtpPort int
		smtpUser string
		smtpPass string
	)

	cmd := &cobra.Command{
		Use:   "run <csv>",
		Short: "Analyze a current export and generate the risk report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			csvPath := args[0]

			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			outcome, err := analysis.New(cfg).Run(csvPath, mapName, baselineCSV)
			if err != nil {
				return err
			}

			pdfPath, err := report.Build(outDir, facility, outcome)
			if err != nil {
				return err
			}
			log.Info().Str("pdf", pdfPath).Msg("report generated")

			if emailTo != "" {
				err := notify.SendReport(notify.EmailConfig{
					Host:     smtpHost,
					Port:     smtpPort,
					Username: smtpUser,
					Password: smtpPass,
					To:       emailTo,
					Subject:  fmt.Sprintf("Power quality risk report: %s", facility),
					Body: fmt.Sprintf("Facility risk score: %d/100 (%s). Report attached.",
						outcome.FacilityScore, outcome.Band),
				}, pdfPath)
				if err != nil {
					// report already exists on disk; delivery is best-effort
					log.Warn().Err(err).Str("to", emailTo).Msg("email delivery failed")
				}
			}

			fmt.Printf("Facility risk score: %d/100 (%s) [%s]\n",
				outcome.FacilityScore, outcome.Band, outcome.Mode)
			return nil
		},
	}

	cmd.Flags().StringVar(&mapName, "map", "auto", "column mapping template (auto, default, apc_like, vertiv_like, eaton_like)")
	cmd.Flags().StringVar(&facility, "facility", "Unknown Facility", "facility name shown in the report")
	cmd.Flags().StringVar(&outDir, "out-dir", "data/outputs", "output folder for charts and the PDF")
	cmd.Flags().StringVar(&baselineCSV, "baseline", "", "optional baseline CSV for risk delta comparison")
	cmd.Flags().StringVar(&configPath, "config", "", "optional YAML settings file")

	cmd.Flags().StringVar(&emailTo, "email-to", "", "email the finished report to this address")
	cmd.Flags().StringVar(&smtpHost, "smtp-host", "", "SMTP host for report delivery")
	cmd.Flags().IntVar(&smtpPort, "smtp-port", 465, "SMTP port")
	cmd.Flags().StringVar(&smtpUser, "smtp-user", "", "SMTP username")
	cmd.Flags().StringVar(&smtpPass, "smtp-pass", "", "SMTP password")

	return cmd
}
