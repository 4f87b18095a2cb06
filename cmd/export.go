package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inglebright-earth/my-dash-a/internal/store"
)

var (
	exportPointsPath    string
	exportSummariesPath string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the accumulated dataset to CSV files",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if exportPointsPath == "" && exportSummariesPath == "" {
			return eris.New("nothing to export: pass --points and/or --summaries")
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if exportPointsPath != "" {
			points, err := st.Points(ctx)
			if err != nil {
				return err
			}
			if err := writeCSVFile(exportPointsPath, func(f *os.File) error {
				return store.WritePointsCSV(f, points)
			}); err != nil {
				return err
			}
			zap.L().Info("points exported",
				zap.String("path", exportPointsPath),
				zap.Int("rows", len(points)),
			)
		}

		if exportSummariesPath != "" {
			summaries, err := st.Summaries(ctx)
			if err != nil {
				return err
			}
			if err := writeCSVFile(exportSummariesPath, func(f *os.File) error {
				return store.WriteSummariesCSV(f, summaries)
			}); err != nil {
				return err
			}
			zap.L().Info("summaries exported",
				zap.String("path", exportSummariesPath),
				zap.Int("rows", len(summaries)),
			)
		}

		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportPointsPath, "points", "", "output path for classified points CSV")
	exportCmd.Flags().StringVar(&exportSummariesPath, "summaries", "", "output path for country summaries CSV")
	rootCmd.AddCommand(exportCmd)
}

func writeCSVFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
