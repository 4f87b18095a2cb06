package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inglebright-earth/my-dash-a/internal/pipeline"
	"github.com/inglebright-earth/my-dash-a/internal/survey"
)

var (
	processFile string
	processYear int
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Classify a single yearly extract and append it to the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		year := processYear
		if year == 0 {
			y, err := survey.YearFromFilename(filepath.Base(processFile))
			if err != nil {
				return err
			}
			year = y
		}

		countries, err := loadCountries()
		if err != nil {
			return err
		}

		raw, err := survey.Read(processFile, csvOptions())
		if err != nil {
			return err
		}

		points, summaries, err := pipeline.Process(raw, countries, year)
		if err != nil {
			return err
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		runID, err := st.AppendRun(ctx, filepath.Base(processFile), points, summaries)
		if err != nil {
			return err
		}

		zap.L().Info("extract appended",
			zap.String("run_id", runID),
			zap.String("file", processFile),
			zap.Int("year", year),
			zap.Int("points", len(points)),
		)
		return nil
	},
}

func init() {
	processCmd.Flags().StringVar(&processFile, "file", "", "extract file (.csv, .xlsx, or .shp)")
	processCmd.Flags().IntVar(&processYear, "year", 0, "survey year (default: derived from filename)")
	processCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(processCmd)
}
