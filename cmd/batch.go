package main

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/inglebright-earth/my-dash-a/internal/pipeline"
	"github.com/inglebright-earth/my-dash-a/internal/store"
	"github.com/inglebright-earth/my-dash-a/internal/survey"
)

var (
	batchDir          string
	batchConcurrency  int
	batchPointsOut    string
	batchSummariesOut string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Classify every extract in a directory and append them to the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		files, err := listExtracts(batchDir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			zap.L().Info("no extracts found", zap.String("dir", batchDir))
			return nil
		}

		countries, err := loadCountries()
		if err != nil {
			return err
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		zap.L().Info("processing batch",
			zap.Int("extracts", len(files)),
			zap.Int("concurrency", batchConcurrency),
		)

		// Classification runs concurrently; appends are serialized so
		// runs land in a stable order.
		var (
			mu                 sync.Mutex
			succeeded, skipped atomic.Int64
		)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(batchConcurrency)

		for _, file := range files {
			g.Go(func() error {
				log := zap.L().With(zap.String("file", file))

				year, err := survey.YearFromFilename(filepath.Base(file))
				if err != nil {
					return err
				}

				raw, err := survey.Read(file, csvOptions())
				if err != nil {
					return err
				}

				points, summaries, err := pipeline.Process(raw, countries, year)
				if err != nil {
					return eris.Wrapf(err, "process %s", file)
				}

				mu.Lock()
				runID, err := st.AppendRun(gctx, filepath.Base(file), points, summaries)
				mu.Unlock()
				if errors.Is(err, store.ErrDuplicateCountryYear) {
					skipped.Add(1)
					log.Warn("already in dataset, skipping", zap.Error(err))
					return nil
				}
				if err != nil {
					return err
				}

				succeeded.Add(1)
				log.Info("extract appended",
					zap.String("run_id", runID),
					zap.Int("year", year),
					zap.Int("points", len(points)),
				)
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "batch processing")
		}

		summaries, err := st.Summaries(ctx)
		if err != nil {
			return err
		}
		zap.L().Info("batch complete",
			zap.Int64("appended", succeeded.Load()),
			zap.Int64("skipped", skipped.Load()),
			zap.Int("country_years", len(summaries)),
		)

		if batchPointsOut != "" {
			points, err := st.Points(ctx)
			if err != nil {
				return err
			}
			if err := writeCSVFile(batchPointsOut, func(f *os.File) error {
				return store.WritePointsCSV(f, points)
			}); err != nil {
				return err
			}
		}
		if batchSummariesOut != "" {
			if err := writeCSVFile(batchSummariesOut, func(f *os.File) error {
				return store.WriteSummariesCSV(f, summaries)
			}); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchDir, "dir", "", "directory of yearly extracts")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "max extracts processed in parallel")
	batchCmd.Flags().StringVar(&batchPointsOut, "points", "", "also export accumulated points CSV to this path")
	batchCmd.Flags().StringVar(&batchSummariesOut, "summaries", "", "also export accumulated summaries CSV to this path")
	batchCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(batchCmd)
}

// listExtracts returns the supported extract files in dir, sorted by name.
func listExtracts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "read extract dir %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".xlsx", ".shp":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
