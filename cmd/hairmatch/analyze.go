package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/audit"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/batch"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/config"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/face"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <photo|folder> [photo|folder...]",
	Short: "Analyze face shapes in photos",
	Long: `Detect the face in each photo, classify its shape and print the
recommended hairstyles. Folders are scanned for jpg, jpeg, png and webp files.
Shapes marked * were picked at random because the provider returned no
usable landmarks.

Examples:
  # Analyze a single photo
  hairmatch analyze selfie.jpg

  # Analyze every photo under a folder, 8 at a time, as JSON
  hairmatch analyze -r --concurrency 8 --json ./photos`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolP("recursive", "r", false, "Search folders recursively")
	analyzeCmd.Flags().Bool("json", false, "Output as JSON")
	analyzeCmd.Flags().Int("concurrency", 4, "Number of parallel workers")
	analyzeCmd.Flags().Bool("audit", false, "Write audit events to stderr")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	recursive := mustGetBool(cmd, "recursive")
	jsonOutput := mustGetBool(cmd, "json")
	concurrency := mustGetInt(cmd, "concurrency")

	files, err := batch.CollectImages(args, recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "No image files found.")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	engine, err := face.NewEngine(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	landmarkProvider, err := face.NewLandmarkProvider(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create landmark provider: %w", err)
	}

	analyzer := batch.New(engine, landmarkProvider, concurrency)
	if mustGetBool(cmd, "audit") {
		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
		analyzer.WithAuditLogger(audit.NewSlogLogger(logger))
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Analyzing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("photos"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	results := analyzer.AnalyzeFiles(ctx, files, func(batch.Result) {
		_ = bar.Add(1)
	})
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	if jsonOutput {
		if err := outputJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	} else {
		outputTable(cmd.OutOrStdout(), results)
	}

	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}

	fmt.Fprintf(os.Stderr, "%d analyzed, %d failed\n", len(results)-failed, failed)
	if failed == len(results) {
		return errors.New("no photo could be analyzed")
	}
	return nil
}

func outputJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

func outputTable(out io.Writer, results []batch.Result) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PHOTO\tSHAPE\tCONFIDENCE\tFOREHEAD\tJAWLINE\tCHEEKBONES\tRECOMMENDED")
	fmt.Fprintln(w, "-----\t-----\t----------\t--------\t-------\t----------\t-----------")

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "%s\terror: %s\t\t\t\t\t\n", res.Path, res.Error)
			continue
		}

		a := res.Analysis
		shape := string(a.FaceShape)
		if a.Fallback {
			shape += "*"
		}

		fmt.Fprintf(w, "%s\t%s\t%d%%\t%s\t%s\t%s\t%s\n",
			res.Path,
			shape,
			a.Recommendations.Confidence,
			a.Features.Forehead,
			a.Features.Jawline,
			a.Features.Cheekbones,
			strings.Join(a.Recommendations.Recommended, ", "),
		)
	}

	_ = w.Flush()
}
