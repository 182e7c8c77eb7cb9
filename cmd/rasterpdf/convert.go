// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rasterpdf/internal/assemble"
	"github.com/pdiddy/rasterpdf/internal/convert"
	"github.com/pdiddy/rasterpdf/internal/raster"
	"github.com/pdiddy/rasterpdf/internal/session"
	"github.com/pdiddy/rasterpdf/pkg/types"
)

const (
	defaultQuality  = string(types.QualityMedium)
	defaultPageSize = "a4"
)

var convertCmd = &cobra.Command{
	Use:   "convert [file.pdf]",
	Short: "Rasterize a PDF and reassemble it as an image-only PDF",
	Long: `Convert renders every page of the source PDF to a JPEG image at the
selected quality tier and assembles the images into a new PDF, one page per
image, aspect-fit and centered on the output page. A render failure on any
page aborts the run; no partial output document is written.

The output is named by replacing the source's .pdf suffix with
_image-only.pdf unless --output is given.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("quality", "", "quality tier: high, medium, or low (default medium)")
	convertCmd.Flags().String("page-size", "", "output page format: a4 or letter (default a4)")
	convertCmd.Flags().StringP("output", "o", "", "output file path (default: derived from the source name)")
	convertCmd.Flags().String("out-dir", "", "directory for the output document (default: source directory)")
	convertCmd.Flags().Bool("report", false, "write a YAML run report next to the output")
	convertCmd.Flags().Bool("quiet", false, "suppress the progress bar")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one PDF file to convert")
	}
	srcPath := args[0]

	tier, err := types.ParseQualityTier(stringSetting(cmd, "quality", "conversion.quality", defaultQuality))
	if err != nil {
		return err
	}
	sizeName := stringSetting(cmd, "page-size", "assembly.page_size", defaultPageSize)
	size, err := assemble.ParsePageSize(sizeName)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcPath, err)
	}
	src, err := raster.Open(data, filepath.Base(srcPath))
	if err != nil {
		return fmt.Errorf("opening %s: %w", srcPath, err)
	}

	sess := session.New()
	if err := sess.Load(src); err != nil {
		src.Close()
		return err
	}
	defer sess.Close()
	if err := sess.SetQuality(tier); err != nil {
		return err
	}

	// Ctrl-C stops the run between pages; the in-flight page always
	// completes or fails cleanly first.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	quiet, _ := cmd.Flags().GetBool("quiet")
	var onProgress convert.ProgressFunc
	if !quiet {
		bar := newProgressBar(int64(src.PageCount()), "rasterizing "+src.Name())
		onProgress = func(snap types.Snapshot) {
			_ = bar.Set(snap.PagesDone)
			if snap.Status == types.StatusCompleted {
				_ = bar.Finish()
			}
		}
	}

	start := time.Now()
	if err := convert.Run(ctx, sess, onProgress); err != nil {
		return fmt.Errorf("converting %s: %w", src.Name(), err)
	}
	elapsed := time.Since(start)

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		outDir := stringSetting(cmd, "out-dir", "output.dir", filepath.Dir(srcPath))
		outPath = filepath.Join(outDir, assemble.OutputName(src.Name()))
	}

	doc, err := assemble.Assemble(sess.Pages(), size)
	if err != nil {
		return fmt.Errorf("assembling %s: %w", src.Name(), err)
	}
	if err := writeDocument(doc, outPath); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "converted: %s (%d pages, %s quality) -> %s\n",
		src.Name(), len(doc.Pages), tier, outPath)

	if boolSetting(cmd, "report", "output.report") {
		rep := types.RunReport{
			Source:      src.Name(),
			Output:      outPath,
			Quality:     tier,
			Pages:       len(doc.Pages),
			PageSize:    sizeName,
			ConvertedAt: time.Now().UTC(),
			Elapsed:     elapsed.Round(time.Millisecond).String(),
		}
		if err := writeReport(rep, outPath); err != nil {
			return err
		}
	}
	return nil
}

// writeDocument encodes the assembled document to outPath.
func writeDocument(doc *assemble.Document, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if err := doc.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", outPath, err)
	}
	return nil
}

// writeReport writes the run report YAML next to the output document.
func writeReport(rep types.RunReport, outPath string) error {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshalling run report: %w", err)
	}
	path := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".report.yaml"
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run report: %w", err)
	}
	fmt.Fprintf(os.Stdout, "report: %s\n", path)
	return nil
}

// stringSetting resolves a setting from flag, then config file, then default.
func stringSetting(cmd *cobra.Command, flag, key, fallback string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

// boolSetting resolves a bool setting; an explicit flag wins over config.
func boolSetting(cmd *cobra.Command, flag, key string) bool {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetBool(flag)
		return v
	}
	return viper.GetBool(key)
}

// newProgressBar builds the per-page progress display.
func newProgressBar(total int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("pages"),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
	)
}
