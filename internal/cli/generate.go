// Package cli implements the offline subcommands: batch generation without
// a running server.
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dkotenko/labelforge/internal/archive"
	"github.com/dkotenko/labelforge/internal/batch"
	"github.com/dkotenko/labelforge/internal/session"
	"github.com/dkotenko/labelforge/internal/upc"
)

// GenerateCommand renders a code list straight to a zip archive.
type GenerateCommand struct {
	InputPath   string
	OutputPath  string
	WidthCm     float64
	HeightCm    float64
	Format      string
	ShowNumbers bool
	DPI         float64
	Verbose     bool
}

func NewGenerateCommand() *GenerateCommand {
	return &GenerateCommand{}
}

func (cmd *GenerateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)

	fs.StringVar(&cmd.InputPath, "input", "", "Path to a plaintext code list, one UPC-A number per line (required)")
	fs.StringVar(&cmd.OutputPath, "output", "", "Path for the output zip archive (default barcodes.<format>.zip)")
	fs.Float64Var(&cmd.WidthCm, "width", session.DefaultWidthCm, "Label width in centimeters")
	fs.Float64Var(&cmd.HeightCm, "height", session.DefaultHeightCm, "Label height in centimeters")
	fs.StringVar(&cmd.Format, "format", string(upc.FormatPNG), "Output format: png or svg")
	fs.BoolVar(&cmd.ShowNumbers, "show-numbers", true, "Print the digits under the bars")
	fs.Float64Var(&cmd.DPI, "dpi", upc.DefaultDPI, "Render resolution in dots per inch")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s generate -input <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Render a list of UPC-A codes to barcode images and pack them into a zip.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Render codes.txt with defaults:\n")
		fmt.Fprintf(os.Stderr, "  %s generate -input codes.txt\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # 5x3 cm SVG labels without digits:\n")
		fmt.Fprintf(os.Stderr, "  %s generate -input codes.txt -width 5 -height 3 -format svg -show-numbers=false\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.InputPath == "" {
		return fmt.Errorf("required flag -input not provided")
	}

	if _, err := upc.ParseFormat(cmd.Format); err != nil {
		return err
	}

	if cmd.OutputPath == "" {
		cmd.OutputPath = archive.FileName(upc.Format(cmd.Format))
	}

	return nil
}

func (cmd *GenerateCommand) Run() error {
	file, err := os.Open(cmd.InputPath)
	if err != nil {
		return fmt.Errorf("failed to open code list: %w", err)
	}

	entries, err := session.ParseEntries(file)
	file.Close()
	if err != nil {
		return fmt.Errorf("failed to read code list: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No codes found in input file")
		return nil
	}

	valid := session.CountValid(entries)
	fmt.Printf("Found %d codes, %d valid\n", len(entries), valid)

	if cmd.Verbose {
		for _, e := range entries {
			if !e.Valid {
				fmt.Printf("  skipping %q: %s\n", e.Number, e.Error)
			}
		}
	}

	if valid == 0 {
		return fmt.Errorf("no valid codes to render")
	}

	format, _ := upc.ParseFormat(cmd.Format)

	size := session.SizeSetting{}
	size.LockRatio = false
	size.SetWidth(cmd.WidthCm)
	size.SetHeight(cmd.HeightCm)

	snap := batch.NewSnapshot(size, session.RenderSettings{
		ShowNumbers: cmd.ShowNumbers,
		Format:      format,
	}, cmd.DPI)

	runner := batch.NewRunner(0, 0, 0)

	started := time.Now()
	entries, err = runner.Run(context.Background(), entries, snap, func(p session.Progress, _ []session.Entry) {
		if cmd.Verbose {
			fmt.Printf("  rendered %d/%d\n", p.Current, p.Total)
		}
	})
	if err != nil {
		return fmt.Errorf("generation interrupted: %w", err)
	}

	rendered := session.CountRendered(entries)
	fmt.Printf("Rendered %d/%d barcodes in %s\n", rendered, valid, time.Since(started).Round(time.Millisecond))

	for _, e := range entries {
		if e.Error == batch.GenerationFailed {
			fmt.Printf("  failed %q\n", e.Number)
		}
	}

	if rendered == 0 {
		return fmt.Errorf("no barcodes rendered, nothing to export")
	}

	blob, err := archive.Build(entries, format)
	if err != nil {
		return fmt.Errorf("failed to build archive: %w", err)
	}

	if err := os.WriteFile(cmd.OutputPath, blob, 0o644); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	fmt.Printf("Wrote %s (%d files)\n", cmd.OutputPath, rendered)
	return nil
}
