package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/disintegration/imaging"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/gridscan/gridscan/internal/grid"
	img "github.com/gridscan/gridscan/internal/imaging"
	"github.com/gridscan/gridscan/internal/ocr"
	"github.com/gridscan/gridscan/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("gridscan %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
	case "--help", "-h", "help":
		usage()
	case "serve":
		if err := runServe(log); err != nil {
			log.Fatal().Err(err).Msg("serve failed")
		}
	case "recognize":
		if err := runRecognize(log, os.Args[2:]); err != nil {
			log.Fatal().Err(err).Msg("recognize failed")
		}
	default:
		// Bare image path is shorthand for the recognize command.
		if err := runRecognize(log, os.Args[1:]); err != nil {
			log.Fatal().Err(err).Msg("recognize failed")
		}
	}
}

func usage() {
	fmt.Println("gridscan - puzzle board photo recognition")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  gridscan recognize [-overlay out.png] [-workers n] <image>")
	fmt.Println("  gridscan serve")
	fmt.Println("  gridscan --version")
	fmt.Println()
	fmt.Println("Environment variables (serve, read from the environment or .env):")
	fmt.Println("  GRIDSCAN_ADDR       listen address (default :8080)")
	fmt.Println("  GRIDSCAN_WORKERS    parallel recognition workers (default 1)")
}

func newRecognizer(workers int) *grid.Recognizer {
	cfg := grid.DefaultConfig()
	if workers > 0 {
		cfg.Workers = workers
	}
	return grid.New(cfg, func() (ocr.Engine, error) {
		return ocr.NewTesseract()
	})
}

func runServe(log zerolog.Logger) error {
	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	addr := os.Getenv("GRIDSCAN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	workers := 1
	if v := os.Getenv("GRIDSCAN_WORKERS"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &workers); err != nil {
			return fmt.Errorf("invalid GRIDSCAN_WORKERS %q: %w", v, err)
		}
	}

	srv := server.New(newRecognizer(workers), log)
	return srv.Run(addr)
}

// recognizeOutput is the CLI's JSON shape, matching the HTTP response.
type recognizeOutput struct {
	Puzzle       string            `json:"puzzle"`
	Confidence   float64           `json:"confidence"`
	Cells        []grid.CellResult `json:"cells"`
	GridLocation [4]int            `json:"grid_location"` // x, y, width, height
}

func runRecognize(log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("recognize", flag.ExitOnError)
	overlayPath := fs.String("overlay", "", "write a diagnostic overlay PNG to this path")
	workers := fs.Int("workers", 1, "parallel recognition workers")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("expected exactly one image path")
	}
	path := fs.Arg(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec := newRecognizer(*workers)
	result, err := rec.RecognizeFile(ctx, path)
	if err != nil {
		return err
	}

	log.Info().
		Str("strategy", string(result.Strategy)).
		Float64("confidence", result.Confidence).
		Msg("recognized board")

	out := recognizeOutput{
		Puzzle:     result.Puzzle,
		Confidence: result.Confidence,
		Cells:      result.Cells,
		GridLocation: [4]int{
			result.Board.Min.X, result.Board.Min.Y,
			result.Board.Dx(), result.Board.Dy(),
		},
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}

	if *overlayPath != "" {
		return writeOverlay(path, *overlayPath, result)
	}
	return nil
}

// writeOverlay renders the detection diagnostics next to the source
// image for eyeballing misdetections.
func writeOverlay(srcPath, outPath string, result *grid.Result) error {
	src, err := img.Open(srcPath)
	if err != nil {
		return err
	}

	shades := make([]img.CellShade, 0, len(result.Cells))
	for _, c := range result.Cells {
		if c.Digit == nil {
			continue
		}
		shades = append(shades, img.CellShade{Row: c.Row, Col: c.Col, Confidence: c.Confidence})
	}

	overlay := img.Overlay(src, result.Board, shades)
	return imaging.Save(overlay, outPath)
}
