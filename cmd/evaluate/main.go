package main

import (
	"context"
	"flag"
	"os"

	"github.com/okian/veritas/internal/domain/evaluate"
	"github.com/okian/veritas/internal/reportio"
	"github.com/okian/veritas/pkg/logger"
)

const defaultOutputDir = "output"

func main() {
	var (
		goldPath        = flag.String("gold", "", "Path to the gold-standard JSON document (required)")
		predPath        = flag.String("pred", "", "Path to the prediction JSON document (required)")
		validationsPath = flag.String("validations", "", "Optional path to a reviewer validation file")
		outputDir       = flag.String("output", defaultOutputDir, "Directory for the evaluation report")
		quiet           = flag.Bool("quiet", false, "Suppress the console summary")
	)
	flag.Parse()

	if *goldPath == "" || *predPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx := context.Background()
	log := logger.Get()

	gold, err := reportio.LoadRecord(*goldPath)
	if err != nil {
		log.Error(ctx, "cannot load gold document", logger.Error(err))
		os.Exit(1)
	}
	pred, err := reportio.LoadRecord(*predPath)
	if err != nil {
		log.Error(ctx, "cannot load prediction document", logger.Error(err))
		os.Exit(1)
	}

	// Missing or malformed validation files only log a warning.
	validations := reportio.LoadValidations(ctx, *validationsPath, log)

	report := evaluate.New().Evaluate(gold, pred, validations)

	if !*quiet {
		reportio.WriteSummary(os.Stdout, report)
	}

	path := reportio.ReportPath(*outputDir, *predPath)
	if err := reportio.WriteReport(path, report); err != nil {
		log.Error(ctx, "cannot write report", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "report written", logger.String("path", path))
}
