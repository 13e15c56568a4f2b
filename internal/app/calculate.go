package app

import (
	"context"
	"io"
	"time"

	"github.com/agbru/cicalc/internal/cli"
	apperrors "github.com/agbru/cicalc/internal/errors"
	"github.com/agbru/cicalc/internal/estimate"
	"github.com/agbru/cicalc/internal/logging"
)

// runCalculate computes the estimate once and prints it.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	if err := ctx.Err(); err != nil {
		return cli.HandleError(err, a.ErrWriter)
	}

	if !a.Config.Quiet && !a.Config.JSON {
		cli.PrintExecutionConfig(a.Config, out)
	}

	in := a.Config.ToInput()
	start := time.Now()
	res, err := estimate.ComputeLevels(in, a.Config.Levels)
	duration := time.Since(start)
	if err != nil {
		a.Logger.Error("estimate rejected", err,
			logging.Int64("population", in.PopulationSize),
			logging.Int64("sample", in.SampleSize),
			logging.Float64("proportion", in.Proportion),
		)
		return cli.HandleError(apperrors.CalculationError{Cause: err}, a.ErrWriter)
	}
	a.Logger.Debug("estimate computed",
		logging.Int64("population", in.PopulationSize),
		logging.Int64("sample", in.SampleSize),
		logging.Float64("proportion", in.Proportion),
		logging.Float64("standard_error", res.StandardError),
		logging.Duration("duration", duration),
	)

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		JSON:       a.Config.JSON,
	}
	if err := cli.DisplayResultWithConfig(out, res, duration, outputCfg); err != nil {
		a.Logger.Error("write result", err, logging.String("output", a.Config.OutputFile))
		return cli.HandleError(err, a.ErrWriter)
	}
	return apperrors.ExitSuccess
}
