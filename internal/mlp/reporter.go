package mlp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
)

// EpochReport carries the metrics of one finished epoch.
type EpochReport struct {
	Epoch    int // 1-based epoch index
	Epochs   int // Configured epoch count
	Cost     float64
	TrainAcc float64
	ValidAcc float64
}

// Reporter receives progress after every epoch.
//
// Implementations run on the training goroutine and must not retain or
// modify the classifier.
type Reporter interface {
	ReportEpoch(EpochReport)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(EpochReport)

// ReportEpoch calls f(r).
func (f ReporterFunc) ReportEpoch(r EpochReport) {
	f(r)
}

// NopReporter discards all reports.
type NopReporter struct{}

// ReportEpoch does nothing.
func (NopReporter) ReportEpoch(EpochReport) {}

// WriterReporter renders a single carriage-return progress line per epoch:
//
//	042/100 | Cost: 1234.56 | Train/Valid Acc.: 97.50%/96.10%
type WriterReporter struct {
	w io.Writer
}

// NewWriterReporter returns a Reporter writing progress lines to w.
func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{w: w}
}

// ReportEpoch writes the progress line. Write errors are ignored.
func (r *WriterReporter) ReportEpoch(e EpochReport) {
	width := len(strconv.Itoa(e.Epochs))
	_, _ = fmt.Fprintf(r.w, "\r%0*d/%d | Cost: %.2f | Train/Valid Acc.: %.2f%%/%.2f%% ",
		width, e.Epoch, e.Epochs, e.Cost, e.TrainAcc*100, e.ValidAcc*100)
}

// LogReporter emits one structured record per epoch.
type LogReporter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogReporter returns a Reporter logging to logger at info level.
// A nil logger uses slog.Default().
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger, level: slog.LevelInfo}
}

// ReportEpoch logs the epoch metrics.
func (r *LogReporter) ReportEpoch(e EpochReport) {
	r.logger.LogAttrs(context.Background(), r.level, "epoch finished",
		slog.Int("epoch", e.Epoch),
		slog.Int("epochs", e.Epochs),
		slog.Float64("cost", e.Cost),
		slog.Float64("train_acc", e.TrainAcc),
		slog.Float64("valid_acc", e.ValidAcc),
	)
}
