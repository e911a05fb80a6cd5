package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"

	"github.com/agentstation/seatsync/pkg/constants"
	"github.com/agentstation/seatsync/pkg/errors"
	"github.com/agentstation/seatsync/pkg/logging"
	"github.com/agentstation/seatsync/pkg/reconcile"
)

// File writes the final pass summary to a report file. The format is
// inferred from the path extension: .yaml or .yml produce YAML, anything
// else produces indented JSON. A write failure never aborts the pass; it is
// logged and retained for Err.
type File struct {
	path   string
	logger *zerolog.Logger
	err    error
}

var _ reconcile.Sink = (*File)(nil)

// FileOption configures a File sink.
type FileOption func(*File)

// WithLogger sets the logger used to report write failures.
func WithLogger(logger *zerolog.Logger) FileOption {
	return func(f *File) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFile creates a file sink writing the summary to path.
func NewFile(path string, opts ...FileOption) *File {
	f := &File{
		path:   path,
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// OnOutcome implements reconcile.Sink. Outcomes are carried by the summary,
// so nothing is written per record.
func (f *File) OnOutcome(reconcile.Outcome) {}

// OnSummary implements reconcile.Sink.
func (f *File) OnSummary(s *reconcile.Summary) {
	data, err := f.marshal(s)
	if err != nil {
		f.err = err
		f.logger.Error().Err(err).Str("path", f.path).Msg("failed to encode report")
		return
	}

	if err := os.WriteFile(f.path, data, constants.FilePermissions); err != nil {
		f.err = errors.WrapIO("write report", f.path, err)
		f.logger.Error().Err(err).Str("path", f.path).Msg("failed to write report")
		return
	}

	f.logger.Info().Str("path", f.path).Msg("report written")
}

// Err returns the first error encountered while writing the report, if any.
func (f *File) Err() error {
	return f.err
}

func (f *File) marshal(s *reconcile.Summary) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(f.path)) {
	case ".yaml", ".yml":
		data, err := yaml.MarshalWithOptions(s,
			yaml.Indent(2),
			yaml.IndentSequence(false),
		)
		if err != nil {
			return nil, errors.WrapParse("yaml", f.path, err)
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, errors.WrapParse("json", f.path, err)
		}
		return append(data, '\n'), nil
	}
}
