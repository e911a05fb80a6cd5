package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/seatsync"
	"github.com/agentstation/seatsync/pkg/license"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	SeatsyncFunc            func() (seatsync.Seatsync, error)
	SeatsyncWithOptionsFunc func(...seatsync.Option) (seatsync.Seatsync, error)
	TableFunc               func() (*license.Table, error)
	LoggerFunc              func() *zerolog.Logger
	OutputFormatFunc        func() string
	VersionFunc             func() string
	CommitFunc              func() string
	DateFunc                func() string
	BuiltByFunc             func() string
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)

// Seatsync returns an instance using the mock function or nil.
func (m *Mock) Seatsync() (seatsync.Seatsync, error) {
	if m.SeatsyncFunc != nil {
		return m.SeatsyncFunc()
	}
	return nil, nil
}

// SeatsyncWithOptions returns an instance using the mock function or nil.
func (m *Mock) SeatsyncWithOptions(opts ...seatsync.Option) (seatsync.Seatsync, error) {
	if m.SeatsyncWithOptionsFunc != nil {
		return m.SeatsyncWithOptionsFunc(opts...)
	}
	return nil, nil
}

// Table returns a table using the mock function or the default table.
func (m *Mock) Table() (*license.Table, error) {
	if m.TableFunc != nil {
		return m.TableFunc()
	}
	return license.DefaultTable(), nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns a format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}
