package roster

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/agentstation/seatsync/pkg/errors"
	"github.com/agentstation/seatsync/pkg/logging"
)

// Column headers are normalized (lowercased, trimmed, separators collapsed
// to spaces) and then resolved through this alias table. Directory exports
// disagree on header spelling, so the table is deliberately loose.
var headerFields = map[string]string{
	"email":        fieldEmail,
	"e mail":       fieldEmail,
	"user email":   fieldEmail,
	"username":     fieldEmail,
	"name":         fieldName,
	"display name": fieldName,
	"full name":    fieldName,
	"license":      fieldLicense,
	"license type": fieldLicense,
	"seat type":    fieldLicense,
	"tier":         fieldLicense,
	"status":       fieldStatus,
	"source":       fieldSource,
	"created":      fieldCreated,
	"created at":   fieldCreated,
	"date added":   fieldCreated,
	"last seen":    fieldLastSeen,
	"last seen at": fieldLastSeen,
	"last active":  fieldLastSeen,
}

const (
	fieldEmail    = "email"
	fieldName     = "name"
	fieldLicense  = "license"
	fieldStatus   = "status"
	fieldSource   = "source"
	fieldCreated  = "created"
	fieldLastSeen = "last_seen"
)

// Reader parses roster CSV files into Records.
type Reader struct {
	logger *zerolog.Logger
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithLogger sets the logger used for row-level warnings.
func WithLogger(logger *zerolog.Logger) ReaderOption {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReader returns a Reader.
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{logger: logging.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadFile loads records from a CSV file, preserving file order.
func (r *Reader) ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read roster", path, err)
	}
	records, err := r.read(data, path)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Read loads records from an open CSV stream, preserving input order.
func (r *Reader) Read(src io.Reader) ([]Record, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.WrapIO("read roster", "", err)
	}
	return r.read(data, "")
}

func (r *Reader) read(data []byte, path string) ([]Record, error) {
	decoded, enc, err := decode(data)
	if err != nil {
		return nil, &errors.ParseError{
			Format:  "csv",
			File:    path,
			Message: "unable to decode file",
			Err:     err,
		}
	}
	if enc != "utf-8" {
		r.logger.Debug().Str("encoding", enc).Str("file", path).Msg("transcoded roster to utf-8")
	}

	cr := csv.NewReader(bytes.NewReader(decoded))
	// Column counts vary across export tools; pad or truncate ourselves.
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &errors.ParseError{
				Format:  "csv",
				File:    path,
				Message: "empty file, no header row",
			}
		}
		return nil, errors.WrapParse("csv", path, err)
	}

	columns, err := mapColumns(header, path)
	if err != nil {
		return nil, err
	}

	var (
		records []Record
		dropped int
		skipped int
	)
	row := 1 // header is row 1; data rows start at 2

	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++

		if err != nil {
			skipped++
			r.logger.Warn().Int("row", row).Err(err).Msg("skipping malformed roster row")
			continue
		}

		if len(fields) != len(header) {
			if len(fields) < len(header) {
				r.logger.Warn().
					Int("row", row).
					Int("columns", len(fields)).
					Int("expected", len(header)).
					Msg("roster row short, padding with empty values")
				padded := make([]string, len(header))
				copy(padded, fields)
				fields = padded
			} else {
				r.logger.Warn().
					Int("row", row).
					Int("columns", len(fields)).
					Int("expected", len(header)).
					Msg("roster row long, truncating extra columns")
				fields = fields[:len(header)]
			}
		}

		rec := r.record(columns, fields)
		if rec.Key() == "" {
			dropped++
			r.logger.Debug().Int("row", row).Msg("dropping roster row with empty email")
			continue
		}
		rec.Email = rec.Key()
		records = append(records, rec)
	}

	r.logger.Debug().
		Str("file", path).
		Int("records", len(records)).
		Int("dropped", dropped).
		Int("skipped", skipped).
		Msg("roster loaded")

	return records, nil
}

func (r *Reader) record(columns map[string]int, fields []string) Record {
	value := func(name string) string {
		i, ok := columns[name]
		if !ok {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	rec := Record{
		Email:       value(fieldEmail),
		DisplayName: value(fieldName),
		License:     value(fieldLicense),
		Status:      value(fieldStatus),
		Source:      value(fieldSource),
	}
	if s := value(fieldCreated); s != "" {
		if ts, ok := parseDate(s); ok {
			rec.CreatedAt = ts
		} else {
			r.logger.Debug().Str("value", s).Msg("unparseable created date in roster")
		}
	}
	if s := value(fieldLastSeen); s != "" {
		if ts, ok := parseDate(s); ok {
			rec.LastSeenAt = ts
		} else {
			r.logger.Debug().Str("value", s).Msg("unparseable last seen date in roster")
		}
	}
	return rec
}

// mapColumns resolves the header row to field indexes. Email and license
// columns are required; everything else is optional. Unrecognized headers
// are ignored so exports can carry extra columns.
func mapColumns(header []string, path string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		field, ok := headerFields[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, dup := columns[field]; dup {
			continue // first occurrence wins
		}
		columns[field] = i
	}

	for _, required := range []string{fieldEmail, fieldLicense} {
		if _, ok := columns[required]; !ok {
			return nil, &errors.ParseError{
				Format:  "csv",
				File:    path,
				Message: "missing required column: " + required,
			}
		}
	}
	return columns, nil
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\uFEFF")
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, "_", " ")
	h = strings.ReplaceAll(h, "-", " ")
	return strings.Join(strings.Fields(h), " ")
}

// parseDate handles the date formats seen in roster exports. Dates are
// informational, so failures are tolerated.
func parseDate(s string) (utc.Time, bool) {
	formats := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02 15:04:05",
		"01/02/2006",
		"2006-01",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return utc.Time{Time: t.UTC()}, true
		}
	}
	return utc.Time{}, false
}

// BOM prefixes used for encoding detection.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decode sniffs the roster's encoding and converts it to UTF-8. Directory
// exports from Windows tooling are commonly UTF-16 with a BOM; anything
// that is not valid UTF-8 falls back to Latin-1.
func decode(data []byte) ([]byte, string, error) {
	switch {
	case len(data) == 0:
		return data, "utf-8", nil
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], "utf-8 bom", nil
	case bytes.HasPrefix(data, bomUTF16LE):
		out, err := transformBytes(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), data[2:])
		return out, "utf-16le", err
	case bytes.HasPrefix(data, bomUTF16BE):
		out, err := transformBytes(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), data[2:])
		return out, "utf-16be", err
	case utf8.Valid(data):
		return data, "utf-8", nil
	default:
		out, err := transformBytes(charmap.ISO8859_1, data)
		return out, "latin-1", err
	}
}

func transformBytes(enc encoding.Encoding, data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	return out, err
}
