package records

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
)

// Option configures a file Parser.
type Option func(*Parser)

// WithSeparator sets the field delimiter. The default is a tab.
func WithSeparator(sep rune) Option {
	return func(p *Parser) {
		p.reader.Comma = sep
	}
}

// WithComment sets the comment character; lines beginning with it are
// skipped. The default is '#'. Zero disables comment handling.
func WithComment(comment rune) Option {
	return func(p *Parser) {
		p.reader.Comment = comment
	}
}

// WithHeader controls whether the first non-comment line names the fields.
// The default is true.
func WithHeader(has bool) Option {
	return func(p *Parser) {
		p.hasHeader = has
	}
}

// WithFields assigns field names for headerless files. Ignored when a
// header row is read.
func WithFields(names ...string) Option {
	return func(p *Parser) {
		p.names = names
	}
}

// Parser reads a delimited data file and acts as an iterator over its
// packaged lines.
type Parser struct {
	file      *os.File
	reader    *csv.Reader
	names     []string
	hasHeader bool
	started   bool
}

// Open prepares path for record iteration. Unless configured otherwise,
// fields are tab-separated, '#' starts a comment line, and the first line
// is a header naming the fields.
func Open(path string, opts ...Option) (*Parser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(file)
	reader.Comma = '\t'
	reader.Comment = '#'
	reader.FieldsPerRecord = -1

	p := &Parser{file: file, reader: reader, hasHeader: true}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Next returns the next packaged line. It returns io.EOF when the file is
// exhausted.
func (p *Parser) Next() (Record, error) {
	if !p.started {
		p.started = true
		if p.hasHeader {
			header, err := p.reader.Read()
			if err != nil {
				return Record{}, err
			}
			p.names = header
		}
	}

	line, err := p.reader.Read()
	if err != nil {
		return Record{}, err
	}

	names := p.names
	if names == nil {
		// No header and no explicit fields: fall back to positional names.
		names = make([]string, len(line))
		for i := range line {
			names[i] = strconv.Itoa(i)
		}
	}
	if len(line) != len(names) {
		return Record{}, fmt.Errorf("records: line has %d fields, expected %d", len(line), len(names))
	}

	values := make([]any, len(line))
	for i, field := range line {
		values[i] = field
	}
	return Record{names: names, values: values}, nil
}

// All returns an iterator over the remaining records. Iteration stops at
// end of file; a read error is yielded once with a zero Record.
func (p *Parser) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := p.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Record{}, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// ReadAll consumes the remaining records into a slice.
func (p *Parser) ReadAll() ([]Record, error) {
	var recs []Record
	for {
		rec, err := p.Next()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
}

// Close releases the underlying file.
func (p *Parser) Close() error {
	return p.file.Close()
}
