package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
)

// csvDataSet loads and saves a Table against a local CSV file. The first
// row is the header unless no_header is set. Load options: delimiter
// (single character, default ","), comment (single character, default
// none), no_header (synthesize column names). Save options: delimiter,
// no_header (omit the header row).
type csvDataSet struct {
	desc          Descriptor
	loadDelimiter rune
	saveDelimiter rune
	comment       rune
	loadNoHeader  bool
	saveNoHeader  bool
}

// NewCSV creates a CSV-file dataset from its descriptor.
func NewCSV(desc Descriptor) (DataSet, error) {
	if desc.Location == "" {
		return nil, fmt.Errorf("csv dataset %q: location is required", desc.Name)
	}

	loadDelim, err := runeArg(desc.LoadArgs, "delimiter", ',')
	if err != nil {
		return nil, fmt.Errorf("csv dataset %q: %w", desc.Name, err)
	}
	saveDelim, err := runeArg(desc.SaveArgs, "delimiter", ',')
	if err != nil {
		return nil, fmt.Errorf("csv dataset %q: %w", desc.Name, err)
	}

	var comment rune
	if _, ok := desc.LoadArgs["comment"]; ok {
		comment, err = runeArg(desc.LoadArgs, "comment", 0)
		if err != nil {
			return nil, fmt.Errorf("csv dataset %q: %w", desc.Name, err)
		}
	}

	loadNoHeader, err := boolArg(desc.LoadArgs, "no_header", false)
	if err != nil {
		return nil, fmt.Errorf("csv dataset %q: %w", desc.Name, err)
	}
	saveNoHeader, err := boolArg(desc.SaveArgs, "no_header", false)
	if err != nil {
		return nil, fmt.Errorf("csv dataset %q: %w", desc.Name, err)
	}

	return &csvDataSet{
		desc:          desc,
		loadDelimiter: loadDelim,
		saveDelimiter: saveDelim,
		comment:       comment,
		loadNoHeader:  loadNoHeader,
		saveNoHeader:  saveNoHeader,
	}, nil
}

func (d *csvDataSet) Load(_ context.Context) (any, error) {
	data, err := readFile(d.desc.Location)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = d.loadDelimiter
	reader.Comment = d.comment

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrFormat, d.desc.Location, err)
	}

	if d.loadNoHeader {
		if len(rows) == 0 {
			return nil, fmt.Errorf("%w: %s is empty", ErrFormat, d.desc.Location)
		}
		columns := make([]string, len(rows[0]))
		for i := range columns {
			columns[i] = fmt.Sprintf("column_%d", i+1)
		}
		return NewTable(columns, rows), nil
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no header row", ErrFormat, d.desc.Location)
	}
	return NewTable(rows[0], rows[1:]), nil
}

func (d *csvDataSet) Save(ctx context.Context, data any) error {
	table, ok := data.(*Table)
	if !ok {
		return fmt.Errorf("%w: csv dataset requires *dataset.Table, got %T", ErrFormat, data)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Comma = d.saveDelimiter

	if !d.saveNoHeader {
		if err := writer.Write(table.Columns); err != nil {
			return fmt.Errorf("%w: encoding header: %w", ErrFormat, err)
		}
	}
	if err := writer.WriteAll(table.Records); err != nil {
		return fmt.Errorf("%w: encoding records: %w", ErrFormat, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: encoding records: %w", ErrFormat, err)
	}

	return writeFile(ctx, d.desc.Location, buf.Bytes())
}

func (d *csvDataSet) Exists(_ context.Context) (bool, error) {
	return fileExists(d.desc.Location), nil
}

func (d *csvDataSet) Describe() Description {
	return d.desc.Describe()
}
