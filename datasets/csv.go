package datasets

import "encoding/csv"
import "io"
import "math"
import "os"
import "strconv"

import "github.com/pkg/errors"

// CSVOptions controls CSV decoding.
type CSVOptions struct {
	// Delimiter between fields. Default ','.
	Delimiter rune
	// NoData is the token marking missing cells. Default "NA".
	NoData string
	// Categorical names the columns read as categories; all other
	// columns are parsed as numbers.
	Categorical []string
}

// ReadCSV decodes a headered CSV stream into a table.
func ReadCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.NoData == "" {
		opts.NoData = "NA"
	}
	isCat := make(map[string]bool, len(opts.Categorical))
	for _, name := range opts.Categorical {
		isCat[name] = true
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading csv header")
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading csv rows")
	}

	tab := NewTable()
	for col, name := range header {
		if isCat[name] {
			values := make([]string, len(records))
			for i, rec := range records {
				if rec[col] != opts.NoData {
					values[i] = rec[col]
				}
			}
			if err := tab.AddCategorical(name, values); err != nil {
				return nil, err
			}
			continue
		}
		values := make([]float64, len(records))
		for i, rec := range records {
			if rec[col] == opts.NoData {
				values[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(rec[col], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "column %q row %d", name, i)
			}
			values[i] = v
		}
		if err := tab.AddNumeric(name, values); err != nil {
			return nil, err
		}
	}
	return tab, nil
}

// ReadCSVFile decodes a CSV file into a table.
func ReadCSVFile(path string, opts CSVOptions) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening csv file")
	}
	defer file.Close()
	return ReadCSV(file, opts)
}
