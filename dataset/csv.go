package dataset

import (
	"encoding/csv"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/growthml/leadconv/pkg/errors"
)

// WriteCSV persists the table to path with a header row, columns in the
// fixed schema order. Output is deterministic for a given table.
func WriteCSV(t *Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create dataset file %q", path)
	}
	defer file.Close()

	if err := WriteCSVTo(t, file); err != nil {
		return err
	}
	return nil
}

// WriteCSVTo writes the table as CSV to w.
func WriteCSVTo(t *Table, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return errors.Wrap(err, "write dataset header")
	}

	record := make([]string, len(Columns))
	for _, lead := range t.Leads {
		record[0] = lead.BusinessType
		record[1] = strconv.FormatFloat(lead.Rating, 'f', 1, 64)
		record[2] = strconv.Itoa(lead.UserRatingsTotal)
		record[3] = strconv.FormatFloat(lead.DealValue, 'f', 0, 64)
		record[4] = lead.Priority
		record[5] = strconv.Itoa(lead.TimeInPipeline)
		record[6] = strconv.Itoa(lead.DocumentsVerified)
		record[7] = strconv.Itoa(lead.ContactsCount)
		record[8] = strconv.Itoa(lead.Converted)
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "write dataset record")
		}
	}

	cw.Flush()
	return errors.WithStack(cw.Error())
}

// ReadCSV loads a dataset previously written by WriteCSV. A missing file is
// reported as a MissingInputError telling the caller to run the generator.
func ReadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewMissingInputError(path,
				"Dataset not found. Run 'leadconv generate' before training.")
		}
		return nil, errors.Wrapf(err, "open dataset file %q", path)
	}
	defer file.Close()

	return ReadCSVFrom(file)
}

// ReadCSVFrom parses a dataset from r.
func ReadCSVFrom(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Columns)

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read dataset header")
	}
	for i, name := range Columns {
		if header[i] != name {
			return nil, errors.NewValidationError("header",
				"unexpected column name, want "+name, header[i])
		}
	}

	var leads []Lead
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read dataset record")
		}
		lead, err := parseLead(record)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return NewTable(leads), nil
}

func parseLead(record []string) (Lead, error) {
	var lead Lead
	var err error

	lead.BusinessType = record[0]
	if lead.Rating, err = strconv.ParseFloat(record[1], 64); err != nil {
		return lead, errors.NewValidationError(ColRating, "not a float", record[1])
	}
	if lead.UserRatingsTotal, err = strconv.Atoi(record[2]); err != nil {
		return lead, errors.NewValidationError(ColUserRatingsTotal, "not an integer", record[2])
	}
	if lead.DealValue, err = strconv.ParseFloat(record[3], 64); err != nil {
		return lead, errors.NewValidationError(ColDealValue, "not a float", record[3])
	}
	lead.Priority = record[4]
	if lead.TimeInPipeline, err = strconv.Atoi(record[5]); err != nil {
		return lead, errors.NewValidationError(ColTimeInPipeline, "not an integer", record[5])
	}
	if lead.DocumentsVerified, err = strconv.Atoi(record[6]); err != nil {
		return lead, errors.NewValidationError(ColDocumentsVerified, "not an integer", record[6])
	}
	if lead.ContactsCount, err = strconv.Atoi(record[7]); err != nil {
		return lead, errors.NewValidationError(ColContactsCount, "not an integer", record[7])
	}
	if lead.Converted, err = strconv.Atoi(record[8]); err != nil {
		return lead, errors.NewValidationError(ColConverted, "not an integer", record[8])
	}
	if lead.Converted != 0 && lead.Converted != 1 {
		return lead, errors.NewValidationError(ColConverted, "label must be 0 or 1", record[8])
	}

	return lead, nil
}
