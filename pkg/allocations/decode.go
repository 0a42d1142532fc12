package allocations

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/pkg/parquetutils"
)

func decodeCSV(data []byte) ([]record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(errs.InvalidInput, "malformed csv: %v", err)
	}

	records := make([]record, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, errors.Wrapf(errs.InvalidInput, "csv row %d: expected address,amount", i+1)
		}
		// header row
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "address") {
			continue
		}
		records = append(records, record{Address: row[0], Amount: row[1]})
	}
	return records, nil
}

func decodeJSON(data []byte) ([]record, error) {
	var rows []struct {
		Address string      `json:"address"`
		Amount  json.Number `json:"amount"`
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.Wrapf(errs.InvalidInput, "malformed json: %v", err)
	}

	records := make([]record, 0, len(rows))
	for _, row := range rows {
		records = append(records, record{Address: row.Address, Amount: row.Amount.String()})
	}
	return records, nil
}

func decodeParquet(data []byte) ([]record, error) {
	records, err := parquetutils.ReadBytes[record](data)
	if err != nil {
		return nil, errors.Wrapf(errs.InvalidInput, "malformed parquet: %v", err)
	}
	return records, nil
}
