package extractor

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// maxColumns bounds how much of an extremely wide row is read
const maxColumns = 1000

// ExcelLoader flattens every sheet into text. Cells of a row are joined with
// a single space and rows follow each other with no separator, the same way
// lines of a text file are joined.
type ExcelLoader struct{}

func (l *ExcelLoader) Load(reader io.Reader) (string, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.Rows(sheet)
		if err != nil {
			continue
		}

		for rows.Next() {
			cols, err := rows.Columns()
			if err != nil {
				break
			}

			cells := make([]string, 0, len(cols))
			for colIdx, cell := range cols {
				if colIdx >= maxColumns {
					break
				}
				if cell == "" {
					continue
				}
				cells = append(cells, stripLineBreaks(cell))
			}
			sb.WriteString(strings.Join(cells, " "))
		}
		rows.Close()
	}

	return sb.String(), nil
}
