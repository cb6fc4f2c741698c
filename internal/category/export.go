package category

import (
	"encoding/csv"
	"io"
	"strconv"

	"xnews/pkg/models"
)

func WriteCSV(w io.Writer, cats []models.Category) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name"}); err != nil {
		return err
	}
	for _, c := range cats {
		if err := cw.Write([]string{strconv.FormatInt(c.ID, 10), c.Name}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
