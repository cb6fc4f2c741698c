package news

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"xnews/pkg/models"
)

var csvHeader = []string{"id", "category_id", "category", "title", "text", "created"}

// WriteCSV writes items with a header row. Times are RFC 3339 in UTC.
func WriteCSV(w io.Writer, items []models.News) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, n := range items {
		if err := cw.Write([]string{
			strconv.FormatInt(n.ID, 10),
			strconv.FormatInt(n.CategoryID, 10),
			n.CategoryName,
			n.Title,
			n.Text,
			n.Created.UTC().Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
