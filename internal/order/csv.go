package order

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var csvHeader = []string{
	"id", "createdAt", "status", "totalCents",
	"customerName", "customerEmail",
	"carrier", "trackingNo", "shippedAt", "fulfilledAt",
}

// WriteCSV flattens orders into the fixed export column order. String fields
// pass through encoding/csv so embedded commas survive.
func WriteCSV(w io.Writer, orders []Order) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, o := range orders {
		rec := []string{
			strconv.FormatInt(o.ID, 10),
			o.CreatedAt.UTC().Format(time.RFC3339),
			string(o.Status),
			strconv.FormatInt(o.TotalCents, 10),
			o.UserName,
			o.UserEmail,
			ptrString(o.Carrier),
			ptrString(o.TrackingNo),
			ptrTime(o.ShippedAt),
			ptrTime(o.FulfilledAt),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ptrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptrTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
