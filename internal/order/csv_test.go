package order

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	shipped := created.Add(48 * time.Hour)
	carrier := "UPS"
	trackingNo := "1Z999"

	orders := []Order{
		{
			ID:         42,
			CreatedAt:  created,
			Status:     StatusShipped,
			TotalCents: 3998,
			UserName:   "Smith, Jane",
			UserEmail:  "jane@x.com",
			Carrier:    &carrier,
			TrackingNo: &trackingNo,
			ShippedAt:  &shipped,
		},
		{
			ID:         41,
			CreatedAt:  created,
			Status:     StatusPending,
			TotalCents: 500,
			UserName:   "Bob Smith",
			UserEmail:  "bob@x.com",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, orders))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])

	assert.Equal(t, []string{
		"42", "2025-03-01T12:00:00Z", "SHIPPED", "3998",
		"Smith, Jane", "jane@x.com",
		"UPS", "1Z999", "2025-03-03T12:00:00Z", "",
	}, records[1])

	// Optional fields render as empty cells, never as "<nil>".
	assert.Equal(t, []string{
		"41", "2025-03-01T12:00:00Z", "PENDING", "500",
		"Bob Smith", "bob@x.com",
		"", "", "", "",
	}, records[2])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "id,createdAt,status,totalCents,customerName,customerEmail,carrier,trackingNo,shippedAt,fulfilledAt\n", buf.String())
}
