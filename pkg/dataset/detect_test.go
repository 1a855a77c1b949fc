package dataset

import (
	"testing"

	"rfm-segments/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFields(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    models.Fields
	}{
		{
			name:    "online retail",
			columns: []string{"InvoiceNo", "StockCode", "Quantity", "InvoiceDate", "UnitPrice", "CustomerID", "Revenue"},
			want:    models.Fields{ID: "CustomerID", Date: "InvoiceDate", Revenue: "Revenue"},
		},
		{
			name:    "snake case",
			columns: []string{"order_id", "user_id", "created_at", "total_amount"},
			want:    models.Fields{ID: "user_id", Date: "created_at", Revenue: "total_amount"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFields(tt.columns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFields_Missing(t *testing.T) {
	_, err := DetectFields([]string{"customer", "amount"})
	assert.ErrorContains(t, err, "date")
}
