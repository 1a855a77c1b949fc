package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_Comma(t *testing.T) {
	in := "customer_id,order_date,revenue\nC1,2023-01-01,100\nC2, 2023-02-10 ,500\n"

	got, err := ReadCSV(strings.NewReader(in), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"customer_id", "order_date", "revenue"}, got.Columns)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, []any{"C2", "2023-02-10", "500"}, got.Rows[1])
}

func TestReadCSV_SniffSemicolon(t *testing.T) {
	in := "\ufeffclient;date;amount\nA;2023-01-01;1,5\n"

	got, err := ReadCSV(strings.NewReader(in), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"client", "date", "amount"}, got.Columns)
	assert.Equal(t, []any{"A", "2023-01-01", "1,5"}, got.Rows[0])
}

func TestReadCSV_MaxRows(t *testing.T) {
	in := "a\tb\tc\n1\t2\t3\n4\t5\t6\n7\t8\t9\n"

	got, err := ReadCSV(strings.NewReader(in), Options{MaxRows: 2})
	require.NoError(t, err)
	assert.Len(t, got.Rows, 2)
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), Options{})
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("a,b,c\n1,2\n"), Options{})
	assert.Error(t, err)
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,date,total\n1,2023-01-01,9.99\n"), 0o644))

	got, err := LoadCSV(path, Options{Delimiter: ','})
	require.NoError(t, err)
	assert.Len(t, got.Rows, 1)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), Options{})
	assert.Error(t, err)
}
