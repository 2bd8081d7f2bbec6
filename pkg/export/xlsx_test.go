package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type payRow struct {
	Ref string
	Net float64
}

func TestWriteSheet(t *testing.T) {
	cols := []Column[payRow]{
		{Header: "Salary ID", Width: 16, Value: func(r payRow) any { return r.Ref }},
		{Header: "Net Pay", Width: 12, Value: func(r payRow) any { return r.Net }},
	}
	rows := []payRow{{"SAL-00000001", 1280.5}, {"SAL-00000002", -50}}

	var buf bytes.Buffer
	require.NoError(t, WriteSheet(&buf, "Salaries", cols, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Salaries")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Salary ID", "Net Pay"}, got[0])
	assert.Equal(t, []string{"SAL-00000001", "1280.5"}, got[1])
	assert.Equal(t, []string{"SAL-00000002", "-50"}, got[2])
}

func TestWriteSheetEmpty(t *testing.T) {
	cols := []Column[payRow]{{Header: "Salary ID", Value: func(r payRow) any { return r.Ref }}}

	var buf bytes.Buffer
	require.NoError(t, WriteSheet[payRow](&buf, "Salaries", cols, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Salaries")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
