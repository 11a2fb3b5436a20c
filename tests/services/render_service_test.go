package services_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"fleetwatch/src/models"
	"fleetwatch/src/schemas"
	"fleetwatch/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReportData() *schemas.ReportData {
	return &schemas.ReportData{
		Metadata: schemas.ReportMetadata{
			ReportTypeID: "alarms",
			ReportName:   "Alarm Digest",
			GeneratedAt:  time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		},
		Summary: []schemas.SummaryMetric{
			{Name: "Total Alarms", Value: "2"},
			{Name: "Critical", Value: "1"},
		},
		Datasets: []schemas.Dataset{
			{
				Name:    "Alarms",
				Columns: []string{"Code", "Severity", "Message"},
				Rows: [][]string{
					{"E-1001", "critical", "Servo overload, axis 3"},
					{"W-2002", "warning", `Battery "low"`},
				},
				RowCount: 2,
			},
		},
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	rs := services.NewRenderService()

	_, err := rs.Render(sampleReportData(), models.ReportFormat("docx"))
	require.Error(t, err)

	var formatErr *services.UnsupportedFormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestRenderCSV(t *testing.T) {
	rs := services.NewRenderService()

	out, err := rs.Render(sampleReportData(), models.FormatCSV)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Report,Alarm Digest")
	assert.Contains(t, text, "Total Alarms,2")
	assert.Contains(t, text, "Alarms\nCode,Severity,Message")

	// fields with commas or quotes come out RFC4180 quoted
	assert.Contains(t, text, `"Servo overload, axis 3"`)
	assert.Contains(t, text, `"Battery ""low"""`)

	// dataset blocks parse back with the csv reader
	blocks := strings.Split(text, "\n\n")
	require.Len(t, blocks, 2)
	reader := csv.NewReader(strings.NewReader(blocks[1]))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	// name row, header row, two data rows
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Code", "Severity", "Message"}, records[1])
	assert.Equal(t, []string{"E-1001", "critical", "Servo overload, axis 3"}, records[2])
}

func TestRenderCSVRoundTripsHostileFields(t *testing.T) {
	rs := services.NewRenderService()
	data := &schemas.ReportData{
		Metadata: schemas.ReportMetadata{ReportName: "Edge Cases", GeneratedAt: time.Now()},
		Datasets: []schemas.Dataset{
			{
				Name:    "Values",
				Columns: []string{"Raw"},
				Rows:    [][]string{{"a,\"b\"\nc"}},
			},
		},
	}

	out, err := rs.Render(data, models.FormatCSV)
	require.NoError(t, err)

	blocks := strings.Split(string(out), "\n\n")
	require.Len(t, blocks, 2)
	reader := csv.NewReader(strings.NewReader(blocks[1]))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "a,\"b\"\nc", records[2][0])
}

func TestRenderExcel(t *testing.T) {
	rs := services.NewRenderService()

	out, err := rs.Render(sampleReportData(), models.FormatExcel)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Alarms"}, f.GetSheetList())

	name, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Alarm Digest", name)

	header, err := f.GetCellValue("Alarms", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Code", header)

	code, err := f.GetCellValue("Alarms", "A2")
	require.NoError(t, err)
	assert.Equal(t, "E-1001", code)
}

func TestRenderExcelDuplicateDatasetNames(t *testing.T) {
	rs := services.NewRenderService()
	data := sampleReportData()
	data.Datasets = append(data.Datasets, schemas.Dataset{
		Name:    "Alarms",
		Columns: []string{"Code"},
		Rows:    [][]string{{"E-9"}},
	})

	out, err := rs.Render(data, models.FormatExcel)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Alarms", "Alarms_2"}, f.GetSheetList())
}

func TestRenderPDF(t *testing.T) {
	rs := services.NewRenderService()

	out, err := rs.Render(sampleReportData(), models.FormatPDF)
	require.NoError(t, err)

	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderDeterministic(t *testing.T) {
	rs := services.NewRenderService()

	first, err := rs.Render(sampleReportData(), models.FormatCSV)
	require.NoError(t, err)
	second, err := rs.Render(sampleReportData(), models.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Alarms", "Alarms"},
		{"Production / Shift A", "Production___Shift_A"},
		{"", "Sheet"},
		{strings.Repeat("x", 40), strings.Repeat("x", 31)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, services.SanitizeSheetName(tt.in))
	}
}
