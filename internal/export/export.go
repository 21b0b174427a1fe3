// Package export renders leads as CSV or XLSX downloads.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"leadgen-engine/internal/domain"
)

type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

const sheetName = "Leads"

var Headers = []string{
	"Company Name",
	"Website",
	"Domain",
	"Emails",
	"Website Status",
	"Response Time (ms)",
	"Business Model",
	"Lead Score",
}

// ParseFormat accepts "", "csv" and "xlsx"; empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", CSV:
		return CSV, nil
	case XLSX:
		return XLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename is dated, e.g. leads-2024-05-01.csv.
func (f Format) Filename(now time.Time) string {
	return fmt.Sprintf("leads-%s.%s", now.Format("2006-01-02"), f)
}

// Row is the flat string form of a lead, in Headers order.
func Row(l domain.Lead) []string {
	rt := "N/A"
	if l.ResponseTime != nil {
		rt = strconv.Itoa(*l.ResponseTime)
	}
	return []string{
		l.CompanyName,
		l.Website,
		l.Domain,
		strings.Join(l.Emails, "; "),
		string(l.WebsiteStatus),
		rt,
		string(l.BusinessModel),
		strconv.Itoa(l.Score),
	}
}

func Write(w io.Writer, f Format, leads []domain.Lead) error {
	if f == XLSX {
		return WriteXLSX(w, leads)
	}
	return WriteCSV(w, leads)
}

func WriteCSV(w io.Writer, leads []domain.Lead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return err
	}
	for _, l := range leads {
		if err := cw.Write(Row(l)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single "Leads" sheet. Numeric columns are stored as
// numbers so spreadsheets can sort on them.
func WriteXLSX(w io.Writer, leads []domain.Lead) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	for i, l := range leads {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := make([]any, 0, len(Headers))
		for _, v := range Row(l) {
			row = append(row, v)
		}
		if l.ResponseTime != nil {
			row[5] = *l.ResponseTime
		}
		row[7] = l.Score
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
