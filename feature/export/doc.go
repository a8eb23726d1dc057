// Package export renders fuel and solar reports as files: CSV tables, an XLSX
// workbook, a PDF summary and PNG charts. Writers take an io.Writer so the
// command layer decides where output goes; Uploader copies finished files to
// object storage.
//
// Currency and liter figures are rounded half away from zero to two places with
// shopspring/decimal.
package export
