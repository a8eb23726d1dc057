// Package table decodes hand-maintained spreadsheets into header-addressed grids.
//
// Inputs are CSV exports (Home Assistant history, inverter logs) and XLSX workbooks
// (the fuel purchase ledger). Decoding is deliberately loose: ragged rows, a UTF-8
// BOM and blank lines are tolerated, and cells stay strings until a feature coerces
// them with core/utils.
//
// # Column Synonyms
//
// Column names in the ledger vary between files ("Amount (Liters)", "litres",
// "Cost (Rands)"). Synonyms is a data-driven table mapping normalized header names
// to canonical ones; Table.Rename applies it once at load time.
package table
