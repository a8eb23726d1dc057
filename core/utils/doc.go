// Package utils provides common utility functions for the energy dashboard.
// It includes tolerant coercion of spreadsheet cells into numbers, timestamps and
// booleans, shared by every loader that reads hand-maintained CSV/XLSX files.
package utils
