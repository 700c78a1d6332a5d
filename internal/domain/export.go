package domain

// ExportRow is a single row in an owner's trip export.
// Dates are "2006-01-02" formatted so the row can be written to CSV as-is.
type ExportRow struct {
	TripID        string
	Slug          string
	Title         string
	StartLocation string
	Destination   string
	StartDate     string
	EndDate       string
	Visibility    string

	// AllowedUsers is ordered as stored. Callers that need a joined string
	// (e.g. CSV) should join with "|".
	AllowedUsers []string
}
