package output

// FormatResult is the JSON payload for a single formatted input.
type FormatResult struct {
	Formatted string `json:"formatted"`
	Changed   bool   `json:"changed"`
}

// FmtFile describes one file processed by the fmt command.
type FmtFile struct {
	Path    string `json:"path"`
	Changed bool   `json:"changed"`
}

// FmtSummary summarizes a fmt run.
type FmtSummary struct {
	Total   int `json:"total"`
	Changed int `json:"changed"`
}

// FmtOutput is the JSON payload of the fmt command.
type FmtOutput struct {
	Files   []FmtFile  `json:"files"`
	Summary FmtSummary `json:"summary"`
}

// CheckFile describes one file inspected by the check command.
type CheckFile struct {
	Path      string `json:"path"`
	Formatted bool   `json:"formatted"`
}

// CheckSummary summarizes a check run.
type CheckSummary struct {
	Total       int `json:"total"`
	Unformatted int `json:"unformatted"`
}

// CheckOutput is the JSON payload of the check command.
type CheckOutput struct {
	Files   []CheckFile  `json:"files"`
	Summary CheckSummary `json:"summary"`
}
