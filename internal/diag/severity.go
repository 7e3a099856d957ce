package diag

// Severity ranks a diagnostic; higher values are more serious.
type Severity uint8

const (
	// SevInfo marks advice that needs no action, like a nested access hint.
	SevInfo Severity = iota
	// SevWarning marks a closure or file the transform left as it was.
	SevWarning
	// SevError marks input that could not be transformed; the file is not written.
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}
