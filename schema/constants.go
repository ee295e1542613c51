package schema

// Custom string types for type safety.
type (
	// ChangeType is the single-letter classification of a file within a diff.
	ChangeType string

	// OutputMode represents the format of the output.
	OutputMode string

	// SourceMode selects which acquisition path builds the history.
	SourceMode string
)

// All change types, using git's single-letter status vocabulary.
const (
	AddedChange       ChangeType = "A"
	DeletedChange     ChangeType = "D"
	ModifiedChange    ChangeType = "M"
	RenamedChange     ChangeType = "R"
	CopiedChange      ChangeType = "C"
	TypeChangedChange ChangeType = "T"
	UnmergedChange    ChangeType = "U"
	UnknownChange     ChangeType = "X"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All source modes supported.
const (
	LocalSource  SourceMode = "local"
	RemoteSource SourceMode = "remote"
)

// Remote API constants.
const (
	DefaultAPIURL   = "https://api.github.com"
	GitHubHost      = "github.com"
	GitHubMediaType = "application/vnd.github.v3+json"
	MaxPerPage      = 100
)

// ShortHashLength is the number of hash characters shown in abbreviated output.
const ShortHashLength = 7

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidSourceModes lists all valid source modes.
var ValidSourceModes = map[SourceMode]struct{}{
	LocalSource:  {},
	RemoteSource: {},
}

// changeTypeNames maps each change type to a human-readable name.
var changeTypeNames = map[ChangeType]string{
	AddedChange:       "added",
	DeletedChange:     "deleted",
	ModifiedChange:    "modified",
	RenamedChange:     "renamed",
	CopiedChange:      "copied",
	TypeChangedChange: "type changed",
	UnmergedChange:    "unmerged",
	UnknownChange:     "unknown",
}

// Name returns the human-readable name of the change type.
func (c ChangeType) Name() string {
	if name, ok := changeTypeNames[c]; ok {
		return name
	}
	return string(c)
}
