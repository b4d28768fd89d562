package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the summary report.
	OutputMode string

	// DisplayMode represents how the rendered chart is shown.
	DisplayMode string

	// ImageFormat represents the encoding of the rendered chart.
	ImageFormat string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
	PromOut    OutputMode = "prom"
)

// All display modes supported.
const (
	AutoDisplay   DisplayMode = "auto" // default
	ViewerDisplay DisplayMode = "viewer"
	FileDisplay   DisplayMode = "file"
	NoneDisplay   DisplayMode = "none"
)

// All image formats supported.
const (
	PNGFormat ImageFormat = "png" // default
	SVGFormat ImageFormat = "svg"
)

// Chart constants shared by the renderer and the reports.
const (
	DefaultTitle       = "Build Performance"
	DurationCeiling    = 2.5 * 60 * 60 // seconds, upper bound of the duration panel
	MonthLabelFormat   = "2006-01"
	WeekLabelFormat    = "2006-01-02"
	DefaultImageWidth  = 1024
	DefaultImageHeight = 900
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	YAMLOut:    {},
	ParquetOut: {},
	PromOut:    {},
}

// ValidDisplayModes lists all valid display modes.
var ValidDisplayModes = map[DisplayMode]struct{}{
	AutoDisplay:   {},
	ViewerDisplay: {},
	FileDisplay:   {},
	NoneDisplay:   {},
}

// ValidImageFormats lists all valid image formats.
var ValidImageFormats = map[ImageFormat]struct{}{
	PNGFormat: {},
	SVGFormat: {},
}
