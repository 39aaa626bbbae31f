package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldRepo      = "repo"
	FieldFile      = "file"
	FieldEntity    = "entity"
	FieldRow       = "row"
	FieldColumn    = "column"
	FieldValue     = "value"
	FieldView      = "view"
	FieldMonth     = "month"
	FieldMonths    = "months"
	FieldNow       = "now"
	FieldCount     = "count"
	FieldFormat    = "format"
)

// Component names
const (
	ComponentApp       = "app"
	ComponentDataset   = "dataset"
	ComponentDashboard = "dashboard"
	ComponentImporter  = "importer"
	ComponentConfig    = "config"
)
