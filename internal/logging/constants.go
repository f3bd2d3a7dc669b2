package logging

// Standardized field names for structured logging.
// Keeping these consistent makes the converter logs easy to filter.
const (
	FieldFile       = "file_path"
	FieldCount      = "count"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
