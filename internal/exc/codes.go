package exc

const (
	CodeUnknownFatal                  = "P0000"
	CodeFileNotFound                  = "P0001"
	CodeUnsuportedFileSystemOperation = "P0002"
	CodePermissionDenied              = "P0003"
	CodeUnsupportedFileFormat         = "P0004"
	CodeUnexpectedEOF                 = "P0005"
	CodeUnexpectedToken               = "P0006"
	CodeTrailingInput                 = "P0007"
	CodeEmptyGrammar                  = "P0008"
)

const (
	CodeEOF = "_EOF_"
)

var (
	defaultNonFatal = map[string]bool{}
)
