package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	BaseDir    string
	Input      string
	ReportType []string
	Trend      bool
	Upload     string
	Profile    string
}
