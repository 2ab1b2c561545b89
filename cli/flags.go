package cli

// persistent flags shared by all commands
var (
	deviceFlag string
	jsonOutput bool
	verbose    bool
	configPath string
)
