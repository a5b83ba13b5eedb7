package config

// App holds the client application's configuration. All values come from
// the environment so the same binary works across deployments without
// editing files.
type App struct {
	// APIURL overrides the production API endpoint. Leave empty to use
	// the client's default.
	APIURL string `env:"WELLPATH_API_URL"`

	// DataDir is where the session store database lives. Defaults to a
	// dot directory under the user's home when empty.
	DataDir string `env:"WELLPATH_DATA_DIR"`

	// StorePassphrase seals the on-disk session record. When empty the
	// CLI prompts for it interactively.
	StorePassphrase string `env:"WELLPATH_STORE_PASSPHRASE"`

	LogFile  string `env:"WELLPATH_LOG_FILE"`
	LogLevel string `env:"WELLPATH_LOG_LEVEL" envDefault:"info"`
}
