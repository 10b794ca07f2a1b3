package mdexport

import "github.com/alnah/go-mdexport/internal/config"

// Config holds every conversion option. See the YAML keys on the fields of
// the underlying type.
type Config = config.Config

// Option blocks of Config.
type (
	PDFConfig      = config.PDFConfig
	MarginConfig   = config.MarginConfig
	ImageConfig    = config.ImageConfig
	ClipConfig     = config.ClipConfig
	PlantUMLConfig = config.PlantUMLConfig
	MathConfig     = config.MathConfig
	AnchorConfig   = config.AnchorConfig
	AssetsConfig   = config.AssetsConfig
)

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig reads a YAML configuration by file path or by name. Names are
// searched as <name>.yaml and <name>.yml in the current directory, then in
// the user config directory under go-mdexport/.
func LoadConfig(nameOrPath string) (*Config, error) {
	return config.LoadConfig(nameOrPath)
}
