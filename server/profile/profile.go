// Package profile holds the runtime configuration resolved from flags and environment.
package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Profile is the server configuration.
type Profile struct {
	// Mode is dev or prod.
	Mode string
	// Addr is the bind address.
	Addr string
	// Port is the bind port.
	Port int
	// Data is the directory for local state (sqlite file, vector index).
	Data string
	// Driver is the database driver: sqlite, postgres, or mysql.
	Driver string
	// DSN points the driver at its database. Defaults to a sqlite file under Data.
	DSN string
	// OpenRouterAPIKey authenticates completion calls. The assistant is disabled when empty.
	OpenRouterAPIKey string
	// Model is the completion model identifier.
	Model string
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}
	if p.Driver != "sqlite" && p.Driver != "postgres" && p.Driver != "mysql" {
		return errors.Errorf("unsupported driver %q", p.Driver)
	}
	if p.Driver != "sqlite" && p.DSN == "" {
		return errors.Errorf("dsn required for driver %q", p.Driver)
	}
	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}
	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		p.DSN = filepath.Join(p.Data, fmt.Sprintf("showrunner_%s.db", p.Mode))
	}
	return nil
}

// GetProfile reads the profile from viper. Keys are bound to
// SHOWRUNNER_-prefixed environment variables by the root command.
func GetProfile() (*Profile, error) {
	profile := &Profile{
		Mode:             viper.GetString("mode"),
		Addr:             viper.GetString("addr"),
		Port:             viper.GetInt("port"),
		Data:             viper.GetString("data"),
		Driver:           viper.GetString("driver"),
		DSN:              viper.GetString("dsn"),
		OpenRouterAPIKey: viper.GetString("openrouter-api-key"),
		Model:            viper.GetString("model"),
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

func checkDataDir(dataDir string) (string, error) {
	if dataDir == "" {
		dataDir = "."
	}
	absDir, err := filepath.Abs(dataDir)
	if err != nil {
		return "", errors.Wrapf(err, "resolve data dir %q", dataDir)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create data dir %q", absDir)
	}
	return absDir, nil
}
