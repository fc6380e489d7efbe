package wizard

import (
	"fmt"
	"log/slog"

	"github.com/JonMunkholm/fieldmap/internal/mapping"
	"github.com/JonMunkholm/fieldmap/internal/run"
)

// SourceType selects how a load reaches the source system.
type SourceType string

const (
	SourceSFTP SourceType = "sftp"
	SourceAPI  SourceType = "api"
)

// SFTPConfig holds the drop location for file-based loads.
type SFTPConfig struct {
	Location string `json:"location"`
	ID       string `json:"id"`
	Password string `json:"password,omitempty"`
}

// LogValue keeps the password out of logs.
func (c SFTPConfig) LogValue() slog.Value {
	pw := ""
	if c.Password != "" {
		pw = "[redacted]"
	}
	return slog.GroupValue(
		slog.String("location", c.Location),
		slog.String("id", c.ID),
		slog.String("password", pw),
	)
}

// APIConfig holds the credentials for API-based loads.
type APIConfig struct {
	Key string `json:"key,omitempty"`
}

// LogValue keeps the key out of logs.
func (c APIConfig) LogValue() slog.Value {
	if c.Key == "" {
		return slog.StringValue("")
	}
	return slog.StringValue("[redacted]")
}

// LoadConfig configures one kind of load.
type LoadConfig struct {
	Enabled    bool       `json:"enabled"`
	SourceType SourceType `json:"sourceType"`
	SFTP       SFTPConfig `json:"sftp"`
	API        APIConfig  `json:"api"`
}

// SetupConfig covers the three load kinds the integration runs.
type SetupConfig struct {
	InitialLoad  LoadConfig `json:"initialLoad"`
	DailyLoad    LoadConfig `json:"dailyLoad"`
	OnDemandLoad LoadConfig `json:"onDemandLoad"`
}

// Validate checks every load names a known source type.
func (c SetupConfig) Validate() error {
	loads := []struct {
		name string
		load LoadConfig
	}{
		{"initialLoad", c.InitialLoad},
		{"dailyLoad", c.DailyLoad},
		{"onDemandLoad", c.OnDemandLoad},
	}
	for _, l := range loads {
		switch l.load.SourceType {
		case SourceSFTP, SourceAPI:
		default:
			return fmt.Errorf("%s: unknown source type %q", l.name, l.load.SourceType)
		}
	}
	return nil
}

// Conflict handling for package installation.
const (
	ConflictDoNotInstall = "doNotInstall"
	ConflictRename       = "rename"
)

// Installation scopes.
const (
	ScopeAdmins           = "admins"
	ScopeAllUsers         = "allUsers"
	ScopeSpecificProfiles = "specificProfiles"
)

// InstallConfig holds the package installation choices.
type InstallConfig struct {
	ConflictHandling string `json:"conflictHandling"`
	InstallScope     string `json:"installScope"`
}

// Validate checks both choices against the offered options.
func (c InstallConfig) Validate() error {
	switch c.ConflictHandling {
	case ConflictDoNotInstall, ConflictRename:
	default:
		return fmt.Errorf("unknown conflict handling %q", c.ConflictHandling)
	}
	switch c.InstallScope {
	case ScopeAdmins, ScopeAllUsers, ScopeSpecificProfiles:
	default:
		return fmt.Errorf("unknown install scope %q", c.InstallScope)
	}
	return nil
}

// Data is everything the operator configures across the wizard.
type Data struct {
	Setup    SetupConfig            `json:"setup"`
	Mappings []mapping.FieldMapping `json:"mappings"`
	Run      run.Config             `json:"run"`
	Install  InstallConfig          `json:"installConfig"`
}

// DefaultData returns the configuration a new session starts from.
func DefaultData() Data {
	return Data{
		Setup: SetupConfig{
			InitialLoad: LoadConfig{
				Enabled:    true,
				SourceType: SourceSFTP,
				SFTP:       SFTPConfig{Location: "secure.ftp.acmebank.com/accounts/extract"},
			},
			DailyLoad:    LoadConfig{Enabled: true, SourceType: SourceAPI},
			OnDemandLoad: LoadConfig{Enabled: true, SourceType: SourceAPI},
		},
		Mappings: mapping.Seed(),
		Run:      run.DefaultConfig(),
		Install: InstallConfig{
			ConflictHandling: ConflictDoNotInstall,
			InstallScope:     ScopeAdmins,
		},
	}
}

func (d Data) clone() Data {
	out := d
	out.Mappings = mapping.CloneAll(d.Mappings)
	return out
}
