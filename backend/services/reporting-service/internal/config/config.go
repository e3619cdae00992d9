package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/constants"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"
)

type Config struct {
	OrganizationName string
	AppName          string
	Env              string
	AppPort          string
	AppUrl           string
	DBUrl            string
	UniqueRunNumber  string
	UniqueRunnerID   string

	LDFlag_UsingIsolatedSchema      bool
	LDFlag_SeedDbWithTestData       bool
	LDFlag_CORSHighSecurity         bool
	LDFlag_ScopeMeetingStatsToAdmin bool
	LDFlag_ReportSectionTimeoutMs   int
}

const (
	OrganizationName    = utils.OrganizationName
	LDConnectionTimeout = 5 * time.Second
)

// Overridable with -ldflags "-X ...".
var (
	AppName             = "reporting-service"
	UniqueRunNumber     string
	UniqueRunnerID      string
	LDServerContextKey  = "reporting-service"
	LDServerContextKind = "service"
)

// SectionTimeout is the per-section budget of the admin report.
func (c *Config) SectionTimeout() time.Duration {
	if c.LDFlag_ReportSectionTimeoutMs <= 0 {
		return constants.DefaultSectionTimeout
	}
	return time.Duration(c.LDFlag_ReportSectionTimeoutMs) * time.Millisecond
}

// LoadConfig is Load for process entry points: any failure is fatal.
func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to load config")
	}
	return cfg
}

// Load reads a local .env if present, the process environment, secrets
// (Bitwarden when BWS_ACCESS_TOKEN is set, else the environment) and the
// LaunchDarkly flags.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	utils.Logger.Info("Loading config for app: ", AppName)

	env := os.Getenv("ENV")
	if env == "" {
		return nil, errors.New("ENV env var is missing")
	}
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		appPort = "8080"
	}
	appUrl := os.Getenv("APP_URL_FROM_ANYWHERE")
	if appUrl == "" {
		appUrl = "http://localhost:" + appPort
	}

	secrets, err := loadSecrets(env)
	if err != nil {
		return nil, err
	}
	dbURL := secrets["DB_URL"]
	if dbURL == "" {
		return nil, errors.New("DB_URL not found in secrets")
	}

	cfg := &Config{
		OrganizationName: OrganizationName,
		AppName:          AppName,
		Env:              env,
		AppPort:          appPort,
		AppUrl:           appUrl,
		DBUrl:            dbURL,
		UniqueRunNumber:  UniqueRunNumber,
		UniqueRunnerID:   UniqueRunnerID,
	}
	if err := cfg.loadFlags(secrets["LD_SDK_KEY"]); err != nil {
		return nil, err
	}
	if cfg.LDFlag_UsingIsolatedSchema && (UniqueRunnerID == "" || UniqueRunNumber == "") {
		return nil, errors.New("using_isolated_schema is on but UniqueRunnerID/UniqueRunNumber ldflags are missing")
	}
	return cfg, nil
}

func loadSecrets(env string) (map[string]string, error) {
	if !utils.BWSEnabled() {
		utils.Logger.Warn("BWS_ACCESS_TOKEN not set; reading secrets from the environment")
		return map[string]string{
			"DB_URL":     os.Getenv("DB_URL"),
			"LD_SDK_KEY": os.Getenv("LD_SDK_KEY"),
		}, nil
	}

	client, err := utils.NewBWSSecretsClient()
	if err != nil {
		return nil, fmt.Errorf("initializing BWSSecretsClient: %w", err)
	}
	defer client.Close()

	appSecretsName := fmt.Sprintf("%s-%s", AppName, env)
	secrets, err := client.GetBWSSecrets(appSecretsName)
	if err != nil {
		return nil, fmt.Errorf("fetching app secrets from BWS (%s): %w", appSecretsName, err)
	}
	return secrets, nil
}

// loadFlags evaluates every flag once. Without an SDK key the client runs
// offline and each flag takes its default.
func (c *Config) loadFlags(sdkKey string) error {
	var (
		ldClient *ld.LDClient
		err      error
	)
	if sdkKey == "" {
		utils.Logger.Warn("LD_SDK_KEY not set; LaunchDarkly running offline with flag defaults")
		ldClient, err = ld.MakeCustomClient("", ld.Config{Offline: true}, 0)
	} else {
		ldClient, err = ld.MakeClient(sdkKey, LDConnectionTimeout)
	}
	if err != nil {
		return fmt.Errorf("creating LaunchDarkly client: %w", err)
	}
	defer ldClient.Close()

	ctx := ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey)

	boolFlags := []struct {
		key string
		dst *bool
	}{
		{"using_isolated_schema", &c.LDFlag_UsingIsolatedSchema},
		{"seed_db_with_test_data", &c.LDFlag_SeedDbWithTestData},
		{"cors_high_security", &c.LDFlag_CORSHighSecurity},
		{"scope_meeting_stats_to_admin", &c.LDFlag_ScopeMeetingStatsToAdmin},
	}
	for _, f := range boolFlags {
		v, err := ldClient.BoolVariation(f.key, ctx, false)
		if err != nil && sdkKey != "" {
			return fmt.Errorf("retrieving %s flag: %w", f.key, err)
		}
		*f.dst = v
		utils.Logger.Debugf("%s flag: %t", f.key, v)
	}

	timeoutMs, err := ldClient.IntVariation("report_section_timeout_ms", ctx, int(constants.DefaultSectionTimeout/time.Millisecond))
	if err != nil && sdkKey != "" {
		return fmt.Errorf("retrieving report_section_timeout_ms flag: %w", err)
	}
	c.LDFlag_ReportSectionTimeoutMs = timeoutMs
	utils.Logger.Debugf("report_section_timeout_ms flag: %d", timeoutMs)
	return nil
}
