package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env          string
		Build        string
		Debug        bool
		TestMode     bool
		AppName      string
		SecretKey    string
		RollbarToken string
		SeedDemoData bool

		Server       ServerConfig
		Session      SessionConfig
		Registration RegistrationConfig
	}

	ServerConfig struct {
		Address         string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	SessionConfig struct {
		CookieName string
		Lifetime   time.Duration
		Secure     bool
	}

	RegistrationConfig struct {
		AllowAdmin bool // admin sign up; turn off to only seed admins
	}
)

// NewConfig loads the app configuration from defaults, an optional `config/.env.<env>` file and the environment.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("build", "dev")
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Somo")
	conf.SetDefault("secretKey", "poq5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("server.address", ":8000")
	conf.SetDefault("server.shutdownTimeout", 10*time.Second)
	conf.SetDefault("server.disableRequestLogs", false)
	conf.SetDefault("session.cookieName", "sid")
	conf.SetDefault("session.lifetime", 24*time.Hour)
	conf.SetDefault("session.secure", false)
	conf.SetDefault("registration.allowAdmin", true)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetDefault("seedDemoData", env == "DEV")
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	if wd, err := os.Getwd(); err == nil {
		dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
		}
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Build:        conf.GetString("build"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		SecretKey:    conf.GetString("secretKey"),
		RollbarToken: conf.GetString("rollbarToken"),
		SeedDemoData: conf.GetBool("seedDemoData"),
		Server: ServerConfig{
			Address:         conf.GetString("server.address"),
			ShutdownTimeout: conf.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  conf.GetBool("server.disableRequestLogs"),
		},
		Session: SessionConfig{
			CookieName: conf.GetString("session.cookieName"),
			Lifetime:   conf.GetDuration("session.lifetime"),
			Secure:     conf.GetBool("session.secure"),
		},
		Registration: RegistrationConfig{
			AllowAdmin: conf.GetBool("registration.allowAdmin"),
		},
	}
}

// NewTestConfig returns a Config suited for tests: no request logs, no seeding, short-lived sessions.
func NewTestConfig() *Config {
	return &Config{
		Env:       "TEST",
		Build:     "test",
		TestMode:  true,
		AppName:   "Somo",
		SecretKey: "secret",
		Server: ServerConfig{
			Address:         ":0",
			ShutdownTimeout: time.Second,
			DisableReqLogs:  true,
		},
		Session: SessionConfig{
			CookieName: "sid",
			Lifetime:   time.Hour,
		},
		Registration: RegistrationConfig{
			AllowAdmin: true,
		},
	}
}
