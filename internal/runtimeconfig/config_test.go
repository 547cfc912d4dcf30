package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/prismcms/prism/internal/runtimeconfig"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{
			"unknown storage provider",
			func(c *runtimeconfig.Config) { c.Storage.Provider = "etcd" },
			runtimeconfig.ErrStorageProviderUnknown,
		},
		{
			"bun without dsn",
			func(c *runtimeconfig.Config) { c.Storage.Provider = "bun" },
			runtimeconfig.ErrStorageDSNRequired,
		},
		{
			"negative cache ttl",
			func(c *runtimeconfig.Config) { c.Cache.DefaultTTL = -1 },
			runtimeconfig.ErrCacheTTLInvalid,
		},
		{
			"unknown logging provider",
			func(c *runtimeconfig.Config) { c.Logging.Provider = "zap" },
			runtimeconfig.ErrLoggingProviderUnknown,
		},
		{
			"invalid logging level",
			func(c *runtimeconfig.Config) { c.Logging.Level = "verbose" },
			runtimeconfig.ErrLoggingLevelInvalid,
		},
		{
			"invalid logging format",
			func(c *runtimeconfig.Config) { c.Logging.Format = "logfmt" },
			runtimeconfig.ErrLoggingFormatInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfig_BunWithDriverIsValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.Driver = "sqlite3"
	cfg.Storage.DSN = "file::memory:?cache=shared"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("bun config with driver/dsn must validate: %v", err)
	}
	if !cfg.UsesBunStorage() {
		t.Fatal("expected UsesBunStorage to report true")
	}
}
