package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tirtawidya/aruskas/internal/cli"
	"github.com/tirtawidya/aruskas/internal/common"
	"github.com/tirtawidya/aruskas/internal/model"
	"github.com/tirtawidya/aruskas/internal/report"
	"github.com/tirtawidya/aruskas/internal/service"
	"github.com/tirtawidya/aruskas/internal/storage"
)

// openStore opens the dashboard database configured under database.path.
func openStore() (*storage.SQLiteStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("%w: database.path is not set and the home directory is unknown: %v", common.ErrMissingConfig, err)
		}
		dbPath = filepath.Join(home, ".local", "share", "aruskas", "aruskas.db")
	}

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, common.NewUserError("failed to open the dashboard database", err)
	}
	return store, nil
}

// newEngine builds the reporting engine over the store's six sources.
func newEngine(store *storage.SQLiteStore) *report.Engine {
	return report.New(store.Sources()...)
}

// callerCredential is the CLI's identity. The reporting operations take the
// credential explicitly; in the dashboard it comes from the authorization
// gate, here it comes from config.
func callerCredential() service.Credential {
	user := viper.GetString("caller.user")
	if user == "" {
		user = "cli"
	}
	role := viper.GetString("caller.role")
	if role == "" {
		role = "finance"
	}
	return service.Credential{UserID: user, Role: role}
}

// printDataQuality surfaces skipped records and degraded results so an
// undercount is never mistaken for an exact report.
func printDataQuality(skipped int, degraded bool, failed []model.SourceModule) {
	if skipped > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d record(s) skipped during normalization", skipped)))
	}
	if degraded {
		names := make([]string, 0, len(failed))
		for _, m := range failed {
			names = append(names, string(m))
		}
		common.LogDebug("degraded fetch", common.Fields{"failed_sources": names})
		fmt.Println(cli.FormatWarning(fmt.Sprintf("degraded result: sources unavailable: %s", strings.Join(names, ", "))))
	}
}

// fetchPolicyFromFlag maps the --policy flag value onto a FetchPolicy.
func fetchPolicyFromFlag(value string) (service.FetchPolicy, error) {
	policy := service.FetchPolicy(value)
	if !policy.Valid() {
		return "", fmt.Errorf("invalid policy %q: use %q or %q", value, service.PolicyBestEffort, service.PolicyAllOrNothing)
	}
	return policy, nil
}
