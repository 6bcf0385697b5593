package testdb

import (
	"net/url"
	"os"
)

// databaseURLEnvVars are checked in order by GetTestDatabaseURL.
var databaseURLEnvVars = []string{"DATABASE_URL", "FLASHDECK_TEST_DB_URL", "FLASHDECK_DATABASE_URL"}

// GetTestDatabaseURL returns the PostgreSQL URL to test against, or "" when
// none is configured.
func GetTestDatabaseURL() string {
	for _, envVar := range databaseURLEnvVars {
		if v := os.Getenv(envVar); v != "" {
			return v
		}
	}
	return ""
}

// IsIntegrationTestEnvironment returns true if any of the database URL environment
// variables are set, indicating that integration tests can be run.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// ShouldSkipDatabaseTest returns true if the database connection environment variables
// are not set, indicating that database integration tests should be skipped.
func ShouldSkipDatabaseTest() bool {
	return !IsIntegrationTestEnvironment()
}

// MaskDatabaseURL masks the password in a database URL for safe logging.
func MaskDatabaseURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}
	return parsedURL.Redacted()
}
