package tests

import (
	"log"
	"testing"

	testingutil "github.com/nallijaku/backend/testing"
)

// withTestDB provisions a dedicated database for the test and tears it
// down afterwards. Tests are skipped when no PostgreSQL server is
// reachable through the TEST_DB_* environment.
func withTestDB(t *testing.T, testFunc func(*testingutil.TestDB)) {
	t.Helper()

	testDB, err := testingutil.SetupTestDB()
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	defer func() {
		if cleanupErr := testDB.TeardownTestDB(); cleanupErr != nil {
			log.Printf("Warning: failed to cleanup test database: %v", cleanupErr)
		}
	}()

	testFunc(testDB)
}
