package test

import "os"

// DSNEnv names the environment variable holding a Postgres connection string
// for the end-to-end tests. They are skipped when it is empty.
const DSNEnv = "LINEQ_TEST_DSN"

func ConnectionString() string {
	return os.Getenv(DSNEnv)
}
