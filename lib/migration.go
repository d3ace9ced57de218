package lib

import (
	"context"
	"database/sql"
	"io/ioutil"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Migration is a pair of NNNN_name.up.sql / NNNN_name.down.sql files for the
// history database.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

func ReadMigrationsDir(dir string) ([]*Migration, error) {
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	migrations := map[string]*Migration{}

	withMigration := func(name string) (*Migration, error) {
		m, ok := migrations[name]
		if !ok {
			version, err := getMigrationVersion(name)
			if err != nil {
				return nil, err
			}
			m = &Migration{
				Version: version,
				Name:    name,
			}
			migrations[name] = m
		}
		return m, nil
	}

	// Load all migration files into migrations map
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}
		filePath := path.Join(dir, file.Name())
		bytes, err := ioutil.ReadFile(filePath)
		if err != nil {
			return nil, err
		}

		name, isUp := parseMigrationFileName(file.Name())
		migration, err := withMigration(name)
		if err != nil {
			return nil, errors.Wrapf(err, "migration file %s", file.Name())
		}
		if isUp {
			migration.UpSQL = string(bytes)
		} else {
			migration.DownSQL = string(bytes)
		}
	}

	// Sort keys lexicographically
	keys := []string{}
	for k := range migrations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Make result slice
	result := []*Migration{}
	for _, k := range keys {
		result = append(result, migrations[k])
	}
	return result, nil
}

func parseMigrationFileName(fileName string) (string, bool) {
	return getMigrationName(fileName), getUpness(fileName)
}

func getMigrationName(fileName string) string {
	dotParts := strings.Split(fileName, ".")
	return dotParts[0]
}

func getUpness(fileName string) bool {
	return !strings.HasSuffix(fileName, ".down.sql")
}

func getMigrationVersion(name string) (int, error) {
	prefix := strings.SplitN(name, "_", 2)[0]
	version, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, errors.Errorf("migration name %q does not start with a version number", name)
	}
	return version, nil
}

// RunMigrations applies every migration whose version is not yet recorded in
// schema_migrations. Each one runs in its own transaction.
func RunMigrations(ctx context.Context, db *sql.DB, migrations []*Migration) error {
	err := requireMigrationsTable(ctx, db)
	if err != nil {
		return err
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}
		err = execMigration(ctx, db, migration)
		if err != nil {
			return errors.Wrapf(err, "migration %s", migration.Name)
		}
	}

	return nil
}

func requireMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INT PRIMARY KEY,
		at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	)`)
	return errors.Wrap(err, "creating schema_migrations")
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := map[int]bool{}
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func execMigration(ctx context.Context, db *sql.DB, migration *Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, migration.UpSQL); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err = tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", migration.Version); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
