package commands

import (
	"database/sql"

	"github.com/cmungall/go-db/annot"
	"github.com/cmungall/go-db/config"
	"github.com/cmungall/go-db/db"
	"github.com/cmungall/go-db/errors"
	"github.com/cmungall/go-db/logger"
	"github.com/cmungall/go-db/ontology"
	"github.com/cmungall/go-db/storage"
)

// openDatabase opens and migrates a database using the specified path.
// If dbPath is empty, it loads the path from config. Uses logger.Logger
// for db operations.
func openDatabase(dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, errors.Wrap(err, "failed to load configuration")
		}
		dbPath = cfg.GetDatabasePath()
	}

	database, err := db.Open(dbPath, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", dbPath)
	}

	if err := db.Migrate(database, logger.Logger); err != nil {
		database.Close()
		return nil, errors.Wrapf(err, "failed to run migrations on %s", dbPath)
	}

	return database, nil
}

// loadStoredSession reads the persisted annotations back into an in-memory
// store alongside the stored ontology graph. The most recent persisted
// session is restored with its stored session id and surrogate ids, so
// violations saved against the store join back to the stored rows. With
// nothing persisted yet an empty fresh-session store is returned.
func loadStoredSession(database *sql.DB) (*ontology.Graph, *annot.Store, error) {
	sqlStore := storage.NewSQLStore(database, logger.Logger)

	graph, err := sqlStore.LoadGraph()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load ontology graph")
	}

	sessionID, err := storage.LatestSessionID(database)
	if errors.Is(err, errors.ErrNotFound) {
		store, _ := annot.Load(nil, logger.Logger)
		return graph, store, nil
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to resolve stored session")
	}

	rows, err := storage.SelectSessionRows(database, sessionID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load annotations")
	}

	store, result := annot.Restore(sessionID, rows, logger.Logger)
	if result.Skipped > 0 {
		logger.Warnw("Skipped stored annotations on reload",
			"session_id", sessionID,
			"skipped", result.Skipped,
		)
	}
	return graph, store, nil
}
