package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natevvv/astar-routing/pkg/graph"
	"github.com/paulmach/orb"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS nodes (
    id   INTEGER PRIMARY KEY,
    lat  REAL NOT NULL,
    lon  REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS arcs (
    from_id  INTEGER NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
    to_id    INTEGER NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
    cost     REAL NOT NULL,
    PRIMARY KEY (from_id, to_id)
);

CREATE INDEX IF NOT EXISTS idx_arcs_from ON arcs(from_id);
`

// SQLiteStore persists geographic graphs. A store holds one graph at a time.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates the database schema if it doesn't exist.
func (s *SQLiteStore) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveGraph replaces the stored graph with g.
func (s *SQLiteStore) SaveGraph(ctx context.Context, g graph.Graph) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM arcs`); err != nil {
		return fmt.Errorf("clearing arcs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM nodes`); err != nil {
		return fmt.Errorf("clearing nodes: %w", err)
	}

	nodeStmt, err := tx.PrepareContext(ctx, `INSERT INTO nodes (id, lat, lon) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing node insert: %w", err)
	}
	defer nodeStmt.Close()
	for id := 0; id < g.NodeCount(); id++ {
		p := g.GetNode(id)
		if _, err := nodeStmt.ExecContext(ctx, id, p.Lat(), p.Lon()); err != nil {
			return fmt.Errorf("inserting node %d: %w", id, err)
		}
	}

	arcStmt, err := tx.PrepareContext(ctx, `INSERT INTO arcs (from_id, to_id, cost) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing arc insert: %w", err)
	}
	defer arcStmt.Close()
	for from := 0; from < g.NodeCount(); from++ {
		for _, arc := range g.GetArcsFrom(from) {
			if _, err := arcStmt.ExecContext(ctx, from, arc.To, arc.Cost); err != nil {
				return fmt.Errorf("inserting arc %d -> %d: %w", from, arc.To, err)
			}
		}
	}

	return tx.Commit()
}

// LoadGraph reads the stored graph. Node ids are expected to be dense, as
// SaveGraph writes them.
func (s *SQLiteStore) LoadGraph(ctx context.Context) (*graph.AdjacencyListGraph, error) {
	g := graph.NewAdjacencyListGraph()

	rows, err := s.db.QueryContext(ctx, `SELECT id, lat, lon FROM nodes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		var lat, lon float64
		if err := rows.Scan(&id, &lat, &lon); err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		if added := g.AddNode(orb.Point{lon, lat}); added != id {
			return nil, fmt.Errorf("node ids are not dense: expected %d, found %d", added, id)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	arcRows, err := s.db.QueryContext(ctx, `SELECT from_id, to_id, cost FROM arcs ORDER BY from_id, rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying arcs: %w", err)
	}
	defer arcRows.Close()
	for arcRows.Next() {
		var from, to int
		var cost float64
		if err := arcRows.Scan(&from, &to, &cost); err != nil {
			return nil, fmt.Errorf("scanning arc: %w", err)
		}
		if _, err := g.AddArc(from, to, cost); err != nil {
			return nil, err
		}
	}
	return g, arcRows.Err()
}

// Stats returns the number of stored nodes and arcs.
func (s *SQLiteStore) Stats(ctx context.Context) (nodes, arcs int, err error) {
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM nodes`).Scan(&nodes); err != nil {
		return 0, 0, err
	}
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM arcs`).Scan(&arcs); err != nil {
		return 0, 0, err
	}
	return nodes, arcs, nil
}
