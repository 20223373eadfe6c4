// Package storage persists a log of games and search results to
// SQLite. Writes are queued to a background writer so the search path
// never blocks on disk.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Store handles SQLite database operations with async writes.
type Store struct {
	db           *sql.DB
	path         string
	writeChan    chan func(*sql.Tx) error
	healthStatus atomic.Bool
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	log          *zap.SugaredLogger
}

// NewStore opens the database and starts the async writer.
func NewStore(dataSourceName string, log *zap.SugaredLogger) (*Store, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		db:        db,
		path:      dataSourceName,
		writeChan: make(chan func(*sql.Tx) error, 256),
		ctx:       ctx,
		cancel:    cancel,
		log:       log,
	}
	s.healthStatus.Store(true)

	s.wg.Add(1)
	go s.writerLoop()

	return s, nil
}

// writerLoop processes queued write operations.
func (s *Store) writerLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			// Drain remaining writes with a deadline
			deadline := time.After(2 * time.Second)
			for {
				select {
				case fn := <-s.writeChan:
					if s.healthStatus.Load() {
						s.executeWrite(fn)
					}
				case <-deadline:
					return
				default:
					return
				}
			}

		case fn := <-s.writeChan:
			if !s.healthStatus.Load() {
				continue
			}
			s.executeWrite(fn)
		}
	}
}

// executeWrite runs a transactional write operation. Any failure marks
// the store degraded; later writes are dropped rather than blocking
// the engine.
func (s *Store) executeWrite(fn func(*sql.Tx) error) {
	tx, err := s.db.Begin()
	if err != nil {
		s.log.Warnf("storage degraded: failed to begin transaction: %v", err)
		s.healthStatus.Store(false)
		return
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		s.log.Warnf("storage degraded: write operation failed: %v", err)
		s.healthStatus.Store(false)
		return
	}

	if err := tx.Commit(); err != nil {
		s.log.Warnf("storage degraded: failed to commit: %v", err)
		s.healthStatus.Store(false)
	}
}

func (s *Store) enqueue(what string, fn func(*sql.Tx) error) {
	if !s.healthStatus.Load() {
		return
	}
	select {
	case s.writeChan <- fn:
	default:
		s.log.Warnf("storage write queue full, dropping %s", what)
	}
}

// RecordNewGame asynchronously records a new game.
func (s *Store) RecordNewGame(record GameRecord) {
	s.enqueue("game record", func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO games (game_id, initial_fen, start_time_utc) VALUES (?, ?, ?)`,
			record.GameID, record.InitialFEN, record.StartTimeUTC,
		)
		return err
	})
}

// RecordBestMove asynchronously records a completed search result.
func (s *Store) RecordBestMove(record BestMoveRecord) {
	s.enqueue("bestmove record", func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO bestmoves (
				game_id, position_fen, bestmove, ponder, depth, nodes, elapsed_ms, created_time_utc
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			record.GameID, record.PositionFEN, record.BestMove, record.Ponder,
			record.Depth, record.Nodes, record.ElapsedMS, record.CreatedTimeUTC,
		)
		return err
	})
}

// QueryGames retrieves games, optionally filtered by game ID.
func (s *Store) QueryGames(gameID string) ([]GameRecord, error) {
	query := `SELECT game_id, initial_fen, start_time_utc FROM games`
	var args []any
	if gameID != "" && gameID != "*" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` ORDER BY start_time_utc DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		if err := rows.Scan(&g.GameID, &g.InitialFEN, &g.StartTimeUTC); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return games, nil
}

// QueryBestMoves retrieves the recorded search results for a game.
func (s *Store) QueryBestMoves(gameID string) ([]BestMoveRecord, error) {
	rows, err := s.db.Query(
		`SELECT game_id, position_fen, bestmove, ponder, depth, nodes, elapsed_ms, created_time_utc
		 FROM bestmoves WHERE game_id = ? ORDER BY id`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var records []BestMoveRecord
	for rows.Next() {
		var r BestMoveRecord
		if err := rows.Scan(&r.GameID, &r.PositionFEN, &r.BestMove, &r.Ponder,
			&r.Depth, &r.Nodes, &r.ElapsedMS, &r.CreatedTimeUTC); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return records, nil
}

// IsHealthy returns the current health status.
func (s *Store) IsHealthy() bool {
	return s.healthStatus.Load()
}

// InitDB creates the database schema.
func (s *Store) InitDB() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return tx.Commit()
}

// Close drains the writer and closes the database connection.
func (s *Store) Close() error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.log.Warnf("storage writer shutdown timeout, some writes may be lost")
	}

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DeleteDB removes the database file.
func (s *Store) DeleteDB() error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete database file: %w", err)
	}
	return nil
}
