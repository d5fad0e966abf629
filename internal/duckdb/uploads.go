package duckdb

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// UploadReceipt is the backend's record of an accepted upload.
type UploadReceipt struct {
	ID              string    `json:"id"`
	Filename        string    `json:"filename"`
	SizeBytes       int64     `json:"size_bytes"`
	ContentType     string    `json:"content_type"`
	Source          string    `json:"source"`
	ClientTimestamp string    `json:"timestamp"`
	ReceivedAt      time.Time `json:"received_at"`
}

// RecordUpload stores a receipt.
func (s *Store) RecordUpload(r UploadReceipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	_, err := s.db.ExecContext(ctx, `INSERT INTO uploads
		(id, filename, size_bytes, content_type, source, client_timestamp, received_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Filename, r.SizeBytes, r.ContentType, r.Source, r.ClientTimestamp, r.ReceivedAt.UTC())
	if err != nil {
		return fmt.Errorf("record upload %s: %w", r.Filename, err)
	}
	return nil
}

// RecentUploads returns up to limit receipts, newest first.
func (s *Store) RecentUploads(limit int) ([]UploadReceipt, error) {
	if limit <= 0 {
		limit = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT id, filename, size_bytes, content_type, source, client_timestamp, received_at
		FROM uploads ORDER BY received_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent uploads: %w", err)
	}
	defer rows.Close()

	var out []UploadReceipt
	for rows.Next() {
		var r UploadReceipt
		if err := rows.Scan(&r.ID, &r.Filename, &r.SizeBytes, &r.ContentType, &r.Source, &r.ClientTimestamp, &r.ReceivedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Upload looks up a single receipt by id.
func (s *Store) Upload(id string) (UploadReceipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	var r UploadReceipt
	err := s.db.QueryRowContext(ctx, `SELECT id, filename, size_bytes, content_type, source, client_timestamp, received_at
		FROM uploads WHERE id = ?`, id).
		Scan(&r.ID, &r.Filename, &r.SizeBytes, &r.ContentType, &r.Source, &r.ClientTimestamp, &r.ReceivedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return UploadReceipt{}, ErrNotFound
	}
	if err != nil {
		return UploadReceipt{}, fmt.Errorf("upload %s: %w", id, err)
	}
	return r, nil
}

// UploadCount returns the number of stored receipts.
func (s *Store) UploadCount() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM uploads").Scan(&n); err != nil {
		return 0, fmt.Errorf("count uploads: %w", err)
	}
	return n, nil
}
