package redis

import (
	"context"

	"github.com/meshly/contactrank/internal/db"
)

// Del deletes a key.
func (s *Store) Del(ctx context.Context, key string) error {
	cmd := s.b().Del().Key(key).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}

// Exists checks if a key exists.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	cmd := s.b().Exists().Key(key).Build()
	count, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return false, &db.Error{Op: db.OpExists, Err: err}
	}
	return count > 0, nil
}

// Scan iterates keys matching a pattern.
func (s *Store) Scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		cmd := s.b().Scan().Cursor(cursor).Match(pattern).Count(100).Build()
		res, err := s.do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, &db.Error{Op: db.OpScan, Err: err}
		}
		keys = append(keys, res.Elements...)
		cursor = res.Cursor
		if cursor == 0 {
			break
		}
	}

	return keys, nil
}
