// Package contact reads the externally maintained contact records from the
// store. This service never writes them; the enrichment pipeline owns the
// keys.
package contact

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/meshly/contactrank/internal/domain"
	"github.com/meshly/contactrank/internal/domain/aspect"
	domcon "github.com/meshly/contactrank/internal/domain/contact"
)

// store is the consumer interface for contact records (ISP).
type store interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
	JSONGetMulti(ctx context.Context, keys []string, path string) ([][]byte, error)
}

// payload fields the fallback substring index searches, besides the skills
// aspect texts.
var substringFields = []string{"name", "company", "position", "location", "headline"}

// Repo implements usecase/rank.ContactReader.
type Repo struct {
	store  store
	logger *zap.Logger
}

// New creates a contact repository.
func New(s store, logger *zap.Logger) *Repo {
	return &Repo{store: s, logger: logger}
}

// ListActive returns every active contact record owned by the user.
func (r *Repo) ListActive(ctx context.Context, userID string) ([]domcon.Record, error) {
	records, err := r.loadAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	active := records[:0]
	for i := range records {
		if records[i].Active() {
			active = append(active, records[i])
		}
	}
	return active, nil
}

// SearchSubstring is the plain fallback index: a case-insensitive substring
// scan over name/company/position/location/headline and the skills list.
// Inactive records are included; the fallback is a last resort.
func (r *Repo) SearchSubstring(ctx context.Context, userID, text string, limit int) ([]domcon.Record, error) {
	needles := substringNeedles(text)
	if len(needles) == 0 {
		return nil, nil
	}

	records, err := r.loadAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	matches := make([]domcon.Record, 0, limit)
	for i := range records {
		if matchesSubstring(&records[i], needles) {
			matches = append(matches, records[i])
			if limit > 0 && len(matches) >= limit {
				break
			}
		}
	}
	return matches, nil
}

// loadAll scans the user's key space and bulk-fetches every record.
// Documents that fail to decode are skipped, not fatal.
func (r *Repo) loadAll(ctx context.Context, userID string) ([]domcon.Record, error) {
	pattern := contactKey(userID, "*")
	keys, err := r.store.Scan(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", pattern, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	raws, err := r.store.JSONGetMulti(ctx, keys, "$")
	if err != nil {
		return nil, fmt.Errorf("json.get contacts: %w", err)
	}

	records := make([]domcon.Record, 0, len(keys))
	for i, raw := range raws {
		if raw == nil {
			continue // key expired between scan and fetch
		}
		rec, err := parseRecord(raw, contactIDFromKey(keys[i], userID))
		if err != nil {
			r.logger.Warn("skipping malformed contact record",
				zap.String("key", keys[i]),
				zap.Error(err),
			)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func contactKey(userID, contactID string) string {
	return fmt.Sprintf("%scontacts:%s:%s", domain.KeyPrefix, userID, contactID)
}

func contactIDFromKey(key, userID string) string {
	return strings.TrimPrefix(key, contactKey(userID, ""))
}

// substringNeedles returns the lowercased query plus its tokens of length
// three or more, so multi-word queries still match single-field records.
func substringNeedles(text string) []string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}
	needles := []string{text}
	for _, tok := range strings.Fields(text) {
		if len(tok) >= 3 && tok != text {
			needles = append(needles, tok)
		}
	}
	return needles
}

func matchesSubstring(rec *domcon.Record, needles []string) bool {
	var sb strings.Builder
	for _, f := range substringFields {
		sb.WriteString(strings.ToLower(rec.PayloadString(f)))
		sb.WriteByte(' ')
	}
	sb.WriteString(strings.ToLower(strings.Join(rec.Texts(aspect.Skills), " ")))
	haystack := sb.String()

	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
