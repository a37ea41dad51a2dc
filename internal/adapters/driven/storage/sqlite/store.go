package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/equipcheck/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/equipcheck/internal/core/domain"
	"github.com/custodia-labs/equipcheck/internal/core/ports/driven"
)

// dateLayout is the ISO-8601 local date-time format used for every stored timestamp.
// Fractional seconds are trimmed, which keeps lexical and chronological order aligned.
const dateLayout = "2006-01-02T15:04:05.999999999"

// Store is a SQLite-based inspection store.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.InspectionStore = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.equipcheck/data/inspections.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".equipcheck", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "inspections.db")

	// Foreign keys are a per-connection setting, so they go in the DSN
	// where every pooled connection picks them up.
	db, err := sql.Open("sqlite", dbPath+
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Save ====================

// SaveInspection upserts the inspection graph in a single transaction.
// Photos of each question are replaced so that removed photos do not come back.
func (s *Store) SaveInspection(ctx context.Context, in domain.Inspection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO inspections (id, equipment, inspector, supervisor, horometer, date, is_completed, conformity_percentage)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			equipment = excluded.equipment,
			inspector = excluded.inspector,
			supervisor = excluded.supervisor,
			horometer = excluded.horometer,
			date = excluded.date,
			is_completed = excluded.is_completed,
			conformity_percentage = excluded.conformity_percentage
	`, in.ID, in.Equipment, in.Inspector, in.Supervisor, in.Horometer,
		formatDate(in.Date), in.IsCompleted, domain.ConformityPercentage(in))
	if err != nil {
		return fmt.Errorf("saving inspection: %w", err)
	}

	itemStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO inspection_items (id, inspection_id, name, position)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			inspection_id = excluded.inspection_id,
			name = excluded.name,
			position = excluded.position
	`)
	if err != nil {
		return fmt.Errorf("preparing item statement: %w", err)
	}
	defer itemStmt.Close()

	questionStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO inspection_questions (id, item_id, text, is_conform, comment, position)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			item_id = excluded.item_id,
			text = excluded.text,
			is_conform = excluded.is_conform,
			comment = excluded.comment,
			position = excluded.position
	`)
	if err != nil {
		return fmt.Errorf("preparing question statement: %w", err)
	}
	defer questionStmt.Close()

	clearPhotosStmt, err := tx.PrepareContext(ctx, "DELETE FROM photos WHERE question_id = ?")
	if err != nil {
		return fmt.Errorf("preparing photo cleanup statement: %w", err)
	}
	defer clearPhotosStmt.Close()

	photoStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO photos (id, question_id, uri, has_drawings, drawing_uri, timestamp, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			question_id = excluded.question_id,
			uri = excluded.uri,
			has_drawings = excluded.has_drawings,
			drawing_uri = excluded.drawing_uri,
			timestamp = excluded.timestamp,
			position = excluded.position
	`)
	if err != nil {
		return fmt.Errorf("preparing photo statement: %w", err)
	}
	defer photoStmt.Close()

	for i := range in.Items {
		item := &in.Items[i]
		if _, err := itemStmt.ExecContext(ctx, item.ID, in.ID, item.Name, i); err != nil {
			return fmt.Errorf("saving item %s: %w", item.ID, err)
		}

		for j := range item.Questions {
			q := &item.Questions[j]
			if _, err := questionStmt.ExecContext(ctx, q.ID, item.ID, q.Text,
				conformityToNull(q.Answer.Conformity), commentToNull(q.Answer), j); err != nil {
				return fmt.Errorf("saving question %s: %w", q.ID, err)
			}

			if _, err := clearPhotosStmt.ExecContext(ctx, q.ID); err != nil {
				return fmt.Errorf("clearing photos of question %s: %w", q.ID, err)
			}
			if !q.Answer.IsAnswered() {
				continue
			}
			for k, p := range q.Answer.Photos {
				if _, err := photoStmt.ExecContext(ctx, p.ID, q.ID, p.URI, p.HasDrawings,
					nullString(p.DrawingURI), formatDate(p.Timestamp), k); err != nil {
					return fmt.Errorf("saving photo %s: %w", p.ID, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ==================== Load ====================

// GetFullInspection rebuilds the nested inspection graph.
func (s *Store) GetFullInspection(ctx context.Context, id string) (*domain.Inspection, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, equipment, inspector, supervisor, horometer, date, is_completed
		FROM inspections WHERE id = ?
	`, id)

	var in domain.Inspection
	var date string
	if err := row.Scan(&in.ID, &in.Equipment, &in.Inspector, &in.Supervisor,
		&in.Horometer, &date, &in.IsCompleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning inspection: %w", err)
	}

	parsed, err := parseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parsing inspection date: %w", err)
	}
	in.Date = parsed

	items, err := s.loadItems(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		questions, err := s.loadQuestions(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Questions = questions
	}
	in.Items = items

	return &in, nil
}

func (s *Store) loadItems(ctx context.Context, inspectionID string) ([]domain.InspectionItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name FROM inspection_items
		WHERE inspection_id = ?
		ORDER BY position, rowid
	`, inspectionID)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	items := []domain.InspectionItem{}
	for rows.Next() {
		var item domain.InspectionItem
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

func (s *Store) loadQuestions(ctx context.Context, itemID string) ([]domain.InspectionQuestion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, is_conform, comment FROM inspection_questions
		WHERE item_id = ?
		ORDER BY position, rowid
	`, itemID)
	if err != nil {
		return nil, fmt.Errorf("querying questions: %w", err)
	}

	questions := []domain.InspectionQuestion{}
	for rows.Next() {
		var q domain.InspectionQuestion
		var isConform sql.NullBool
		var comment sql.NullString
		if err := rows.Scan(&q.ID, &q.Text, &isConform, &comment); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning question: %w", err)
		}
		if isConform.Valid {
			// The answer time is not stored; the load time stands in for it.
			q.Answer = domain.Answer{
				Conformity: domain.NonConforming,
				Comment:    comment.String,
				Timestamp:  time.Now(),
			}
			if isConform.Bool {
				q.Answer.Conformity = domain.Conforming
			}
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating questions: %w", err)
	}
	// Close before the photo queries so a single-connection pool is not held.
	rows.Close()

	for i := range questions {
		if !questions[i].Answer.IsAnswered() {
			continue
		}
		photos, err := s.loadPhotos(ctx, questions[i].ID)
		if err != nil {
			return nil, err
		}
		questions[i].Answer.Photos = photos
	}

	return questions, nil
}

func (s *Store) loadPhotos(ctx context.Context, questionID string) ([]domain.Photo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, uri, has_drawings, drawing_uri, timestamp FROM photos
		WHERE question_id = ?
		ORDER BY position, rowid
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("querying photos: %w", err)
	}
	defer rows.Close()

	photos := []domain.Photo{}
	for rows.Next() {
		var p domain.Photo
		var drawingURI sql.NullString
		var timestamp string
		if err := rows.Scan(&p.ID, &p.URI, &p.HasDrawings, &drawingURI, &timestamp); err != nil {
			return nil, fmt.Errorf("scanning photo: %w", err)
		}
		p.DrawingURI = drawingURI.String
		ts, err := parseDate(timestamp)
		if err != nil {
			return nil, fmt.Errorf("parsing photo timestamp: %w", err)
		}
		p.Timestamp = ts
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating photos: %w", err)
	}
	return photos, nil
}

// ==================== Delete ====================

// DeleteInspection removes the inspection bottom-up: photos, questions, items, inspection.
// The explicit order does not rely on the foreign-key cascade being enabled.
func (s *Store) DeleteInspection(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	steps := []struct {
		what  string
		query string
	}{
		{"photos", `DELETE FROM photos WHERE question_id IN (
			SELECT q.id FROM inspection_questions q
			JOIN inspection_items i ON i.id = q.item_id
			WHERE i.inspection_id = ?)`},
		{"questions", `DELETE FROM inspection_questions WHERE item_id IN (
			SELECT id FROM inspection_items WHERE inspection_id = ?)`},
		{"items", "DELETE FROM inspection_items WHERE inspection_id = ?"},
		{"inspection", "DELETE FROM inspections WHERE id = ?"},
	}

	for _, step := range steps {
		if _, err := tx.ExecContext(ctx, step.query, id); err != nil {
			return fmt.Errorf("deleting %s: %w", step.what, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ==================== Queries ====================

// ListInspections returns inspection rows, newest first.
func (s *Store) ListInspections(
	ctx context.Context,
	filter domain.InspectionFilter,
) ([]domain.InspectionSummary, error) {
	query := `
		SELECT id, equipment, inspector, supervisor, horometer, date, is_completed, conformity_percentage
		FROM inspections WHERE 1 = 1`
	var args []any
	if filter.Equipment != "" {
		query += ` AND LOWER(equipment) LIKE ? ESCAPE '\'`
		args = append(args, likePattern(filter.Equipment))
	}
	if filter.CompletedOnly {
		query += " AND is_completed = 1"
	}
	query += " ORDER BY date DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying inspections: %w", err)
	}
	defer rows.Close()

	summaries := []domain.InspectionSummary{}
	for rows.Next() {
		var sum domain.InspectionSummary
		var date string
		if err := rows.Scan(&sum.ID, &sum.Equipment, &sum.Inspector, &sum.Supervisor,
			&sum.Horometer, &date, &sum.IsCompleted, &sum.ConformityPercentage); err != nil {
			return nil, fmt.Errorf("scanning inspection: %w", err)
		}
		if sum.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("parsing inspection date: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating inspections: %w", err)
	}
	return summaries, nil
}

// FindSimilarNonConformities searches past non-conforming answers on the same equipment.
func (s *Store) FindSimilarNonConformities(
	ctx context.Context,
	query domain.RecurrenceQuery,
) ([]domain.HistoricalQuestion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ins.id, ins.date, ins.equipment, ins.inspector, it.name, q.id, q.text, q.comment
		FROM inspection_questions q
		JOIN inspection_items it ON it.id = q.item_id
		JOIN inspections ins ON ins.id = it.inspection_id
		WHERE q.is_conform = 0
			AND LOWER(q.text) LIKE ? ESCAPE '\'
			AND LOWER(it.name) LIKE ? ESCAPE '\'
			AND LOWER(ins.equipment) LIKE ? ESCAPE '\'
			AND ins.id != ?
		ORDER BY ins.date DESC
		LIMIT ?
	`, likePattern(query.QuestionText), likePattern(query.ItemName),
		likePattern(query.Equipment), query.ExcludeInspectionID, domain.RecurrenceLimit)
	if err != nil {
		return nil, fmt.Errorf("querying similar non-conformities: %w", err)
	}
	defer rows.Close()

	results := []domain.HistoricalQuestion{}
	for rows.Next() {
		var h domain.HistoricalQuestion
		var date string
		var comment sql.NullString
		if err := rows.Scan(&h.InspectionID, &date, &h.Equipment, &h.Inspector,
			&h.ItemName, &h.QuestionID, &h.QuestionText, &comment); err != nil {
			return nil, fmt.Errorf("scanning similar non-conformity: %w", err)
		}
		if h.InspectionDate, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("parsing inspection date: %w", err)
		}
		h.Comment = comment.String
		results = append(results, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating similar non-conformities: %w", err)
	}
	return results, nil
}

// ==================== Helper Functions ====================

func formatDate(t time.Time) string {
	return t.In(time.Local).Format(dateLayout)
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.Local)
}

// conformityToNull maps the answer verdict onto the tri-state is_conform column.
func conformityToNull(c domain.Conformity) sql.NullBool {
	switch c {
	case domain.Conforming:
		return sql.NullBool{Bool: true, Valid: true}
	case domain.NonConforming:
		return sql.NullBool{Bool: false, Valid: true}
	default:
		return sql.NullBool{}
	}
}

func commentToNull(a domain.Answer) sql.NullString {
	if !a.IsAnswered() {
		return sql.NullString{}
	}
	return sql.NullString{String: a.Comment, Valid: true}
}

// nullString converts an empty string to sql.NullString with Valid=false.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// likePattern builds a lower-cased, unanchored LIKE pattern with wildcards escaped.
func likePattern(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(s))
	return "%" + escaped + "%"
}
