package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
)

// CreateParams holds the caller-supplied fields for a new agenda row.
// IsPublic defaults to true when nil.
type CreateParams struct {
	MeetingTitle    string
	Opening         string
	Topics          []models.AgendaTopic
	WrapUp          string
	UserID          string
	IsPublic        *bool
	MeetingDate     *time.Time
	MeetingDuration *int
	Tags            []string
	Notes           string
}

// UpdateParams holds a partial update; nil fields are left unchanged.
type UpdateParams struct {
	MeetingTitle    *string
	Opening         *string
	Topics          []models.AgendaTopic
	WrapUp          *string
	IsPublic        *bool
	MeetingDate     *time.Time
	MeetingDuration *int
	Tags            []string
	Notes           *string
}

const agendaColumns = `id, created_at, updated_at, user_id, meeting_title, opening, topics, wrap_up, is_public, share_token, view_count, meeting_date, meeting_duration, tags, notes`

// CreateAgenda inserts one row. The store generates id, share_token, and the
// timestamps; the share token's uniqueness is enforced by the schema.
func (db *DB) CreateAgenda(params CreateParams) (*models.AgendaRecord, error) {
	id := uuid.NewString()
	token := uuid.NewString()
	now := time.Now().UTC()

	isPublic := true
	if params.IsPublic != nil {
		isPublic = *params.IsPublic
	}

	topicsJSON, err := json.Marshal(params.Topics)
	if err != nil {
		return nil, fmt.Errorf("store: marshal topics: %w", err)
	}

	var tagsJSON any
	if params.Tags != nil {
		b, err := json.Marshal(params.Tags)
		if err != nil {
			return nil, fmt.Errorf("store: marshal tags: %w", err)
		}
		tagsJSON = string(b)
	}

	_, err = db.conn.Exec(`
		INSERT INTO agendas (id, created_at, updated_at, user_id, meeting_title, opening, topics, wrap_up, is_public, share_token, view_count, meeting_date, meeting_duration, tags, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?)
	`, id, now, now, nullString(params.UserID), params.MeetingTitle, params.Opening, string(topicsJSON), params.WrapUp,
		isPublic, token, nullTime(params.MeetingDate), nullInt(params.MeetingDuration), tagsJSON, nullString(params.Notes))
	if err != nil {
		return nil, fmt.Errorf("store: create agenda: %w", err)
	}

	return db.GetAgendaByID(id)
}

// GetAgendaByID returns the row with the given id, or nil if not found.
func (db *DB) GetAgendaByID(id string) (*models.AgendaRecord, error) {
	row := db.conn.QueryRow(`SELECT `+agendaColumns+` FROM agendas WHERE id = ?`, id)
	rec, err := scanAgenda(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get agenda: %w", err)
	}
	return rec, nil
}

// GetAgendaByShareToken resolves a share token against public rows only;
// tokens on private records are not resolvable through this path. The view
// count is incremented before the row is read back.
func (db *DB) GetAgendaByShareToken(token string) (*models.AgendaRecord, error) {
	res, err := db.conn.Exec(`UPDATE agendas SET view_count = view_count + 1 WHERE share_token = ? AND is_public = 1`, token)
	if err != nil {
		return nil, fmt.Errorf("store: resolve share token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("store: resolve share token: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	row := db.conn.QueryRow(`SELECT `+agendaColumns+` FROM agendas WHERE share_token = ? AND is_public = 1`, token)
	rec, err := scanAgenda(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get shared agenda: %w", err)
	}
	return rec, nil
}

// UpdateAgenda applies a partial-field update and refreshes updated_at.
func (db *DB) UpdateAgenda(id string, updates UpdateParams) (*models.AgendaRecord, error) {
	set := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	if updates.MeetingTitle != nil {
		set = append(set, "meeting_title = ?")
		args = append(args, *updates.MeetingTitle)
	}
	if updates.Opening != nil {
		set = append(set, "opening = ?")
		args = append(args, *updates.Opening)
	}
	if updates.Topics != nil {
		b, err := json.Marshal(updates.Topics)
		if err != nil {
			return nil, fmt.Errorf("store: marshal topics: %w", err)
		}
		set = append(set, "topics = ?")
		args = append(args, string(b))
	}
	if updates.WrapUp != nil {
		set = append(set, "wrap_up = ?")
		args = append(args, *updates.WrapUp)
	}
	if updates.IsPublic != nil {
		set = append(set, "is_public = ?")
		args = append(args, *updates.IsPublic)
	}
	if updates.MeetingDate != nil {
		set = append(set, "meeting_date = ?")
		args = append(args, *updates.MeetingDate)
	}
	if updates.MeetingDuration != nil {
		set = append(set, "meeting_duration = ?")
		args = append(args, *updates.MeetingDuration)
	}
	if updates.Tags != nil {
		b, err := json.Marshal(updates.Tags)
		if err != nil {
			return nil, fmt.Errorf("store: marshal tags: %w", err)
		}
		set = append(set, "tags = ?")
		args = append(args, string(b))
	}
	if updates.Notes != nil {
		set = append(set, "notes = ?")
		args = append(args, *updates.Notes)
	}

	args = append(args, id)
	res, err := db.conn.Exec(`UPDATE agendas SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("store: update agenda: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("store: update agenda: %w", err)
	}
	if n == 0 {
		return nil, apperr.ErrNotFound
	}

	return db.GetAgendaByID(id)
}

// DeleteAgenda removes the row with the given id. Deleting a missing id is
// not an error.
func (db *DB) DeleteAgenda(id string) error {
	if _, err := db.conn.Exec(`DELETE FROM agendas WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete agenda: %w", err)
	}
	return nil
}

// ListAgendasByUser returns all rows owned by userID, newest first.
func (db *DB) ListAgendasByUser(userID string) ([]models.AgendaRecord, error) {
	rows, err := db.conn.Query(`SELECT `+agendaColumns+` FROM agendas WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: list agendas: %w", err)
	}
	defer rows.Close()

	out := []models.AgendaRecord{}
	for rows.Next() {
		rec, err := scanAgenda(rows)
		if err != nil {
			return nil, fmt.Errorf("store: list agendas: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAgenda(row rowScanner) (*models.AgendaRecord, error) {
	var (
		rec          models.AgendaRecord
		userID       sql.NullString
		topicsJSON   string
		meetingDate  sql.NullTime
		meetingDur   sql.NullInt64
		tagsJSON     sql.NullString
		notes        sql.NullString
	)
	err := row.Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt, &userID, &rec.MeetingTitle, &rec.Opening,
		&topicsJSON, &rec.WrapUp, &rec.IsPublic, &rec.ShareToken, &rec.ViewCount,
		&meetingDate, &meetingDur, &tagsJSON, &notes)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(topicsJSON), &rec.Topics); err != nil {
		return nil, fmt.Errorf("unmarshal topics: %w", err)
	}
	if rec.Topics == nil {
		rec.Topics = []models.AgendaTopic{}
	}
	if userID.Valid {
		rec.UserID = userID.String
	}
	if meetingDate.Valid {
		t := meetingDate.Time
		rec.MeetingDate = &t
	}
	if meetingDur.Valid {
		d := int(meetingDur.Int64)
		rec.MeetingDuration = &d
	}
	if tagsJSON.Valid {
		if err := json.Unmarshal([]byte(tagsJSON.String), &rec.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	if notes.Valid {
		rec.Notes = notes.String
	}
	return &rec, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}
