package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"eventRegistry/internal/config"
	"eventRegistry/internal/models"
	"eventRegistry/internal/storage"

	"github.com/lib/pq"
)

// pgInvalidText is raised when an id that is not a uuid is compared to a uuid column.
const pgInvalidText = "22P02"

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	return Open(connStr)
}

func Open(connStr string) (*Storage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT id, name, application_start_date, application_end_date, is_manually_closed
		FROM events
		ORDER BY application_start_date ASC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var event models.Event
		err = rows.Scan(
			&event.ID,
			&event.Name,
			&event.StartDate,
			&event.EndDate,
			&event.ManuallyClosed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

func (s *Storage) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	query := `
		SELECT id, name, application_start_date, application_end_date, is_manually_closed
		FROM events
		WHERE id = $1`

	var event models.Event
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.StartDate,
		&event.EndDate,
		&event.ManuallyClosed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &event, nil
}

func (s *Storage) CreateEvent(ctx context.Context, in storage.EventInput) (string, error) {
	query := `
		INSERT INTO events (name, application_start_date, application_end_date, is_manually_closed)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id string
	err := s.DB.QueryRowContext(ctx, query, in.Name, in.StartDate, in.EndDate, in.ManuallyClosed).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}

	return id, nil
}

func (s *Storage) UpdateEvent(ctx context.Context, id string, in storage.EventInput) error {
	query := `
		UPDATE events
		SET name = $2, application_start_date = $3, application_end_date = $4, is_manually_closed = $5
		WHERE id = $1`

	result, err := s.DB.ExecContext(ctx, query, id, in.Name, in.StartDate, in.EndDate, in.ManuallyClosed)
	if err != nil {
		if isInvalidID(err) {
			return storage.ErrEventNotFound
		}
		return fmt.Errorf("failed to update event: %w", err)
	}

	return expectAffected(result, storage.ErrEventNotFound)
}

// DeleteEvent removes the event; its applications go with it through the
// foreign key cascade.
func (s *Storage) DeleteEvent(ctx context.Context, id string) error {
	result, err := s.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		if isInvalidID(err) {
			return storage.ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return expectAffected(result, storage.ErrEventNotFound)
}

func (s *Storage) CreateApplication(ctx context.Context, in storage.ApplicationInput) (string, error) {
	members, err := in.Members.Encode()
	if err != nil {
		return "", fmt.Errorf("failed to encode members: %w", err)
	}

	query := `
		INSERT INTO applications (
			event_id, project_name, university, group_size, full_names,
			group_leader_email, group_leader_phone, problem_statement, solution
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var id string
	err = s.DB.QueryRowContext(ctx, query,
		in.EventID,
		in.ProjectName,
		in.University,
		in.GroupSize(),
		members,
		in.LeaderEmail,
		in.LeaderPhone,
		in.ProblemStatement,
		in.Solution,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if (errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation") || isInvalidID(err) {
			return "", storage.ErrEventNotFound
		}
		return "", fmt.Errorf("failed to create application: %w", err)
	}

	return id, nil
}

func (s *Storage) GetApplications(ctx context.Context, filter storage.ApplicationFilter) ([]models.Application, error) {
	query := `
		SELECT id, event_id, project_name, university, group_size, full_names,
			group_leader_email, group_leader_phone, problem_statement, solution, status, created_at
		FROM applications
		WHERE ($1 = '' OR event_id::text = $1)
		ORDER BY created_at DESC`

	rows, err := s.DB.QueryContext(ctx, query, filter.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		var (
			app     models.Application
			members string
		)
		err = rows.Scan(
			&app.ID,
			&app.EventID,
			&app.ProjectName,
			&app.University,
			&app.GroupSize,
			&members,
			&app.LeaderEmail,
			&app.LeaderPhone,
			&app.ProblemStatement,
			&app.Solution,
			&app.Status,
			&app.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}

		if err = json.Unmarshal([]byte(members), &app.Members); err != nil {
			return nil, fmt.Errorf("failed to decode members of application %s: %w", app.ID, err)
		}

		apps = append(apps, app)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}

	return apps, nil
}

// UpdateApplicationStatus only touches pending rows; a decided application
// reports storage.ErrStatusNotPending.
func (s *Storage) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current models.ApplicationStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM applications WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return storage.ErrApplicationNotFound
		}
		return fmt.Errorf("failed to check application: %w", err)
	}

	if !current.CanTransition(status) {
		return storage.ErrStatusNotPending
	}

	_, err = tx.ExecContext(ctx, `UPDATE applications SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}

	return tx.Commit()
}

// GetUserRole ignores the access token; the connection is already trusted.
func (s *Storage) GetUserRole(ctx context.Context, userID, _ string) (string, error) {
	var role string
	err := s.DB.QueryRowContext(ctx, `SELECT role FROM users WHERE id = $1`, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return "", storage.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get user role: %w", err)
	}

	return role, nil
}

func expectAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}

	return nil
}

func isInvalidID(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgInvalidText
}
