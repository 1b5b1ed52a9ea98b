package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"careers-api/internal/models"
	"careers-api/internal/storage"
	"careers-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ApplicationRepo implements storage.ApplicationRepository using pgx.
type ApplicationRepo struct {
	pool *pgxpool.Pool
}

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

// Compile-time check to ensure ApplicationRepo implements ApplicationRepository
var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

const applicationColumns = `id, full_name, email, phone, national_id, address,
	selected_job, education_level, transportation, documents, experiences,
	status, status_history, auto_score, manual_score, total_score, admin_notes,
	created_at, updated_at`

func (r *ApplicationRepo) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	documents, experiences, history, err := marshalApplicationJSON(app)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO applications (
			id, full_name, email, phone, national_id, address,
			selected_job, education_level, transportation, documents,
			experiences, status, status_history, auto_score, manual_score,
			total_score, admin_notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, now(), now())
		RETURNING ` + applicationColumns

	row := r.pool.QueryRow(ctx, query,
		app.ID, app.FullName, app.Email, app.Phone, app.NationalID, app.Address,
		app.SelectedJob, app.EducationLevel, app.Transportation, documents,
		experiences, app.Status, history, app.AutoScore, app.ManualScore,
		app.TotalScore, app.AdminNotes,
	)

	created, err := scanApplication(row)
	if err != nil {
		log.Printf("Error creating application: %v\n", err)
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	log.Printf("Application created successfully with ID: %s", created.ID)
	return created, nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	app, err := scanApplication(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Application not found with ID: %s\n", id)
			return nil, storage.ErrNotFound
		}
		log.Printf("Error retrieving application by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get application by ID %s: %w", id, err)
	}

	return app, nil
}

func (r *ApplicationRepo) List(ctx context.Context, req *dto.ListApplicationsRequest) ([]*models.Application, int, error) {
	var conditions []string
	var args []interface{}

	if req.Status != "" {
		args = append(args, req.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if req.Job != "" {
		args = append(args, req.Job)
		conditions = append(conditions, fmt.Sprintf("selected_job = $%d", len(args)))
	}
	if req.Search != "" {
		args = append(args, "%"+req.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR national_id ILIKE $%d)", len(args), len(args)))
	}

	countQuery := buildApplicationCountQuery(conditions)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Printf("Error counting applications: %v\n", err)
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	query := buildApplicationListQuery(`SELECT `+applicationColumns+` FROM applications`, conditions, &args, offset, req.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying applications: %v\n", err)
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			log.Printf("Error scanning application row: %v\n", err)
			return nil, 0, fmt.Errorf("failed to scan application row: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed iterating application rows: %w", err)
	}

	return apps, total, nil
}

func (r *ApplicationRepo) Update(ctx context.Context, app *models.Application) (*models.Application, error) {
	documents, experiences, history, err := marshalApplicationJSON(app)
	if err != nil {
		return nil, err
	}

	query := `UPDATE applications SET
			documents = $2, experiences = $3, status = $4, status_history = $5,
			auto_score = $6, manual_score = $7, total_score = $8,
			admin_notes = $9, updated_at = now()
		WHERE id = $1
		RETURNING ` + applicationColumns

	row := r.pool.QueryRow(ctx, query,
		app.ID, documents, experiences, app.Status, history,
		app.AutoScore, app.ManualScore, app.TotalScore, app.AdminNotes,
	)

	updated, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Application not found for update with ID: %s\n", app.ID)
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating application %s: %v\n", app.ID, err)
		return nil, fmt.Errorf("failed to update application: %w", err)
	}

	return updated, nil
}

func (r *ApplicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting application with ID %s: %v\n", id, err)
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Printf("Application not found for deletion with ID: %s\n", id)
		return storage.ErrNotFound
	}

	log.Printf("Application deleted successfully with ID: %s", id)
	return nil
}

func marshalApplicationJSON(app *models.Application) (documents, experiences, history []byte, err error) {
	if documents, err = json.Marshal(app.Documents); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal documents: %w", err)
	}
	if experiences, err = json.Marshal(app.Experiences); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal experiences: %w", err)
	}
	if history, err = json.Marshal(app.StatusHistory); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal status history: %w", err)
	}
	return documents, experiences, history, nil
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	var app models.Application
	var documents, experiences, history []byte

	err := row.Scan(
		&app.ID, &app.FullName, &app.Email, &app.Phone, &app.NationalID, &app.Address,
		&app.SelectedJob, &app.EducationLevel, &app.Transportation, &documents,
		&experiences, &app.Status, &history, &app.AutoScore, &app.ManualScore,
		&app.TotalScore, &app.AdminNotes, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(documents, &app.Documents); err != nil {
		return nil, fmt.Errorf("failed to unmarshal documents: %w", err)
	}
	if err := json.Unmarshal(experiences, &app.Experiences); err != nil {
		return nil, fmt.Errorf("failed to unmarshal experiences: %w", err)
	}
	if err := json.Unmarshal(history, &app.StatusHistory); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status history: %w", err)
	}

	return &app, nil
}
