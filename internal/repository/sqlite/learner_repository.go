package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pmarks/vocabflash/internal/logger"
	"github.com/pmarks/vocabflash/internal/models"
	"github.com/pmarks/vocabflash/internal/repository"
)

type learnerRepository struct {
	db *sql.DB
}

// NewLearnerRepository creates a new LearnerRepository implementation
func NewLearnerRepository(db *sql.DB) repository.LearnerRepository {
	return &learnerRepository{db: db}
}

func (r *learnerRepository) Get(ctx context.Context, id int64) (*models.Learner, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")

	var l models.Learner
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, created_at, last_active_at
FROM learners
WHERE id = ?
`, id).Scan(&l.ID, &l.Name, &l.CreatedAt, &l.LastActiveAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("learner not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get learner: %v", err)
		return nil, err
	}
	return &l, nil
}

func (r *learnerRepository) List(ctx context.Context) ([]models.Learner, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, created_at, last_active_at
FROM learners
ORDER BY name
`)
	if err != nil {
		log.Error("failed to list learners: %v", err)
		return nil, err
	}
	defer rows.Close()

	var learners []models.Learner
	for rows.Next() {
		var l models.Learner
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt, &l.LastActiveAt); err != nil {
			log.Error("failed to scan learner row: %v", err)
			return nil, err
		}
		learners = append(learners, l)
	}
	return learners, rows.Err()
}

func (r *learnerRepository) Create(ctx context.Context, name string) (*models.Learner, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("creating learner: name=%s", name)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO learners (name, last_active_at) VALUES (?, CURRENT_TIMESTAMP)
`, name)
	if err != nil {
		log.Error("failed to insert learner: %v", err)
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *learnerRepository) Touch(ctx context.Context, id int64, t time.Time) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE learners SET last_active_at = ? WHERE id = ?
`, t, id)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("learner_repo").Error("failed to touch learner: %v", err)
	}
	return err
}

func (r *learnerRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("deleting learner: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM learners WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete learner: %v", err)
	}
	return err
}
