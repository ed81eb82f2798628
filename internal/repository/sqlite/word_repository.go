package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/pmarks/vocabflash/internal/logger"
	"github.com/pmarks/vocabflash/internal/models"
	"github.com/pmarks/vocabflash/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type wordRepository struct {
	db *sql.DB
}

// NewWordRepository creates a new WordRepository implementation
func NewWordRepository(db *sql.DB) repository.WordRepository {
	return &wordRepository{db: db}
}

func (r *wordRepository) Get(ctx context.Context, id int64) (*models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")

	var w models.Word
	err := r.db.QueryRowContext(ctx, `
SELECT id, term, translation, topic, difficulty, example, created_at
FROM words
WHERE id = ?
`, id).Scan(&w.ID, &w.Term, &w.Translation, &w.Topic, &w.Difficulty, &w.Example, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("word not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get word: %v", err)
		return nil, err
	}
	return &w, nil
}

func applyWordFilter(query squirrel.SelectBuilder, filter models.WordFilter) squirrel.SelectBuilder {
	if filter.Topic != "" {
		query = query.Where(squirrel.Eq{"topic": filter.Topic})
	}
	if filter.Difficulty > 0 {
		query = query.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.Like{"term": like},
			squirrel.Like{"translation": like},
		})
	}
	return query
}

func (r *wordRepository) List(ctx context.Context, filter models.WordFilter) ([]models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := applyWordFilter(sqlBuilder.
		Select("id", "term", "translation", "topic", "difficulty", "example", "created_at").
		From("words"), filter).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build word list query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list words: %v", err)
		return nil, err
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var w models.Word
		if err := rows.Scan(&w.ID, &w.Term, &w.Translation, &w.Topic, &w.Difficulty, &w.Example, &w.CreatedAt); err != nil {
			log.Error("failed to scan word row: %v", err)
			return nil, err
		}
		words = append(words, w)
	}
	log.Debug("listed %d words", len(words))
	return words, rows.Err()
}

func (r *wordRepository) Count(ctx context.Context, filter models.WordFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")

	query := applyWordFilter(sqlBuilder.Select("COUNT(*)").From("words"), filter)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count words: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *wordRepository) Insert(ctx context.Context, w models.Word) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("inserting word: term=%s", w.Term)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO words (term, translation, topic, difficulty, example)
VALUES (?, ?, ?, ?, ?)
`, w.Term, w.Translation, w.Topic, w.Difficulty, w.Example)
	if err != nil {
		log.Error("failed to insert word: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *wordRepository) InsertBatch(ctx context.Context, words []models.Word) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("inserting %d words", len(words))

	var ids []int64
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO words (term, translation, topic, difficulty, example)
VALUES (?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, w := range words {
			res, err := stmt.ExecContext(ctx, w.Term, w.Translation, w.Topic, w.Difficulty, w.Example)
			if err != nil {
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert word batch: %v", err)
		return nil, err
	}
	return ids, nil
}
