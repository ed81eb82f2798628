package services

import (
	"context"
	"io"
	"os"

	"github.com/pmarks/vocabflash/internal/errors"
	"github.com/pmarks/vocabflash/internal/importer"
	"github.com/pmarks/vocabflash/internal/logger"
	"github.com/pmarks/vocabflash/internal/repository"
	"github.com/pmarks/vocabflash/internal/worker"
)

// ImportService queues spreadsheet imports onto the background pool
type ImportService interface {
	QueueImport(ctx context.Context, upload io.Reader) error
}

type importService struct {
	wordRepo repository.WordRepository
	pool     *worker.Pool
}

// NewImportService creates a new ImportService
func NewImportService(wordRepo repository.WordRepository, pool *worker.Pool) ImportService {
	return &importService{wordRepo: wordRepo, pool: pool}
}

// QueueImport spools the upload to disk and hands it to the worker pool. The
// request ends as soon as the job is queued; parsing happens off-request.
func (s *importService) QueueImport(ctx context.Context, upload io.Reader) error {
	log := logger.FromContext(ctx)

	tmp, err := os.CreateTemp("", "vocab-import-*.xlsx")
	if err != nil {
		return errors.NewInternalError(err)
	}
	if _, err := io.Copy(tmp, upload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.NewInternalError(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.NewInternalError(err)
	}

	job := &worker.ImportWordsJob{
		WordRepo: s.wordRepo,
		FilePath: tmp.Name(),
		Config:   importer.DefaultConfig(),
	}
	if !s.pool.TrySubmit(job) {
		os.Remove(tmp.Name())
		return errors.NewTooBusyError("import queue is full")
	}

	log.Info("import queued: file=%s, queue_size=%d", tmp.Name(), s.pool.QueueSize())
	return nil
}
