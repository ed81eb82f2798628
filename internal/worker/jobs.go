package worker

import (
	"context"
	"fmt"
	"os"

	"github.com/pmarks/vocabflash/internal/importer"
	"github.com/pmarks/vocabflash/internal/logger"
	"github.com/pmarks/vocabflash/internal/repository"
)

// ImportWordsJob parses an uploaded spreadsheet and loads its words into the
// catalogue. FilePath points at a temp copy of the upload, removed when the
// job finishes either way.
type ImportWordsJob struct {
	WordRepo repository.WordRepository
	FilePath string
	Config   importer.Config
}

func (j *ImportWordsJob) Name() string {
	return "import-words"
}

func (j *ImportWordsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	defer func() {
		if err := os.Remove(j.FilePath); err != nil {
			log.Warn("failed to remove upload %s: %v", j.FilePath, err)
		}
	}()

	f, err := os.Open(j.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	words, report, err := importer.Parse(f, j.Config)
	if err != nil {
		return err
	}
	for _, msg := range report.Errors {
		log.Warn("import: %s", msg)
	}
	if len(words) == 0 {
		log.Warn("import: no usable rows out of %d", report.TotalRows)
		return nil
	}

	ids, err := j.WordRepo.InsertBatch(ctx, words)
	if err != nil {
		return fmt.Errorf("failed to store imported words: %w", err)
	}

	log.Info("imported %d words (%d rows skipped)", len(ids), report.Skipped)
	return nil
}
