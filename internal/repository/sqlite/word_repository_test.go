package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pmarks/vocabflash/internal/models"
	"github.com/pmarks/vocabflash/internal/repository"
	"github.com/pmarks/vocabflash/internal/repository/sqlite"
	"github.com/pmarks/vocabflash/internal/testutil"
)

type WordRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.WordRepository
}

func (s *WordRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewWordRepository(s.db)
}

func (s *WordRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *WordRepositorySuite) seedWords() {
	ctx := context.Background()
	words := []models.Word{
		{Term: "der Hund", Translation: "dog", Topic: "animals", Difficulty: 1},
		{Term: "die Katze", Translation: "cat", Topic: "animals", Difficulty: 2},
		{Term: "laufen", Translation: "to run", Topic: "verbs", Difficulty: 3},
		{Term: "das Hundefutter", Translation: "dog food", Topic: "food", Difficulty: 2},
	}
	for _, w := range words {
		_, err := s.repo.Insert(ctx, w)
		s.Require().NoError(err)
	}
}

func (s *WordRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.Word{Term: "haus", Translation: "house", Difficulty: 1})
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("haus", got.Term)
	s.Assert().Equal("house", got.Translation)

	missing, err := s.repo.Get(ctx, 9999)
	s.Require().NoError(err)
	s.Assert().Nil(missing)
}

func (s *WordRepositorySuite) TestListFilterByTopic() {
	s.seedWords()

	words, err := s.repo.List(context.Background(), models.WordFilter{Topic: "animals"})
	s.Require().NoError(err)
	s.Assert().Len(words, 2)
	for _, w := range words {
		s.Assert().Equal("animals", w.Topic)
	}
}

func (s *WordRepositorySuite) TestListFilterBySearch() {
	s.seedWords()

	// Search matches the term and the translation.
	words, err := s.repo.List(context.Background(), models.WordFilter{Search: "Hund"})
	s.Require().NoError(err)
	s.Assert().Len(words, 2)

	words, err = s.repo.List(context.Background(), models.WordFilter{Search: "run"})
	s.Require().NoError(err)
	s.Assert().Len(words, 1)
	s.Assert().Equal("laufen", words[0].Term)
}

func (s *WordRepositorySuite) TestListPagination() {
	s.seedWords()
	ctx := context.Background()

	page1, err := s.repo.List(ctx, models.WordFilter{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(page1, 2)

	page2, err := s.repo.List(ctx, models.WordFilter{Limit: 2, Offset: 2})
	s.Require().NoError(err)
	s.Require().Len(page2, 2)

	s.Assert().NotEqual(page1[0].ID, page2[0].ID)
}

func (s *WordRepositorySuite) TestCountMatchesFilter() {
	s.seedWords()
	ctx := context.Background()

	total, err := s.repo.Count(ctx, models.WordFilter{})
	s.Require().NoError(err)
	s.Assert().Equal(4, total)

	byDifficulty, err := s.repo.Count(ctx, models.WordFilter{Difficulty: 2})
	s.Require().NoError(err)
	s.Assert().Equal(2, byDifficulty)
}

func (s *WordRepositorySuite) TestInsertBatch() {
	ctx := context.Background()

	ids, err := s.repo.InsertBatch(ctx, []models.Word{
		{Term: "eins", Translation: "one"},
		{Term: "zwei", Translation: "two"},
		{Term: "drei", Translation: "three"},
	})
	s.Require().NoError(err)
	s.Require().Len(ids, 3)

	total, err := s.repo.Count(ctx, models.WordFilter{})
	s.Require().NoError(err)
	s.Assert().Equal(3, total)
}

func TestWordRepositorySuite(t *testing.T) {
	suite.Run(t, new(WordRepositorySuite))
}
