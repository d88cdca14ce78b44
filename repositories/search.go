//go:generate go run go.uber.org/mock/mockgen -source=search.go -destination=../mocks/mock_search_repository.go -package=mocks
package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/blugelabs/bluge"

	"stageshow/domain"
)

// ISearchRepository lets the operator find a question across all packs
// without paging through them by hand.
type ISearchRepository interface {
	IndexCatalog(catalog domain.Catalog) error
	Search(ctx context.Context, query string, limit int) ([]SearchHit, error)
}

// SearchHit points at one question. The coordinates are exactly what a
// setPack + setQuestionIndex pair needs.
type SearchHit struct {
	PackID        string  `json:"packId"`
	QuestionIndex int     `json:"questionIndex"`
	Title         string  `json:"title"`
	Score         float64 `json:"score"`
}

type SearchRepository struct {
	writer *bluge.Writer
	log    *slog.Logger
	limit  int
}

func NewSearchRepository(writer *bluge.Writer, log *slog.Logger, limit int) *SearchRepository {
	return &SearchRepository{writer: writer, log: log, limit: limit}
}

// IndexCatalog (re)indexes every question of every pack in one batch. The
// catalog is immutable after startup, so this runs once.
func (s *SearchRepository) IndexCatalog(catalog domain.Catalog) error {
	batch := bluge.NewBatch()
	count := 0

	for _, pack := range catalog.Packs() {
		for i, question := range pack.Questions {
			docID := fmt.Sprintf("%s:%d", pack.ID, i)
			doc := bluge.NewDocument(docID).
				AddField(bluge.NewKeywordField("pack", pack.ID).StoreValue()).
				AddField(bluge.NewKeywordField("index", strconv.Itoa(i)).StoreValue()).
				AddField(bluge.NewTextField("title", question.Title).StoreValue()).
				AddField(bluge.NewTextField("prompt", question.Prompt)).
				AddField(bluge.NewTextField("hint", question.Hint)).
				AddField(bluge.NewTextField("answer", question.Answer)).
				AddField(bluge.NewTextField("artist", question.Artist))
			batch.Update(doc.ID(), doc)
			count++
		}
	}

	if err := s.writer.Batch(batch); err != nil {
		return fmt.Errorf("indexing catalog: %w", err)
	}
	s.log.Info("Question index built", "questions", count)
	return nil
}

// Search runs a match query across the indexed question fields and returns
// the best hits, most relevant first. limit<=0 falls back to the repository
// default.
func (s *SearchRepository) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = s.limit
	}

	reader, err := s.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("opening index reader: %w", err)
	}
	defer reader.Close()

	match := bluge.NewBooleanQuery()
	for _, field := range []string{"title", "prompt", "hint", "answer", "artist"} {
		match.AddShould(bluge.NewMatchQuery(query).SetField(field))
	}

	iterator, err := reader.Search(ctx, bluge.NewTopNSearch(limit, match))
	if err != nil {
		return nil, fmt.Errorf("searching questions: %w", err)
	}

	var hits []SearchHit
	for {
		next, err := iterator.Next()
		if err != nil {
			return nil, err
		}
		if next == nil {
			break
		}

		hit := SearchHit{Score: next.Score}
		err = next.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "pack":
				hit.PackID = string(value)
			case "index":
				hit.QuestionIndex, _ = strconv.Atoi(string(value))
			case "title":
				hit.Title = string(value)
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	return hits, nil
}
