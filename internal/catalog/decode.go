// Package catalog parses category documents and preloads them before play starts.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"feud-service/internal/domain"
)

type rawAnswer struct {
	Text   string `json:"text"`
	Rank   int    `json:"rank"`
	Points int    `json:"points,omitempty"` // legacy documents carry points instead of rank
}

type rawQuestion struct {
	Question string      `json:"question"`
	Answers  []rawAnswer `json:"answers"`
}

type rawDocument struct {
	Questions []rawQuestion `json:"questions"`
}

// Decode parses a category document. Both `{"questions": [...]}` and a bare
// question array are accepted; answers with flat points are migrated to ranks.
func Decode(id string, data []byte) (domain.Category, error) {
	var questions []rawQuestion
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &questions); err != nil {
			return domain.Category{}, fmt.Errorf("%w: decode %s: %v", domain.ErrInvalidCategory, id, err)
		}
	} else {
		var doc rawDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return domain.Category{}, fmt.Errorf("%w: decode %s: %v", domain.ErrInvalidCategory, id, err)
		}
		questions = doc.Questions
	}

	category := domain.Category{ID: id, Questions: make([]domain.Question, 0, len(questions))}
	for qi, rq := range questions {
		q, err := convertQuestion(rq)
		if err != nil {
			return domain.Category{}, fmt.Errorf("%w: %s question %d: %v", domain.ErrInvalidCategory, id, qi, err)
		}
		category.Questions = append(category.Questions, q)
	}
	return category, nil
}

func convertQuestion(rq rawQuestion) (domain.Question, error) {
	if strings.TrimSpace(rq.Question) == "" {
		return domain.Question{}, fmt.Errorf("empty prompt")
	}
	if len(rq.Answers) == 0 {
		return domain.Question{}, fmt.Errorf("no answers")
	}

	q := domain.Question{Prompt: rq.Question, Answers: make([]domain.Answer, 0, len(rq.Answers))}
	seen := make(map[int]bool, len(rq.Answers))
	for i, ra := range rq.Answers {
		rank := ra.Rank
		if rank == 0 {
			rank = rankFromPoints(ra.Points, i)
		}
		if rank < 1 || rank > domain.MaxRank {
			return domain.Question{}, fmt.Errorf("answer %q: rank %d out of range", ra.Text, rank)
		}
		if seen[rank] {
			return domain.Question{}, fmt.Errorf("answer %q: duplicate rank %d", ra.Text, rank)
		}
		if strings.TrimSpace(ra.Text) == "" {
			return domain.Question{}, fmt.Errorf("answer %d: empty text", i)
		}
		seen[rank] = true
		q.Answers = append(q.Answers, domain.Answer{Text: ra.Text, Rank: rank})
	}
	return q, nil
}

// rankFromPoints inverts domain.Points for legacy data. Points that do not map
// onto a rank fall back to the answer's 1-based position.
func rankFromPoints(points, position int) int {
	if points >= domain.Points(domain.MaxRank) && points <= domain.Points(1) && points%1000 == 0 {
		return 11 - points/1000
	}
	return position + 1
}

// Encode renders a category in the canonical rank-based shape.
func Encode(category domain.Category) ([]byte, error) {
	doc := rawDocument{Questions: make([]rawQuestion, 0, len(category.Questions))}
	for _, q := range category.Questions {
		rq := rawQuestion{Question: q.Prompt, Answers: make([]rawAnswer, 0, len(q.Answers))}
		for _, a := range q.Answers {
			rq.Answers = append(rq.Answers, rawAnswer{Text: a.Text, Rank: a.Rank})
		}
		doc.Questions = append(doc.Questions, rq)
	}
	return json.Marshal(doc)
}
