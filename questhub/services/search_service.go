package services

import (
	"context"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/faucetdrop/questhub/questhub/database/models"
	"github.com/faucetdrop/questhub/questhub/database/repositories"
)

// questSearchItems implements fuzzy.Source over quest title + creator.
type questSearchItems []questSearchItem

type questSearchItem struct {
	Quest *models.Quest
	Text  string
}

func (items questSearchItems) Len() int {
	return len(items)
}

func (items questSearchItems) String(i int) string {
	return items[i].Text
}

// SearchService backs the dashboard search box with fuzzy matching over
// quest titles and creator wallets.
type SearchService struct {
	quests repositories.QuestRepository
}

func NewSearchService(quests repositories.QuestRepository) *SearchService {
	return &SearchService{quests: quests}
}

// SearchQuests returns quests ranked by fuzzy match quality. An empty query
// returns the newest quests unfiltered.
func (s *SearchService) SearchQuests(ctx context.Context, query string, limit int) ([]*models.Quest, error) {
	quests, err := s.quests.List(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		if len(quests) > limit {
			quests = quests[:limit]
		}
		return quests, nil
	}

	items := make(questSearchItems, len(quests))
	for i, q := range quests {
		items[i] = questSearchItem{
			Quest: q,
			Text:  strings.ToLower(q.Title + " " + q.CreatorWallet),
		}
	}

	matches := fuzzy.FindFrom(query, items)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]*models.Quest, 0, len(matches))
	for _, m := range matches {
		out = append(out, items[m.Index].Quest)
	}
	return out, nil
}
