package storage

import (
	"time"

	"github.com/sahilm/fuzzy"
)

// SessionMessageMatch is one ranked hit from a cross-session search.
type SessionMessageMatch struct {
	SessionID    string
	SessionName  string
	MessageIndex int
	Role         string
	Content      string
	Preview      string
	Timestamp    time.Time
	Score        int
}

// searchCandidate ties a fuzzy target back to the message it came from.
type searchCandidate struct {
	sessionID    string
	sessionName  string
	messageIndex int
	role         string
	content      string
	timestamp    time.Time
}

type SearchIndex struct {
	storage *SessionStorage
}

func NewSearchIndex(storage *SessionStorage) *SearchIndex {
	return &SearchIndex{storage: storage}
}

// SearchAllSessions fuzzy-matches the query against every stored
// conversation and returns hits ranked best first. System and tool
// transcript messages are skipped so raw JSON payloads do not drown out
// what the user and the assistant actually said.
func (si *SearchIndex) SearchAllSessions(query string) ([]SessionMessageMatch, error) {
	if query == "" {
		return []SessionMessageMatch{}, nil
	}

	sessionList, err := si.storage.List()
	if err != nil {
		return nil, err
	}

	var candidates []searchCandidate
	var targets []string

	for _, meta := range sessionList {
		session, err := si.storage.Load(meta.ID)
		if err != nil {
			continue
		}

		for i, msg := range session.Messages {
			if msg.Role == "system" || msg.Role == "tool" || msg.Content == "" {
				continue
			}
			candidates = append(candidates, searchCandidate{
				sessionID:    session.ID,
				sessionName:  session.Name,
				messageIndex: i,
				role:         msg.Role,
				content:      msg.Content,
				timestamp:    msg.Timestamp,
			})
			targets = append(targets, msg.Content)
		}
	}

	// fuzzy.Find returns matches ordered best first.
	found := fuzzy.Find(query, targets)

	matches := make([]SessionMessageMatch, len(found))
	for i, f := range found {
		cand := candidates[f.Index]

		preview := cand.content
		if len(preview) > 100 {
			preview = preview[:100] + "..."
		}

		matches[i] = SessionMessageMatch{
			SessionID:    cand.sessionID,
			SessionName:  cand.sessionName,
			MessageIndex: cand.messageIndex,
			Role:         cand.role,
			Content:      cand.content,
			Preview:      preview,
			Timestamp:    cand.timestamp,
			Score:        f.Score,
		}
	}

	return matches, nil
}
