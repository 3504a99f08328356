// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/model"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/util"
)

// MaxConversations limits how many conversations persist on the shelf.
// When exceeded, the least-recently-updated conversations are evicted.
const MaxConversations = 50

// ShelfFileName is the default file name for the persisted shelf.
const ShelfFileName = "conversations.json"

// =============================================================================
// SHELF
// =============================================================================

// Shelf is the conversation store. It is not safe for concurrent use;
// the UI event loop is its single writer.
type Shelf struct {
	path     string
	max      int
	convos   []*model.Conversation
	activeID string
}

// DefaultPath returns the default shelf location under the user's home
// directory.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".emochat", ShelfFileName), nil
}

// Open loads the shelf from path. Unreadable, unparseable, or
// non-array content is treated as an empty shelf, never an error. An
// empty shelf synthesizes one default conversation so there is always
// a usable target for new messages.
func Open(path string) *Shelf {
	s := &Shelf{
		path: path,
		max:  MaxConversations,
	}
	s.convos = s.load()

	if len(s.convos) == 0 {
		s.Create("")
	} else {
		s.activeID = s.convos[0].ID
	}
	return s
}

// load reads and decodes the shelf file, recovering silently from
// corruption.
func (s *Shelf) load() []*model.Conversation {
	data, err := os.ReadFile(s.path)
	if err != nil {
		// Missing file is the normal first-run case.
		if !os.IsNotExist(err) {
			log.Printf("shelf: read failed, starting empty: %v", err)
		}
		return nil
	}

	var convos []*model.Conversation
	if err := json.Unmarshal(data, &convos); err != nil {
		log.Printf("shelf: corrupt shelf file, starting empty: %v", err)
		return nil
	}

	kept := convos[:0]
	for _, c := range convos {
		if c == nil {
			continue
		}
		c.Normalize()
		kept = append(kept, c)
	}

	sortByRecency(kept)
	if len(kept) > s.max {
		kept = kept[:s.max]
	}
	return kept
}

// save persists the shelf: most-recently-updated first, truncated to
// the capacity, written atomically. Write failures (quota, permissions)
// are logged and swallowed; in-memory state remains the source of
// truth for the session.
func (s *Shelf) save() {
	sortByRecency(s.convos)
	if len(s.convos) > s.max {
		s.convos = s.convos[:s.max]
	}

	data, err := json.MarshalIndent(s.convos, "", "  ")
	if err != nil {
		log.Printf("shelf: encode failed: %v", err)
		return
	}
	if err := util.AtomicWriteFile(s.path, data, 0644); err != nil {
		log.Printf("shelf: save failed: %v", err)
	}
}

// sortByRecency orders conversations most-recently-updated first.
// The sort is stable so equal timestamps keep their relative order
// across re-renders.
func sortByRecency(convos []*model.Conversation) {
	sort.SliceStable(convos, func(i, j int) bool {
		return convos[i].UpdatedAt > convos[j].UpdatedAt
	})
}

// =============================================================================
// CREATE / RENAME / DELETE
// =============================================================================

// Create inserts a new conversation at the front of recency order,
// makes it active, persists, and returns its id. It never fails.
func (s *Shelf) Create(title string) string {
	conv := model.NewConversation(title)
	s.convos = append([]*model.Conversation{conv}, s.convos...)
	if len(s.convos) > s.max {
		s.convos = s.convos[:s.max]
	}
	s.activeID = conv.ID
	s.save()
	return conv.ID
}

// Rename sets a conversation's title. Unknown ids are a silent no-op.
// Titles are whitespace-collapsed; an empty result leaves the existing
// title untouched but still counts as activity.
func (s *Shelf) Rename(id, title string) {
	conv := s.byID(id)
	if conv == nil {
		return
	}
	conv.SetTitle(title)
	s.save()
}

// Delete removes a conversation. If it was active, the next
// conversation in recency order becomes active; when none remain a
// fresh default conversation is created (which persists on its own).
func (s *Shelf) Delete(id string) {
	idx := -1
	for i, c := range s.convos {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	s.convos = append(s.convos[:idx], s.convos[idx+1:]...)

	if s.activeID == id {
		if len(s.convos) > 0 {
			s.activeID = s.convos[0].ID
		} else {
			s.Create("")
			return
		}
	}
	s.save()
}

// =============================================================================
// MESSAGES
// =============================================================================

// AppendMessage appends a message to the conversation with the given
// id, or to the active conversation when id is empty. The append
// touches UpdatedAt and persists. If neither the id nor the active id
// resolves, the first conversation takes the message; with no
// conversations at all this is a silent no-op returning nil.
func (s *Shelf) AppendMessage(id string, role model.Role, text string) *model.Message {
	conv := s.byID(id)
	if conv == nil {
		conv = s.byID(s.activeID)
	}
	if conv == nil && len(s.convos) > 0 {
		conv = s.convos[0]
	}
	if conv == nil {
		return nil
	}

	msg := conv.Append(role, text)
	s.save()
	return &msg
}

// =============================================================================
// ACTIVE SELECTION
// =============================================================================

// SetActive marks the conversation with the given id active. Unknown
// ids are ignored.
func (s *Shelf) SetActive(id string) {
	if s.byID(id) != nil {
		s.activeID = id
	}
}

// ActiveID returns the id of the active conversation.
func (s *Shelf) ActiveID() string {
	return s.activeID
}

// Active returns the active conversation. If the active id no longer
// resolves, a fresh conversation is created and made active; the shelf
// is never without a usable target.
func (s *Shelf) Active() *model.Conversation {
	if conv := s.byID(s.activeID); conv != nil {
		return conv
	}
	s.Create("")
	return s.byID(s.activeID)
}

// =============================================================================
// LISTING AND SEARCH
// =============================================================================

// List returns the conversations most-recently-updated first.
func (s *Shelf) List() []*model.Conversation {
	sortByRecency(s.convos)
	return s.convos
}

// Search returns conversations whose display title contains the query,
// case-insensitively. An empty query returns everything.
func (s *Shelf) Search(query string) []*model.Conversation {
	all := s.List()
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all
	}

	var results []*model.Conversation
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.DisplayTitle()), query) {
			results = append(results, c)
		}
	}
	return results
}

// Len returns the number of conversations on the shelf.
func (s *Shelf) Len() int {
	return len(s.convos)
}

// Get returns the conversation with the given id, or nil.
func (s *Shelf) Get(id string) *model.Conversation {
	return s.byID(id)
}

// =============================================================================
// IMPORT
// =============================================================================

// Import places an externally-sourced conversation (server history) on
// the shelf without making it active. Conversations already imported
// under the same id are replaced in-place.
func (s *Shelf) Import(conv *model.Conversation) {
	if conv == nil {
		return
	}
	conv.Normalize()
	for i, c := range s.convos {
		if c.ID == conv.ID {
			s.convos[i] = conv
			s.save()
			return
		}
	}
	s.convos = append(s.convos, conv)
	s.save()
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Shelf) byID(id string) *model.Conversation {
	if id == "" {
		return nil
	}
	for _, c := range s.convos {
		if c.ID == id {
			return c
		}
	}
	return nil
}
