// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package editor holds the generated document of one visitor and the
// in-place edit session over it. While an edit is active the buffer is
// authoritative for preview, copy and download; saving commits it and
// cancelling discards it.
package editor

import (
	"errors"
	"sync"
)

var (
	// ErrNoDocument is returned by BeginEdit before anything was generated.
	ErrNoDocument = errors.New("editor: no generated document")
	// ErrNotEditing is returned by buffer operations outside an edit.
	ErrNotEditing = errors.New("editor: no edit in progress")
)

// Session is safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	content  string
	hasDoc   bool
	buffer   string
	active   bool
	revision int
}

// New returns a session with no document.
func New() *Session {
	return &Session{}
}

// SetDocument commits a freshly generated document, replacing the previous
// one. Any active edit ends and its buffer is discarded.
func (s *Session) SetDocument(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.content = text
	s.hasDoc = true
	s.buffer = ""
	s.active = false
	s.revision++
}

// HasDocument reports whether a document has been generated. An empty
// document still counts.
func (s *Session) HasDocument() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasDoc
}

// Revision increases every time the committed content changes.
func (s *Session) Revision() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// BeginEdit starts editing a copy of the committed document. Calling it
// during an active edit keeps the current buffer.
func (s *Session) BeginEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasDoc {
		return ErrNoDocument
	}
	if s.active {
		return nil
	}
	s.buffer = s.content
	s.active = true
	return nil
}

// UpdateBuffer replaces the edit buffer.
func (s *Session) UpdateBuffer(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrNotEditing
	}
	s.buffer = text
	return nil
}

// Save commits the buffer and ends the edit.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrNotEditing
	}
	s.content = s.buffer
	s.buffer = ""
	s.active = false
	s.revision++
	return nil
}

// Cancel discards the buffer and ends the edit. The committed document is
// untouched.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrNotEditing
	}
	s.buffer = ""
	s.active = false
	return nil
}

// Active reports whether an edit is in progress.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// CurrentText returns the buffer during an edit and the committed content
// otherwise.
func (s *Session) CurrentText() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return s.buffer
	}
	return s.content
}

// Snapshot is a consistent view of the session for API responses.
type Snapshot struct {
	HasDocument bool   `json:"has_document"`
	Editing     bool   `json:"editing"`
	Text        string `json:"text"`
	Revision    int    `json:"revision"`
}

// Snapshot returns the session state under a single lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := s.content
	if s.active {
		text = s.buffer
	}
	return Snapshot{
		HasDocument: s.hasDoc,
		Editing:     s.active,
		Text:        text,
		Revision:    s.revision,
	}
}
