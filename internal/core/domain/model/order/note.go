package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrNoteIsNotConstructed is returned when a Note instance was not created
// through NewNote or RestoreNote.
var ErrNoteIsNotConstructed = errors.New("Note must be created via NewNote constructor")

// NoteType classifies who authored a note and whether it may be edited.
type NoteType string

// Note types. System notes are generated by automated processes and are never
// editable.
const (
	NoteTypeInfo    NoteType = "Info"
	NoteTypeWarning NoteType = "Warning"
	NoteTypeError   NoteType = "Error"
	NoteTypeSystem  NoteType = "System"
)

func (t NoteType) validate() error {
	switch t {
	case NoteTypeInfo, NoteTypeWarning, NoteTypeError, NoteTypeSystem:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"note type", fmt.Errorf("%q is not a note type", string(t)))
	}
}

// noteEditableLifetime is the window after the last update during which a
// user note may still be edited.
const noteEditableLifetime = 300 * time.Second

// Note is an annotation on an order. User notes can be corrected for a short
// window after they are written; system notes are an audit trail and stay
// frozen.
type Note struct {
	id          kernel.UUID
	noteType    NoteType
	message     string
	authorID    *kernel.UUID
	dateCreated time.Time
	dateUpdated time.Time

	isConstructed bool
}

// NewNote creates a note. A zero timestamp means now.
func NewNote(id kernel.UUID, noteType NoteType, message string, authorID *kernel.UUID, at time.Time) (*Note, error) {
	n := &Note{isConstructed: true}

	if err := errors.Join(
		n.setID(id),
		n.setType(noteType),
		n.setMessage(message),
		n.setAuthor(authorID),
	); err != nil {
		return nil, err
	}

	if at.IsZero() {
		at = time.Now().UTC()
	}
	n.dateCreated = at
	n.dateUpdated = at
	return n, nil
}

// RestoreNote rehydrates a persisted note.
func RestoreNote(
	id kernel.UUID, noteType NoteType, message string, authorID *kernel.UUID,
	dateCreated, dateUpdated time.Time,
) (*Note, error) {
	n, err := NewNote(id, noteType, message, authorID, dateCreated)
	if err != nil {
		return nil, err
	}
	n.dateUpdated = dateUpdated
	return n, nil
}

// Validate ensures the Note was properly constructed.
func (n *Note) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNoteIsNotConstructed
	}
	return nil
}

// ID returns the note identifier.
func (n *Note) ID() kernel.UUID {
	return n.id
}

// Type returns the note classification.
func (n *Note) Type() NoteType {
	return n.noteType
}

// Message returns the note text.
func (n *Note) Message() string {
	return n.message
}

// AuthorID returns the user who wrote the note, or nil for anonymous and
// system notes.
func (n *Note) AuthorID() *kernel.UUID {
	return n.authorID
}

// DateCreated returns when the note was written.
func (n *Note) DateCreated() time.Time {
	return n.dateCreated
}

// DateUpdated returns when the note was last edited.
func (n *Note) DateUpdated() time.Time {
	return n.dateUpdated
}

// IsEditable reports whether the note may still be edited at the given time.
// System notes never are; user notes only within the editable window after
// their last update.
func (n *Note) IsEditable(now time.Time) bool {
	if n.noteType == NoteTypeSystem {
		return false
	}
	return now.Sub(n.dateUpdated) <= noteEditableLifetime
}

// Edit replaces the note message and refreshes the update timestamp. A note
// outside its editable window is rejected with ErrNoteNotEditable.
func (n *Note) Edit(message string, now time.Time) error {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	if !n.IsEditable(now) {
		return ErrNoteNotEditable
	}
	if err := n.setMessage(message); err != nil {
		return err
	}
	n.dateUpdated = now
	return nil
}

func (n *Note) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Note) setType(noteType NoteType) error {
	if err := noteType.validate(); err != nil {
		return err
	}
	n.noteType = noteType
	return nil
}

func (n *Note) setMessage(message string) error {
	if message == "" {
		return errs.NewValueIsRequiredError("message")
	}
	n.message = message
	return nil
}

func (n *Note) setAuthor(authorID *kernel.UUID) error {
	if authorID != nil {
		if err := authorID.Validate(); err != nil {
			return err
		}
	}
	n.authorID = authorID
	return nil
}

// StatusChange is one entry of the order's status audit trail.
type StatusChange struct {
	oldStatus Status
	newStatus Status
	at        time.Time
}

// RestoreStatusChange rehydrates a persisted status change entry.
func RestoreStatusChange(oldStatus, newStatus Status, at time.Time) StatusChange {
	return StatusChange{oldStatus: oldStatus, newStatus: newStatus, at: at}
}

// OldStatus returns the status the order left.
func (c StatusChange) OldStatus() Status {
	return c.oldStatus
}

// NewStatus returns the status the order entered.
func (c StatusChange) NewStatus() Status {
	return c.newStatus
}

// At returns when the transition happened.
func (c StatusChange) At() time.Time {
	return c.at
}

// CommunicationEvent records that a message of a given type was sent to the
// customer about this order.
type CommunicationEvent struct {
	id          kernel.UUID
	code        string
	name        string
	dateCreated time.Time
}

// NewCommunicationEvent creates a communication event record. A zero
// timestamp means now.
func NewCommunicationEvent(id kernel.UUID, code, name string, at time.Time) (*CommunicationEvent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	if at.IsZero() {
		at = time.Now().UTC()
	}
	return &CommunicationEvent{id: id, code: code, name: name, dateCreated: at}, nil
}

// ID returns the event identifier.
func (e *CommunicationEvent) ID() kernel.UUID {
	return e.id
}

// Code returns the message type code.
func (e *CommunicationEvent) Code() string {
	return e.code
}

// Name returns the message type name.
func (e *CommunicationEvent) Name() string {
	return e.name
}

// DateCreated returns when the message was sent.
func (e *CommunicationEvent) DateCreated() time.Time {
	return e.dateCreated
}
