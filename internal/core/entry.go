package core

import "errors"

// MaxNoteLen is the stored note limit; longer notes are cut, not rejected.
const MaxNoteLen = 255

var (
	ErrInvalidHours    = errors.New("hours must be a positive amount with at most two decimals")
	ErrInvalidCategory = errors.New("category must be one of G1/G2/G3")
	ErrInvalidDate     = errors.New("invalid date")
)

// Entry is one recorded overtime row. Entries are immutable once written;
// corrections happen by deleting a day and inserting anew.
type Entry struct {
	UserID   int64
	WorkDate Date
	Category Category
	Hours    Hours
	Note     string
}

// NewEntry builds a validated Entry, truncating the note to MaxNoteLen.
func NewEntry(userID int64, workDate Date, category Category, hours Hours, note string) (Entry, error) {
	if r := []rune(note); len(r) > MaxNoteLen {
		note = string(r[:MaxNoteLen])
	}
	e := Entry{
		UserID:   userID,
		WorkDate: workDate,
		Category: category,
		Hours:    hours,
		Note:     note,
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (e Entry) Validate() error {
	if err := e.WorkDate.Validate(); err != nil {
		return err
	}
	if err := e.Category.Validate(); err != nil {
		return err
	}
	return e.Hours.Validate()
}
