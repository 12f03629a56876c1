package ui

import (
	"strconv"
	"strings"
)

type FormMode int

const (
	FormClosed FormMode = iota
	FormCreating
	FormEditing
)

// FormState tracks one dialog. Editing always carries the id of the record
// being edited, so a dialog can never be "editing nothing".
type FormState struct {
	mode     FormMode
	targetID string
	errMsg   string
}

func (f *FormState) Mode() FormMode   { return f.mode }
func (f *FormState) TargetID() string { return f.targetID }
func (f *FormState) Err() string      { return f.errMsg }
func (f *FormState) Open() bool       { return f.mode != FormClosed }

func (f *FormState) OpenNew() {
	f.mode = FormCreating
	f.targetID = ""
	f.errMsg = ""
}

func (f *FormState) OpenEdit(id string) {
	f.mode = FormEditing
	f.targetID = id
	f.errMsg = ""
}

func (f *FormState) Close() {
	f.mode = FormClosed
	f.targetID = ""
	f.errMsg = ""
}

// SetError records a submit failure while keeping the dialog open.
func (f *FormState) SetError(msg string) {
	f.errMsg = msg
}

// ParseAmount converts a free-form money field to a number. Blank or
// unparseable input counts as zero rather than an error.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseCount does the same for whole-number fields like days and months.
func ParseCount(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}
