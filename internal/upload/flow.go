// Package upload implements the spreadsheet upload section: file
// validation, the single in-flight request guard and the result panels.
package upload

import (
	"errors"
	"fmt"

	"github.com/tuya/fastdata/internal/model"
)

var (
	// ErrNoFile is returned by Begin when nothing is selected.
	ErrNoFile = errors.New("upload: no file selected")
	// ErrInFlight is returned by Begin while a request is pending.
	ErrInFlight = errors.New("upload: request already in flight")
	// ErrUnsupportedFile is returned by Select for rejected files.
	ErrUnsupportedFile = errors.New("upload: unsupported file type")
)

// State is the upload lifecycle.
type State int

const (
	NoFileSelected State = iota
	FileSelectedValid
	Uploading
	Success
	Failure
)

func (s State) String() string {
	switch s {
	case NoFileSelected:
		return "no file selected"
	case FileSelectedValid:
		return "ready"
	case Uploading:
		return "uploading"
	case Success:
		return "success"
	case Failure:
		return "failure"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Flow is the upload state machine. It is owned by the UI loop; the
// network call itself runs elsewhere and reports back through Complete.
type Flow struct {
	notify model.Notifier

	state    State
	file     *FileInfo
	response *Response
	errMsg   string
}

// NewFlow returns a flow with nothing selected.
func NewFlow(n model.Notifier) *Flow {
	return &Flow{notify: n}
}

// State returns the current lifecycle state.
func (f *Flow) State() State { return f.state }

// File returns the selected file, if any.
func (f *Flow) File() (FileInfo, bool) {
	if f.file == nil {
		return FileInfo{}, false
	}
	return *f.file, true
}

// CanSubmit reports whether the submit action is enabled.
func (f *Flow) CanSubmit() bool {
	return f.file != nil && f.state != Uploading
}

// Select validates fi. Rejected files reset the selection and disable
// submit; result panels are left as they were.
func (f *Flow) Select(fi FileInfo) error {
	if f.state == Uploading {
		return ErrInFlight
	}
	if !Accepts(fi) {
		f.file = nil
		f.state = f.idleState()
		f.warn("Please select a valid Excel file (.xlsx, .xls, .csv)")
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, fi.Name)
	}
	f.file = &fi
	f.state = FileSelectedValid
	f.success(fmt.Sprintf("File selected: %s", fi.Name))
	return nil
}

// SelectPath inspects path and selects it.
func (f *Flow) SelectPath(path string) error {
	fi, err := Inspect(path)
	if err != nil {
		f.warn(fmt.Sprintf("Cannot read file: %v", err))
		return err
	}
	return f.Select(fi)
}

// ClearSelection drops the selected file.
func (f *Flow) ClearSelection() {
	if f.state == Uploading {
		return
	}
	f.file = nil
	f.state = f.idleState()
}

// Begin moves to Uploading and returns the file to send. Both panels are
// hidden until Complete.
func (f *Flow) Begin() (FileInfo, error) {
	if f.state == Uploading {
		return FileInfo{}, ErrInFlight
	}
	if f.file == nil {
		f.warn("Please select an Excel file")
		return FileInfo{}, ErrNoFile
	}
	f.state = Uploading
	f.response = nil
	f.errMsg = ""
	return *f.file, nil
}

// Complete records the outcome of the request started by Begin.
func (f *Flow) Complete(resp Response, err error) {
	if f.state != Uploading {
		return
	}
	if err != nil {
		f.state = Failure
		f.response = nil
		f.errMsg = err.Error()
		if f.notify != nil {
			f.notify.Danger("Error sending file to the backend")
		}
		return
	}
	f.state = Success
	f.response = &resp
	f.errMsg = ""
	if f.notify != nil {
		f.notify.Success("Excel file sent to the backend")
	}
}

// ResponsePanel returns the success panel when it is visible.
func (f *Flow) ResponsePanel() (Response, bool) {
	if f.response == nil {
		return Response{}, false
	}
	return *f.response, true
}

// ErrorPanel returns the error message when the error panel is visible.
func (f *Flow) ErrorPanel() (string, bool) {
	return f.errMsg, f.errMsg != ""
}

// idleState keeps a finished outcome on screen after the selection changes.
func (f *Flow) idleState() State {
	if f.state == Success || f.state == Failure {
		return f.state
	}
	return NoFileSelected
}

func (f *Flow) warn(msg string) {
	if f.notify != nil {
		f.notify.Warning(msg)
	}
}

func (f *Flow) success(msg string) {
	if f.notify != nil {
		f.notify.Success(msg)
	}
}
