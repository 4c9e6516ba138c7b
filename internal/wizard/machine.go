package wizard

import "time"

// Machine tracks the current position in a draft's step sequence. Moving
// forward is gated on the current step validating; moving back always works.
type Machine struct {
	Draft Draft
	Step  int // 1-based

	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time
}

func NewMachine(d Draft) *Machine {
	return &Machine{Draft: d, Step: 1}
}

func (m *Machine) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Errors validates the current step.
func (m *Machine) Errors() FieldErrors {
	return Validate(m.Draft, m.Step, m.now())
}

// Next advances when the current step is valid. It reports whether the
// machine moved past the last step, which is the submit signal.
func (m *Machine) Next() (submitted bool, errs FieldErrors) {
	errs = m.Errors()
	if !errs.Valid() {
		return false, errs
	}
	m.Step++
	if m.Step > len(Steps(m.Draft)) {
		return true, nil
	}
	return false, nil
}

// Back steps backwards and never fails; the first step is the floor.
func (m *Machine) Back() {
	if m.Step > 1 {
		m.Step--
	}
}
