package registry

import "strings"

// AddInstrument adds a name to the instrument set.
func (r *Registry) AddInstrument(name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("instrument name is required")
	}
	if r.instrumentIndex(name) >= 0 {
		return conflict("instrument %q already exists", name)
	}
	r.instruments = append(r.instruments, name)
	r.logAction("ADD_INSTRUMENT", "Added instrument: %s", name)
	r.persist()
	return nil
}

// RemoveInstrument drops a name from the set. Courses keep their instrument label.
func (r *Registry) RemoveInstrument(name string) error {
	idx := r.instrumentIndex(name)
	if idx < 0 {
		return notFound("instrument %q not found", name)
	}
	r.instruments = append(r.instruments[:idx], r.instruments[idx+1:]...)
	r.logAction("REMOVE_INSTRUMENT", "Removed instrument: %s", name)
	r.persist()
	return nil
}

// EditInstrument renames an instrument in place and relabels every course that used it.
func (r *Registry) EditInstrument(oldName, newName string) error {
	idx := r.instrumentIndex(oldName)
	if idx < 0 {
		return notFound("instrument %q not found", oldName)
	}
	if strings.TrimSpace(newName) == "" {
		return invalid("instrument name is required")
	}
	if r.instrumentIndex(newName) >= 0 {
		return conflict("instrument %q already exists", newName)
	}
	r.instruments[idx] = newName
	for _, course := range r.courses {
		if course.Instrument == oldName {
			course.Instrument = newName
		}
	}
	r.logAction("EDIT_INSTRUMENT", "Renamed %s -> %s", oldName, newName)
	r.persist()
	return nil
}

// Instruments lists the instrument set in insertion order.
func (r *Registry) Instruments() []string {
	return append(make([]string, 0, len(r.instruments)), r.instruments...)
}

func (r *Registry) instrumentIndex(name string) int {
	for i, n := range r.instruments {
		if n == name {
			return i
		}
	}
	return -1
}
