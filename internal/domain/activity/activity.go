// Package activity contains the extracurricular activity record.
package activity

import "slices"

// Activity is one extracurricular offering. Participants holds unique emails
// in signup order.
type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Clone returns a deep copy. Participants is never nil so it encodes as [].
func (a Activity) Clone() Activity {
	c := a
	c.Participants = make([]string, len(a.Participants))
	copy(c.Participants, a.Participants)
	return c
}

// Has reports whether email is enrolled.
func (a *Activity) Has(email string) bool {
	return slices.Contains(a.Participants, email)
}

// Add appends email. It reports false if email is already enrolled.
func (a *Activity) Add(email string) bool {
	if a.Has(email) {
		return false
	}
	a.Participants = append(a.Participants, email)
	return true
}

// Remove drops email keeping the order of the remaining participants.
// It reports false if email was not enrolled.
func (a *Activity) Remove(email string) bool {
	i := slices.Index(a.Participants, email)
	if i < 0 {
		return false
	}
	a.Participants = slices.Delete(a.Participants, i, i+1)
	return true
}

// Snapshot deep-copies every activity of m.
func Snapshot(m map[string]*Activity) map[string]Activity {
	out := make(map[string]Activity, len(m))
	for name, a := range m {
		out[name] = a.Clone()
	}
	return out
}
