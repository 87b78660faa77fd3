// Package sound holds the user's custom alarm sound and plays alerts.
package sound

import "github.com/sandeepkv93/weekplan/internal/model"

// Registry keeps at most one custom alarm sound. Absence means the
// synthesized tone is used. Payloads are not validated here; a bad
// payload fails at playback and the alert stays visual-only.
type Registry struct {
	custom *model.AlarmSound
}

func NewRegistry() *Registry {
	return &Registry{}
}

// SetCustom replaces any existing custom sound.
func (r *Registry) SetCustom(name string, data []byte) {
	r.custom = &model.AlarmSound{Name: name, Data: data}
}

// Clear removes the custom sound, reverting to the synthesized tone.
func (r *Registry) Clear() {
	r.custom = nil
}

// Current returns the registered sound, if any.
func (r *Registry) Current() (model.AlarmSound, bool) {
	if r.custom == nil {
		return model.AlarmSound{}, false
	}
	return *r.custom, true
}

// Restore installs a loaded sound without re-persisting.
func (r *Registry) Restore(s model.AlarmSound) {
	if s.Name == "" && len(s.Data) == 0 {
		r.custom = nil
		return
	}
	r.custom = &model.AlarmSound{Name: s.Name, Data: s.Data}
}
