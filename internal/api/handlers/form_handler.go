package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/panel-console/internal/formguard"
	"github.com/isdelr/panel-console/internal/models"
	"github.com/isdelr/panel-console/internal/notify"
	"github.com/isdelr/panel-console/internal/validate"
	"github.com/rs/zerolog/log"
)

// FormHandler tracks unsaved changes and validates the panel's forms.
type FormHandler struct {
	guards     *formguard.Registry
	validators map[string]*validate.Validator
	notifier   notify.Notifier
}

// NewFormHandler creates a new FormHandler. Only forms with a validator are
// served.
func NewFormHandler(guards *formguard.Registry, validators map[string]*validate.Validator, notifier notify.Notifier) *FormHandler {
	return &FormHandler{guards: guards, validators: validators, notifier: notifier}
}

// SubmitResponse is the result of a submit check.
type SubmitResponse struct {
	Valid         bool                     `json:"valid"`
	Errors        []string                 `json:"errors"`
	Marks         map[string]validate.Mark `json:"marks"`
	PreventUnload bool                     `json:"prevent_unload"`
}

// guard resolves the form in the URL and the page's guard ID, passed as the
// "guard" parameter.
func (h *FormHandler) guard(w http.ResponseWriter, r *http.Request) (string, string, *formguard.Guard, bool) {
	form := chi.URLParam(r, "form")
	if _, ok := h.validators[form]; !ok {
		writeError(w, http.StatusNotFound, "unknown form: "+form)
		return "", "", nil, false
	}
	id := r.FormValue("guard")
	g, ok := h.guards.Get(form, id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown guard for form "+form)
		return "", "", nil, false
	}
	return form, id, g, true
}

func (h *FormHandler) writeState(w http.ResponseWriter, form, id string) {
	st, _ := h.guards.State(form, id)
	writeJSON(w, http.StatusOK, st)
}

// Change records an edit of one field.
func (h *FormHandler) Change(w http.ResponseWriter, r *http.Request) {
	form, id, g, ok := h.guard(w, r)
	if !ok {
		return
	}
	g.Change(r.FormValue("field"))
	h.writeState(w, form, id)
}

// Guard reports whether leaving the page needs confirmation.
func (h *FormHandler) Guard(w http.ResponseWriter, r *http.Request) {
	form, id, _, ok := h.guard(w, r)
	if !ok {
		return
	}
	h.writeState(w, form, id)
}

// Close forgets the guard of a page that went away.
func (h *FormHandler) Close(w http.ResponseWriter, r *http.Request) {
	_, id, _, ok := h.guard(w, r)
	if !ok {
		return
	}
	h.guards.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

// Submit validates the whole form. Every failing rule becomes a danger
// notification and the submission is refused; a valid form is marked clean
// so the page can post it to the upstream.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	form, _, g, ok := h.guard(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	values := make(map[string]string, len(r.PostForm))
	for field := range r.PostForm {
		if field == "guard" {
			continue
		}
		values[field] = r.PostForm.Get(field)
	}

	res := h.validators[form].Validate(values)
	if !res.OK() {
		for _, msg := range res.Errors {
			h.notifier.Push(models.KindDanger, msg)
		}
		log.Debug().Str("form", form).Strs("errors", res.Errors).Msg("Form submission refused")
		writeJSON(w, http.StatusUnprocessableEntity, SubmitResponse{
			Errors:        res.Errors,
			Marks:         res.Marks,
			PreventUnload: g.PreventUnload(),
		})
		return
	}

	g.Submit()
	writeJSON(w, http.StatusOK, SubmitResponse{Valid: true, Errors: []string{}, Marks: res.Marks, PreventUnload: g.PreventUnload()})
}

// Validate checks one field, as the page does when an input loses focus.
func (h *FormHandler) Validate(w http.ResponseWriter, r *http.Request) {
	v, ok := h.validators[r.FormValue("form")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown form: "+r.FormValue("form"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]validate.Mark{
		"mark": v.Check(r.FormValue("field"), r.FormValue("value")),
	})
}
