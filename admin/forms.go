package admin

import (
	"fmt"
	"strconv"
	"time"

	"github.com/anvilweb/anvil/internal"
	"github.com/anvilweb/anvil/pkg/entity"
)

// Accepted datetime form encodings, tried in order.
var datetimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// refOption is one candidate for a reference field selector.
type refOption struct {
	ID       uint
	Label    string
	Selected bool
}

// formField is the template view of one editable field.
type formField struct {
	Name    string
	Kind    string
	Value   string
	Checked bool
	Options []refOption
}

// buildForm renders the entity's fields for the create/edit templates.
// Reference fields preload every candidate record of the target entity.
func (e *Engine) buildForm(c internal.Context, ent entity.Entity) ([]formField, error) {
	fields := ent.EntityFields()
	out := make([]formField, 0, len(fields))

	for _, f := range fields {
		fv := formField{Name: f.Name, Kind: f.Kind.String()}
		value, _ := ent.Field(f.Name)

		switch f.Kind {
		case entity.KindBool:
			b, _ := value.(bool)
			fv.Checked = b

		case entity.KindPassword:
			// Hashes are never echoed back.

		case entity.KindReference:
			target, err := e.registry.Lookup(f.Ref)
			if err != nil {
				return nil, internal.ErrInternal(fmt.Sprintf("field %s references unknown entity %s", f.Name, f.Ref), internal.WithError(err))
			}
			candidates, err := e.entities.All(c.Context(), target)
			if err != nil {
				return nil, internal.ErrInternal("could not load reference candidates", internal.WithError(err))
			}
			current, _ := value.(uint)
			for _, cand := range candidates {
				fv.Options = append(fv.Options, refOption{
					ID:       cand.EntityID(),
					Label:    entity.Label(cand),
					Selected: cand.EntityID() == current,
				})
			}

		default:
			fv.Value = formatValue(value)
		}

		out = append(out, fv)
	}
	return out, nil
}

// formatValue renders a field value for an input element.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02T15:04")
	default:
		return fmt.Sprint(v)
	}
}

// decode applies submitted form values to the entity. The id field is
// never editable. Returns an HTTPError with status 400 on any malformed
// value; nothing is persisted by this function.
func (e *Engine) decode(c internal.Context, ent entity.Entity, create bool) error {
	for _, f := range ent.EntityFields() {
		if f.Name == "id" {
			continue
		}

		switch f.Kind {
		case entity.KindBool:
			if err := e.decodeBool(c, ent, f, create); err != nil {
				return err
			}

		case entity.KindReference:
			if err := e.decodeReference(c, ent, f); err != nil {
				return err
			}

		case entity.KindPassword:
			if err := e.decodePassword(c, ent, f, create); err != nil {
				return err
			}

		case entity.KindInt:
			raw := c.Form(f.Name)
			if raw == "" {
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				return internal.ErrBadRequest(fmt.Sprintf("field %s: %v", f.Name, err))
			}
			if !ent.SetField(f.Name, n) {
				return internal.ErrBadRequest(fmt.Sprintf("field %s: cannot assign %d", f.Name, n))
			}

		case entity.KindDateTime:
			raw := c.Form(f.Name)
			if raw == "" {
				continue
			}
			ts, err := parseDatetime(raw)
			if err != nil {
				return internal.ErrBadRequest(fmt.Sprintf("field %s: %v", f.Name, err))
			}
			if !ent.SetField(f.Name, ts) {
				return internal.ErrBadRequest(fmt.Sprintf("field %s: cannot assign %s", f.Name, raw))
			}

		default:
			if !ent.SetField(f.Name, c.Form(f.Name)) {
				return internal.ErrBadRequest(fmt.Sprintf("field %s: cannot assign value", f.Name))
			}
		}
	}
	return nil
}

// decodeBool decodes a checkbox-style boolean. The value is truthy iff
// it parses to a nonzero integer; a multi-valued submission uses the
// last value. An absent field means false on create and leaves the
// stored value untouched on edit.
func (e *Engine) decodeBool(c internal.Context, ent entity.Entity, f entity.Field, create bool) error {
	values := c.FormValues(f.Name)
	if len(values) == 0 {
		if create && !ent.SetField(f.Name, false) {
			return internal.ErrBadRequest(fmt.Sprintf("field %s: cannot assign", f.Name))
		}
		return nil
	}

	raw := values[len(values)-1]
	n, err := strconv.Atoi(raw)
	if err != nil {
		return internal.ErrBadRequest(fmt.Sprintf("field %s: %q is not a valid boolean encoding", f.Name, raw))
	}
	if !ent.SetField(f.Name, n != 0) {
		return internal.ErrBadRequest(fmt.Sprintf("field %s: cannot assign", f.Name))
	}
	return nil
}

// decodeReference parses the submitted id and loads the target record.
// Failure to parse or resolve is a 400 and nothing is assigned.
func (e *Engine) decodeReference(c internal.Context, ent entity.Entity, f entity.Field) error {
	raw := c.Form(f.Name)
	if raw == "" {
		return internal.ErrBadRequest(fmt.Sprintf("field %s: missing reference id", f.Name))
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return internal.ErrBadRequest(fmt.Sprintf("field %s: %q is not a valid id", f.Name, raw))
	}

	target, err := e.registry.Lookup(f.Ref)
	if err != nil {
		return internal.ErrBadRequest(fmt.Sprintf("field %s: %v", f.Name, err))
	}

	ref, err := e.entities.Load(c.Context(), target, uint(id))
	if err != nil {
		return internal.ErrBadRequest(fmt.Sprintf("field %s: %s %d does not exist", f.Name, f.Ref, id))
	}

	if !ent.SetField(f.Name, ref) {
		return internal.ErrBadRequest(fmt.Sprintf("field %s: cannot assign reference", f.Name))
	}
	return nil
}

// decodePassword hashes the submitted value before assignment. A create
// always hashes; an edit re-hashes only when the field was submitted
// non-empty, so a no-op save keeps the stored hash.
func (e *Engine) decodePassword(c internal.Context, ent entity.Entity, f entity.Field, create bool) error {
	raw := c.Form(f.Name)
	if !create && raw == "" {
		return nil
	}

	hash, err := e.hasher.Hash(raw)
	if err != nil {
		return internal.ErrInternal(fmt.Sprintf("field %s: hashing failed", f.Name), internal.WithError(err))
	}
	if !ent.SetField(f.Name, hash) {
		return internal.ErrBadRequest(fmt.Sprintf("field %s: cannot assign", f.Name))
	}
	return nil
}

func parseDatetime(raw string) (time.Time, error) {
	for _, layout := range datetimeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a recognized datetime", raw)
}
