package admin

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/anvilweb/anvil/auth"
	"github.com/anvilweb/anvil/internal"
	"github.com/anvilweb/anvil/pkg/entity"
	"github.com/anvilweb/anvil/pkg/sanitizer"
)

// index lists the registered entities.
func (e *Engine) index(c internal.Context) (*internal.Response, error) {
	return internal.View("admin/index", map[string]any{
		"entities": e.entityLinks(),
	}), nil
}

// listRow is the template view of one record in a listing.
type listRow struct {
	ID        uint
	Label     string
	Cells     []string
	EditURL   string
	DeleteURL string
}

// list shows every record of the entity.
func (e *Engine) list(c internal.Context) (*internal.Response, error) {
	desc, resp := e.lookupEntity(c)
	if resp != nil {
		return resp, nil
	}

	records, err := e.entities.All(c.Context(), desc)
	if err != nil {
		return e.errorPage(c, http.StatusInternalServerError, err.Error()), nil
	}

	proto := desc.New()
	fields := proto.EntityFields()
	headers := make([]string, 0, len(fields))
	for _, f := range fields {
		headers = append(headers, f.Name)
	}

	rows := make([]listRow, 0, len(records))
	for _, rec := range records {
		row := listRow{
			ID:        rec.EntityID(),
			Label:     entity.Label(rec),
			EditURL:   e.itemURL(desc.Name, rec.EntityID(), "edit"),
			DeleteURL: e.itemURL(desc.Name, rec.EntityID(), "delete"),
		}
		for _, f := range fields {
			row.Cells = append(row.Cells, cellValue(rec, f))
		}
		rows = append(rows, row)
	}

	return internal.View("admin/list", map[string]any{
		"entity":   desc.Name,
		"entities": e.entityLinks(),
		"headers":  headers,
		"rows":     rows,
		"newURL":   e.baseURL + desc.Name + "/new/",
	}), nil
}

// createForm renders an empty form with reference candidates preloaded.
func (e *Engine) createForm(c internal.Context) (*internal.Response, error) {
	desc, resp := e.lookupEntity(c)
	if resp != nil {
		return resp, nil
	}

	fields, err := e.buildForm(c, desc.New())
	if err != nil {
		return e.errorFromErr(c, err), nil
	}

	return internal.View("admin/form", map[string]any{
		"entity":   desc.Name,
		"entities": e.entityLinks(),
		"fields":   fields,
		"action":   e.baseURL + desc.Name + "/new/",
		"listURL":  e.baseURL + desc.Name + "/",
	}), nil
}

// createSubmit decodes the form and persists a new record.
func (e *Engine) createSubmit(c internal.Context) (*internal.Response, error) {
	desc, resp := e.lookupEntity(c)
	if resp != nil {
		return resp, nil
	}

	record := desc.New()
	if err := e.decode(c, record, true); err != nil {
		return e.errorFromErr(c, err), nil
	}

	if err := e.entities.Create(c.Context(), record); err != nil {
		return e.errorPage(c, http.StatusBadRequest, err.Error()), nil
	}

	e.log.InfoContext(c.Context(), "record created",
		slog.String("entity", desc.Name),
		slog.Uint64("id", uint64(record.EntityID())),
	)
	return internal.Redirect(e.baseURL + desc.Name + "/"), nil
}

// editForm renders the populated form for an existing record.
func (e *Engine) editForm(c internal.Context) (*internal.Response, error) {
	desc, record, resp := e.loadItem(c)
	if resp != nil {
		return resp, nil
	}

	fields, err := e.buildForm(c, record)
	if err != nil {
		return e.errorFromErr(c, err), nil
	}

	return internal.View("admin/form", map[string]any{
		"entity":   desc.Name,
		"entities": e.entityLinks(),
		"fields":   fields,
		"action":   e.itemURL(desc.Name, record.EntityID(), "edit"),
		"listURL":  e.baseURL + desc.Name + "/",
		"id":       record.EntityID(),
	}), nil
}

// editSubmit decodes the form onto the stored record and saves it.
func (e *Engine) editSubmit(c internal.Context) (*internal.Response, error) {
	desc, record, resp := e.loadItem(c)
	if resp != nil {
		return resp, nil
	}

	if err := e.decode(c, record, false); err != nil {
		return e.errorFromErr(c, err), nil
	}

	if err := e.entities.Save(c.Context(), record); err != nil {
		return e.errorPage(c, http.StatusBadRequest, err.Error()), nil
	}

	e.log.InfoContext(c.Context(), "record updated",
		slog.String("entity", desc.Name),
		slog.Uint64("id", uint64(record.EntityID())),
	)
	return internal.Redirect(e.baseURL + desc.Name + "/"), nil
}

// deleteConfirm renders the confirmation page.
func (e *Engine) deleteConfirm(c internal.Context) (*internal.Response, error) {
	desc, record, resp := e.loadItem(c)
	if resp != nil {
		return resp, nil
	}

	return internal.View("admin/delete", map[string]any{
		"entity":   desc.Name,
		"entities": e.entityLinks(),
		"label":    entity.Label(record),
		"id":       record.EntityID(),
		"action":   e.itemURL(desc.Name, record.EntityID(), "delete"),
		"listURL":  e.baseURL + desc.Name + "/",
	}), nil
}

// deleteSubmit removes the record. Persistence failures (for example
// referential constraints) render a 500 error page.
func (e *Engine) deleteSubmit(c internal.Context) (*internal.Response, error) {
	desc, record, resp := e.loadItem(c)
	if resp != nil {
		return resp, nil
	}

	if err := e.entities.Delete(c.Context(), desc, record.EntityID()); err != nil {
		return e.errorPage(c, http.StatusInternalServerError, err.Error()), nil
	}

	e.log.InfoContext(c.Context(), "record deleted",
		slog.String("entity", desc.Name),
		slog.Uint64("id", uint64(record.EntityID())),
	)
	return internal.Redirect(e.baseURL + desc.Name + "/"), nil
}

// lookupEntity resolves the model_name path parameter. Unknown names
// render a 404 error page.
func (e *Engine) lookupEntity(c internal.Context) (entity.Descriptor, *internal.Response) {
	name := c.Param("model_name")
	desc, err := e.registry.Lookup(name)
	if err != nil {
		return entity.Descriptor{}, e.errorPage(c, http.StatusNotFound, fmt.Sprintf("no entity named %q", name))
	}
	return desc, nil
}

// loadItem resolves model_name and item_id and loads the record.
// A malformed id is a 400, an unknown id a 404.
func (e *Engine) loadItem(c internal.Context) (entity.Descriptor, entity.Entity, *internal.Response) {
	desc, resp := e.lookupEntity(c)
	if resp != nil {
		return entity.Descriptor{}, nil, resp
	}

	raw := c.Param("item_id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return entity.Descriptor{}, nil, e.errorPage(c, http.StatusBadRequest, fmt.Sprintf("%q is not a valid id", raw))
	}

	record, err := e.entities.Load(c.Context(), desc, uint(id))
	if err != nil {
		return entity.Descriptor{}, nil, e.errorPage(c, http.StatusNotFound, fmt.Sprintf("%s %d does not exist", desc.Name, id))
	}

	return desc, record, nil
}

func (e *Engine) itemURL(name string, id uint, op string) string {
	return fmt.Sprintf("%s%s/%d/%s/", e.baseURL, name, id, op)
}

// errorPage renders the shared error template. The message is stripped
// of HTML before display.
func (e *Engine) errorPage(c internal.Context, code int, message string) *internal.Response {
	return internal.View("admin/error", map[string]any{
		"code":     code,
		"status":   http.StatusText(code),
		"message":  sanitizer.StripHTML(message),
		"entities": e.entityLinks(),
		"subject":  auth.CurrentSubject(c),
	}).WithStatus(code)
}

// errorFromErr renders an error page carrying the error's HTTP status,
// defaulting to 400 for decode failures.
func (e *Engine) errorFromErr(c internal.Context, err error) *internal.Response {
	code := http.StatusBadRequest
	if httpErr := internal.AsHTTPError(err); httpErr != nil {
		code = httpErr.Code
	}
	return e.errorPage(c, code, err.Error())
}

// cellValue renders one field of a listed record.
func cellValue(rec entity.Entity, f entity.Field) string {
	if f.Kind == entity.KindPassword {
		return "********"
	}
	v, ok := rec.Field(f.Name)
	if !ok {
		return ""
	}
	if f.Kind == entity.KindBool {
		if b, _ := v.(bool); b {
			return "yes"
		}
		return "no"
	}
	return formatValue(v)
}
