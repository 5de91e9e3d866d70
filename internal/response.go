package internal

import (
	"encoding/json"
	"net/http"
)

// Content types the dispatcher recognizes.
const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeText = "text/plain; charset=utf-8"
	ContentTypeJSON = "application/json; charset=utf-8"
)

// Response is the value handlers return. The dispatcher normalizes it
// before writing: a zero Status becomes 200, an empty ContentType becomes
// text/html, and a response carrying view data is rendered through the
// template engine.
type Response struct {
	Status      int
	ContentType string
	Headers     http.Header
	Body        []byte

	// View names a template to render with Data as its context.
	// When View is set, Body is ignored.
	View string
	Data map[string]any

	// RedirectURL, when set, turns the response into a redirect.
	RedirectURL string
}

// String creates a plain text response.
func String(s string) *Response {
	return &Response{ContentType: ContentTypeText, Body: []byte(s)}
}

// HTML creates an HTML response from pre-rendered markup.
func HTML(s string) *Response {
	return &Response{ContentType: ContentTypeHTML, Body: []byte(s)}
}

// View creates a response rendered from the named template with the
// given context data. Pass an empty name to use the app's default
// template.
func View(name string, data map[string]any) *Response {
	if data == nil {
		data = make(map[string]any)
	}
	return &Response{View: name, Data: data}
}

// JSON creates a JSON response. Marshal failures surface when the
// dispatcher writes the response.
func JSON(v any) *Response {
	body, err := json.Marshal(v)
	if err != nil {
		return &Response{
			Status:      http.StatusInternalServerError,
			ContentType: ContentTypeJSON,
			Body:        []byte(`{"error":"response encoding failed"}`),
		}
	}
	return &Response{ContentType: ContentTypeJSON, Body: body}
}

// Redirect creates a 302 redirect to the given URL.
func Redirect(url string) *Response {
	return &Response{Status: http.StatusFound, RedirectURL: url}
}

// RedirectWithStatus creates a redirect with an explicit status code.
func RedirectWithStatus(code int, url string) *Response {
	return &Response{Status: code, RedirectURL: url}
}

// NoContent creates an empty response with the given status code.
func NoContent(code int) *Response {
	return &Response{Status: code}
}

// WithStatus sets the status code and returns the response for chaining.
func (r *Response) WithStatus(code int) *Response {
	r.Status = code
	return r
}

// WithHeader adds a response header and returns the response for chaining.
func (r *Response) WithHeader(name, value string) *Response {
	if r.Headers == nil {
		r.Headers = make(http.Header)
	}
	r.Headers.Set(name, value)
	return r
}
