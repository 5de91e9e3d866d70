package admin

import (
	"embed"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/anvilweb/anvil/auth"
	"github.com/anvilweb/anvil/internal"
	"github.com/anvilweb/anvil/pkg/entity"
	"github.com/anvilweb/anvil/pkg/logger"
	"github.com/anvilweb/anvil/pkg/password"
	"github.com/anvilweb/anvil/pkg/session"
)

//go:embed templates
var templatesFS embed.FS

// Templates is the framework's default admin template set. Register it
// as the last view layer so application templates shadow it:
//
//	engine := view.New(
//	    view.WithFS(appTemplates),
//	    view.WithFS(admin.Templates),
//	)
var Templates = mustSub(templatesFS, "templates")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// DefaultBaseURL is the path prefix the admin engine mounts under.
const DefaultBaseURL = "/admin/"

// Engine serves a generic CRUD interface over every registered entity.
// It implements internal.Handler and is mounted with WithHandlers.
type Engine struct {
	registry *entity.Registry
	entities *entity.Store
	subjects auth.SubjectStore
	sessions *session.Manager
	hasher   *password.Hasher
	log      *slog.Logger
	baseURL  string

	guard *auth.Guard
	svc   *auth.Service
}

// Option configures the Engine.
type Option func(*Engine)

// WithBaseURL sets the path prefix for admin routes.
// Defaults to "/admin/". The prefix always ends with a slash.
func WithBaseURL(url string) Option {
	return func(e *Engine) {
		if url != "" {
			if !strings.HasSuffix(url, "/") {
				url += "/"
			}
			e.baseURL = url
		}
	}
}

// WithLogger sets the logger for admin operations.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates an admin engine over the given registry and stores.
func New(registry *entity.Registry, entities *entity.Store, subjects auth.SubjectStore, sessions *session.Manager, hasher *password.Hasher, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		entities: entities,
		subjects: subjects,
		sessions: sessions,
		hasher:   hasher,
		log:      logger.NewNope(),
		baseURL:  DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.guard = auth.NewGuard(subjects, sessions,
		auth.WithLoginURL(e.loginURL()),
		auth.WithLogoutURL(e.logoutURL()),
	)
	e.svc = auth.NewService(subjects, sessions, hasher,
		auth.WithLoginView("admin/login"),
		auth.WithSuccessURL(e.baseURL),
		auth.WithServiceLoginURL(e.loginURL()),
		auth.WithServiceLogger(e.log),
	)
	return e
}

func (e *Engine) loginURL() string  { return e.baseURL + "login/" }
func (e *Engine) logoutURL() string { return e.baseURL + "logout/" }

// Routes registers the admin surface. Login and logout are registered
// first so the literal paths win over the entity placeholder routes.
func (e *Engine) Routes(r internal.Router) {
	r.Handle(e.loginURL(), e.svc.Login)
	r.Handle(e.logoutURL(), e.svc.Logout)

	guarded := []internal.Middleware{e.guard.RequireSession, e.guard.RequireAdmin}

	r.GET(e.baseURL, e.index, guarded...)
	r.GET(e.baseURL+"<model_name>/", e.list, guarded...)
	r.GET(e.baseURL+"<model_name>/new/", e.createForm, guarded...)
	r.POST(e.baseURL+"<model_name>/new/", e.createSubmit, guarded...)
	r.GET(e.baseURL+"<model_name>/<item_id>/edit/", e.editForm, guarded...)
	r.POST(e.baseURL+"<model_name>/<item_id>/edit/", e.editSubmit, guarded...)
	r.GET(e.baseURL+"<model_name>/<item_id>/delete/", e.deleteConfirm, guarded...)
	r.POST(e.baseURL+"<model_name>/<item_id>/delete/", e.deleteSubmit, guarded...)
}

// entityLink is the index/listing view of a registered entity.
type entityLink struct {
	Name    string
	ListURL string
	NewURL  string
}

// entityLinks lists registered entities in registration order.
func (e *Engine) entityLinks() []entityLink {
	descs := e.registry.All()
	links := make([]entityLink, 0, len(descs))
	for _, d := range descs {
		links = append(links, entityLink{
			Name:    d.Name,
			ListURL: e.baseURL + d.Name + "/",
			NewURL:  e.baseURL + d.Name + "/new/",
		})
	}
	return links
}
