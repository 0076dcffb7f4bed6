package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/openclassroom/client/config"
	"github.com/openclassroom/client/internal/api"
	"github.com/openclassroom/client/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server is the browser-facing view layer. It renders pages from the
// session state and the CRUD wrappers; it never mutates either outside
// the session transitions.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	tmpl       *template.Template

	state      *session.State
	svc        *session.Service
	classrooms *api.ClassroomService
	courses    *api.CourseService
	tasks      *api.TaskService
}

// Deps are the collaborators the view layer consumes.
type Deps struct {
	State      *session.State
	Service    *session.Service
	Classrooms *api.ClassroomService
	Courses    *api.CourseService
	Tasks      *api.TaskService
}

// New constructs a Server with basic middleware and defaults.
func New(cfg config.Config, deps Deps) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		tmpl:       tmpl,
		state:      deps.State,
		svc:        deps.Service,
		classrooms: deps.Classrooms,
		courses:    deps.Courses,
		tasks:      deps.Tasks,
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)

	router.Get("/login", s.loginPage)
	router.Post("/login", s.login)
	router.Get("/register", s.registerPage)
	router.Post("/register", s.register)
	router.Post("/logout", s.logout)

	router.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/", s.dashboard)
		r.Get("/classrooms", s.classroomsPage)
		r.Post("/classrooms", s.createClassroom)
		r.Get("/courses", s.coursesPage)
		r.Post("/courses", s.createCourse)
		r.Get("/tasks", s.tasksPage)
		r.Post("/tasks", s.createTask)
		r.Get("/profile", s.profilePage)
		r.Post("/profile", s.updateProfile)
		r.Post("/profile/photo", s.uploadPhoto)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 3000
	}

	s.router = router
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Router exposes the chi router, mainly for tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	return s.httpServer.Close()
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
