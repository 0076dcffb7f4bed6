package web

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/openclassroom/client/internal/authz"
	"github.com/openclassroom/client/types"
)

// refreshLeeway is how close to expiry the access token may get before
// a request proactively refreshes it.
const refreshLeeway = time.Minute

var manageCapability = authz.AnyOf(types.RoleTeacher, types.RoleAdmin)

// requireSession gates every signed-in page. It hydrates the session
// from a persisted token on the first request after a restart, then
// consults the authorization gate: allow passes through, pending
// renders neutral UI, deny lands on the sign-in entry point.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.svc.EnsureFresh(r.Context(), refreshLeeway); err != nil {
			slog.Debug("token refresh failed", "error", err)
		}
		if err := s.state.Hydrate(r.Context()); err != nil {
			slog.Debug("session hydrate failed", "error", err)
		}

		switch authz.Check(s.state.Snapshot(), authz.Authenticated()) {
		case authz.Allow:
			next.ServeHTTP(w, r)
		case authz.Pending:
			s.render(w, "loading.html", nil)
		default:
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		}
	})
}

type authPageData struct {
	Error string
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	if s.state.Snapshot().Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, "login.html", authPageData{Error: s.state.Snapshot().Error})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	creds := types.Credentials{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
	if err := s.state.Login(r.Context(), creds); err != nil {
		s.render(w, "login.html", authPageData{Error: s.state.Snapshot().Error})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) registerPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "register.html", authPageData{})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	role := types.Role(r.FormValue("role"))
	if role != types.RoleStudent && role != types.RoleTeacher {
		role = types.RoleStudent
	}
	reg := types.Registration{
		FirstName: r.FormValue("firstName"),
		LastName:  r.FormValue("lastName"),
		Username:  r.FormValue("username"),
		Email:     r.FormValue("email"),
		Password:  r.FormValue("password"),
		Roles:     []types.Role{role},
	}
	if _, err := s.state.Register(r.Context(), reg); err != nil {
		s.render(w, "register.html", authPageData{Error: s.state.Snapshot().Error})
		return
	}
	// Registration does not authenticate; the new account signs in.
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.state.Logout(); err != nil {
		slog.Warn("logout failed", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type pageData struct {
	User      *types.User
	Error     string
	CanManage bool
}

func (s *Server) newPageData() pageData {
	snap := s.state.Snapshot()
	return pageData{
		User:      snap.User,
		Error:     snap.Error,
		CanManage: authz.Check(snap, manageCapability) == authz.Allow,
	}
}

type dashboardData struct {
	pageData
	Classrooms []types.Classroom
	Courses    []types.Course
	Tasks      []types.Task
}

// dashboard renders the role-branched overview. The three sections are
// fetched concurrently; the page shares the fate of the slowest call.
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	data := dashboardData{pageData: s.newPageData()}
	user := *data.User

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		data.Classrooms, err = s.classroomsFor(ctx, user)
		return err
	})
	g.Go(func() error {
		var err error
		data.Courses, err = s.coursesFor(ctx, user)
		return err
	})
	g.Go(func() error {
		var err error
		data.Tasks, err = s.tasksFor(ctx, user)
		return err
	})
	if err := g.Wait(); err != nil {
		s.renderFetchError(w, r, err)
		return
	}

	s.render(w, "dashboard.html", data)
}

type classroomsData struct {
	pageData
	Classrooms []types.Classroom
}

func (s *Server) classroomsPage(w http.ResponseWriter, r *http.Request) {
	data := classroomsData{pageData: s.newPageData()}

	list, err := s.classroomsFor(r.Context(), *data.User)
	if err != nil {
		s.renderFetchError(w, r, err)
		return
	}
	data.Classrooms = list
	s.render(w, "classrooms.html", data)
}

func (s *Server) createClassroom(w http.ResponseWriter, r *http.Request) {
	if !s.allowManage(w) {
		return
	}
	_, err := s.classrooms.Create(r.Context(), types.CreateClassroom{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	})
	if err != nil {
		s.renderFetchError(w, r, err)
		return
	}
	http.Redirect(w, r, "/classrooms", http.StatusSeeOther)
}

type coursesData struct {
	pageData
	Courses []types.Course
}

func (s *Server) coursesPage(w http.ResponseWriter, r *http.Request) {
	data := coursesData{pageData: s.newPageData()}

	list, err := s.coursesFor(r.Context(), *data.User)
	if err != nil {
		s.renderFetchError(w, r, err)
		return
	}
	data.Courses = list
	s.render(w, "courses.html", data)
}

func (s *Server) createCourse(w http.ResponseWriter, r *http.Request) {
	if !s.allowManage(w) {
		return
	}
	_, err := s.courses.Create(r.Context(), types.CreateCourse{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	})
	if err != nil {
		s.renderFetchError(w, r, err)
		return
	}
	http.Redirect(w, r, "/courses", http.StatusSeeOther)
}

type tasksData struct {
	pageData
	Tasks []types.Task
}

func (s *Server) tasksPage(w http.ResponseWriter, r *http.Request) {
	data := tasksData{pageData: s.newPageData()}

	list, err := s.tasksFor(r.Context(), *data.User)
	if err != nil {
		s.renderFetchError(w, r, err)
		return
	}
	data.Tasks = list
	s.render(w, "tasks.html", data)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	if !s.allowManage(w) {
		return
	}
	courseID, err := strconv.Atoi(r.FormValue("courseId"))
	if err != nil {
		http.Error(w, "invalid course id", http.StatusBadRequest)
		return
	}
	dueDate, err := time.Parse("2006-01-02", r.FormValue("dueDate"))
	if err != nil {
		http.Error(w, "invalid due date", http.StatusBadRequest)
		return
	}
	_, err = s.tasks.Create(r.Context(), types.CreateTask{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		DueDate:     types.NewDateTime(dueDate),
		CourseID:    courseID,
	})
	if err != nil {
		s.renderFetchError(w, r, err)
		return
	}
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

type profileData struct {
	pageData
	Saved bool
}

func (s *Server) profilePage(w http.ResponseWriter, r *http.Request) {
	data := profileData{pageData: s.newPageData()}
	data.Saved = r.URL.Query().Get("saved") == "1"
	s.render(w, "profile.html", data)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	user := s.state.Snapshot().User
	upd := types.ProfileUpdate{
		FirstName:        r.FormValue("firstName"),
		LastName:         r.FormValue("lastName"),
		Email:            r.FormValue("email"),
		CurrentInstitute: r.FormValue("currentInstitute"),
		Country:          r.FormValue("country"),
		CurrentPassword:  r.FormValue("currentPassword"),
		NewPassword:      r.FormValue("newPassword"),
	}
	if _, err := s.svc.UpdateProfile(r.Context(), user.ID, upd); err != nil {
		s.renderFetchError(w, r, err)
		return
	}
	// Re-read the profile so the session reflects the saved fields.
	if err := s.state.FetchCurrentUser(r.Context()); err != nil {
		s.renderFetchError(w, r, err)
		return
	}
	http.Redirect(w, r, "/profile?saved=1", http.StatusSeeOther)
}

func (s *Server) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	user := s.state.Snapshot().User

	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "missing photo", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if _, err := s.svc.UploadPhoto(r.Context(), user.ID, header.Filename, file); err != nil {
		s.renderFetchError(w, r, err)
		return
	}
	if err := s.state.FetchCurrentUser(r.Context()); err != nil {
		s.renderFetchError(w, r, err)
		return
	}
	http.Redirect(w, r, "/profile?saved=1", http.StatusSeeOther)
}

// classroomsFor applies the role branching every list screen shares:
// admins see everything, teachers their own classrooms, students the
// classrooms they belong to.
func (s *Server) classroomsFor(ctx context.Context, user types.User) ([]types.Classroom, error) {
	switch {
	case user.HasRole(types.RoleAdmin):
		return s.classrooms.List(ctx)
	case user.HasRole(types.RoleTeacher):
		return s.classrooms.ByTeacher(ctx, user.ID)
	default:
		return s.classrooms.ByStudent(ctx, user.ID)
	}
}

func (s *Server) coursesFor(ctx context.Context, user types.User) ([]types.Course, error) {
	switch {
	case user.HasRole(types.RoleAdmin):
		return s.courses.List(ctx)
	case user.HasRole(types.RoleTeacher):
		return s.courses.ByAuthor(ctx, user.ID)
	default:
		// Students see the courses attached to their classrooms.
		classrooms, err := s.classrooms.ByStudent(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		seen := map[int]bool{}
		var ids []int
		for _, c := range classrooms {
			for _, id := range c.Courses {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
		if len(ids) == 0 {
			return nil, nil
		}
		return s.courses.ByIDs(ctx, ids)
	}
}

func (s *Server) tasksFor(ctx context.Context, user types.User) ([]types.Task, error) {
	switch {
	case user.HasRole(types.RoleAdmin):
		return s.tasks.List(ctx)
	case user.HasRole(types.RoleTeacher):
		return s.tasks.ByTeacher(ctx, user.ID)
	default:
		return s.tasks.ByStatus(ctx, types.TaskOpen)
	}
}

// allowManage enforces the teacher-or-admin capability on mutating
// endpoints. The forms are already hidden from other roles; a direct
// POST gets a plain 403.
func (s *Server) allowManage(w http.ResponseWriter) bool {
	if authz.Check(s.state.Snapshot(), manageCapability) != authz.Allow {
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}

// renderFetchError is reached for API failures on signed-in pages. A
// 401 has already torn the session down via the transport, so the gate
// redirect takes over; anything else renders the recorded message.
func (s *Server) renderFetchError(w http.ResponseWriter, r *http.Request, err error) {
	snap := s.state.Snapshot()
	if !snap.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	slog.Warn("api call failed", "error", err)
	s.render(w, "error.html", pageData{User: snap.User, Error: err.Error()})
}
