package cmd

import (
	"fmt"

	"github.com/openclassroom/client/internal/api"
	"github.com/openclassroom/client/types"
	"github.com/spf13/cobra"
)

// The list commands mirror the dashboard's role branching: admins see
// everything, teachers what they own, students what they belong to.

var classroomsCmd = &cobra.Command{
	Use:   "classrooms",
	Short: "List your classrooms",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, user, err := signedInApp(cmd)
		if err != nil {
			return err
		}
		classrooms := api.NewClassroomService(app.client)

		var list []types.Classroom
		switch {
		case user.HasRole(types.RoleAdmin):
			list, err = classrooms.List(cmd.Context())
		case user.HasRole(types.RoleTeacher):
			list, err = classrooms.ByTeacher(cmd.Context(), user.ID)
		default:
			list, err = classrooms.ByStudent(cmd.Context(), user.ID)
		}
		if err != nil {
			return err
		}

		for _, c := range list {
			fmt.Printf("%d\t%s\t%d students, %d courses\n", c.ID, c.Name, len(c.Students), len(c.Courses))
		}
		return nil
	},
}

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List your courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, user, err := signedInApp(cmd)
		if err != nil {
			return err
		}
		courses := api.NewCourseService(app.client)

		var list []types.Course
		switch {
		case user.HasRole(types.RoleAdmin):
			list, err = courses.List(cmd.Context())
		case user.HasRole(types.RoleTeacher):
			list, err = courses.ByAuthor(cmd.Context(), user.ID)
		default:
			list, err = studentCourses(cmd, app, user)
		}
		if err != nil {
			return err
		}

		for _, c := range list {
			fmt.Printf("%d\t%s\t%s\n", c.ID, c.Title, c.Status)
		}
		return nil
	},
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List your tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, user, err := signedInApp(cmd)
		if err != nil {
			return err
		}
		tasks := api.NewTaskService(app.client)

		var list []types.Task
		switch {
		case user.HasRole(types.RoleAdmin):
			list, err = tasks.List(cmd.Context())
		case user.HasRole(types.RoleTeacher):
			list, err = tasks.ByTeacher(cmd.Context(), user.ID)
		default:
			list, err = tasks.ByStatus(cmd.Context(), types.TaskOpen)
		}
		if err != nil {
			return err
		}

		for _, t := range list {
			fmt.Printf("%d\t%s\tdue %s\t%s\n", t.ID, t.Title, t.DueDate.Format("2006-01-02"), t.Status)
		}
		return nil
	},
}

// signedInApp builds the client stack and requires a live session.
func signedInApp(cmd *cobra.Command) (*app, *types.User, error) {
	app, err := newApp()
	if err != nil {
		return nil, nil, err
	}
	if err := app.state.Hydrate(cmd.Context()); err != nil {
		return nil, nil, fmt.Errorf("%s", app.state.Snapshot().Error)
	}
	snap := app.state.Snapshot()
	if !snap.Authenticated() {
		return nil, nil, errNotSignedIn
	}
	return app, snap.User, nil
}

func studentCourses(cmd *cobra.Command, app *app, user *types.User) ([]types.Course, error) {
	classrooms, err := api.NewClassroomService(app.client).ByStudent(cmd.Context(), user.ID)
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
	return api.NewCourseService(app.client).ByIDs(cmd.Context(), ids)
}

func init() {
	rootCmd.AddCommand(classroomsCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(tasksCmd)
}
