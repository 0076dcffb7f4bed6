package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/openclassroom/client/types"
)

// TaskService wraps the /v1/private/task namespace, including task
// submissions.
type TaskService struct {
	c *Client
}

func NewTaskService(c *Client) *TaskService {
	return &TaskService{c: c}
}

// List returns every task. Admin only on the server side.
func (s *TaskService) List(ctx context.Context) ([]types.Task, error) {
	var out []types.Task
	err := s.c.Get(ctx, "/v1/private/task", &out)
	return out, err
}

func (s *TaskService) Get(ctx context.Context, id int) (types.Task, error) {
	var out types.Task
	err := s.c.Get(ctx, fmt.Sprintf("/v1/private/task/%d", id), &out)
	return out, err
}

func (s *TaskService) ByTeacher(ctx context.Context, teacherID int) ([]types.Task, error) {
	var out []types.Task
	err := s.c.Get(ctx, fmt.Sprintf("/v1/private/task/teacher/%d", teacherID), &out)
	return out, err
}

func (s *TaskService) ByCourse(ctx context.Context, courseID int) ([]types.Task, error) {
	var out []types.Task
	err := s.c.Get(ctx, fmt.Sprintf("/v1/private/task/course/%d", courseID), &out)
	return out, err
}

func (s *TaskService) ByStatus(ctx context.Context, status types.TaskStatus) ([]types.Task, error) {
	q := url.Values{"status": {string(status)}}
	var out []types.Task
	err := s.c.Get(ctx, "/v1/private/task?"+q.Encode(), &out)
	return out, err
}

func (s *TaskService) Create(ctx context.Context, in types.CreateTask) (types.Task, error) {
	var out types.Task
	err := s.c.Post(ctx, "/v1/private/task", in, &out)
	return out, err
}

func (s *TaskService) Update(ctx context.Context, in types.UpdateTask) (types.Task, error) {
	var out types.Task
	err := s.c.Put(ctx, fmt.Sprintf("/v1/private/task/%d", in.ID), in, &out)
	return out, err
}

func (s *TaskService) Delete(ctx context.Context, id int) error {
	return s.c.Delete(ctx, fmt.Sprintf("/v1/private/task/%d", id), nil)
}

// Submissions returns every submission for a task.
func (s *TaskService) Submissions(ctx context.Context, taskID int) ([]types.TaskSubmission, error) {
	var out []types.TaskSubmission
	err := s.c.Get(ctx, fmt.Sprintf("/v1/private/task/%d/submissions", taskID), &out)
	return out, err
}

func (s *TaskService) Submission(ctx context.Context, submissionID int) (types.TaskSubmission, error) {
	var out types.TaskSubmission
	err := s.c.Get(ctx, fmt.Sprintf("/v1/private/task/submission/%d", submissionID), &out)
	return out, err
}

func (s *TaskService) Submit(ctx context.Context, in types.CreateSubmission) (types.TaskSubmission, error) {
	var out types.TaskSubmission
	err := s.c.Post(ctx, "/v1/private/task/submission", in, &out)
	return out, err
}

func (s *TaskService) Grade(ctx context.Context, in types.GradeSubmission) (types.TaskSubmission, error) {
	var out types.TaskSubmission
	err := s.c.Put(ctx, fmt.Sprintf("/v1/private/task/submission/%d/grade", in.SubmissionID), in, &out)
	return out, err
}

// SubmissionsByStudent returns every submission made by a student.
func (s *TaskService) SubmissionsByStudent(ctx context.Context, studentID int) ([]types.TaskSubmission, error) {
	var out []types.TaskSubmission
	err := s.c.Get(ctx, fmt.Sprintf("/v1/private/task/submissions/student/%d", studentID), &out)
	return out, err
}
