package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/openclassroom/client/types"
)

// CourseService wraps the /v1/private/course namespace.
type CourseService struct {
	c *Client
}

func NewCourseService(c *Client) *CourseService {
	return &CourseService{c: c}
}

// List returns every course. Admin only on the server side.
func (s *CourseService) List(ctx context.Context) ([]types.Course, error) {
	var out []types.Course
	err := s.c.Get(ctx, "/v1/private/course", &out)
	return out, err
}

func (s *CourseService) Get(ctx context.Context, id int) (types.Course, error) {
	var out types.Course
	err := s.c.Get(ctx, fmt.Sprintf("/v1/private/course/%d", id), &out)
	return out, err
}

func (s *CourseService) ByAuthor(ctx context.Context, authorID int) ([]types.Course, error) {
	var out []types.Course
	err := s.c.Get(ctx, fmt.Sprintf("/v1/private/course/author/%d", authorID), &out)
	return out, err
}

// ByIDs returns the courses whose IDs are listed, in one call.
func (s *CourseService) ByIDs(ctx context.Context, ids []int) ([]types.Course, error) {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	q := url.Values{"courseIds": {strings.Join(parts, ",")}}

	var out []types.Course
	err := s.c.Get(ctx, "/v1/private/course/by-ids?"+q.Encode(), &out)
	return out, err
}

func (s *CourseService) Create(ctx context.Context, in types.CreateCourse) (types.Course, error) {
	var out types.Course
	err := s.c.Post(ctx, "/v1/private/course", in, &out)
	return out, err
}

func (s *CourseService) Update(ctx context.Context, in types.UpdateCourse) (types.Course, error) {
	var out types.Course
	err := s.c.Put(ctx, fmt.Sprintf("/v1/private/course/%d", in.ID), in, &out)
	return out, err
}

func (s *CourseService) Delete(ctx context.Context, id int) error {
	return s.c.Delete(ctx, fmt.Sprintf("/v1/private/course/%d", id), nil)
}

func (s *CourseService) AddTask(ctx context.Context, courseID, taskID int) (types.Course, error) {
	var out types.Course
	err := s.c.Put(ctx, fmt.Sprintf("/v1/private/course/%d/add-task/%d", courseID, taskID), nil, &out)
	return out, err
}

func (s *CourseService) RemoveTask(ctx context.Context, courseID, taskID int) (types.Course, error) {
	var out types.Course
	err := s.c.Put(ctx, fmt.Sprintf("/v1/private/course/%d/remove-task/%d", courseID, taskID), nil, &out)
	return out, err
}

// Tasks returns the tasks attached to a course.
func (s *CourseService) Tasks(ctx context.Context, courseID int) ([]types.Task, error) {
	var out []types.Task
	err := s.c.Get(ctx, fmt.Sprintf("/v1/private/course/%d/tasks", courseID), &out)
	return out, err
}
