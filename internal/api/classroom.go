package api

import (
	"context"
	"fmt"

	"github.com/openclassroom/client/types"
)

// ClassroomService wraps the /v1/private/classroom namespace.
type ClassroomService struct {
	c *Client
}

func NewClassroomService(c *Client) *ClassroomService {
	return &ClassroomService{c: c}
}

// List returns every classroom. Admin only on the server side.
func (s *ClassroomService) List(ctx context.Context) ([]types.Classroom, error) {
	var out []types.Classroom
	err := s.c.Get(ctx, "/v1/private/classroom", &out)
	return out, err
}

func (s *ClassroomService) Get(ctx context.Context, id int) (types.Classroom, error) {
	var out types.Classroom
	err := s.c.Get(ctx, fmt.Sprintf("/v1/private/classroom/%d", id), &out)
	return out, err
}

func (s *ClassroomService) ByTeacher(ctx context.Context, teacherID int) ([]types.Classroom, error) {
	var out []types.Classroom
	err := s.c.Get(ctx, fmt.Sprintf("/v1/private/classroom/by-teacher/%d", teacherID), &out)
	return out, err
}

func (s *ClassroomService) ByStudent(ctx context.Context, studentID int) ([]types.Classroom, error) {
	var out []types.Classroom
	err := s.c.Get(ctx, fmt.Sprintf("/v1/private/classroom/by-student/%d", studentID), &out)
	return out, err
}

func (s *ClassroomService) Create(ctx context.Context, in types.CreateClassroom) (types.Classroom, error) {
	var out types.Classroom
	err := s.c.Post(ctx, "/v1/private/classroom", in, &out)
	return out, err
}

func (s *ClassroomService) Update(ctx context.Context, in types.UpdateClassroom) (types.Classroom, error) {
	var out types.Classroom
	err := s.c.Put(ctx, fmt.Sprintf("/v1/private/classroom/%d", in.ID), in, &out)
	return out, err
}

func (s *ClassroomService) Delete(ctx context.Context, id int) error {
	return s.c.Delete(ctx, fmt.Sprintf("/v1/private/classroom/%d", id), nil)
}

func (s *ClassroomService) AddStudent(ctx context.Context, classroomID, studentID int) (types.Classroom, error) {
	var out types.Classroom
	err := s.c.Put(ctx, fmt.Sprintf("/v1/private/classroom/%d/add-student/%d", classroomID, studentID), nil, &out)
	return out, err
}

func (s *ClassroomService) RemoveStudent(ctx context.Context, classroomID, studentID int) (types.Classroom, error) {
	var out types.Classroom
	err := s.c.Delete(ctx, fmt.Sprintf("/v1/private/classroom/%d/remove-student/%d", classroomID, studentID), &out)
	return out, err
}

func (s *ClassroomService) AddCourse(ctx context.Context, classroomID, courseID int) (types.Classroom, error) {
	var out types.Classroom
	err := s.c.Put(ctx, fmt.Sprintf("/v1/private/classroom/%d/add-course/%d", classroomID, courseID), nil, &out)
	return out, err
}

func (s *ClassroomService) RemoveCourse(ctx context.Context, classroomID, courseID int) (types.Classroom, error) {
	var out types.Classroom
	err := s.c.Delete(ctx, fmt.Sprintf("/v1/private/classroom/%d/remove-course/%d", classroomID, courseID), &out)
	return out, err
}

// Courses returns the courses attached to a classroom.
func (s *ClassroomService) Courses(ctx context.Context, classroomID int) ([]types.Course, error) {
	var out []types.Course
	err := s.c.Get(ctx, fmt.Sprintf("/v1/private/classroom/%d/courses", classroomID), &out)
	return out, err
}
