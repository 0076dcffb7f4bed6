package types

// CourseStatus is the lifecycle state of a course.
type CourseStatus string

const (
	CourseOpen   CourseStatus = "OPEN"
	CourseClosed CourseStatus = "CLOSED"
)

// Course is a unit of teaching material authored by a teacher.
type Course struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	AuthorID    int          `json:"authorId"`
	Status      CourseStatus `json:"status"`
	CreatedAt   DateTime     `json:"createdAt"`
	UpdatedAt   DateTime     `json:"updatedAt"`
}

// CreateCourse is the payload for creating a course.
type CreateCourse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateCourse is the payload for updating a course.
type UpdateCourse struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      CourseStatus `json:"status"`
}
