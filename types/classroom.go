package types

// Classroom groups students and courses under a single teacher.
type Classroom struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TeacherID   int      `json:"teacherId"`
	Students    []int    `json:"students"`
	Courses     []int    `json:"courses"`
	CreatedAt   DateTime `json:"createdAt"`
	UpdatedAt   DateTime `json:"updatedAt"`
}

// CreateClassroom is the payload for creating a classroom.
type CreateClassroom struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateClassroom is the payload for updating a classroom.
type UpdateClassroom struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
