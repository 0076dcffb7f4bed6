package types

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskOpen   TaskStatus = "OPEN"
	TaskClosed TaskStatus = "CLOSED"
	TaskDone   TaskStatus = "DONE"
)

// SubmissionStatus is the grading state of a task submission.
type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "SUBMITTED"
	SubmissionGraded    SubmissionStatus = "GRADED"
)

// Task is an assignment attached to a course.
type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     DateTime   `json:"dueDate"`
	Status      TaskStatus `json:"status"`
	CourseID    int        `json:"courseId"`
	TeacherID   int        `json:"teacherId"`
	CreatedAt   DateTime   `json:"createdAt"`
	UpdatedAt   DateTime   `json:"updatedAt"`
}

// CreateTask is the payload for creating a task.
type CreateTask struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     DateTime `json:"dueDate"`
	CourseID    int      `json:"courseId"`
}

// UpdateTask is the payload for updating a task.
type UpdateTask struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     DateTime   `json:"dueDate"`
	Status      TaskStatus `json:"status"`
}

// TaskSubmission is a student's answer to a task.
type TaskSubmission struct {
	ID          int              `json:"id"`
	TaskID      int              `json:"taskId"`
	StudentID   int              `json:"studentId"`
	Content     string           `json:"content"`
	Status      SubmissionStatus `json:"status"`
	Grade       *int             `json:"grade,omitempty"`
	Feedback    string           `json:"feedback,omitempty"`
	SubmittedAt DateTime         `json:"submittedAt"`
	GradedAt    *DateTime        `json:"gradedAt,omitempty"`
}

// CreateSubmission is the payload for submitting an answer to a task.
type CreateSubmission struct {
	TaskID  int    `json:"taskId"`
	Content string `json:"content"`
}

// GradeSubmission is the payload for grading a submission.
type GradeSubmission struct {
	SubmissionID int    `json:"submissionId"`
	Grade        int    `json:"grade"`
	Feedback     string `json:"feedback"`
}
