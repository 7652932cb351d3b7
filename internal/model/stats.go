package model

// UserStats counts users by role.
type UserStats struct {
	Total    int `json:"total"`
	Admins   int `json:"admins"`
	Doctors  int `json:"doctors"`
	Students int `json:"students"`
}

// ExamStats counts exams by status.
type ExamStats struct {
	Total     int `json:"total"`
	Draft     int `json:"draft"`
	Published int `json:"published"`
	Archived  int `json:"archived"`
}

// CourseEnrollment is one row of the top-enrollment report.
type CourseEnrollment struct {
	CourseID     string `json:"course_id"`
	CourseName   string `json:"course_name"`
	CourseCode   string `json:"course_code"`
	StudentCount int    `json:"student_count"`
}

// DashboardStats is the admin dashboard aggregate.
type DashboardStats struct {
	Users          UserStats          `json:"users"`
	Courses        int                `json:"courses"`
	Majors         int                `json:"majors"`
	Exams          ExamStats          `json:"exams"`
	RecentExams    []Exam             `json:"recent_exams"`
	TopEnrollments []CourseEnrollment `json:"top_enrollments"`
}
