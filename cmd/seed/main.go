package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/acadex/acadex-backend/internal/config"
	"github.com/acadex/acadex-backend/internal/database"
	"github.com/acadex/acadex-backend/internal/logger"
	"github.com/acadex/acadex-backend/internal/model"
	"github.com/acadex/acadex-backend/internal/repository"
)

// Seeds a small demo dataset: two majors, a doctor, a batch of students, a
// course with enrollments, and a published exam with a few questions.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	majorRepo := repository.NewMajorRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	examRepo := repository.NewExamRepository(pool)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash seed password")
	}

	fmt.Println("=== Seeding demo data ===")

	cs := &model.Major{Name: "Computer Science"}
	if err := majorRepo.Create(ctx, cs); err != nil {
		log.Fatal().Err(err).Msg("Failed to create major")
	}
	math := &model.Major{Name: "Mathematics"}
	if err := majorRepo.Create(ctx, math); err != nil {
		log.Fatal().Err(err).Msg("Failed to create major")
	}

	doctor := &model.User{
		Name:         "Dr. Lina Haddad",
		Email:        "lina.haddad@acadex.edu",
		Gender:       model.GenderFemale,
		Role:         model.RoleDoctor,
		PasswordHash: string(hash),
		Profile:      model.DoctorProfile{MajorID: cs.ID, Specialization: "Databases"},
	}
	if err := userRepo.CreateWithProfile(ctx, doctor); err != nil {
		log.Fatal().Err(err).Msg("Failed to create doctor")
	}

	names := []string{
		"Omar Khalil", "Sara Mansour", "Tariq Aziz", "Nour Fares", "Hadi Salameh",
		"Lana Owais", "Yousef Hamdan", "Dina Qasem", "Rami Shaheen", "Maya Haddad",
	}
	students := make([]*model.User, 0, len(names))
	for i, name := range names {
		gender := model.GenderMale
		if i%2 == 1 {
			gender = model.GenderFemale
		}
		student := &model.User{
			Name:         name,
			Email:        fmt.Sprintf("student%02d@acadex.edu", i+1),
			Gender:       gender,
			Role:         model.RoleStudent,
			PasswordHash: string(hash),
			Profile:      model.StudentProfile{MajorID: cs.ID},
		}
		if err := userRepo.CreateWithProfile(ctx, student); err != nil {
			log.Fatal().Err(err).Str("email", student.Email).Msg("Failed to create student")
		}
		students = append(students, student)
	}
	fmt.Printf("Created %d students\n", len(students))

	course := &model.Course{Name: "Database Systems", Code: "CS301", Description: "Relational design, SQL, transactions"}
	if err := courseRepo.CreateWithMajors(ctx, course, []uuid.UUID{cs.ID, math.ID}); err != nil {
		log.Fatal().Err(err).Msg("Failed to create course")
	}

	if _, err := courseRepo.AttachDoctor(ctx, doctor.ID, course.ID); err != nil {
		log.Fatal().Err(err).Msg("Failed to assign doctor")
	}
	for _, s := range students {
		if _, err := courseRepo.AttachStudent(ctx, s.ID, course.ID); err != nil {
			log.Fatal().Err(err).Msg("Failed to enroll student")
		}
	}

	mcq := &model.Question{
		Text:       "Which SQL clause filters grouped rows?",
		Type:       model.QuestionTypeMCQ,
		Chapter:    "SQL Basics",
		Difficulty: model.DifficultyEasy,
		CreatedBy:  doctor.ID,
	}
	if err := questionRepo.Create(ctx, mcq); err != nil {
		log.Fatal().Err(err).Msg("Failed to create question")
	}
	for i, opt := range []struct {
		text    string
		correct bool
	}{
		{"WHERE", false},
		{"HAVING", true},
		{"GROUP BY", false},
		{"ORDER BY", false},
	} {
		choice := &model.Choice{QuestionID: mcq.ID, Text: opt.text, IsCorrect: opt.correct}
		if err := questionRepo.CreateChoice(ctx, choice); err != nil {
			log.Fatal().Err(err).Int("choice", i).Msg("Failed to create choice")
		}
	}

	written := &model.Question{
		Text:       "Explain the difference between a clustered and a non-clustered index.",
		Type:       model.QuestionTypeWritten,
		Chapter:    "Indexing",
		Difficulty: model.DifficultyMedium,
		Rubric:     "Full marks for storage layout, lookup path, and one tradeoff.",
		CreatedBy:  doctor.ID,
	}
	if err := questionRepo.Create(ctx, written); err != nil {
		log.Fatal().Err(err).Msg("Failed to create question")
	}

	exam := &model.Exam{
		CourseID:        course.ID,
		Name:            "Midterm",
		ExamDate:        time.Now().Add(24 * time.Hour),
		DurationMinutes: 90,
		Instructions:    "Answer all questions. No external material.",
		Status:          model.ExamStatusPublished,
		CreatedBy:       doctor.ID,
	}
	if err := examRepo.Create(ctx, exam); err != nil {
		log.Fatal().Err(err).Msg("Failed to create exam")
	}
	if _, err := examRepo.AttachQuestion(ctx, &model.ExamQuestion{ExamID: exam.ID, QuestionID: mcq.ID, Weight: 40}); err != nil {
		log.Fatal().Err(err).Msg("Failed to attach question")
	}
	if _, err := examRepo.AttachQuestion(ctx, &model.ExamQuestion{ExamID: exam.ID, QuestionID: written.ID, Weight: 60}); err != nil {
		log.Fatal().Err(err).Msg("Failed to attach question")
	}

	fmt.Println("\nSeed completed!")
	fmt.Println("Doctor login:   lina.haddad@acadex.edu / password123")
	fmt.Println("Student logins: student01..10@acadex.edu / password123")
}
