package app

import (
	"gorm.io/gorm"

	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/repos"
)

type Repos struct {
	User          repos.UserRepo
	UserToken     repos.UserTokenRepo
	Category      repos.CategoryRepo
	Course        repos.CourseRepo
	CourseContent repos.CourseContentRepo
	CourseSkill   repos.CourseSkillRepo
	TargetLearner repos.TargetLearnerRepo
	Enrollment    repos.EnrollmentRepo
	Cart          repos.CartRepo
	History       repos.HistoryRepo
	Notification  repos.NotificationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("wiring repos")
	return Repos{
		User:          repos.NewUserRepo(db, log),
		UserToken:     repos.NewUserTokenRepo(db, log),
		Category:      repos.NewCategoryRepo(db, log),
		Course:        repos.NewCourseRepo(db, log),
		CourseContent: repos.NewCourseContentRepo(db, log),
		CourseSkill:   repos.NewCourseSkillRepo(db, log),
		TargetLearner: repos.NewTargetLearnerRepo(db, log),
		Enrollment:    repos.NewEnrollmentRepo(db, log),
		Cart:          repos.NewCartRepo(db, log),
		History:       repos.NewHistoryRepo(db, log),
		Notification:  repos.NewNotificationRepo(db, log),
	}
}
