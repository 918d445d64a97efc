package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursebay/coursebay-backend/internal/apperr"
	"github.com/coursebay/coursebay-backend/internal/dto"
	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/repos"
	"github.com/coursebay/coursebay-backend/internal/requestdata"
	"github.com/coursebay/coursebay-backend/internal/types"
)

// CourseService owns the catalog: listing with visibility rules, the course
// lifecycle, child entities, and study-link gating. Caller identity always
// arrives as explicit parameters, never out of ambient state.
type CourseService interface {
	ListCourses(ctx context.Context, q dto.CourseQuery, caller *requestdata.RequestData) (*dto.PagedResult[dto.CourseListItem], error)
	GetCourseByID(ctx context.Context, courseID uuid.UUID, caller *requestdata.RequestData) (*dto.CourseDetail, error)
	CreateCourse(ctx context.Context, sellerID uuid.UUID, input dto.CreateCourseInput) (*dto.CourseDetail, error)
	UpdateCourse(ctx context.Context, courseID, sellerID uuid.UUID, input dto.UpdateCourseInput) (*dto.CourseDetail, error)
	DeleteCourse(ctx context.Context, courseID, userID uuid.UUID) error
	ApproveCourse(ctx context.Context, courseID uuid.UUID) error
	ToggleRestriction(ctx context.Context, courseID uuid.UUID) error

	AddCourseContent(ctx context.Context, courseID, sellerID uuid.UUID, input dto.CourseContentInput) (*dto.CourseContentItem, error)
	DeleteCourseContent(ctx context.Context, courseID, contentID, sellerID uuid.UUID) error
	AddCourseSkill(ctx context.Context, courseID, sellerID uuid.UUID, input dto.SkillTargetInput) (*dto.SkillTargetItem, error)
	DeleteCourseSkill(ctx context.Context, courseID, skillID, sellerID uuid.UUID) error
	AddTargetLearner(ctx context.Context, courseID, sellerID uuid.UUID, input dto.SkillTargetInput) (*dto.SkillTargetItem, error)
	DeleteTargetLearner(ctx context.Context, courseID, learnerID, sellerID uuid.UUID) error

	GetStudyLink(ctx context.Context, courseID uuid.UUID, caller *requestdata.RequestData) (string, error)
	UpdateStudyLink(ctx context.Context, courseID, sellerID uuid.UUID, newURL *string) error

	ListBySeller(ctx context.Context, sellerID uuid.UUID, page, pageSize int) (*dto.PagedResult[dto.CourseListItem], error)
	ListPurchased(ctx context.Context, buyerID uuid.UUID, q dto.CourseQuery) (*dto.PagedResult[dto.CourseListItem], error)
}

type courseService struct {
	db             *gorm.DB
	log            *logger.Logger
	courseRepo     repos.CourseRepo
	contentRepo    repos.CourseContentRepo
	skillRepo      repos.CourseSkillRepo
	learnerRepo    repos.TargetLearnerRepo
	userRepo       repos.UserRepo
	enrollmentRepo repos.EnrollmentRepo
	historyRepo    repos.HistoryRepo
	images         ImageService
	notifications  NotificationService
}

func NewCourseService(
	db *gorm.DB,
	log *logger.Logger,
	courseRepo repos.CourseRepo,
	contentRepo repos.CourseContentRepo,
	skillRepo repos.CourseSkillRepo,
	learnerRepo repos.TargetLearnerRepo,
	userRepo repos.UserRepo,
	enrollmentRepo repos.EnrollmentRepo,
	historyRepo repos.HistoryRepo,
	images ImageService,
	notifications NotificationService,
) CourseService {
	return &courseService{
		db:             db,
		log:            log.With("service", "CourseService"),
		courseRepo:     courseRepo,
		contentRepo:    contentRepo,
		skillRepo:      skillRepo,
		learnerRepo:    learnerRepo,
		userRepo:       userRepo,
		enrollmentRepo: enrollmentRepo,
		historyRepo:    historyRepo,
		images:         images,
		notifications:  notifications,
	}
}

func (cs *courseService) ListCourses(ctx context.Context, q dto.CourseQuery, caller *requestdata.RequestData) (*dto.PagedResult[dto.CourseListItem], error) {
	if q.IncludeUnapproved || q.IncludeRestricted {
		// Hidden inventory is staff-only; buyers and anonymous callers cannot
		// opt into it.
		if caller == nil || (caller.Role != types.RoleAdmin && caller.Role != types.RoleSeller) {
			return nil, apperr.BadRequest("include_unapproved and include_restricted require a seller or admin account")
		}
	}
	q.Normalize()
	courses, total, err := cs.courseRepo.List(ctx, nil, q)
	if err != nil {
		return nil, apperr.Internal("failed to list courses", err)
	}
	items := make([]dto.CourseListItem, 0, len(courses))
	for _, c := range courses {
		items = append(items, dto.NewCourseListItem(c))
	}
	return &dto.PagedResult[dto.CourseListItem]{
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalCount: total,
		Items:      items,
	}, nil
}

func (cs *courseService) GetCourseByID(ctx context.Context, courseID uuid.UUID, caller *requestdata.RequestData) (*dto.CourseDetail, error) {
	course, err := cs.courseRepo.GetDetailByID(ctx, nil, courseID)
	if err != nil {
		return nil, apperr.Internal("failed to load course", err)
	}
	if course == nil {
		return nil, apperr.NotFound("course not found")
	}

	viewer := cs.resolveViewer(ctx, caller)
	if course.IsRestricted || !course.IsApproved {
		// Hidden courses are visible to the owning seller and admins only.
		if viewer == nil || (viewer.Role != types.RoleAdmin && viewer.ID != course.SellerID) {
			return nil, apperr.NotFound("course not found")
		}
	}

	detail := dto.NewCourseDetail(course)
	if viewer != nil && cs.canSeeLecture(ctx, course, viewer) {
		if course.CourseLecture != nil && *course.CourseLecture != "" {
			detail.CourseLecture = *course.CourseLecture
		} else {
			detail.CourseLecture = dto.NoLectureSentinel
		}
	}

	if viewer != nil {
		// View access never fails because the history side effect failed.
		if hErr := cs.recordView(ctx, viewer.ID, course.ID); hErr != nil {
			cs.log.Warn("failed to record course view", "error", hErr, "user_id", viewer.ID, "course_id", course.ID)
		}
	}
	return detail, nil
}

// resolveViewer maps the request identity onto a stored user; a token whose
// subject no longer exists counts as anonymous.
func (cs *courseService) resolveViewer(ctx context.Context, caller *requestdata.RequestData) *types.User {
	if caller == nil || caller.UserID == uuid.Nil {
		return nil
	}
	user, err := cs.userRepo.GetByID(ctx, nil, caller.UserID)
	if err != nil {
		cs.log.Warn("failed to resolve viewer", "error", err, "user_id", caller.UserID)
		return nil
	}
	return user
}

func (cs *courseService) canSeeLecture(ctx context.Context, course *types.Course, viewer *types.User) bool {
	if viewer.Role == types.RoleAdmin || viewer.ID == course.SellerID {
		return true
	}
	enrolled, err := cs.enrollmentRepo.Exists(ctx, nil, viewer.ID, course.ID)
	if err != nil {
		cs.log.Warn("failed to check enrollment", "error", err, "user_id", viewer.ID, "course_id", course.ID)
		return false
	}
	return enrolled
}

func (cs *courseService) recordView(ctx context.Context, userID, courseID uuid.UUID) error {
	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := cs.historyRepo.Get(ctx, tx, userID, courseID)
		if err != nil {
			return err
		}
		if existing == nil {
			return cs.historyRepo.Create(ctx, tx, &types.History{
				UserID:    userID,
				CourseID:  courseID,
				CreatedAt: time.Now(),
			})
		}
		existing.CreatedAt = time.Now()
		return cs.historyRepo.Touch(ctx, tx, existing)
	})
}

func (cs *courseService) CreateCourse(ctx context.Context, sellerID uuid.UUID, input dto.CreateCourseInput) (*dto.CourseDetail, error) {
	if input.Title == "" {
		return nil, apperr.BadRequest("title is required")
	}

	course := &types.Course{
		ID:            uuid.New(),
		Title:         input.Title,
		Price:         input.Price,
		Level:         input.Level,
		TeacherName:   input.TeacherName,
		DurationHours: input.DurationHours,
		CategoryID:    input.CategoryID,
		SellerID:      sellerID,
		CourseLecture: input.CourseLecture,
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	for _, c := range input.Contents {
		course.Contents = append(course.Contents, types.CourseContent{
			ID:          uuid.New(),
			CourseID:    course.ID,
			Title:       c.Title,
			Description: c.Description,
		})
	}
	for _, s := range input.Skills {
		course.Skills = append(course.Skills, types.CourseSkill{
			ID:       uuid.New(),
			CourseID: course.ID,
			Name:     s.Description,
		})
	}
	for _, t := range input.TargetLearners {
		course.TargetLearners = append(course.TargetLearners, types.TargetLearner{
			ID:          uuid.New(),
			CourseID:    course.ID,
			Description: t.Description,
		})
	}

	if input.Image != nil {
		url, upErr := cs.images.Upload(ctx, input.Image.Filename, input.Image.Reader)
		if upErr != nil {
			return nil, apperr.Internal("failed to upload course image", upErr)
		}
		course.ImageURL = url
	}

	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cErr := cs.courseRepo.Create(ctx, tx, course); cErr != nil {
			return cErr
		}
		return cs.notifications.NotifySeller(ctx, tx, sellerID,
			"Your course is pending approval",
			map[string]any{"course_id": course.ID, "title": course.Title})
	}); err != nil {
		// the upload happened outside the transaction; do not orphan it
		if course.ImageURL != "" {
			if delErr := cs.images.Delete(ctx, course.ImageURL); delErr != nil {
				cs.log.Warn("failed to delete image of unsaved course", "error", delErr, "image_url", course.ImageURL)
			}
		}
		return nil, apperr.Internal("failed to create course", err)
	}

	return cs.readDetail(ctx, course.ID)
}

func (cs *courseService) UpdateCourse(ctx context.Context, courseID, sellerID uuid.UUID, input dto.UpdateCourseInput) (*dto.CourseDetail, error) {
	course, err := cs.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, apperr.Internal("failed to load course", err)
	}
	if course == nil {
		return nil, apperr.NotFound("course not found")
	}
	if course.SellerID != sellerID {
		return nil, apperr.Unauthorized("only the owning seller may update this course")
	}

	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Description != nil {
		course.Description = *input.Description
	} else {
		course.Description = ""
	}
	if input.Price != nil {
		course.Price = *input.Price
	}
	if input.Level != nil {
		course.Level = *input.Level
	}
	if input.TeacherName != nil {
		course.TeacherName = *input.TeacherName
	}
	if input.DurationHours != nil {
		course.DurationHours = *input.DurationHours
	}
	if input.CategoryID != nil {
		course.CategoryID = *input.CategoryID
	}
	// Lecture is written through unconditionally, nil included.
	course.CourseLecture = input.CourseLecture

	if input.DeleteImage && course.ImageURL != "" {
		if dErr := cs.images.Delete(ctx, course.ImageURL); dErr != nil {
			cs.log.Warn("failed to delete course image", "error", dErr, "course_id", course.ID)
		}
		course.ImageURL = ""
	}
	if input.Image != nil {
		if course.ImageURL != "" {
			if dErr := cs.images.Delete(ctx, course.ImageURL); dErr != nil {
				cs.log.Warn("failed to delete replaced course image", "error", dErr, "course_id", course.ID)
			}
		}
		url, upErr := cs.images.Upload(ctx, input.Image.Filename, input.Image.Reader)
		if upErr != nil {
			return nil, apperr.Internal("failed to upload course image", upErr)
		}
		course.ImageURL = url
	}

	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if input.Contents != nil {
			rows := make([]types.CourseContent, 0, len(input.Contents))
			for _, c := range input.Contents {
				rows = append(rows, types.CourseContent{
					ID:          uuid.New(),
					CourseID:    course.ID,
					Title:       c.Title,
					Description: c.Description,
				})
			}
			if rErr := cs.contentRepo.ReplaceForCourse(ctx, tx, course.ID, rows); rErr != nil {
				return rErr
			}
		}
		return cs.courseRepo.Save(ctx, tx, course)
	}); err != nil {
		return nil, apperr.Internal("failed to update course", err)
	}

	return cs.readDetail(ctx, course.ID)
}

func (cs *courseService) DeleteCourse(ctx context.Context, courseID, userID uuid.UUID) error {
	course, err := cs.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return apperr.Internal("failed to load course", err)
	}
	if course == nil {
		return apperr.NotFound("course not found")
	}
	if course.SellerID != userID {
		return apperr.Unauthorized("only the owning seller may delete this course")
	}
	if err := cs.courseRepo.Delete(ctx, nil, course); err != nil {
		return apperr.Internal("failed to delete course", err)
	}
	if course.ImageURL != "" {
		if dErr := cs.images.Delete(ctx, course.ImageURL); dErr != nil {
			cs.log.Warn("failed to delete image of removed course", "error", dErr, "course_id", course.ID)
		}
	}
	return nil
}

func (cs *courseService) ApproveCourse(ctx context.Context, courseID uuid.UUID) error {
	course, err := cs.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return apperr.Internal("failed to load course", err)
	}
	if course == nil {
		return apperr.NotFound("course not found")
	}
	if course.IsApproved {
		return nil
	}
	course.IsApproved = true
	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if sErr := cs.courseRepo.Save(ctx, tx, course); sErr != nil {
			return apperr.Internal("failed to approve course", sErr)
		}
		return cs.notifications.NotifySeller(ctx, tx, course.SellerID,
			"Your course has been approved",
			map[string]any{"course_id": course.ID, "title": course.Title})
	})
}

func (cs *courseService) ToggleRestriction(ctx context.Context, courseID uuid.UUID) error {
	course, err := cs.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return apperr.Internal("failed to load course", err)
	}
	if course == nil {
		return apperr.NotFound("course not found")
	}
	course.IsRestricted = !course.IsRestricted
	message := "Your course has been restricted"
	if !course.IsRestricted {
		message = "The restriction on your course has been lifted"
	}
	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if sErr := cs.courseRepo.Save(ctx, tx, course); sErr != nil {
			return apperr.Internal("failed to toggle restriction", sErr)
		}
		return cs.notifications.NotifySeller(ctx, tx, course.SellerID,
			message,
			map[string]any{"course_id": course.ID, "restricted": course.IsRestricted})
	})
}

// ownedCourse loads the course and enforces seller ownership for child
// mutations.
func (cs *courseService) ownedCourse(ctx context.Context, courseID, sellerID uuid.UUID) (*types.Course, error) {
	course, err := cs.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, apperr.Internal("failed to load course", err)
	}
	if course == nil {
		return nil, apperr.NotFound("course not found")
	}
	if course.SellerID != sellerID {
		return nil, apperr.Unauthorized("only the owning seller may modify this course")
	}
	return course, nil
}

func (cs *courseService) AddCourseContent(ctx context.Context, courseID, sellerID uuid.UUID, input dto.CourseContentInput) (*dto.CourseContentItem, error) {
	if _, err := cs.ownedCourse(ctx, courseID, sellerID); err != nil {
		return nil, err
	}
	content := &types.CourseContent{
		ID:          uuid.New(),
		CourseID:    courseID,
		Title:       input.Title,
		Description: input.Description,
	}
	if err := cs.contentRepo.Create(ctx, nil, content); err != nil {
		return nil, apperr.Internal("failed to create course content", err)
	}
	return &dto.CourseContentItem{ID: content.ID, Title: content.Title, Description: content.Description}, nil
}

func (cs *courseService) DeleteCourseContent(ctx context.Context, courseID, contentID, sellerID uuid.UUID) error {
	content, err := cs.contentRepo.GetByID(ctx, nil, contentID)
	if err != nil {
		return apperr.Internal("failed to load course content", err)
	}
	if content == nil {
		return apperr.NotFound("course content not found")
	}
	if content.CourseID != courseID {
		return apperr.BadRequest("content does not belong to this course")
	}
	if content.Course == nil || content.Course.SellerID != sellerID {
		return apperr.Unauthorized("only the owning seller may modify this course")
	}
	if err := cs.contentRepo.Delete(ctx, nil, content); err != nil {
		return apperr.Internal("failed to delete course content", err)
	}
	return nil
}

func (cs *courseService) AddCourseSkill(ctx context.Context, courseID, sellerID uuid.UUID, input dto.SkillTargetInput) (*dto.SkillTargetItem, error) {
	if _, err := cs.ownedCourse(ctx, courseID, sellerID); err != nil {
		return nil, err
	}
	skill := &types.CourseSkill{
		ID:       uuid.New(),
		CourseID: courseID,
		Name:     input.Description,
	}
	if err := cs.skillRepo.Create(ctx, nil, skill); err != nil {
		return nil, apperr.Internal("failed to create course skill", err)
	}
	return &dto.SkillTargetItem{ID: skill.ID, Description: skill.Name}, nil
}

func (cs *courseService) DeleteCourseSkill(ctx context.Context, courseID, skillID, sellerID uuid.UUID) error {
	skill, err := cs.skillRepo.GetByID(ctx, nil, skillID)
	if err != nil {
		return apperr.Internal("failed to load course skill", err)
	}
	if skill == nil {
		return apperr.NotFound("course skill not found")
	}
	if skill.CourseID != courseID {
		return apperr.BadRequest("skill does not belong to this course")
	}
	if skill.Course == nil || skill.Course.SellerID != sellerID {
		return apperr.Unauthorized("only the owning seller may modify this course")
	}
	if err := cs.skillRepo.Delete(ctx, nil, skill); err != nil {
		return apperr.Internal("failed to delete course skill", err)
	}
	return nil
}

func (cs *courseService) AddTargetLearner(ctx context.Context, courseID, sellerID uuid.UUID, input dto.SkillTargetInput) (*dto.SkillTargetItem, error) {
	if _, err := cs.ownedCourse(ctx, courseID, sellerID); err != nil {
		return nil, err
	}
	learner := &types.TargetLearner{
		ID:          uuid.New(),
		CourseID:    courseID,
		Description: input.Description,
	}
	if err := cs.learnerRepo.Create(ctx, nil, learner); err != nil {
		return nil, apperr.Internal("failed to create target learner", err)
	}
	return &dto.SkillTargetItem{ID: learner.ID, Description: learner.Description}, nil
}

func (cs *courseService) DeleteTargetLearner(ctx context.Context, courseID, learnerID, sellerID uuid.UUID) error {
	learner, err := cs.learnerRepo.GetByID(ctx, nil, learnerID)
	if err != nil {
		return apperr.Internal("failed to load target learner", err)
	}
	if learner == nil {
		return apperr.NotFound("target learner not found")
	}
	if learner.CourseID != courseID {
		return apperr.BadRequest("target learner does not belong to this course")
	}
	if learner.Course == nil || learner.Course.SellerID != sellerID {
		return apperr.Unauthorized("only the owning seller may modify this course")
	}
	if err := cs.learnerRepo.Delete(ctx, nil, learner); err != nil {
		return apperr.Internal("failed to delete target learner", err)
	}
	return nil
}

func (cs *courseService) GetStudyLink(ctx context.Context, courseID uuid.UUID, caller *requestdata.RequestData) (string, error) {
	course, err := cs.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return "", apperr.Internal("failed to load course", err)
	}
	if course == nil {
		return "", apperr.NotFound("course not found")
	}
	if caller == nil {
		return "", apperr.Unauthorized("sign in to access study material")
	}
	entitled := caller.Role == types.RoleAdmin || caller.UserID == course.SellerID
	if !entitled {
		enrolled, eErr := cs.enrollmentRepo.Exists(ctx, nil, caller.UserID, course.ID)
		if eErr != nil {
			return "", apperr.Internal("failed to check enrollment", eErr)
		}
		entitled = enrolled
	}
	if !entitled {
		return "", apperr.Unauthorized("purchase the course to access study material")
	}
	if course.CourseLecture == nil || *course.CourseLecture == "" {
		return dto.NoLectureSentinel, nil
	}
	return *course.CourseLecture, nil
}

func (cs *courseService) UpdateStudyLink(ctx context.Context, courseID, sellerID uuid.UUID, newURL *string) error {
	course, err := cs.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return apperr.Internal("failed to load course", err)
	}
	if course == nil {
		return apperr.NotFound("course not found")
	}
	if course.SellerID != sellerID {
		return apperr.Unauthorized("only the owning seller may update study material")
	}
	course.CourseLecture = newURL
	if err := cs.courseRepo.Save(ctx, nil, course); err != nil {
		return apperr.Internal("failed to update study link", err)
	}
	return nil
}

func (cs *courseService) ListBySeller(ctx context.Context, sellerID uuid.UUID, page, pageSize int) (*dto.PagedResult[dto.CourseListItem], error) {
	q := dto.CourseQuery{Page: page, PageSize: pageSize}
	q.Normalize()
	courses, total, err := cs.courseRepo.ListBySeller(ctx, nil, sellerID, q.Page, q.PageSize)
	if err != nil {
		return nil, apperr.Internal("failed to list seller courses", err)
	}
	items := make([]dto.CourseListItem, 0, len(courses))
	for _, c := range courses {
		items = append(items, dto.NewCourseListItem(c))
	}
	return &dto.PagedResult[dto.CourseListItem]{
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalCount: total,
		Items:      items,
	}, nil
}

func (cs *courseService) ListPurchased(ctx context.Context, buyerID uuid.UUID, q dto.CourseQuery) (*dto.PagedResult[dto.CourseListItem], error) {
	q.Normalize()
	enrollments, total, err := cs.enrollmentRepo.ListByBuyer(ctx, nil, buyerID, q)
	if err != nil {
		return nil, apperr.Internal("failed to list purchased courses", err)
	}
	items := make([]dto.CourseListItem, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Course == nil {
			continue
		}
		item := dto.NewCourseListItem(e.Course)
		enrolledAt := e.EnrollAt
		item.EnrolledAt = &enrolledAt
		items = append(items, item)
	}
	return &dto.PagedResult[dto.CourseListItem]{
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalCount: total,
		Items:      items,
	}, nil
}

func (cs *courseService) readDetail(ctx context.Context, courseID uuid.UUID) (*dto.CourseDetail, error) {
	course, err := cs.courseRepo.GetDetailByID(ctx, nil, courseID)
	if err != nil {
		return nil, apperr.Internal("failed to reload course", err)
	}
	if course == nil {
		return nil, apperr.NotFound("course not found")
	}
	detail := dto.NewCourseDetail(course)
	// The seller just wrote it, so the lecture comes back unredacted.
	if course.CourseLecture != nil && *course.CourseLecture != "" {
		detail.CourseLecture = *course.CourseLecture
	} else {
		detail.CourseLecture = dto.NoLectureSentinel
	}
	return detail, nil
}
