package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/coursebay/coursebay-backend/internal/apperr"
	"github.com/coursebay/coursebay-backend/internal/dto"
	"github.com/coursebay/coursebay-backend/internal/requestdata"
	"github.com/coursebay/coursebay-backend/internal/types"
)

func asCaller(u *types.User) *requestdata.RequestData {
	return &requestdata.RequestData{UserID: u.ID, Role: u.Role}
}

func TestListCoursesHidesUnapprovedAndRestricted(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	category := seedCategory(t, f.db, "Programming")

	visible := seedCourse(t, f.db, seller, category, nil)
	seedCourse(t, f.db, seller, category, func(c *types.Course) { c.IsApproved = false })
	seedCourse(t, f.db, seller, category, func(c *types.Course) { c.IsRestricted = true })

	result, err := f.svc.ListCourses(ctx, dto.CourseQuery{}, nil)
	require.NoError(t, err)
	require.EqualValues(t, 1, result.TotalCount)
	require.Len(t, result.Items, 1)
	require.Equal(t, visible.ID, result.Items[0].ID)

	admin := seedUser(t, f.db, types.RoleAdmin)
	all, err := f.svc.ListCourses(ctx, dto.CourseQuery{IncludeUnapproved: true, IncludeRestricted: true}, asCaller(admin))
	require.NoError(t, err)
	require.EqualValues(t, 3, all.TotalCount)
}

func TestListCoursesHiddenFlagsRequireStaffRole(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	buyer := seedUser(t, f.db, types.RoleBuyer)

	_, err := f.svc.ListCourses(ctx, dto.CourseQuery{IncludeUnapproved: true}, nil)
	require.True(t, apperr.IsBadRequest(err))

	_, err = f.svc.ListCourses(ctx, dto.CourseQuery{IncludeRestricted: true}, asCaller(buyer))
	require.True(t, apperr.IsBadRequest(err))
}

func TestListCoursesSorting(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	category := seedCategory(t, f.db, "Math")
	for _, price := range []float64{10, 30, 20} {
		p := price
		seedCourse(t, f.db, seller, category, func(c *types.Course) { c.Price = p })
	}

	asc, err := f.svc.ListCourses(ctx, dto.CourseQuery{SortBy: dto.SortPriceAsc}, nil)
	require.NoError(t, err)
	require.Equal(t, []float64{10, 20, 30}, prices(asc.Items))

	desc, err := f.svc.ListCourses(ctx, dto.CourseQuery{SortBy: dto.SortPriceDesc}, nil)
	require.NoError(t, err)
	require.Equal(t, []float64{30, 20, 10}, prices(desc.Items))
}

func prices(items []dto.CourseListItem) []float64 {
	out := make([]float64, 0, len(items))
	for _, it := range items {
		out = append(out, it.Price)
	}
	return out
}

func TestListCoursesPagination(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	category := seedCategory(t, f.db, "History")
	for i := 0; i < 5; i++ {
		price := float64(i + 1)
		seedCourse(t, f.db, seller, category, func(c *types.Course) { c.Price = price })
	}

	page1, err := f.svc.ListCourses(ctx, dto.CourseQuery{SortBy: dto.SortPriceAsc, Page: 1, PageSize: 2}, nil)
	require.NoError(t, err)
	page2, err := f.svc.ListCourses(ctx, dto.CourseQuery{SortBy: dto.SortPriceAsc, Page: 2, PageSize: 2}, nil)
	require.NoError(t, err)

	require.EqualValues(t, 5, page1.TotalCount)
	require.EqualValues(t, 5, page2.TotalCount)
	require.Len(t, page1.Items, 2)
	require.Len(t, page2.Items, 2)
	seen := map[uuid.UUID]bool{}
	for _, it := range append(page1.Items, page2.Items...) {
		require.False(t, seen[it.ID], "pages must not overlap")
		seen[it.ID] = true
	}
}

func TestListCoursesFilters(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	golang := seedCategory(t, f.db, "Go")
	rust := seedCategory(t, f.db, "Rust")

	match := seedCourse(t, f.db, seller, golang, func(c *types.Course) {
		c.Title = "Advanced Concurrency Patterns"
		c.Price = 50
		c.Level = types.LevelAdvanced
	})
	seedCourse(t, f.db, seller, rust, func(c *types.Course) {
		c.Title = "Ownership Basics"
		c.Price = 200
	})

	minPrice, maxPrice := 40.0, 60.0
	result, err := f.svc.ListCourses(ctx, dto.CourseQuery{
		Keyword:    "Concurrency",
		CategoryID: &golang.ID,
		Level:      types.LevelAdvanced,
		MinPrice:   &minPrice,
		MaxPrice:   &maxPrice,
	}, nil)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Equal(t, match.ID, result.Items[0].ID)
	require.Equal(t, "Go", result.Items[0].CategoryName)
}

func TestGetCourseByIDVisibility(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	buyer := seedUser(t, f.db, types.RoleBuyer)
	admin := seedUser(t, f.db, types.RoleAdmin)
	category := seedCategory(t, f.db, "Art")

	hidden := seedCourse(t, f.db, seller, category, func(c *types.Course) { c.IsApproved = false })

	_, err := f.svc.GetCourseByID(ctx, hidden.ID, nil)
	require.True(t, apperr.IsNotFound(err))

	_, err = f.svc.GetCourseByID(ctx, hidden.ID, asCaller(buyer))
	require.True(t, apperr.IsNotFound(err))

	detail, err := f.svc.GetCourseByID(ctx, hidden.ID, asCaller(seller))
	require.NoError(t, err)
	require.Equal(t, hidden.ID, detail.ID)

	_, err = f.svc.GetCourseByID(ctx, hidden.ID, asCaller(admin))
	require.NoError(t, err)

	_, err = f.svc.GetCourseByID(ctx, uuid.New(), nil)
	require.True(t, apperr.IsNotFound(err))
}

func TestGetCourseByIDLectureGating(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	buyer := seedUser(t, f.db, types.RoleBuyer)
	category := seedCategory(t, f.db, "Music")

	lecture := "https://lectures.test/intro"
	course := seedCourse(t, f.db, seller, category, func(c *types.Course) { c.CourseLecture = &lecture })

	// non-entitled buyer never sees the lecture
	detail, err := f.svc.GetCourseByID(ctx, course.ID, asCaller(buyer))
	require.NoError(t, err)
	require.Empty(t, detail.CourseLecture)

	seedEnrollment(t, f.db, buyer, course, time.Now())
	detail, err = f.svc.GetCourseByID(ctx, course.ID, asCaller(buyer))
	require.NoError(t, err)
	require.Equal(t, lecture, detail.CourseLecture)

	detail, err = f.svc.GetCourseByID(ctx, course.ID, asCaller(seller))
	require.NoError(t, err)
	require.Equal(t, lecture, detail.CourseLecture)
}

func TestGetCourseByIDRecordsHistory(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	buyer := seedUser(t, f.db, types.RoleBuyer)
	category := seedCategory(t, f.db, "Film")
	course := seedCourse(t, f.db, seller, category, nil)

	_, err := f.svc.GetCourseByID(ctx, course.ID, nil)
	require.NoError(t, err)
	var count int64
	require.NoError(t, f.db.Model(&types.History{}).Count(&count).Error)
	require.EqualValues(t, 0, count, "anonymous views leave no history")

	_, err = f.svc.GetCourseByID(ctx, course.ID, asCaller(buyer))
	require.NoError(t, err)
	_, err = f.svc.GetCourseByID(ctx, course.ID, asCaller(buyer))
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&types.History{}).Where("user_id = ?", buyer.ID).Count(&count).Error)
	require.EqualValues(t, 1, count, "re-viewing upserts the single row")
}

func TestCreateCourseRoundTrip(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	category := seedCategory(t, f.db, "Design")

	description := "A course about systems"
	input := dto.CreateCourseInput{
		Title:         "Systems Design",
		Description:   &description,
		Price:         99.5,
		Level:         types.LevelIntermediate,
		TeacherName:   "R. Hoare",
		DurationHours: 12,
		CategoryID:    category.ID,
		Contents: []dto.CourseContentInput{
			{Title: "Intro", Description: "first"},
			{Title: "Queues", Description: "second"},
		},
		Skills:         []dto.SkillTargetInput{{Description: "backpressure"}, {Description: "batching"}},
		TargetLearners: []dto.SkillTargetInput{{Description: "platform engineers"}},
		Image:          &dto.FileUpload{Filename: "cover.png", Reader: strings.NewReader("png-bytes")},
	}

	created, err := f.svc.CreateCourse(ctx, seller.ID, input)
	require.NoError(t, err)
	require.False(t, created.IsApproved, "new courses await approval")
	require.False(t, created.IsRestricted)
	require.Equal(t, "https://img.test/cover.png", created.ImageURL)
	require.Equal(t, "Design", created.CategoryName)

	detail, err := f.svc.GetCourseByID(ctx, created.ID, asCaller(seller))
	require.NoError(t, err)
	require.Len(t, detail.Contents, 2)
	require.Equal(t, "Intro", detail.Contents[0].Title)
	require.Equal(t, "Queues", detail.Contents[1].Title)
	require.Len(t, detail.Skills, 2)
	require.Equal(t, "backpressure", detail.Skills[0].Description)
	require.Len(t, detail.TargetLearners, 1)
	require.Equal(t, "platform engineers", detail.TargetLearners[0].Description)

	var notifications int64
	require.NoError(t, f.db.Model(&types.Notification{}).Where("seller_id = ?", seller.ID).Count(&notifications).Error)
	require.EqualValues(t, 1, notifications, "pending-approval notification persisted")
}

func TestUpdateCourseOwnershipAndSemantics(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	other := seedUser(t, f.db, types.RoleSeller)
	category := seedCategory(t, f.db, "Ops")

	lecture := "https://lectures.test/old"
	course := seedCourse(t, f.db, seller, category, func(c *types.Course) {
		c.Description = "original"
		c.CourseLecture = &lecture
	})

	_, err := f.svc.UpdateCourse(ctx, uuid.New(), seller.ID, dto.UpdateCourseInput{})
	require.True(t, apperr.IsNotFound(err))

	_, err = f.svc.UpdateCourse(ctx, course.ID, other.ID, dto.UpdateCourseInput{})
	require.True(t, apperr.IsUnauthorized(err))
	var unchanged types.Course
	require.NoError(t, f.db.First(&unchanged, "id = ?", course.ID).Error)
	require.Equal(t, "original", unchanged.Description)

	newTitle := "Renamed"
	updated, err := f.svc.UpdateCourse(ctx, course.ID, seller.ID, dto.UpdateCourseInput{Title: &newTitle})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Title)
	// absent description clears; absent lecture clears too
	require.Empty(t, updated.Description)
	require.Equal(t, dto.NoLectureSentinel, updated.CourseLecture)
}

func TestUpdateCourseReplacesContents(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	category := seedCategory(t, f.db, "Ops")
	course := seedCourse(t, f.db, seller, category, nil)
	require.NoError(t, f.db.Create(&types.CourseContent{ID: uuid.New(), CourseID: course.ID, Title: "old"}).Error)

	updated, err := f.svc.UpdateCourse(ctx, course.ID, seller.ID, dto.UpdateCourseInput{
		Contents: []dto.CourseContentInput{{Title: "new a"}, {Title: "new b"}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Contents, 2)
	require.Equal(t, "new a", updated.Contents[0].Title)
	require.Equal(t, "new b", updated.Contents[1].Title)
}

func TestUpdateCourseImageReplacement(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	category := seedCategory(t, f.db, "Photo")
	course := seedCourse(t, f.db, seller, category, func(c *types.Course) {
		c.ImageURL = "https://img.test/old.png"
	})

	updated, err := f.svc.UpdateCourse(ctx, course.ID, seller.ID, dto.UpdateCourseInput{
		Image: &dto.FileUpload{Filename: "new.png", Reader: strings.NewReader("bytes")},
	})
	require.NoError(t, err)
	require.Equal(t, "https://img.test/new.png", updated.ImageURL)
	require.Equal(t, []string{"https://img.test/old.png"}, f.images.deletes)

	updated, err = f.svc.UpdateCourse(ctx, course.ID, seller.ID, dto.UpdateCourseInput{DeleteImage: true})
	require.NoError(t, err)
	require.Empty(t, updated.ImageURL)
}

func TestDeleteCourseOwnership(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	other := seedUser(t, f.db, types.RoleSeller)
	category := seedCategory(t, f.db, "Law")
	course := seedCourse(t, f.db, seller, category, nil)

	require.True(t, apperr.IsNotFound(f.svc.DeleteCourse(ctx, uuid.New(), seller.ID)))
	require.True(t, apperr.IsUnauthorized(f.svc.DeleteCourse(ctx, course.ID, other.ID)))

	require.NoError(t, f.svc.DeleteCourse(ctx, course.ID, seller.ID))
	var count int64
	require.NoError(t, f.db.Model(&types.Course{}).Where("id = ?", course.ID).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestApproveCourseIdempotent(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	category := seedCategory(t, f.db, "Bio")
	course := seedCourse(t, f.db, seller, category, func(c *types.Course) { c.IsApproved = false })

	require.NoError(t, f.svc.ApproveCourse(ctx, course.ID))
	require.NoError(t, f.svc.ApproveCourse(ctx, course.ID))

	var reloaded types.Course
	require.NoError(t, f.db.First(&reloaded, "id = ?", course.ID).Error)
	require.True(t, reloaded.IsApproved)

	require.True(t, apperr.IsNotFound(f.svc.ApproveCourse(ctx, uuid.New())))
}

func TestToggleRestriction(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	category := seedCategory(t, f.db, "Chem")
	course := seedCourse(t, f.db, seller, category, nil)

	require.NoError(t, f.svc.ToggleRestriction(ctx, course.ID))
	var reloaded types.Course
	require.NoError(t, f.db.First(&reloaded, "id = ?", course.ID).Error)
	require.True(t, reloaded.IsRestricted)

	require.NoError(t, f.svc.ToggleRestriction(ctx, course.ID))
	require.NoError(t, f.db.First(&reloaded, "id = ?", course.ID).Error)
	require.False(t, reloaded.IsRestricted)

	require.True(t, apperr.IsNotFound(f.svc.ToggleRestriction(ctx, uuid.New())))
}

func TestChildEntityRules(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	other := seedUser(t, f.db, types.RoleSeller)
	category := seedCategory(t, f.db, "Eng")
	course := seedCourse(t, f.db, seller, category, nil)
	otherCourse := seedCourse(t, f.db, seller, category, nil)

	_, err := f.svc.AddCourseContent(ctx, uuid.New(), seller.ID, dto.CourseContentInput{Title: "x"})
	require.True(t, apperr.IsNotFound(err))

	_, err = f.svc.AddCourseContent(ctx, course.ID, other.ID, dto.CourseContentInput{Title: "x"})
	require.True(t, apperr.IsUnauthorized(err))

	content, err := f.svc.AddCourseContent(ctx, course.ID, seller.ID, dto.CourseContentInput{Title: "x", Description: "y"})
	require.NoError(t, err)

	// cross-course deletion is a bad request, not a not-found
	err = f.svc.DeleteCourseContent(ctx, otherCourse.ID, content.ID, seller.ID)
	require.True(t, apperr.IsBadRequest(err))

	err = f.svc.DeleteCourseContent(ctx, course.ID, content.ID, other.ID)
	require.True(t, apperr.IsUnauthorized(err))

	require.True(t, apperr.IsNotFound(f.svc.DeleteCourseContent(ctx, course.ID, uuid.New(), seller.ID)))
	require.NoError(t, f.svc.DeleteCourseContent(ctx, course.ID, content.ID, seller.ID))

	skill, err := f.svc.AddCourseSkill(ctx, course.ID, seller.ID, dto.SkillTargetInput{Description: "tdd"})
	require.NoError(t, err)
	require.True(t, apperr.IsBadRequest(f.svc.DeleteCourseSkill(ctx, otherCourse.ID, skill.ID, seller.ID)))
	require.NoError(t, f.svc.DeleteCourseSkill(ctx, course.ID, skill.ID, seller.ID))

	learner, err := f.svc.AddTargetLearner(ctx, course.ID, seller.ID, dto.SkillTargetInput{Description: "students"})
	require.NoError(t, err)
	require.True(t, apperr.IsUnauthorized(f.svc.DeleteTargetLearner(ctx, course.ID, learner.ID, other.ID)))
	require.NoError(t, f.svc.DeleteTargetLearner(ctx, course.ID, learner.ID, seller.ID))
}

func TestStudyLinkGating(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	buyer := seedUser(t, f.db, types.RoleBuyer)
	admin := seedUser(t, f.db, types.RoleAdmin)
	category := seedCategory(t, f.db, "Lang")

	lecture := "https://lectures.test/full"
	course := seedCourse(t, f.db, seller, category, func(c *types.Course) { c.CourseLecture = &lecture })
	bare := seedCourse(t, f.db, seller, category, nil)

	_, err := f.svc.GetStudyLink(ctx, uuid.New(), asCaller(admin))
	require.True(t, apperr.IsNotFound(err))

	_, err = f.svc.GetStudyLink(ctx, course.ID, asCaller(buyer))
	require.True(t, apperr.IsUnauthorized(err))

	seedEnrollment(t, f.db, buyer, course, time.Now())
	link, err := f.svc.GetStudyLink(ctx, course.ID, asCaller(buyer))
	require.NoError(t, err)
	require.Equal(t, lecture, link)

	link, err = f.svc.GetStudyLink(ctx, bare.ID, asCaller(seller))
	require.NoError(t, err)
	require.Equal(t, dto.NoLectureSentinel, link)

	link, err = f.svc.GetStudyLink(ctx, course.ID, asCaller(admin))
	require.NoError(t, err)
	require.Equal(t, lecture, link)
}

func TestUpdateStudyLink(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	other := seedUser(t, f.db, types.RoleSeller)
	category := seedCategory(t, f.db, "Lang")
	course := seedCourse(t, f.db, seller, category, nil)

	newURL := "https://lectures.test/v2"
	require.True(t, apperr.IsNotFound(f.svc.UpdateStudyLink(ctx, uuid.New(), seller.ID, &newURL)))
	require.True(t, apperr.IsUnauthorized(f.svc.UpdateStudyLink(ctx, course.ID, other.ID, &newURL)))

	require.NoError(t, f.svc.UpdateStudyLink(ctx, course.ID, seller.ID, &newURL))
	link, err := f.svc.GetStudyLink(ctx, course.ID, asCaller(seller))
	require.NoError(t, err)
	require.Equal(t, newURL, link)

	require.NoError(t, f.svc.UpdateStudyLink(ctx, course.ID, seller.ID, nil))
	link, err = f.svc.GetStudyLink(ctx, course.ID, asCaller(seller))
	require.NoError(t, err)
	require.Equal(t, dto.NoLectureSentinel, link)
}

func TestListBySellerAndPurchased(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	otherSeller := seedUser(t, f.db, types.RoleSeller)
	buyer := seedUser(t, f.db, types.RoleBuyer)
	category := seedCategory(t, f.db, "Sales")

	first := seedCourse(t, f.db, seller, category, nil)
	second := seedCourse(t, f.db, seller, category, nil)
	foreign := seedCourse(t, f.db, otherSeller, category, nil)

	mine, err := f.svc.ListBySeller(ctx, seller.ID, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, mine.TotalCount)
	for _, it := range mine.Items {
		require.Equal(t, seller.ID, it.SellerID)
	}

	older := time.Now().Add(-time.Hour)
	newer := time.Now()
	seedEnrollment(t, f.db, buyer, first, older)
	seedEnrollment(t, f.db, buyer, foreign, newer)
	_ = second

	purchased, err := f.svc.ListPurchased(ctx, buyer.ID, dto.CourseQuery{})
	require.NoError(t, err)
	require.EqualValues(t, 2, purchased.TotalCount)
	require.Len(t, purchased.Items, 2)
	// most recent purchase first
	require.Equal(t, foreign.ID, purchased.Items[0].ID)
	require.Equal(t, first.ID, purchased.Items[1].ID)
	require.NotNil(t, purchased.Items[0].EnrolledAt)
	require.True(t, purchased.Items[0].EnrolledAt.After(*purchased.Items[1].EnrolledAt))
}

func TestListCoursesKeywordIsCaseSensitive(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	category := seedCategory(t, f.db, "Search")

	match := seedCourse(t, f.db, seller, category, func(c *types.Course) { c.Title = "Advanced Compilers" })
	seedCourse(t, f.db, seller, category, func(c *types.Course) { c.Title = "advanced knitting" })

	result, err := f.svc.ListCourses(ctx, dto.CourseQuery{Keyword: "Advanced"}, nil)
	require.NoError(t, err)
	require.EqualValues(t, 1, result.TotalCount)
	require.Equal(t, match.ID, result.Items[0].ID)

	none, err := f.svc.ListCourses(ctx, dto.CourseQuery{Keyword: "ADVANCED"}, nil)
	require.NoError(t, err)
	require.EqualValues(t, 0, none.TotalCount)
}

func TestCreateCourseCleansUpImageOnFailure(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	seller := seedUser(t, f.db, types.RoleSeller)
	category := seedCategory(t, f.db, "Broken")

	// force the insert to fail after the upload has already happened
	require.NoError(t, f.db.Migrator().DropTable(&types.Course{}))

	_, err := f.svc.CreateCourse(ctx, seller.ID, dto.CreateCourseInput{
		Title:      "Doomed",
		CategoryID: category.ID,
		Image:      &dto.FileUpload{Filename: "doomed.png", Reader: strings.NewReader("bytes")},
	})
	require.Error(t, err)
	require.Equal(t, []string{"https://img.test/doomed.png"}, f.images.deletes)
}
