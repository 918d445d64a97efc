package dto

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/coursebay/coursebay-backend/internal/types"
)

// NoLectureSentinel is what entitled callers see when a course has no study
// material attached yet.
const NoLectureSentinel = "No lecture found"

type CourseContentItem struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// SkillTargetItem is the shared shape for skill tags and audience
// descriptors: an id plus one line of text.
type SkillTargetItem struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
}

type CourseListItem struct {
	ID             uuid.UUID           `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Price          float64             `json:"price"`
	Level          string              `json:"level"`
	ImageURL       string              `json:"image_url"`
	TeacherName    string              `json:"teacher_name"`
	DurationHours  int                 `json:"duration_hours"`
	AverageRating  float64             `json:"average_rating"`
	TotalPurchased int                 `json:"total_purchased"`
	SellerID       uuid.UUID           `json:"seller_id"`
	CategoryName   string              `json:"category_name"`
	IsApproved     bool                `json:"is_approved"`
	IsRestricted   bool                `json:"is_restricted"`
	CommentCount   int                 `json:"comment_count"`
	Contents       []CourseContentItem `json:"contents"`
	Skills         []SkillTargetItem   `json:"skills"`
	TargetLearners []SkillTargetItem   `json:"target_learners"`
	EnrolledAt     *time.Time          `json:"enrolled_at,omitempty"`
}

type CourseDetail struct {
	ID             uuid.UUID           `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Price          float64             `json:"price"`
	Level          string              `json:"level"`
	TeacherName    string              `json:"teacher_name"`
	ImageURL       string              `json:"image_url"`
	DurationHours  int                 `json:"duration_hours"`
	AverageRating  float64             `json:"average_rating"`
	TotalPurchased int                 `json:"total_purchased"`
	SellerID       uuid.UUID           `json:"seller_id"`
	SellerEmail    string              `json:"seller_email"`
	SellerPhone    string              `json:"seller_phone"`
	CategoryName   string              `json:"category_name"`
	IsApproved     bool                `json:"is_approved"`
	IsRestricted   bool                `json:"is_restricted"`
	CommentCount   int                 `json:"comment_count"`
	CourseLecture  string              `json:"course_lecture,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Contents       []CourseContentItem `json:"contents"`
	Skills         []SkillTargetItem   `json:"skills"`
	TargetLearners []SkillTargetItem   `json:"target_learners"`
}

// FileUpload is an opaque handle to an uploaded image; the catalog service
// hands it to the image collaborator without looking inside.
type FileUpload struct {
	Filename string
	Reader   io.Reader
}

type CourseContentInput struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
}

type SkillTargetInput struct {
	Description string `json:"description" form:"description"`
}

type CreateCourseInput struct {
	Title          string             `json:"title" form:"title"`
	Description    *string            `json:"description" form:"description"`
	Price          float64            `json:"price" form:"price"`
	Level          string             `json:"level" form:"level"`
	TeacherName    string             `json:"teacher_name" form:"teacher_name"`
	DurationHours  int                `json:"duration_hours" form:"duration_hours"`
	CategoryID     uuid.UUID          `json:"category_id" form:"category_id"`
	CourseLecture  *string            `json:"course_lecture" form:"course_lecture"`
	Contents       []CourseContentInput `json:"contents"`
	Skills         []SkillTargetInput   `json:"skills"`
	TargetLearners []SkillTargetInput   `json:"target_learners"`
	Image          *FileUpload          `json:"-" form:"-"`
}

// UpdateCourseInput uses pointers for replace-if-present semantics.
// CourseLecture is the exception: it is always written through, nil included.
// A non-nil Contents slice wholesale-replaces the course's content rows.
type UpdateCourseInput struct {
	Title         *string              `json:"title" form:"title"`
	Description   *string              `json:"description" form:"description"`
	Price         *float64             `json:"price" form:"price"`
	Level         *string              `json:"level" form:"level"`
	TeacherName   *string              `json:"teacher_name" form:"teacher_name"`
	DurationHours *int                 `json:"duration_hours" form:"duration_hours"`
	CategoryID    *uuid.UUID           `json:"category_id" form:"category_id"`
	CourseLecture *string              `json:"course_lecture" form:"course_lecture"`
	DeleteImage   bool                 `json:"delete_image" form:"delete_image"`
	Contents      []CourseContentInput `json:"contents"`
	Image         *FileUpload          `json:"-" form:"-"`
}

func contentItems(rows []types.CourseContent) []CourseContentItem {
	items := make([]CourseContentItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, CourseContentItem{ID: r.ID, Title: r.Title, Description: r.Description})
	}
	return items
}

func skillItems(rows []types.CourseSkill) []SkillTargetItem {
	items := make([]SkillTargetItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, SkillTargetItem{ID: r.ID, Description: r.Name})
	}
	return items
}

func learnerItems(rows []types.TargetLearner) []SkillTargetItem {
	items := make([]SkillTargetItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, SkillTargetItem{ID: r.ID, Description: r.Description})
	}
	return items
}

func categoryName(c *types.Category) string {
	if c == nil {
		return "Uncategorized"
	}
	return c.Name
}

func NewCourseListItem(c *types.Course) CourseListItem {
	return CourseListItem{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		Price:          c.Price,
		Level:          c.Level,
		ImageURL:       c.ImageURL,
		TeacherName:    c.TeacherName,
		DurationHours:  c.DurationHours,
		AverageRating:  c.AverageRating,
		TotalPurchased: c.TotalPurchased,
		SellerID:       c.SellerID,
		CategoryName:   categoryName(c.Category),
		IsApproved:     c.IsApproved,
		IsRestricted:   c.IsRestricted,
		CommentCount:   len(c.Enrollments),
		Contents:       contentItems(c.Contents),
		Skills:         skillItems(c.Skills),
		TargetLearners: learnerItems(c.TargetLearners),
	}
}

// NewCourseDetail never exposes the lecture; the service decides entitlement
// and fills CourseLecture afterwards.
func NewCourseDetail(c *types.Course) *CourseDetail {
	d := &CourseDetail{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		Price:          c.Price,
		Level:          c.Level,
		TeacherName:    c.TeacherName,
		ImageURL:       c.ImageURL,
		DurationHours:  c.DurationHours,
		AverageRating:  c.AverageRating,
		TotalPurchased: c.TotalPurchased,
		SellerID:       c.SellerID,
		CategoryName:   categoryName(c.Category),
		IsApproved:     c.IsApproved,
		IsRestricted:   c.IsRestricted,
		CommentCount:   len(c.Reviews),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
		Contents:       contentItems(c.Contents),
		Skills:         skillItems(c.Skills),
		TargetLearners: learnerItems(c.TargetLearners),
	}
	if c.Seller != nil {
		d.SellerEmail = c.Seller.Email
		d.SellerPhone = c.Seller.PhoneNumber
	}
	return d
}
