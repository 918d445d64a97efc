package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/coursebay/coursebay-backend/internal/apperr"
	"github.com/coursebay/coursebay-backend/internal/dto"
	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/requestdata"
	"github.com/coursebay/coursebay-backend/internal/services"
)

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
	}
}

// ListAll serves the public catalog; no identity is attached, so the service
// rejects any attempt to opt into hidden inventory.
func (h *CourseHandler) ListAll(c *gin.Context) {
	q, err := parseCourseQuery(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	result, err := h.courseService.ListCourses(c.Request.Context(), q, nil)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *CourseHandler) List(c *gin.Context) {
	q, err := parseCourseQuery(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	result, err := h.courseService.ListCourses(c.Request.Context(), q, rd)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *CourseHandler) GetByID(c *gin.Context) {
	courseID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	detail, err := h.courseService.GetCourseByID(c.Request.Context(), courseID, rd)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, detail)
}

func (h *CourseHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	input, err := parseCreateCourseInput(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	detail, err := h.courseService.CreateCourse(c.Request.Context(), rd.UserID, input)
	if err != nil {
		h.log.Error("create course failed", "error", err, "seller_id", rd.UserID)
		RespondError(c, err)
		return
	}
	RespondCreated(c, detail)
}

func (h *CourseHandler) Update(c *gin.Context) {
	courseID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	input, err := parseUpdateCourseInput(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	detail, err := h.courseService.UpdateCourse(c.Request.Context(), courseID, rd.UserID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, detail)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	courseID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if err := h.courseService.DeleteCourse(c.Request.Context(), courseID, rd.UserID); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *CourseHandler) Approve(c *gin.Context) {
	courseID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := h.courseService.ApproveCourse(c.Request.Context(), courseID); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *CourseHandler) ToggleRestriction(c *gin.Context) {
	courseID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := h.courseService.ToggleRestriction(c.Request.Context(), courseID); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *CourseHandler) AddContent(c *gin.Context) {
	courseID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	var input dto.CourseContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apperr.BadRequest("invalid request body"))
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	item, err := h.courseService.AddCourseContent(c.Request.Context(), courseID, rd.UserID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, item)
}

func (h *CourseHandler) DeleteContent(c *gin.Context) {
	courseID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	contentID, err := pathUUID(c, "contentId")
	if err != nil {
		RespondError(c, err)
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if err := h.courseService.DeleteCourseContent(c.Request.Context(), courseID, contentID, rd.UserID); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *CourseHandler) AddSkill(c *gin.Context) {
	courseID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	var input dto.SkillTargetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apperr.BadRequest("invalid request body"))
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	item, err := h.courseService.AddCourseSkill(c.Request.Context(), courseID, rd.UserID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, item)
}

func (h *CourseHandler) DeleteSkill(c *gin.Context) {
	courseID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	skillID, err := pathUUID(c, "skillId")
	if err != nil {
		RespondError(c, err)
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if err := h.courseService.DeleteCourseSkill(c.Request.Context(), courseID, skillID, rd.UserID); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *CourseHandler) AddTargetLearner(c *gin.Context) {
	courseID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	var input dto.SkillTargetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apperr.BadRequest("invalid request body"))
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	item, err := h.courseService.AddTargetLearner(c.Request.Context(), courseID, rd.UserID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, item)
}

func (h *CourseHandler) DeleteTargetLearner(c *gin.Context) {
	courseID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	learnerID, err := pathUUID(c, "learnerId")
	if err != nil {
		RespondError(c, err)
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if err := h.courseService.DeleteTargetLearner(c.Request.Context(), courseID, learnerID, rd.UserID); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *CourseHandler) GetStudyLink(c *gin.Context) {
	courseID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	link, err := h.courseService.GetStudyLink(c.Request.Context(), courseID, rd)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"study_link": link})
}

func (h *CourseHandler) UpdateStudyLink(c *gin.Context) {
	courseID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	var body struct {
		StudyLink *string `json:"study_link"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, apperr.BadRequest("invalid request body"))
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if err := h.courseService.UpdateStudyLink(c.Request.Context(), courseID, rd.UserID, body.StudyLink); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *CourseHandler) Mine(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	page, pageSize, err := pageParams(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	result, err := h.courseService.ListBySeller(c.Request.Context(), rd.UserID, page, pageSize)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *CourseHandler) Purchased(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	q, err := parseCourseQuery(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	result, err := h.courseService.ListPurchased(c.Request.Context(), rd.UserID, q)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperr.BadRequest(fmt.Sprintf("invalid %s", name))
	}
	return id, nil
}

func pageParams(c *gin.Context) (int, int, error) {
	page, pageSize := 1, 10
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, apperr.BadRequest("invalid page")
		}
		page = n
	}
	if v := c.Query("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, apperr.BadRequest("invalid page_size")
		}
		pageSize = n
	}
	return page, pageSize, nil
}

// parseCourseQuery reads listing filters off the query string by hand;
// optional uuid and float fields make struct binding more trouble than it is
// worth here.
func parseCourseQuery(c *gin.Context) (dto.CourseQuery, error) {
	var q dto.CourseQuery
	q.Keyword = c.Query("q")
	q.Level = c.Query("level")
	q.SortBy = c.Query("sort_by")

	if v := c.Query("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return q, apperr.BadRequest("invalid category_id")
		}
		q.CategoryID = &id
	}
	if v := c.Query("seller_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return q, apperr.BadRequest("invalid seller_id")
		}
		q.SellerID = &id
	}
	if v := c.Query("min_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return q, apperr.BadRequest("invalid min_price")
		}
		q.MinPrice = &f
	}
	if v := c.Query("max_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return q, apperr.BadRequest("invalid max_price")
		}
		q.MaxPrice = &f
	}
	if v := c.Query("include_unapproved"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return q, apperr.BadRequest("invalid include_unapproved")
		}
		q.IncludeUnapproved = b
	}
	if v := c.Query("include_restricted"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return q, apperr.BadRequest("invalid include_restricted")
		}
		q.IncludeRestricted = b
	}

	var err error
	q.Page, q.PageSize, err = pageParams(c)
	return q, err
}

// Course create/update arrive as multipart forms when an image rides along,
// plain JSON otherwise.
func parseCreateCourseInput(c *gin.Context) (dto.CreateCourseInput, error) {
	var input dto.CreateCourseInput
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBindJSON(&input); err != nil {
			return input, apperr.BadRequest("invalid request body")
		}
		return input, nil
	}

	input.Title = c.PostForm("title")
	if v, ok := c.GetPostForm("description"); ok {
		input.Description = &v
	}
	if v := c.PostForm("price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return input, apperr.BadRequest("invalid price")
		}
		input.Price = f
	}
	input.Level = c.PostForm("level")
	input.TeacherName = c.PostForm("teacher_name")
	if v := c.PostForm("duration_hours"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return input, apperr.BadRequest("invalid duration_hours")
		}
		input.DurationHours = n
	}
	if v := c.PostForm("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return input, apperr.BadRequest("invalid category_id")
		}
		input.CategoryID = id
	}
	if v, ok := c.GetPostForm("course_lecture"); ok {
		input.CourseLecture = &v
	}
	if v := c.PostForm("contents"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.Contents); err != nil {
			return input, apperr.BadRequest("invalid contents")
		}
	}
	if v := c.PostForm("skills"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.Skills); err != nil {
			return input, apperr.BadRequest("invalid skills")
		}
	}
	if v := c.PostForm("target_learners"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.TargetLearners); err != nil {
			return input, apperr.BadRequest("invalid target_learners")
		}
	}
	upload, err := formImage(c)
	if err != nil {
		return input, err
	}
	input.Image = upload
	return input, nil
}

func parseUpdateCourseInput(c *gin.Context) (dto.UpdateCourseInput, error) {
	var input dto.UpdateCourseInput
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBindJSON(&input); err != nil {
			return input, apperr.BadRequest("invalid request body")
		}
		return input, nil
	}

	if v, ok := c.GetPostForm("title"); ok {
		input.Title = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		input.Description = &v
	}
	if v, ok := c.GetPostForm("price"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return input, apperr.BadRequest("invalid price")
		}
		input.Price = &f
	}
	if v, ok := c.GetPostForm("level"); ok {
		input.Level = &v
	}
	if v, ok := c.GetPostForm("teacher_name"); ok {
		input.TeacherName = &v
	}
	if v, ok := c.GetPostForm("duration_hours"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return input, apperr.BadRequest("invalid duration_hours")
		}
		input.DurationHours = &n
	}
	if v, ok := c.GetPostForm("category_id"); ok {
		id, err := uuid.Parse(v)
		if err != nil {
			return input, apperr.BadRequest("invalid category_id")
		}
		input.CategoryID = &id
	}
	if v, ok := c.GetPostForm("course_lecture"); ok {
		input.CourseLecture = &v
	}
	if v, ok := c.GetPostForm("delete_image"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return input, apperr.BadRequest("invalid delete_image")
		}
		input.DeleteImage = b
	}
	if v, ok := c.GetPostForm("contents"); ok {
		input.Contents = []dto.CourseContentInput{}
		if v != "" {
			if err := json.Unmarshal([]byte(v), &input.Contents); err != nil {
				return input, apperr.BadRequest("invalid contents")
			}
		}
	}
	upload, err := formImage(c)
	if err != nil {
		return input, err
	}
	input.Image = upload
	return input, nil
}

func formImage(c *gin.Context) (*dto.FileUpload, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// no image attached
		return nil, nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperr.Internal("failed to read uploaded image", err)
	}
	return &dto.FileUpload{Filename: fileHeader.Filename, Reader: file}, nil
}
