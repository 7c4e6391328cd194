package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetmate/internal/middleware"
	"budgetmate/internal/model"
	"budgetmate/internal/service"
)

type ArticleReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	URL         *string `json:"url"`
	IconName    *string `json:"iconName"`
	Color       *string `json:"color"`
	Category    *string `json:"category"`
	IsPublished *bool   `json:"isPublished"`
}

type ArticleHandler struct {
	svc *service.ArticleService
	log *slog.Logger
}

func NewArticleHandler(svc *service.ArticleService, log *slog.Logger) *ArticleHandler {
	return &ArticleHandler{svc: svc, log: log}
}

func (h *ArticleHandler) List(c *gin.Context) {
	articles, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

func (h *ArticleHandler) Create(c *gin.Context) {
	var req ArticleReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	article, err := h.svc.Create(c.Request.Context(), middleware.Identity(c), service.ArticlePatch(req))
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Article created successfully", "article": article})
}

func (h *ArticleHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id", "article")
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	var req ArticleReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	article, err := h.svc.Update(c.Request.Context(), id, service.ArticlePatch(req))
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article updated successfully", "article": article})
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id", "article")
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}

type JobReq struct {
	Title           *string           `json:"title"`
	Description     *string           `json:"description"`
	Difficulty      *model.Difficulty `json:"difficulty"`
	PayRange        *string           `json:"payRange"`
	TimeCommitment  *string           `json:"timeCommitment"`
	Tags            *[]string         `json:"tags"`
	FullDescription *string           `json:"fullDescription"`
	Requirements    *[]string         `json:"requirements"`
	HowToStart      *string           `json:"howToStart"`
	IsPublished     *bool             `json:"isPublished"`
}

type JobHandler struct {
	svc *service.JobService
	log *slog.Logger
}

func NewJobHandler(svc *service.JobService, log *slog.Logger) *JobHandler {
	return &JobHandler{svc: svc, log: log}
}

func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) Create(c *gin.Context) {
	var req JobReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	job, err := h.svc.Create(c.Request.Context(), middleware.Identity(c), service.JobPatch(req))
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Job created successfully", "job": job})
}

func (h *JobHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id", "job")
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	var req JobReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	job, err := h.svc.Update(c.Request.Context(), id, service.JobPatch(req))
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job updated successfully", "job": job})
}

func (h *JobHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id", "job")
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}
