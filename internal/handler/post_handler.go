package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetmate/internal/middleware"
	"budgetmate/internal/service"
)

type PostHandler struct {
	svc *service.PostService
	log *slog.Logger
}

type PostReq struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type CommentReq struct {
	Text string `json:"text"`
}

func NewPostHandler(svc *service.PostService, log *slog.Logger) *PostHandler {
	return &PostHandler{svc: svc, log: log}
}

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req PostReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	post, err := h.svc.Create(c.Request.Context(), middleware.Identity(c), service.PostInput(req))
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Update(c *gin.Context) {
	postID, err := pathID(c, "id", "post")
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	var req PostReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	post, err := h.svc.Update(c.Request.Context(), middleware.Identity(c), postID, service.PostInput(req))
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Like(c *gin.Context) {
	postID, err := pathID(c, "id", "post")
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	post, err := h.svc.ToggleLike(c.Request.Context(), middleware.Identity(c), postID)
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) AddComment(c *gin.Context) {
	postID, err := pathID(c, "id", "post")
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	var req CommentReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	post, err := h.svc.AddComment(c.Request.Context(), middleware.Identity(c), postID, req.Text)
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) commentPath(c *gin.Context) (postID, commentID uint64, err error) {
	if postID, err = pathID(c, "id", "post"); err != nil {
		return 0, 0, err
	}
	if commentID, err = pathID(c, "commentId", "comment"); err != nil {
		return 0, 0, err
	}
	return postID, commentID, nil
}

func (h *PostHandler) UpdateComment(c *gin.Context) {
	postID, commentID, err := h.commentPath(c)
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	var req CommentReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	post, err := h.svc.UpdateComment(c.Request.Context(), middleware.Identity(c), postID, commentID, req.Text)
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) DeleteComment(c *gin.Context) {
	postID, commentID, err := h.commentPath(c)
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	post, err := h.svc.DeleteComment(c.Request.Context(), middleware.Identity(c), postID, commentID)
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	postID, err := pathID(c, "id", "post")
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	if err := h.svc.DeletePost(c.Request.Context(), middleware.Identity(c), postID); err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Post removed"})
}
