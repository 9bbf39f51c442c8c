package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toyboard/internal/app"
	"toyboard/internal/transport/http/response"
)

type CommentHandler struct {
	commentService *app.CommentService
}

type CreateCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	Nickname string `json:"nickname" binding:"max=64"`
	Password string `json:"password" binding:"max=72"`
}

type UpdateCommentRequest struct {
	Content  string `json:"content"`
	Password string `json:"password" binding:"max=72"`
}

func NewCommentHandler(commentService *app.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List serves GET /boards/:id/comments.
func (h *CommentHandler) List(c *gin.Context) {
	boardID, ok := parseID(c)
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(c.Request.Context(), boardID)
	if err != nil {
		writeError(c, err, "list comments failed")
		return
	}
	response.OK(c, comments)
}

// Create serves POST /boards/:id/comments.
func (h *CommentHandler) Create(c *gin.Context) {
	boardID, ok := parseID(c)
	if !ok {
		return
	}
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	id, err := h.commentService.CreateComment(c.Request.Context(), app.CreateCommentInput{
		BoardID:  boardID,
		Caller:   callerFrom(c, req.Password),
		Content:  req.Content,
		Nickname: req.Nickname,
	})
	if err != nil {
		writeError(c, err, "create comment failed")
		return
	}
	response.Created(c, gin.H{"id": id})
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	err := h.commentService.UpdateComment(c.Request.Context(), app.UpdateCommentInput{
		ID:      id,
		Caller:  callerFrom(c, req.Password),
		Content: req.Content,
	})
	if err != nil {
		writeError(c, err, "update comment failed")
		return
	}
	response.OK(c, gin.H{"id": id})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req DeleteRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	err := h.commentService.DeleteComment(c.Request.Context(), app.DeleteCommentInput{
		ID:     id,
		Caller: callerFrom(c, req.Password),
	})
	if err != nil {
		writeError(c, err, "delete comment failed")
		return
	}
	response.OK(c, gin.H{"id": id})
}
