package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toyboard/internal/app"
	"toyboard/internal/search"
	"toyboard/internal/transport/http/middleware"
	"toyboard/internal/transport/http/response"
)

type MemberHandler struct {
	memberService *app.MemberService
	pages         PageOptions
}

type JoinRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=72"`
}

func NewMemberHandler(memberService *app.MemberService, pages PageOptions) *MemberHandler {
	return &MemberHandler{memberService: memberService, pages: pages}
}

func (h *MemberHandler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	id, err := h.memberService.Join(c.Request.Context(), app.JoinInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err, "join failed")
		return
	}

	response.Created(c, gin.H{"id": id})
}

func (h *MemberHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.memberService.Login(c.Request.Context(), app.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err, "login failed")
		return
	}

	response.OK(c, gin.H{
		"token":  result.Token,
		"member": result.Member,
	})
}

func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	member, err := h.memberService.GetMember(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "fetch member failed")
		return
	}
	response.OK(c, member)
}

func (h *MemberHandler) Search(c *gin.Context) {
	page, ok := parsePage(c, h.pages)
	if !ok {
		return
	}
	isAsc, ok := parseIsAsc(c)
	if !ok {
		return
	}

	result, err := h.memberService.SearchMembers(c.Request.Context(), search.MemberCondition{
		Username: c.Query("username"),
		IsAsc:    isAsc,
	}, page)
	if err != nil {
		writeError(c, err, "search members failed")
		return
	}
	response.OK(c, result)
}

// Withdraw removes the authenticated member with everything they wrote.
func (h *MemberHandler) Withdraw(c *gin.Context) {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	if err := h.memberService.Withdraw(c.Request.Context(), memberID); err != nil {
		writeError(c, err, "withdraw failed")
		return
	}
	response.OK(c, gin.H{"id": memberID})
}
