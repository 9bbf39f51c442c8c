package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"toyboard/internal/app"
	"toyboard/internal/search"
	"toyboard/internal/transport/http/middleware"
	"toyboard/internal/transport/http/response"
)

type BoardHandler struct {
	boardService *app.BoardService
	queryService *app.BoardQueryService
	pages        PageOptions
}

// CreateBoardRequest needs Nickname and Password only from anonymous
// writers; members are identified by their token.
type CreateBoardRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Content  string `json:"content" binding:"required"`
	Nickname string `json:"nickname" binding:"max=64"`
	Password string `json:"password" binding:"max=72"`
}

type UpdateBoardRequest struct {
	Title    string `json:"title" binding:"max=200"`
	Content  string `json:"content"`
	Password string `json:"password" binding:"max=72"`
}

type DeleteRequest struct {
	Password string `json:"password" binding:"max=72"`
}

func NewBoardHandler(boardService *app.BoardService, queryService *app.BoardQueryService, pages PageOptions) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
		queryService: queryService,
		pages:        pages,
	}
}

func (h *BoardHandler) List(c *gin.Context) {
	page, ok := parsePage(c, h.pages)
	if !ok {
		return
	}

	result, err := h.queryService.ListBoards(c.Request.Context(), page)
	if err != nil {
		writeError(c, err, "list boards failed")
		return
	}
	response.OK(c, result)
}

func (h *BoardHandler) Search(c *gin.Context) {
	page, ok := parsePage(c, h.pages)
	if !ok {
		return
	}
	isAsc, ok := parseIsAsc(c)
	if !ok {
		return
	}

	cond := search.BoardCondition{
		Nickname: c.Query("nickname"),
		Title:    c.Query("title"),
		Content:  c.Query("content"),
		IsAsc:    isAsc,
	}
	if raw := c.Query("member_id"); raw != "" {
		memberID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid member_id")
			return
		}
		cond.MemberID = uint(memberID)
	}

	result, err := h.queryService.SearchBoards(c.Request.Context(), cond, page)
	if err != nil {
		writeError(c, err, "search boards failed")
		return
	}
	response.OK(c, result)
}

func (h *BoardHandler) Create(c *gin.Context) {
	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	id, err := h.boardService.CreateBoard(c.Request.Context(), app.CreateBoardInput{
		Caller:   callerFrom(c, req.Password),
		Title:    req.Title,
		Content:  req.Content,
		Nickname: req.Nickname,
	})
	if err != nil {
		writeError(c, err, "create board failed")
		return
	}
	response.Created(c, gin.H{"id": id})
}

func (h *BoardHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	viewerID, _ := middleware.MemberID(c)

	detail, err := h.boardService.GetBoard(c.Request.Context(), id, viewerID)
	if err != nil {
		writeError(c, err, "fetch board failed")
		return
	}
	response.OK(c, detail)
}

func (h *BoardHandler) IsAnonymous(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	anonymous, err := h.queryService.IsAnonymousPost(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "fetch board failed")
		return
	}
	response.OK(c, gin.H{"id": id, "anonymous": anonymous})
}

func (h *BoardHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	err := h.boardService.UpdateBoard(c.Request.Context(), app.UpdateBoardInput{
		ID:      id,
		Caller:  callerFrom(c, req.Password),
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		writeError(c, err, "update board failed")
		return
	}
	response.OK(c, gin.H{"id": id})
}

func (h *BoardHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req DeleteRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	err := h.boardService.DeleteBoard(c.Request.Context(), app.DeleteBoardInput{
		ID:     id,
		Caller: callerFrom(c, req.Password),
	})
	if err != nil {
		writeError(c, err, "delete board failed")
		return
	}
	response.OK(c, gin.H{"id": id})
}
