package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"toyboard/internal/model"
	"toyboard/internal/search"
)

var boardColumns = map[search.Field]string{
	search.FieldNickname:  "boards.nickname",
	search.FieldTitle:     "boards.title",
	search.FieldContent:   "boards.content",
	search.FieldMemberID:  "boards.member_id",
	search.FieldCreatedAt: "boards.created_at",
}

const boardSummaryColumns = "boards.id, boards.title, boards.nickname, boards.member_id, boards.views, " +
	"COUNT(comments.id) AS comment_count, boards.created_at, boards.updated_at"

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(board *model.Board) error {
	if err := r.db.Create(board).Error; err != nil {
		return fmt.Errorf("create board failed: %w", err)
	}
	return nil
}

func (r *BoardRepository) GetByID(id uint) (*model.Board, error) {
	var board model.Board
	if err := r.db.First(&board, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get board failed: %w", err)
	}
	return &board, nil
}

func (r *BoardRepository) IsAnonymous(id uint) (bool, bool, error) {
	var row struct {
		Anonymous bool
	}
	res := r.db.Model(&model.Board{}).
		Select("password_hash IS NOT NULL AS anonymous").
		Where("id = ?", id).
		Scan(&row)
	if res.Error != nil {
		return false, false, fmt.Errorf("query board password flag failed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, false, nil
	}
	return row.Anonymous, true, nil
}

func (r *BoardRepository) UpdateText(id uint, title, content string) error {
	err := r.db.Model(&model.Board{ID: id}).Updates(map[string]interface{}{
		"title":   title,
		"content": content,
	}).Error
	if err != nil {
		return fmt.Errorf("update board failed: %w", err)
	}
	return nil
}

// IncrementViews bumps the counter in place without touching updated_at.
func (r *BoardRepository) IncrementViews(id uint) error {
	err := r.db.Model(&model.Board{ID: id}).UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("increment board views failed: %w", err)
	}
	return nil
}

func (r *BoardRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Board{}, id).Error; err != nil {
		return fmt.Errorf("delete board failed: %w", err)
	}
	return nil
}

// DeleteByMemberID removes a member's boards. Comments on them must be
// deleted first.
func (r *BoardRepository) DeleteByMemberID(memberID uint) error {
	if err := r.db.Where("member_id = ?", memberID).Delete(&model.Board{}).Error; err != nil {
		return fmt.Errorf("delete boards by member failed: %w", err)
	}
	return nil
}

func (r *BoardRepository) ListIDsByMemberID(memberID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&model.Board{}).Where("member_id = ?", memberID).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list board ids by member failed: %w", err)
	}
	return ids, nil
}

func (r *BoardRepository) Summaries(filter search.Filter, page search.Page) (search.Result[model.BoardSummary], error) {
	var total int64
	if err := applyFilter(r.db.Model(&model.Board{}), boardColumns, filter).Count(&total).Error; err != nil {
		return search.Result[model.BoardSummary]{}, fmt.Errorf("count boards failed: %w", err)
	}
	if total == 0 {
		return search.NewResult[model.BoardSummary](nil, 0, page), nil
	}

	var rows []model.BoardSummary
	if err := r.summaryQuery(filter, page).Scan(&rows).Error; err != nil {
		return search.Result[model.BoardSummary]{}, fmt.Errorf("list boards failed: %w", err)
	}
	return search.NewResult(rows, total, page), nil
}

func (r *BoardRepository) summaryQuery(filter search.Filter, page search.Page) *gorm.DB {
	q := r.db.Model(&model.Board{}).
		Select(boardSummaryColumns).
		Joins("LEFT JOIN comments ON comments.board_id = boards.id")
	return applyFilter(q, boardColumns, filter).
		Group("boards.id").
		Order(orderClause(boardColumns, filter.Order, "boards.id")).
		Limit(page.Size).
		Offset(page.Offset())
}
