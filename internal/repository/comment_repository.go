package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"toyboard/internal/model"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comment failed: %w", err)
	}
	return &comment, nil
}

func (r *CommentRepository) ListByBoardID(boardID uint) ([]model.Comment, error) {
	var comments []model.Comment
	if err := r.db.Where("board_id = ?", boardID).Order("created_at ASC, id ASC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	return comments, nil
}

func (r *CommentRepository) UpdateContent(id uint, content string) error {
	if err := r.db.Model(&model.Comment{ID: id}).Update("content", content).Error; err != nil {
		return fmt.Errorf("update comment failed: %w", err)
	}
	return nil
}

func (r *CommentRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Comment{}, id).Error; err != nil {
		return fmt.Errorf("delete comment failed: %w", err)
	}
	return nil
}

func (r *CommentRepository) DeleteByBoardID(boardID uint) error {
	if err := r.db.Where("board_id = ?", boardID).Delete(&model.Comment{}).Error; err != nil {
		return fmt.Errorf("delete comments by board failed: %w", err)
	}
	return nil
}

func (r *CommentRepository) DeleteByBoardIDs(boardIDs []uint) error {
	if len(boardIDs) == 0 {
		return nil
	}
	if err := r.db.Where("board_id IN ?", boardIDs).Delete(&model.Comment{}).Error; err != nil {
		return fmt.Errorf("delete comments by boards failed: %w", err)
	}
	return nil
}

func (r *CommentRepository) DeleteByMemberID(memberID uint) error {
	if err := r.db.Where("member_id = ?", memberID).Delete(&model.Comment{}).Error; err != nil {
		return fmt.Errorf("delete comments by member failed: %w", err)
	}
	return nil
}
