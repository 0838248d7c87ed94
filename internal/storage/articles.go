package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mashagrib/knowledge-base/internal/models"
)

// CreateArticle сохраняет статью вместе с блоками в одной транзакции
// и возвращает ID статьи.
func (s *Storage) CreateArticle(ctx context.Context, article models.Article) (int, error) {
	const op = "storage.CreateArticle"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var articleID int
	query := `INSERT INTO articles (title, description, category)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	if err = tx.QueryRowContext(ctx, query,
		article.Title, article.Description, article.Category).Scan(&articleID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	for _, block := range article.Blocks {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO article_blocks (article_id, block_type, content, position)
			 VALUES ($1, $2, $3, $4)`,
			articleID, block.BlockType, block.Content, block.Position)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return articleID, nil
}

// GetArticle возвращает статью с блоками, упорядоченными по позиции.
func (s *Storage) GetArticle(ctx context.Context, id int) (*models.Article, error) {
	const op = "storage.GetArticle"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	article := &models.Article{}
	query := `SELECT id, title, description, category FROM articles WHERE id = $1`
	var description sql.NullString
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.Title, &description, &article.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if description.Valid {
		article.Description = &description.String
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, article_id, block_type, content, position
		 FROM article_blocks
		 WHERE article_id = $1
		 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var block models.ArticleBlock
		if err = rows.Scan(&block.ID, &block.ArticleID, &block.BlockType,
			&block.Content, &block.Position); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		article.Blocks = append(article.Blocks, block)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return article, nil
}

// ListArticlesByCategory возвращает краткие формы статей категории с пагинацией.
func (s *Storage) ListArticlesByCategory(ctx context.Context, category string, limit, offset int) ([]*models.ArticleShort, error) {
	const op = "storage.ListArticlesByCategory"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description
			  FROM articles
			  WHERE category = $1
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, category, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ArticleShort
	for rows.Next() {
		var item models.ArticleShort
		var description sql.NullString
		if err = rows.Scan(&item.ID, &item.Title, &description); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if description.Valid {
			item.Description = &description.String
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateArticleInfo применяет частичное обновление заголовка, описания и категории.
func (s *Storage) UpdateArticleInfo(ctx context.Context, id int, upd models.ArticleInfoUpdate) error {
	const op = "storage.UpdateArticleInfo"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE articles
			  SET title = COALESCE($1, title),
			      description = COALESCE($2, description),
			      category = COALESCE($3, category)
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, upd.Title, upd.Description, upd.Category, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// ReplaceArticleBlocks заменяет все блоки статьи новым списком в одной транзакции.
func (s *Storage) ReplaceArticleBlocks(ctx context.Context, articleID int, blocks []models.ArticleBlock) error {
	const op = "storage.ReplaceArticleBlocks"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists bool
	if err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM articles WHERE id = $1)`, articleID).Scan(&exists); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM article_blocks WHERE article_id = $1`, articleID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, block := range blocks {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO article_blocks (article_id, block_type, content, position)
			 VALUES ($1, $2, $3, $4)`,
			articleID, block.BlockType, block.Content, block.Position)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateArticleBlock обновляет один блок и возвращает его итоговое состояние.
func (s *Storage) UpdateArticleBlock(ctx context.Context, blockID int, block models.ArticleBlock) (*models.ArticleBlock, error) {
	const op = "storage.UpdateArticleBlock"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE article_blocks
			  SET block_type = $1, content = $2, position = $3
			  WHERE id = $4
			  RETURNING id, article_id, block_type, content, position`
	var updated models.ArticleBlock
	err := s.DB.QueryRowContext(ctx, query,
		block.BlockType, block.Content, block.Position, blockID).Scan(
		&updated.ID, &updated.ArticleID, &updated.BlockType, &updated.Content, &updated.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &updated, nil
}

// DeleteArticle удаляет статью, блоки удаляются каскадно по внешнему ключу.
func (s *Storage) DeleteArticle(ctx context.Context, id int) error {
	const op = "storage.DeleteArticle"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
