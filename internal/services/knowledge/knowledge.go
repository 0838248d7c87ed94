// Package knowledge содержит бизнес-логику базы знаний: операции над
// статьями и их блоками поверх хранилища с кэшированием чтений в Redis.
package knowledge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mashagrib/knowledge-base/internal/lib/sl"
	"github.com/mashagrib/knowledge-base/internal/models"
)

// articleCacheTTL время жизни закэшированной статьи.
const articleCacheTTL = 5 * time.Minute

// ArticleRepository описывает контракт хранилища статей.
type ArticleRepository interface {
	CreateArticle(ctx context.Context, article models.Article) (int, error)
	GetArticle(ctx context.Context, id int) (*models.Article, error)
	ListArticlesByCategory(ctx context.Context, category string, limit, offset int) ([]*models.ArticleShort, error)
	UpdateArticleInfo(ctx context.Context, id int, upd models.ArticleInfoUpdate) error
	ReplaceArticleBlocks(ctx context.Context, articleID int, blocks []models.ArticleBlock) error
	UpdateArticleBlock(ctx context.Context, blockID int, block models.ArticleBlock) (*models.ArticleBlock, error)
	DeleteArticle(ctx context.Context, id int) error
}

// Cache контракт кэша прочитанных статей.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// KnowledgeService реализует операции над статьями базы знаний.
type KnowledgeService struct {
	repo  ArticleRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр KnowledgeService.
func New(repo ArticleRepository, cache Cache, log *slog.Logger) *KnowledgeService {
	return &KnowledgeService{repo: repo, cache: cache, log: log}
}

func articleCacheKey(id int) string {
	return fmt.Sprintf("article:%d", id)
}

// Create сохраняет новую статью с блоками и возвращает её ID.
func (s *KnowledgeService) Create(ctx context.Context, req models.DummyArticle) (int, error) {
	const op = "services.knowledge.Create"
	article := models.Article{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	for _, b := range req.Blocks {
		article.Blocks = append(article.Blocks, models.ArticleBlock{
			BlockType: b.BlockType,
			Content:   b.Content,
			Position:  b.Position,
		})
	}
	id, err := s.repo.CreateArticle(ctx, article)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Get возвращает статью по ID, сперва заглядывая в кэш.
// Ошибки кэша не фатальны, чтение уходит в хранилище.
func (s *KnowledgeService) Get(ctx context.Context, id int) (*models.Article, error) {
	const op = "services.knowledge.Get"

	key := articleCacheKey(id)
	var cached models.Article
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Error("article cache read failed", sl.Err(err))
	}
	if hit {
		return &cached, nil
	}

	article, err := s.repo.GetArticle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.cache.Set(ctx, key, article, articleCacheTTL); err != nil {
		s.log.Error("article cache write failed", sl.Err(err))
	}
	return article, nil
}

// ListByCategory возвращает краткие формы статей категории.
func (s *KnowledgeService) ListByCategory(ctx context.Context, category string, limit, offset int) ([]*models.ArticleShort, error) {
	const op = "services.knowledge.ListByCategory"
	articles, err := s.repo.ListArticlesByCategory(ctx, category, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return articles, nil
}

// UpdateInfo обновляет заголовок, описание и категорию статьи.
func (s *KnowledgeService) UpdateInfo(ctx context.Context, id int, upd models.ArticleInfoUpdate) error {
	const op = "services.knowledge.UpdateInfo"
	if err := s.repo.UpdateArticleInfo(ctx, id, upd); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, id)
	return nil
}

// ReplaceBlocks заменяет все блоки статьи новым списком.
func (s *KnowledgeService) ReplaceBlocks(ctx context.Context, articleID int, req models.DummyBlocksUpdate) error {
	const op = "services.knowledge.ReplaceBlocks"
	blocks := make([]models.ArticleBlock, 0, len(req.Blocks))
	for _, b := range req.Blocks {
		blocks = append(blocks, models.ArticleBlock{
			BlockType: b.BlockType,
			Content:   b.Content,
			Position:  b.Position,
		})
	}
	if err := s.repo.ReplaceArticleBlocks(ctx, articleID, blocks); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, articleID)
	return nil
}

// UpdateBlock обновляет один блок и возвращает его итоговое состояние.
func (s *KnowledgeService) UpdateBlock(ctx context.Context, blockID int, req models.DummyBlock) (*models.ArticleBlock, error) {
	const op = "services.knowledge.UpdateBlock"
	updated, err := s.repo.UpdateArticleBlock(ctx, blockID, models.ArticleBlock{
		BlockType: req.BlockType,
		Content:   req.Content,
		Position:  req.Position,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, updated.ArticleID)
	return updated, nil
}

// Remove удаляет статью вместе с блоками.
func (s *KnowledgeService) Remove(ctx context.Context, id int) error {
	const op = "services.knowledge.Remove"
	if err := s.repo.DeleteArticle(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *KnowledgeService) invalidate(ctx context.Context, articleID int) {
	if err := s.cache.Invalidate(ctx, articleCacheKey(articleID)); err != nil {
		s.log.Error("article cache invalidation failed", sl.Err(err))
	}
}
