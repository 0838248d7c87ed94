package models

// Типы контентных блоков статьи.
const (
	BlockTypeText  = "text"
	BlockTypeImage = "image"
	BlockTypeVideo = "video"
)

// Article представляет статью базы знаний с упорядоченным списком блоков.
type Article struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Category    string         `json:"category"`
	Blocks      []ArticleBlock `json:"blocks_data"`
}

// ArticleShort краткая форма статьи для списков.
type ArticleShort struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// ArticleBlock типизированный блок контента. Position уникальна внутри статьи.
type ArticleBlock struct {
	ID        int    `json:"id"`
	ArticleID int    `json:"-"`
	BlockType string `json:"block_type"`
	Content   string `json:"content"`
	Position  int    `json:"position"`
}

// DummyBlock используется для приёма блока из JSON-запроса.
type DummyBlock struct {
	BlockType string `json:"block_type" validate:"required,oneof=text image video"`
	Content   string `json:"content" validate:"required"`
	Position  int    `json:"position" validate:"gte=0"`
}

// DummyArticle используется для приёма новой статьи из JSON-запроса.
type DummyArticle struct {
	Title       string       `json:"title" validate:"required"`
	Description *string      `json:"description,omitempty"`
	Category    string       `json:"category" validate:"required"`
	Blocks      []DummyBlock `json:"blocks_data" validate:"dive"`
}

// ArticleInfoUpdate частичное обновление заголовка, описания и категории статьи.
type ArticleInfoUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// DummyBlocksUpdate полный новый список блоков статьи.
type DummyBlocksUpdate struct {
	Blocks []DummyBlock `json:"blocks_data" validate:"required,dive"`
}
