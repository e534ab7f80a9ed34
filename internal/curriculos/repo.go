package curriculos

import "context"

// Repo stores résumé records.
type Repo interface {
	GetByUser(ctx context.Context, userID string) (Curriculo, error)
	GetByPath(ctx context.Context, userID, filePath string) (Curriculo, error)
	Upsert(ctx context.Context, curriculo Curriculo) (Curriculo, error)
	DeleteByUser(ctx context.Context, userID string) error
}
