package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/repository"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/database"
)

// AudioFileRepository はアップロードレコードリポジトリの実装です
type AudioFileRepository struct {
	*database.BaseRepository
}

// NewAudioFileRepository は新しいAudioFileRepositoryを作成します
func NewAudioFileRepository(txManager *database.TxManager) *AudioFileRepository {
	return &AudioFileRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// Create はアップロードレコードを作成します
func (r *AudioFileRepository) Create(ctx context.Context, file *entity.AudioFile) error {
	querier := r.Querier(ctx)

	_, err := querier.Exec(ctx, `
		INSERT INTO audio_files (id, owner_id, audio_link, title, private, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		file.ID, file.OwnerID, file.AudioLink, file.Title, file.Private, file.CreatedAt,
	)
	return r.HandleError(err)
}

// Update はタイトルと公開設定を更新します
func (r *AudioFileRepository) Update(ctx context.Context, file *entity.AudioFile) error {
	querier := r.Querier(ctx)

	tag, err := querier.Exec(ctx, `
		UPDATE audio_files
		SET title = $2, private = $3
		WHERE id = $1`,
		file.ID, file.Title, file.Private,
	)
	if err != nil {
		return r.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}

// FindByID はIDでレコードを検索します
func (r *AudioFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AudioFile, error) {
	querier := r.Querier(ctx)

	row := querier.QueryRow(ctx, `
		SELECT id, owner_id, audio_link, title, private, created_at
		FROM audio_files
		WHERE id = $1`,
		id,
	)
	return r.scanAudioFile(row)
}

// ListByOwner は指定ユーザーの全レコードを新しい順に返します
// 非公開を含むため、本人向けの一覧にのみ使用します
func (r *AudioFileRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.AudioFile, error) {
	return r.list(ctx, `
		SELECT id, owner_id, audio_link, title, private, created_at
		FROM audio_files
		WHERE owner_id = $1
		ORDER BY created_at DESC`,
		ownerID,
	)
}

// ListPublicByOwner は指定ユーザーの公開レコードを新しい順に返します
func (r *AudioFileRepository) ListPublicByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.AudioFile, error) {
	return r.list(ctx, `
		SELECT id, owner_id, audio_link, title, private, created_at
		FROM audio_files
		WHERE owner_id = $1 AND private = FALSE
		ORDER BY created_at DESC`,
		ownerID,
	)
}

// ListPublic は全ユーザーの公開レコードを新しい順に返します
func (r *AudioFileRepository) ListPublic(ctx context.Context, limit int) ([]*entity.AudioFile, error) {
	return r.list(ctx, `
		SELECT id, owner_id, audio_link, title, private, created_at
		FROM audio_files
		WHERE private = FALSE
		ORDER BY created_at DESC
		LIMIT $1`,
		limit,
	)
}

func (r *AudioFileRepository) list(ctx context.Context, sql string, args ...any) ([]*entity.AudioFile, error) {
	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, r.HandleError(err)
	}
	defer rows.Close()

	files := make([]*entity.AudioFile, 0)
	for rows.Next() {
		file, err := r.scanAudioFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, r.HandleError(err)
	}
	return files, nil
}

// scanAudioFile は1行をエンティティへ復元します
func (r *AudioFileRepository) scanAudioFile(row interface{ Scan(dest ...any) error }) (*entity.AudioFile, error) {
	var file entity.AudioFile
	err := row.Scan(
		&file.ID,
		&file.OwnerID,
		&file.AudioLink,
		&file.Title,
		&file.Private,
		&file.CreatedAt,
	)
	if err != nil {
		return nil, r.HandleError(err)
	}
	return &file, nil
}

// インターフェースの実装を保証
var _ repository.AudioFileRepository = (*AudioFileRepository)(nil)
