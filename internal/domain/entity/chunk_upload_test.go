package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/valueobject"
)

func newTestChunkUpload(t *testing.T, total int) *ChunkUpload {
	t.Helper()
	name, err := valueobject.NewFileName("song.mp3")
	require.NoError(t, err)
	cu, err := NewChunkUpload(name, total)
	require.NoError(t, err)
	return cu
}

func TestNewChunkUpload_InvalidTotal(t *testing.T) {
	name, err := valueobject.NewFileName("song.mp3")
	require.NoError(t, err)

	_, err = NewChunkUpload(name, 0)
	assert.ErrorIs(t, err, ErrInvalidTotalChunks)

	_, err = NewChunkUpload(name, -1)
	assert.ErrorIs(t, err, ErrInvalidTotalChunks)
}

func TestChunkUpload_ValidateIndex(t *testing.T) {
	cu := newTestChunkUpload(t, 3)

	assert.NoError(t, cu.ValidateIndex(0))
	assert.NoError(t, cu.ValidateIndex(2))
	assert.ErrorIs(t, cu.ValidateIndex(-1), ErrChunkIndexOutOfRange)
	assert.ErrorIs(t, cu.ValidateIndex(3), ErrChunkIndexOutOfRange)
}

func TestChunkUpload_IsFinalIndex(t *testing.T) {
	cu := newTestChunkUpload(t, 3)

	assert.False(t, cu.IsFinalIndex(0))
	assert.False(t, cu.IsFinalIndex(1))
	assert.True(t, cu.IsFinalIndex(2))
}

func TestChunkUpload_Lifecycle(t *testing.T) {
	cu := newTestChunkUpload(t, 2)
	assert.Equal(t, ChunkUploadStatusAwaiting, cu.Status)

	require.NoError(t, cu.RecordFragment(0))
	require.NoError(t, cu.RecordFragment(1))
	assert.Equal(t, 2, cu.Received)

	require.NoError(t, cu.BeginFinalize())
	assert.Equal(t, ChunkUploadStatusFinalizing, cu.Status)

	// finalizing中はフラグメントを受け付けない
	assert.ErrorIs(t, cu.RecordFragment(0), ErrChunkUploadNotAwaiting)

	require.NoError(t, cu.Complete())
	assert.True(t, cu.IsComplete())

	// 終端状態からの再開は拒否される
	assert.ErrorIs(t, cu.BeginFinalize(), ErrChunkUploadFinalized)
}

func TestChunkUpload_Fail(t *testing.T) {
	cu := newTestChunkUpload(t, 2)

	require.NoError(t, cu.BeginFinalize())
	cu.Fail()

	assert.Equal(t, ChunkUploadStatusFailed, cu.Status)
	assert.ErrorIs(t, cu.BeginFinalize(), ErrChunkUploadFinalized)
}
