package chunkstore

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/service"
)

func newTestAssembler(t *testing.T) (*Assembler, *Store) {
	t.Helper()
	store := newTestStore(t)
	return NewAssembler(store.Dir(), store), store
}

func TestAssembler_Assemble(t *testing.T) {
	assembler, store := newTestAssembler(t)

	require.NoError(t, store.Put("song.mp3", 0, 3, strings.NewReader("AAA")))
	require.NoError(t, store.Put("song.mp3", 1, 3, strings.NewReader("BBB")))
	require.NoError(t, store.Put("song.mp3", 2, 3, strings.NewReader("CCC")))

	path, err := assembler.Assemble("song.mp3", 3)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "AAABBBCCC", string(data))

	// 取り込み済みフラグメントは削除されている
	assert.Zero(t, store.CountFragments("song.mp3", 3))
}

func TestAssembler_SingleFragment(t *testing.T) {
	assembler, store := newTestAssembler(t)

	require.NoError(t, store.Put("solo.mp3", 0, 1, strings.NewReader("ONLY")))

	path, err := assembler.Assemble("solo.mp3", 1)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ONLY", string(data))
}

func TestAssembler_MissingFragmentAborts(t *testing.T) {
	assembler, store := newTestAssembler(t)

	// index 1が欠落した状態で結合を試みる
	require.NoError(t, store.Put("song.mp3", 0, 3, strings.NewReader("AAA")))
	require.NoError(t, store.Put("song.mp3", 2, 3, strings.NewReader("CCC")))

	_, err := assembler.Assemble("song.mp3", 3)
	require.Error(t, err)

	var missing *service.MissingFragmentError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, 1, missing.Index)

	// 書きかけの結合ファイルは残らない
	_, statErr := os.Stat(store.Dir() + "/song.mp3")
	assert.True(t, os.IsNotExist(statErr))
}

func TestAssembler_ReportsFirstMissingIndex(t *testing.T) {
	assembler, store := newTestAssembler(t)

	// index 0と2が両方欠落している場合、最初の欠落indexを報告する
	require.NoError(t, store.Put("song.mp3", 1, 3, strings.NewReader("BBB")))

	_, err := assembler.Assemble("song.mp3", 3)
	require.Error(t, err)

	var missing *service.MissingFragmentError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, 0, missing.Index)
}

func TestAssembler_RemoveAssembled(t *testing.T) {
	assembler, store := newTestAssembler(t)

	require.NoError(t, store.Put("song.mp3", 0, 1, strings.NewReader("AAA")))

	path, err := assembler.Assemble("song.mp3", 1)
	require.NoError(t, err)

	assembler.RemoveAssembled(path)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
