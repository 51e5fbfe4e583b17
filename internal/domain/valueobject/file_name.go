package valueobject

import (
	"errors"
	"strings"
)

const maxFileNameLength = 255

var (
	ErrEmptyFileName   = errors.New("file name must not be empty")
	ErrInvalidFileName = errors.New("file name contains invalid characters")
	ErrFileNameTooLong = errors.New("file name is too long")
)

// FileName はアップロードファイル名の値オブジェクトです
// チャンクの一時ファイルパスにそのまま使われるため、パス区切り文字を拒否します
type FileName struct {
	value string
}

// NewFileName はファイル名を検証してFileNameを作成します
func NewFileName(name string) (FileName, error) {
	if name == "" {
		return FileName{}, ErrEmptyFileName
	}
	if len(name) > maxFileNameLength {
		return FileName{}, ErrFileNameTooLong
	}
	if strings.ContainsAny(name, `/\`) {
		return FileName{}, ErrInvalidFileName
	}
	if name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return FileName{}, ErrInvalidFileName
	}
	return FileName{value: name}, nil
}

// String はファイル名文字列を返します
func (f FileName) String() string {
	return f.value
}

// IsZero は未初期化かどうかを判定します
func (f FileName) IsZero() bool {
	return f.value == ""
}
