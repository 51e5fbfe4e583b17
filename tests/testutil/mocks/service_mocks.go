package mocks

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/service"
)

// MockOAuthClient is a mock implementation of service.OAuthClient
type MockOAuthClient struct {
	mock.Mock
}

func NewMockOAuthClient(t *testing.T) *MockOAuthClient {
	m := &MockOAuthClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockOAuthClient) AuthorizeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockOAuthClient) ExchangeCode(ctx context.Context, code string) (*service.OAuthTokens, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OAuthTokens), args.Error(1)
}

func (m *MockOAuthClient) GetUserInfo(ctx context.Context, accessToken string) (*service.OAuthUserInfo, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OAuthUserInfo), args.Error(1)
}

// MockObjectHost is a mock implementation of service.ObjectHost
type MockObjectHost struct {
	mock.Mock
}

func NewMockObjectHost(t *testing.T) *MockObjectHost {
	m := &MockObjectHost{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockObjectHost) Upload(ctx context.Context, r io.Reader, name string) (*service.UploadResult, error) {
	args := m.Called(ctx, r, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

// MockChunkStore is a mock implementation of service.ChunkStore
type MockChunkStore struct {
	mock.Mock
}

func NewMockChunkStore(t *testing.T) *MockChunkStore {
	m := &MockChunkStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockChunkStore) EnsureReady() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockChunkStore) Put(name string, index, total int, r io.Reader) error {
	args := m.Called(name, index, total, r)
	return args.Error(0)
}

func (m *MockChunkStore) Open(name string, index int) (io.ReadCloser, error) {
	args := m.Called(name, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockChunkStore) Delete(name string, index int) {
	m.Called(name, index)
}

func (m *MockChunkStore) Claim(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockChunkStore) Release(name string) {
	m.Called(name)
}

func (m *MockChunkStore) RemoveMeta(name string) {
	m.Called(name)
}

func (m *MockChunkStore) SweepStale(olderThan time.Time) (int, error) {
	args := m.Called(olderThan)
	return args.Int(0), args.Error(1)
}

// MockChunkAssembler is a mock implementation of service.ChunkAssembler
type MockChunkAssembler struct {
	mock.Mock
}

func NewMockChunkAssembler(t *testing.T) *MockChunkAssembler {
	m := &MockChunkAssembler{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockChunkAssembler) Assemble(name string, total int) (string, error) {
	args := m.Called(name, total)
	return args.String(0), args.Error(1)
}

func (m *MockChunkAssembler) RemoveAssembled(path string) {
	m.Called(path)
}
