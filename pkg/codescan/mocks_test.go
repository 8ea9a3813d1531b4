package codescan

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRemoteClient is a mock implementation of RemoteClient for testing
type MockRemoteClient struct {
	mock.Mock
}

func (m *MockRemoteClient) RepoMetadata(ctx context.Context, owner, name string) (*RepoMetadata, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RepoMetadata), args.Error(1)
}

func (m *MockRemoteClient) RepoLanguages(ctx context.Context, owner, name string) (map[string]int64, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockRemoteClient) ListAnalyses(ctx context.Context, owner, name, ref string) ([]byte, error) {
	args := m.Called(ctx, owner, name, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRemoteClient) DeleteAnalysis(ctx context.Context, owner, name string, id int64) (*DeleteResponse, error) {
	args := m.Called(ctx, owner, name, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DeleteResponse), args.Error(1)
}

func (m *MockRemoteClient) ListAlerts(ctx context.Context, owner, name string) ([]byte, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockGitClient is a mock implementation of GitClient for testing
type MockGitClient struct {
	mock.Mock
}

func (m *MockGitClient) Clone(ctx context.Context, url, dir string) error {
	args := m.Called(ctx, url, dir)
	return args.Error(0)
}

func (m *MockGitClient) CheckoutNewBranch(ctx context.Context, dir, branch string) error {
	args := m.Called(ctx, dir, branch)
	return args.Error(0)
}

func (m *MockGitClient) Add(ctx context.Context, dir, path string) error {
	args := m.Called(ctx, dir, path)
	return args.Error(0)
}

func (m *MockGitClient) Commit(ctx context.Context, dir, message string) error {
	args := m.Called(ctx, dir, message)
	return args.Error(0)
}

func (m *MockGitClient) Push(ctx context.Context, dir, remote, branch string) error {
	args := m.Called(ctx, dir, remote, branch)
	return args.Error(0)
}

// MockChangeRequester is a mock implementation of ChangeRequester for testing
type MockChangeRequester struct {
	mock.Mock
}

func (m *MockChangeRequester) CreatePullRequest(ctx context.Context, owner, name, head, base, title, body string) error {
	args := m.Called(ctx, owner, name, head, base, title, body)
	return args.Error(0)
}
