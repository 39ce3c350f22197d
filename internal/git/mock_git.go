package git

import "context"

// MockClient is a stand-in for Client in tests of packages that depend on git.
type MockClient struct {
	LatestCommitFn func(ctx context.Context, ref string) (string, error)
	WordDiffFn     func(ctx context.Context, base, head, path string) (string, error)
}

// LatestCommit implements the commit lookup used by revision resolution.
func (m *MockClient) LatestCommit(ctx context.Context, ref string) (string, error) {
	if m.LatestCommitFn != nil {
		return m.LatestCommitFn(ctx, ref)
	}
	return "", nil
}

// WordDiff implements the diff provider used by version change detection.
func (m *MockClient) WordDiff(ctx context.Context, base, head, path string) (string, error) {
	if m.WordDiffFn != nil {
		return m.WordDiffFn(ctx, base, head, path)
	}
	return "", nil
}
