package api

import (
	"context"

	"github.com/danilomoraisgustavo/myworlds/internal/content"
	"github.com/danilomoraisgustavo/myworlds/internal/models"
	"github.com/danilomoraisgustavo/myworlds/internal/scheduler"
	"github.com/danilomoraisgustavo/myworlds/internal/storage"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateArticle(ctx context.Context, a *models.Article) error {
	args := m.Called(a)
	if args.Error(0) == nil {
		a.ID = "new-id"
	}
	return args.Error(0)
}

func (m *MockRepository) UpdateArticle(ctx context.Context, a *models.Article) (*models.Article, error) {
	args := m.Called(a)
	if v := args.Get(0); v != nil {
		return v.(*models.Article), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) DeleteArticle(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

func (m *MockRepository) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	args := m.Called(id)
	if v := args.Get(0); v != nil {
		return v.(*models.Article), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	args := m.Called(slug)
	if v := args.Get(0); v != nil {
		return v.(*models.Article), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ViewArticle(ctx context.Context, id string) (*models.Article, error) {
	args := m.Called(id)
	if v := args.Get(0); v != nil {
		return v.(*models.Article), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListArticles(ctx context.Context, f storage.ArticleFilter) ([]models.Article, error) {
	args := m.Called(f)
	if v := args.Get(0); v != nil {
		return v.([]models.Article), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) CreateTournament(ctx context.Context, t *models.Tournament) error {
	return m.Called(t).Error(0)
}

func (m *MockRepository) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	args := m.Called()
	if v := args.Get(0); v != nil {
		return v.([]models.Tournament), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetStats(ctx context.Context) (*storage.Stats, error) {
	args := m.Called()
	if v := args.Get(0); v != nil {
		return v.(*storage.Stats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Close(ctx context.Context) error {
	return m.Called().Error(0)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req content.Request) (*content.Result, error) {
	args := m.Called(req)
	if v := args.Get(0); v != nil {
		return v.(*content.Result), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockJobs struct {
	mock.Mock
}

func (m *MockJobs) GetJobStatus() []scheduler.JobStatus {
	return m.Called().Get(0).([]scheduler.JobStatus)
}

func (m *MockJobs) RunJobNow(name string) error {
	return m.Called(name).Error(0)
}
