package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"heaven-palace/services"
	"heaven-palace/utils"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type CatalogSource struct {
	mock.Mock
}

func NewCatalogSource(t testingT) *CatalogSource {
	m := &CatalogSource{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CatalogSource) Catalog(ctx context.Context) (services.Catalog, error) {
	args := m.Called(ctx)
	return args.Get(0).(services.Catalog), args.Error(1)
}

type Notifier struct {
	mock.Mock
}

func NewNotifier(t testingT) *Notifier {
	m := &Notifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Notifier) Send(ctx context.Context, msg utils.Email) error {
	return m.Called(ctx, msg).Error(0)
}

type SubmissionGuard struct {
	mock.Mock
}

func NewSubmissionGuard(t testingT) *SubmissionGuard {
	m := &SubmissionGuard{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SubmissionGuard) Acquire(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *SubmissionGuard) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type TemplateRenderer struct {
	mock.Mock
}

func NewTemplateRenderer(t testingT) *TemplateRenderer {
	m := &TemplateRenderer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TemplateRenderer) Render(ctx context.Context, key string, data map[string]any) (utils.Email, error) {
	args := m.Called(ctx, key, data)
	return args.Get(0).(utils.Email), args.Error(1)
}

type FileStore struct {
	mock.Mock
}

func NewFileStore(t testingT) *FileStore {
	m := &FileStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *FileStore) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, folder, filename, r)
	return args.String(0), args.Error(1)
}
