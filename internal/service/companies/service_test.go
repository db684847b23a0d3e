package companies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	companyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/company"
	"github.com/m04kA/SMC-AppointmentService/internal/service/companies/models"
)

type fakeCompanyRepo struct {
	companies map[int64]*domain.Company
	nextID    int64
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[int64]*domain.Company)}
}

func (f *fakeCompanyRepo) Create(_ context.Context, company *domain.Company) (*domain.Company, error) {
	f.nextID++
	created := *company
	created.ID = f.nextID
	f.companies[created.ID] = &created
	return &created, nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id int64) (*domain.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, companyRepo.ErrCompanyNotFound
	}
	return c, nil
}

func (f *fakeCompanyRepo) GetByLink(_ context.Context, link string) (*domain.Company, error) {
	for _, c := range f.companies {
		if c.Link == link {
			return c, nil
		}
	}
	return nil, companyRepo.ErrCompanyNotFound
}

func (f *fakeCompanyRepo) LinkExists(_ context.Context, link string) (bool, error) {
	_, err := f.GetByLink(context.Background(), link)
	return err == nil, nil
}

type fakeCatalogRepo struct {
	categories []*domain.Category
}

func (f *fakeCatalogRepo) CreateCategory(_ context.Context, category *domain.Category) (*domain.Category, error) {
	created := *category
	created.ID = int64(len(f.categories) + 1)
	f.categories = append(f.categories, &created)
	return &created, nil
}

type fakeHoursCreator struct {
	companyIDs []int64
}

func (f *fakeHoursCreator) CreateDefaultWorkingHours(_ context.Context, companyID int64) error {
	f.companyIDs = append(f.companyIDs, companyID)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeCompanyRepo, *fakeCatalogRepo, *fakeHoursCreator) {
	companies := newFakeCompanyRepo()
	catalog := &fakeCatalogRepo{}
	hours := &fakeHoursCreator{}
	svc := NewService(companies, catalog, hours, fakeTxManager{}, nopLogger{})
	return svc, companies, catalog, hours
}

func TestCreate(t *testing.T) {
	svc, _, catalog, hours := newTestService()

	resp, err := svc.Create(context.Background(), &models.CreateCompanyRequest{
		Name:  "Beauty Studio",
		Email: "studio@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "beauty-studio", resp.Link)
	assert.Equal(t, domain.DefaultServiceIntervalMinutes, resp.IntervalBetweenAppointments)

	// Вместе с компанией создаются стандартные часы и базовая категория
	assert.Equal(t, []int64{resp.ID}, hours.companyIDs)
	require.Len(t, catalog.categories, 1)
	assert.Equal(t, domain.DefaultCategoryName, catalog.categories[0].Name)
	assert.Equal(t, resp.ID, catalog.categories[0].CompanyID)
}

func TestCreate_LinkCollision(t *testing.T) {
	svc, _, _, _ := newTestService()

	first, err := svc.Create(context.Background(), &models.CreateCompanyRequest{
		Name:  "Beauty Studio",
		Email: "one@example.com",
	})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), &models.CreateCompanyRequest{
		Name:  "Beauty Studio",
		Email: "two@example.com",
	})
	require.NoError(t, err)

	third, err := svc.Create(context.Background(), &models.CreateCompanyRequest{
		Name:  "Beauty  Studio!",
		Email: "three@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "beauty-studio", first.Link)
	assert.Equal(t, "beauty-studio-2", second.Link)
	assert.Equal(t, "beauty-studio-3", third.Link)
}

func TestCreate_CustomInterval(t *testing.T) {
	svc, _, _, _ := newTestService()

	resp, err := svc.Create(context.Background(), &models.CreateCompanyRequest{
		Name:                        "Barbershop",
		Email:                       "barber@example.com",
		IntervalBetweenAppointments: 45,
	})
	require.NoError(t, err)

	assert.Equal(t, 45, resp.IntervalBetweenAppointments)
}

func TestCreate_ValidationErrors(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateCompanyRequest{
		Name:  "   ",
		Email: "x@example.com",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateCompanyRequest{
		Name:  "No Email",
		Email: "",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_NonLatinNameFallsBackToDefaultSlug(t *testing.T) {
	svc, _, _, _ := newTestService()

	resp, err := svc.Create(context.Background(), &models.CreateCompanyRequest{
		Name:  "Салон красоты",
		Email: "salon@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "company", resp.Link)
}

func TestGetByID(t *testing.T) {
	svc, _, _, _ := newTestService()

	created, err := svc.Create(context.Background(), &models.CreateCompanyRequest{
		Name:  "Nails",
		Email: "nails@example.com",
	})
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "nails", got.Link)

	_, err = svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestGetByLink(t *testing.T) {
	svc, _, _, _ := newTestService()

	created, err := svc.Create(context.Background(), &models.CreateCompanyRequest{
		Name:  "Spa House",
		Email: "spa@example.com",
	})
	require.NoError(t, err)

	got, err := svc.GetByLink(context.Background(), "spa-house")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetByLink(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "my-company", slugify("My Company"))
	assert.Equal(t, "studio-21", slugify("  Studio #21 "))
	assert.Equal(t, "", slugify("Салон"))
}
