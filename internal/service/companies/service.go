package companies

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	companyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/company"
	"github.com/m04kA/SMC-AppointmentService/internal/service/companies/models"
)

// Service сервис регистрации и чтения компаний
type Service struct {
	companyRepo  CompanyRepository
	catalogRepo  CatalogRepository
	hoursCreator WorkingHoursCreator
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса компаний
func NewService(
	companyRepo CompanyRepository,
	catalogRepo CatalogRepository,
	hoursCreator WorkingHoursCreator,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		companyRepo:  companyRepo,
		catalogRepo:  catalogRepo,
		hoursCreator: hoursCreator,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create регистрирует компанию: генерирует уникальный slug, создает саму
// компанию, стандартные рабочие часы Пн-Пт и базовую категорию услуг.
// Всё в одной транзакции.
func (s *Service) Create(ctx context.Context, req *models.CreateCompanyRequest) (*models.CompanyResponse, error) {
	s.logger.Info("Create: registering company name=%q", req.Name)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	interval := req.IntervalBetweenAppointments
	if interval <= 0 {
		interval = domain.DefaultServiceIntervalMinutes
	}

	var created *domain.Company

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		link, err := s.generateLink(txCtx, req.Name)
		if err != nil {
			return err
		}

		company := &domain.Company{
			Name:                        req.Name,
			Link:                        link,
			Email:                       req.Email,
			Phone:                       req.Phone,
			Description:                 req.Description,
			IntervalBetweenAppointments: interval,
		}

		created, err = s.companyRepo.Create(txCtx, company)
		if err != nil {
			s.logger.Error("Create: failed to create company: %v", err)
			return fmt.Errorf("%w: failed to create company: %v", ErrInternal, err)
		}

		if err := s.hoursCreator.CreateDefaultWorkingHours(txCtx, created.ID); err != nil {
			s.logger.Error("Create: failed to create default working hours: %v", err)
			return fmt.Errorf("%w: failed to create default working hours: %v", ErrInternal, err)
		}

		category := &domain.Category{
			CompanyID: created.ID,
			Name:      domain.DefaultCategoryName,
		}
		if _, err := s.catalogRepo.CreateCategory(txCtx, category); err != nil {
			s.logger.Error("Create: failed to create default category: %v", err)
			return fmt.Errorf("%w: failed to create default category: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// Перечитываем, чтобы вернуть компанию вместе с созданными часами
	company, err := s.companyRepo.GetByID(ctx, created.ID)
	if err != nil {
		s.logger.Error("Create: failed to reload company id=%d: %v", created.ID, err)
		return nil, fmt.Errorf("%w: failed to reload company: %v", ErrInternal, err)
	}

	s.logger.Info("Create: company id=%d registered with link=%q", company.ID, company.Link)
	return models.FromDomainCompany(company), nil
}

// GetByID получает компанию по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.CompanyResponse, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			s.logger.Warn("GetByID: company id=%d not found", id)
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("GetByID: repository error for company id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCompany(company), nil
}

// GetByLink получает компанию по публичному slug
func (s *Service) GetByLink(ctx context.Context, link string) (*models.CompanyResponse, error) {
	company, err := s.companyRepo.GetByLink(ctx, link)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			s.logger.Warn("GetByLink: company link=%q not found", link)
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("GetByLink: repository error for link=%q: %v", link, err)
		return nil, fmt.Errorf("%w: GetByLink - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCompany(company), nil
}

// generateLink строит уникальный slug из названия компании.
// При коллизии к базовому slug добавляется числовой суффикс.
func (s *Service) generateLink(ctx context.Context, name string) (string, error) {
	base := slugify(name)
	if base == "" {
		base = "company"
	}

	link := base
	for counter := 2; ; counter++ {
		exists, err := s.companyRepo.LinkExists(ctx, link)
		if err != nil {
			s.logger.Error("generateLink: failed to check link %q: %v", link, err)
			return "", fmt.Errorf("%w: failed to check link: %v", ErrInternal, err)
		}
		if !exists {
			return link, nil
		}
		link = fmt.Sprintf("%s-%d", base, counter)
	}
}

// slugify приводит название к виду "my-company": латиница и цифры в нижнем
// регистре, остальное схлопывается в дефисы
func slugify(name string) string {
	var b strings.Builder
	lastDash := true

	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) && r < unicode.MaxASCII, unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
