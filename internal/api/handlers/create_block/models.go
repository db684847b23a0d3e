package create_block

import (
	"time"

	createBlock "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_block"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	EmployeeID int64  `json:"employeeId"`
	StartDate  string `json:"startDate"` // RFC3339
	EndDate    string `json:"endDate"`   // RFC3339
}

// BlockResponse HTTP response model
type BlockResponse struct {
	ID                   int64  `json:"id"`
	CompanyID            int64  `json:"companyId"`
	EmployeeID           int64  `json:"employeeId"`
	Date                 string `json:"date"`
	Status               string `json:"status"`
	IsBlock              bool   `json:"isBlock"`
	TotalDurationMinutes int    `json:"totalDurationMinutes"`
	CreatedAt            string `json:"createdAt"`
	UpdatedAt            string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBlockRequest) ToUseCaseRequest() (*createBlock.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartDate)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &createBlock.Request{
		EmployeeID: r.EmployeeID,
		StartDate:  start,
		EndDate:    end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBlock.Response) *BlockResponse {
	return &BlockResponse{
		ID:                   resp.ID,
		CompanyID:            resp.CompanyID,
		EmployeeID:           resp.EmployeeID,
		Date:                 resp.Date.Format(time.RFC3339),
		Status:               resp.Status,
		IsBlock:              resp.IsBlock,
		TotalDurationMinutes: resp.TotalDurationMinutes,
		CreatedAt:            resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            resp.UpdatedAt.Format(time.RFC3339),
	}
}
