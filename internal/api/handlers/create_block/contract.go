package create_block

import (
	"context"

	createBlock "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_block"
)

type CreateBlockUseCase interface {
	Execute(ctx context.Context, req *createBlock.Request) (*createBlock.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
