//go:build !windows

package engine

import (
	"context"
	"fmt"
)

type excelStarter struct{}

func newExcelStarter() Starter { return excelStarter{} }

func (excelStarter) Name() string { return NameExcel }

// Start always fails off Windows: Excel.Application is a COM server.
func (excelStarter) Start(context.Context) (Engine, error) {
	return nil, fmt.Errorf("%w: Excel.Application requires Windows COM", ErrNotRegistered)
}
