package medals

import (
	"github.com/nvbf/olympic-feed/pkg/viewstate"
	olympics "github.com/nvbf/olympic-feed/repos/olympics"
)

type TablePage struct {
	Rows           []olympics.Country      `json:"rows"`
	Page           int                     `json:"page"`
	TotalPages     int                     `json:"totalPages"`
	Matching       int                     `json:"matching"`
	TotalCountries int                     `json:"totalCountries"`
	Search         string                  `json:"search"`
	Direction      viewstate.SortDirection `json:"sort"`
}
