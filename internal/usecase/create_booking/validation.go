package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	if strings.TrimSpace(req.BandName) == "" {
		return fmt.Errorf("%w: bandName is required", ErrInvalidInput)
	}

	return nil
}

// containsDate проверяет вхождение даты в недельное окно
func containsDate(week []string, date string) bool {
	for _, d := range week {
		if d == date {
			return true
		}
	}
	return false
}
