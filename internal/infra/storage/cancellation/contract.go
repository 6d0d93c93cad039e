package cancellation

import (
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
