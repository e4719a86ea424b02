package booking

import "github.com/agentsalud/availability-service/pkg/dbmetrics"

// DBExecutor переиспользуем интерфейс из dbmetrics.
// Реализуется *sql.DB и *dbmetrics.DB.
type DBExecutor = dbmetrics.DBExecutor
