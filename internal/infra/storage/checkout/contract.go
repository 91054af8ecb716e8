package checkout

import "github.com/m04kA/SMC-LeasingGateway/pkg/dbmetrics"

// DBExecutor поддерживает *sql.DB и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
