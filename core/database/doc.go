// Package database handles the connection to the import ledger database.
//
// It wraps GORM and selects the MySQL or SQLite dialector from configuration.
// SQLite is used for local runs and tests; MySQL for shared ledgers.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Ledger disabled", zap.Error(err))
//	}
package database
