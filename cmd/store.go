package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/inglebright-earth/my-dash-a/internal/schema"
	"github.com/inglebright-earth/my-dash-a/internal/store"
	"github.com/inglebright-earth/my-dash-a/internal/survey"
)

// openStore opens the configured dataset backend and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite", "":
		st, err = store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

func loadCountries() (*schema.CountryRef, error) {
	return schema.LoadCountryRef(cfg.Data.CountryRef)
}

func csvOptions() survey.CSVOptions {
	return survey.CSVOptions{Latin1: cfg.Data.Latin1}
}
